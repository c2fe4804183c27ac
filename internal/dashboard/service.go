package dashboard

import (
	"context"
	"time"

	"gymcore/internal/booking"
	"gymcore/internal/clock"
	"gymcore/internal/equipment"
	"gymcore/internal/member"
	"gymcore/internal/metrics"
	"gymcore/internal/visit"
)

type Service interface {
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	MemberOverview(ctx context.Context, memberID int) (*MemberOverview, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	bookings   booking.Service
	visits     visit.Service
	equipment  equipment.Service
	clk        clock.Clock
}

func NewService(
	repo Repository,
	memberRepo member.Repository,
	bookings booking.Service,
	visits visit.Service,
	equipmentSvc equipment.Service,
	clk clock.Clock,
) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		bookings:   bookings,
		visits:     visits,
		equipment:  equipmentSvc,
		clk:        clk,
	}
}

func (s *service) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	members, err := s.repo.MembersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range members {
		metrics.MembershipsByStatus.WithLabelValues(c.Status).Set(float64(c.Count))
	}

	visitStats, err := s.visits.MonthStatistics(ctx)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	bookingStats, err := s.bookings.Stats(ctx, &monthStart, &today)
	if err != nil {
		return nil, err
	}

	equipmentCounts, err := s.equipment.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		MembersByStatus: members,
		Visits:          visitStats,
		Bookings:        bookingStats,
		Equipment:       equipmentCounts,
	}, nil
}

func (s *service) MemberOverview(ctx context.Context, memberID int) (*MemberOverview, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.bookings.Upcoming(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	today := clock.Today(s.clk)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	visits, err := s.repo.MemberVisitCount(ctx, memberID, monthStart, today)
	if err != nil {
		return nil, err
	}

	return &MemberOverview{
		Member:           m,
		DaysRemaining:    m.DaysRemaining(now),
		IsValid:          m.IsValid(now),
		UpcomingBookings: upcoming,
		VisitsThisMonth:  visits,
	}, nil
}
