package visit

import (
	"context"
	"time"

	"gymcore/internal/clock"
	"gymcore/internal/logger"
	"gymcore/internal/member"
	"gymcore/internal/metrics"
)

type Service interface {
	CheckIn(ctx context.Context, memberID int, visitType string, trainerID *int) (*Visit, error)
	CheckOut(ctx context.Context, memberID int) (*Visit, error)
	History(ctx context.Context, memberID, limit, offset int) ([]Visit, error)
	DailyVisits(ctx context.Context, date time.Time) ([]VisitWithMember, error)
	MonthStatistics(ctx context.Context) (*Statistics, error)
	RangeStatistics(ctx context.Context, from, to time.Time) (*Statistics, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	clk        clock.Clock
}

func NewService(repo Repository, memberRepo member.Repository, clk clock.Clock) Service {
	return &service{repo: repo, memberRepo: memberRepo, clk: clk}
}

// CheckIn opens a gym session for a member with a valid membership.
// One open session per member per day.
func (s *service) CheckIn(ctx context.Context, memberID int, visitType string, trainerID *int) (*Visit, error) {
	now := s.clk.Now()
	if visitType == "" {
		visitType = DefaultVisitType
	}

	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsValid(now) {
		metrics.RecordCheckIn("invalid_membership")
		return nil, ErrInvalidMembership
	}

	open, err := s.repo.GetOpen(ctx, memberID, now)
	if err != nil {
		return nil, err
	}
	if open != nil {
		metrics.RecordCheckIn("already_checked_in")
		return nil, ErrAlreadyCheckedIn
	}

	created, err := s.repo.CreateOpen(ctx, memberID, now, visitType, trainerID)
	if err != nil {
		if err == ErrAlreadyCheckedIn {
			metrics.RecordCheckIn("already_checked_in")
		}
		return nil, err
	}

	metrics.RecordCheckIn("ok")
	return created, nil
}

// CheckOut closes today's open session. The stored duration is the
// check-in to check-out span truncated to whole minutes; a span under
// one minute is rejected rather than recorded as zero.
func (s *service) CheckOut(ctx context.Context, memberID int) (*Visit, error) {
	now := s.clk.Now()

	open, err := s.repo.GetOpen(ctx, memberID, now)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoActiveSession
	}

	minutes := int(now.Sub(open.CheckIn).Minutes())
	if minutes <= 0 {
		return nil, ErrInvalidTimeOrder
	}

	closed, err := s.repo.Close(ctx, open.ID, now, minutes)
	if err != nil {
		return nil, err
	}

	// The member's lifetime counters move only through RecordVisit.
	if err := s.memberRepo.RecordVisit(ctx, memberID, now); err != nil {
		logger.Errorf("Failed to record visit for member %d: %v", memberID, err)
	}

	metrics.RecordCheckOut(minutes)
	return closed, nil
}

func (s *service) History(ctx context.Context, memberID, limit, offset int) ([]Visit, error) {
	return s.repo.History(ctx, memberID, limit, offset)
}

func (s *service) DailyVisits(ctx context.Context, date time.Time) ([]VisitWithMember, error) {
	return s.repo.ListByDate(ctx, date)
}

// MonthStatistics covers the first of the current month through today.
func (s *service) MonthStatistics(ctx context.Context) (*Statistics, error) {
	today := clock.Today(s.clk)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.repo.Stats(ctx, monthStart, today)
}

func (s *service) RangeStatistics(ctx context.Context, from, to time.Time) (*Statistics, error) {
	return s.repo.Stats(ctx, from, to)
}
