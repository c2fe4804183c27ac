package booking

import (
	"context"
	"time"

	"gymcore/internal/class"
	"gymcore/internal/clock"
	"gymcore/internal/logger"
	"gymcore/internal/member"
	"gymcore/internal/metrics"
)

// Notifier is the slice of the email service bookings need.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, className, date, startTime string) error
	SendBookingCancellation(ctx context.Context, to, name, className, date, startTime string) error
}

type Service interface {
	Book(ctx context.Context, memberID int, req BookRequest) (*Booking, error)
	Cancel(ctx context.Context, memberID, bookingID int, reason string) error
	Complete(ctx context.Context, bookingID int) error
	MarkNoShow(ctx context.Context, bookingID int) error
	MemberBookings(ctx context.Context, memberID int, status string) ([]BookingWithDetails, error)
	ClassBookings(ctx context.Context, classID int, date *time.Time) ([]BookingWithDetails, error)
	Upcoming(ctx context.Context, memberID int) ([]BookingWithDetails, error)
	Stats(ctx context.Context, from, to *time.Time) (*Stats, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	classRepo  class.Repository
	notifier   Notifier
	clk        clock.Clock
}

func NewService(repo Repository, memberRepo member.Repository, classRepo class.Repository, notifier Notifier, clk clock.Clock) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		classRepo:  classRepo,
		notifier:   notifier,
		clk:        clk,
	}
}

// Book runs the booking rules in a fixed order: membership validity,
// class active, slot exists, then capacity, duplicate and past checks
// inside the repository transaction. The first failing rule decides
// the error even when several would fail.
func (s *service) Book(ctx context.Context, memberID int, req BookRequest) (*Booking, error) {
	now := s.clk.Now()

	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsValid(now) {
		metrics.RecordBooking("invalid_membership")
		return nil, ErrInvalidMembership
	}

	cls, err := s.classRepo.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !cls.IsActive {
		metrics.RecordBooking("class_inactive")
		return nil, ErrClassInactive
	}

	date, err := time.Parse("2006-01-02", req.ClassDate)
	if err != nil {
		metrics.RecordBooking("invalid_slot")
		return nil, ErrInvalidSlot
	}

	entry, err := s.classRepo.GetScheduleEntry(ctx, req.ClassID, date.Weekday().String(), req.ClassTime)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		metrics.RecordBooking("invalid_slot")
		return nil, ErrInvalidSlot
	}

	created, err := s.repo.CreateConfirmed(ctx, &Booking{
		MemberID:    memberID,
		ClassID:     req.ClassID,
		ClassDate:   date,
		ClassTime:   entry.StartTime,
		AmountCents: cls.PriceCents,
		Currency:    cls.Currency,
	}, now)
	if err != nil {
		metrics.RecordBooking(bookingOutcome(err))
		return nil, err
	}

	metrics.RecordBooking("confirmed")

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, m.Email, m.FirstName, cls.Name, req.ClassDate, entry.StartTime); err != nil {
			logger.Errorf("Failed to queue booking confirmation for %s: %v", m.Email, err)
		}
	}

	return created, nil
}

func bookingOutcome(err error) string {
	switch err {
	case ErrClassFull:
		return "class_full"
	case ErrDuplicateBooking:
		return "duplicate"
	case ErrPastBooking:
		return "past"
	case ErrInvalidSlot:
		return "invalid_slot"
	default:
		return "error"
	}
}

// Cancel moves a confirmed booking to Cancelled. memberID 0 skips the
// ownership check for staff callers.
func (s *service) Cancel(ctx context.Context, memberID, bookingID int, reason string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if memberID != 0 && b.MemberID != memberID {
		return ErrNotOwner
	}

	if err := statusBlocks(b.Status); err != nil {
		return err
	}

	if err := s.repo.Cancel(ctx, bookingID, reason); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()

	if s.notifier != nil {
		if m, err := s.memberRepo.GetByID(ctx, b.MemberID); err == nil {
			className := "Class"
			if cls, err := s.classRepo.GetByID(ctx, b.ClassID); err == nil {
				className = cls.Name
			}
			dateStr := b.ClassDate.Format("2006-01-02")
			if err := s.notifier.SendBookingCancellation(ctx, m.Email, m.FirstName, className, dateStr, b.ClassTime); err != nil {
				logger.Errorf("Failed to queue cancellation notice for %s: %v", m.Email, err)
			}
		}
	}

	return nil
}

// Complete marks attendance and is the booking-side entry point to the
// member's visit counters.
func (s *service) Complete(ctx context.Context, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := statusBlocks(b.Status); err != nil {
		return err
	}

	if err := s.repo.Complete(ctx, bookingID); err != nil {
		return err
	}

	if err := s.memberRepo.RecordVisit(ctx, b.MemberID, s.clk.Now()); err != nil {
		logger.Errorf("Failed to record visit for member %d: %v", b.MemberID, err)
	}

	return nil
}

func (s *service) MarkNoShow(ctx context.Context, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := statusBlocks(b.Status); err != nil {
		return err
	}

	return s.repo.MarkNoShow(ctx, bookingID)
}

func statusBlocks(status Status) error {
	switch status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusNoShow:
		return ErrAlreadyNoShow
	}
	return nil
}

func (s *service) MemberBookings(ctx context.Context, memberID int, status string) ([]BookingWithDetails, error) {
	return s.repo.ListByMember(ctx, memberID, status)
}

func (s *service) ClassBookings(ctx context.Context, classID int, date *time.Time) ([]BookingWithDetails, error) {
	return s.repo.ListByClass(ctx, classID, date)
}

func (s *service) Upcoming(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	return s.repo.ListUpcoming(ctx, memberID, clock.Today(s.clk))
}

func (s *service) Stats(ctx context.Context, from, to *time.Time) (*Stats, error) {
	return s.repo.Stats(ctx, from, to)
}
