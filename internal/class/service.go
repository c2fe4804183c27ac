package class

import (
	"context"
	"errors"
	"time"

	"gymcore/internal/clock"
	"gymcore/internal/trainer"
)

var ErrTrainerUnavailable = errors.New("trainer is not available for the requested schedule")

type Service interface {
	Create(ctx context.Context, req CreateClassRequest) (*Class, error)
	Get(ctx context.Context, classID int) (*Class, error)
	ListActive(ctx context.Context) ([]Class, error)
	AvailableSlots(ctx context.Context, classID int, date time.Time) ([]AvailableSlot, error)
	Statistics(ctx context.Context, classID int) (*Statistics, error)
	Revenue(ctx context.Context, classID int, from, to time.Time) (int64, error)
	Deactivate(ctx context.Context, classID int) error
}

type service struct {
	repo     Repository
	trainers trainer.Service
	clk      clock.Clock
}

func NewService(repo Repository, trainers trainer.Service, clk clock.Clock) Service {
	return &service{repo: repo, trainers: trainers, clk: clk}
}

func (s *service) Create(ctx context.Context, req CreateClassRequest) (*Class, error) {
	c := &Class{
		Name:            req.Name,
		Type:            req.Type,
		Level:           req.Level,
		TrainerID:       req.TrainerID,
		MaxCapacity:     req.MaxCapacity,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
	}
	for _, e := range req.Schedule {
		c.Schedule = append(c.Schedule, ScheduleEntry{
			Weekday:   e.Weekday,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// The assigned trainer must be free for every schedule entry,
	// considering their working hours and other classes.
	if c.TrainerID != nil {
		for _, e := range c.Schedule {
			ok, err := s.trainers.CanCover(ctx, *c.TrainerID, e.Weekday, e.StartTime, e.EndTime, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrTrainerUnavailable
			}
		}
	}

	return s.repo.Create(ctx, c)
}

func (s *service) Get(ctx context.Context, classID int) (*Class, error) {
	return s.repo.GetByID(ctx, classID)
}

func (s *service) ListActive(ctx context.Context) ([]Class, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) AvailableSlots(ctx context.Context, classID int, date time.Time) ([]AvailableSlot, error) {
	c, err := s.repo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ScheduleForWeekday(ctx, classID, date.Weekday().String())
	if err != nil {
		return nil, err
	}

	slots := make([]AvailableSlot, 0, len(entries))
	for _, e := range entries {
		confirmed, err := s.repo.CountConfirmed(ctx, classID, clock.DateOnly(date), e.StartTime)
		if err != nil {
			return nil, err
		}

		spots := c.MaxCapacity - confirmed
		if spots < 0 {
			spots = 0
		}

		slots = append(slots, AvailableSlot{
			StartTime:      e.StartTime,
			EndTime:        e.EndTime,
			AvailableSpots: spots,
			MaxCapacity:    c.MaxCapacity,
			IsFullyBooked:  spots == 0,
		})
	}

	return slots, nil
}

func (s *service) Statistics(ctx context.Context, classID int) (*Statistics, error) {
	if _, err := s.repo.GetByID(ctx, classID); err != nil {
		return nil, err
	}

	counts, err := s.repo.StatusCounts(ctx, classID, nil, nil)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthCounts, err := s.repo.StatusCounts(ctx, classID, &monthStart, &today)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalBookings:        counts.Total,
		ConfirmedBookings:    counts.Confirmed,
		CancelledBookings:    counts.Cancelled,
		CompletedBookings:    counts.Completed,
		NoShowBookings:       counts.NoShow,
		CurrentMonthBookings: monthCounts.Total,
	}

	attended := counts.Completed + counts.NoShow
	if attended > 0 {
		stats.AttendanceRate = float64(counts.Completed) / float64(attended) * 100
	}

	return stats, nil
}

func (s *service) Revenue(ctx context.Context, classID int, from, to time.Time) (int64, error) {
	return s.repo.Revenue(ctx, classID, from, to)
}

func (s *service) Deactivate(ctx context.Context, classID int) error {
	return s.repo.SetActive(ctx, classID, false)
}
