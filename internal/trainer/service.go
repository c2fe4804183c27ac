package trainer

import (
	"context"
	"errors"
	"time"

	"gymcore/internal/clock"
)

var ErrInvalidWindow = errors.New("start time must be before end time")

type Service interface {
	Create(ctx context.Context, req CreateTrainerRequest) (*Trainer, error)
	Get(ctx context.Context, trainerID int) (*Trainer, error)
	AddWorkingHour(ctx context.Context, trainerID int, req WorkingHourRequest) (*WorkingHour, error)
	DayScheduleFor(ctx context.Context, trainerID int, date time.Time) (*DaySchedule, error)
	IsAvailable(ctx context.Context, trainerID int, date time.Time, start, end string) (bool, error)
	CanCover(ctx context.Context, trainerID int, weekday, start, end string, excludeClassID int) (bool, error)
	AvailableTrainers(ctx context.Context, date time.Time, start, end string) ([]Trainer, error)
	Statistics(ctx context.Context, trainerID int) (*Statistics, error)
}

type service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{repo: repo, clk: clk}
}

func (s *service) Create(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	t := &Trainer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		MobileNo:  req.MobileNo,
		Specialty: req.Specialty,
	}
	return s.repo.Create(ctx, t)
}

func (s *service) Get(ctx context.Context, trainerID int) (*Trainer, error) {
	return s.repo.GetByID(ctx, trainerID)
}

func (s *service) AddWorkingHour(ctx context.Context, trainerID int, req WorkingHourRequest) (*WorkingHour, error) {
	startMin, err := clock.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := clock.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ErrInvalidWindow
	}

	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return nil, err
	}

	return s.repo.AddWorkingHour(ctx, &WorkingHour{
		TrainerID: trainerID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
}

func (s *service) DayScheduleFor(ctx context.Context, trainerID int, date time.Time) (*DaySchedule, error) {
	weekday := date.Weekday().String()

	hours, err := s.repo.WorkingHoursForWeekday(ctx, trainerID, weekday)
	if err != nil {
		return nil, err
	}

	classes, err := s.repo.ClassEntriesForWeekday(ctx, trainerID, weekday, 0)
	if err != nil {
		return nil, err
	}

	return &DaySchedule{Weekday: weekday, WorkingHours: hours, Classes: classes}, nil
}

func (s *service) IsAvailable(ctx context.Context, trainerID int, date time.Time, start, end string) (bool, error) {
	return s.CanCover(ctx, trainerID, date.Weekday().String(), start, end, 0)
}

// CanCover runs the availability rule with explicit read dependencies:
// the working hours and busy slots are fetched once, then the decision
// is a pure function of them.
func (s *service) CanCover(ctx context.Context, trainerID int, weekday, start, end string, excludeClassID int) (bool, error) {
	hours, err := s.repo.WorkingHoursForWeekday(ctx, trainerID, weekday)
	if err != nil {
		return false, err
	}

	busy, err := s.repo.ClassEntriesForWeekday(ctx, trainerID, weekday, excludeClassID)
	if err != nil {
		return false, err
	}

	return Available(hours, busy, start, end)
}

func (s *service) AvailableTrainers(ctx context.Context, date time.Time, start, end string) ([]Trainer, error) {
	trainers, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]Trainer, 0, len(trainers))
	for _, t := range trainers {
		ok, err := s.IsAvailable(ctx, t.ID, date, start, end)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, t)
		}
	}

	return available, nil
}

func (s *service) Statistics(ctx context.Context, trainerID int) (*Statistics, error) {
	total, err := s.repo.CountCompletedSessions(ctx, trainerID, nil, nil)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := s.repo.CountCompletedSessions(ctx, trainerID, &monthStart, &today)
	if err != nil {
		return nil, err
	}

	assigned, err := s.repo.CountAssignedClasses(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		TotalSessions:        total,
		CurrentMonthSessions: month,
		AssignedClasses:      assigned,
	}, nil
}
