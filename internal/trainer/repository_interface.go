package trainer

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Trainer) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	ListActive(ctx context.Context) ([]Trainer, error)
	AddWorkingHour(ctx context.Context, h *WorkingHour) (*WorkingHour, error)
	WorkingHoursForWeekday(ctx context.Context, trainerID int, weekday string) ([]WorkingHour, error)
	ClassEntriesForWeekday(ctx context.Context, trainerID int, weekday string, excludeClassID int) ([]BusySlot, error)
	CountAssignedClasses(ctx context.Context, trainerID int) (int, error)
	CountCompletedSessions(ctx context.Context, trainerID int, from, to *time.Time) (int, error)
}
