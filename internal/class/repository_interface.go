package class

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Class) (*Class, error)
	GetByID(ctx context.Context, id int) (*Class, error)
	ListActive(ctx context.Context) ([]Class, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Class, error)
	ScheduleForWeekday(ctx context.Context, classID int, weekday string) ([]ScheduleEntry, error)
	GetScheduleEntry(ctx context.Context, classID int, weekday, startTime string) (*ScheduleEntry, error)
	CountConfirmed(ctx context.Context, classID int, date time.Time, startTime string) (int, error)
	StatusCounts(ctx context.Context, classID int, from, to *time.Time) (*StatusCounts, error)
	Revenue(ctx context.Context, classID int, from, to time.Time) (int64, error)
	SetActive(ctx context.Context, classID int, active bool) error
}
