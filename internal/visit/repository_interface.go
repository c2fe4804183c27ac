package visit

import (
	"context"
	"time"
)

type Repository interface {
	CreateOpen(ctx context.Context, memberID int, checkIn time.Time, visitType string, trainerID *int) (*Visit, error)
	GetOpen(ctx context.Context, memberID int, date time.Time) (*Visit, error)
	Close(ctx context.Context, visitID int, checkOut time.Time, durationMinutes int) (*Visit, error)
	History(ctx context.Context, memberID, limit, offset int) ([]Visit, error)
	ListByDate(ctx context.Context, date time.Time) ([]VisitWithMember, error)
	Stats(ctx context.Context, from, to time.Time) (*Statistics, error)
}
