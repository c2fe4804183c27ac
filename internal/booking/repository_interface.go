package booking

import (
	"context"
	"time"
)

type Repository interface {
	CreateConfirmed(ctx context.Context, b *Booking, now time.Time) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	Cancel(ctx context.Context, id int, reason string) error
	Complete(ctx context.Context, id int) error
	MarkNoShow(ctx context.Context, id int) error
	ListByMember(ctx context.Context, memberID int, status string) ([]BookingWithDetails, error)
	ListByClass(ctx context.Context, classID int, date *time.Time) ([]BookingWithDetails, error)
	ListUpcoming(ctx context.Context, memberID int, from time.Time) ([]BookingWithDetails, error)
	Stats(ctx context.Context, from, to *time.Time) (*Stats, error)
}
