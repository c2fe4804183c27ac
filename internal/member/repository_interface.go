package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, firstName, lastName, email, passwordHash, role, mobileNo string) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, m *Member) error
	UpdateMembership(ctx context.Context, m *Member) error
	RecordVisit(ctx context.Context, memberID int, at time.Time) error
	Deactivate(ctx context.Context, id int) error
}
