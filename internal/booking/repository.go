package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymcore/internal/clock"

	"github.com/jmoiron/sqlx"
)

const bookingColumns = `id, member_id, class_id, class_date, to_char(class_time, 'HH24:MI') AS class_time,
       status, amount_cents, currency, COALESCE(cancellation_reason, '') AS cancellation_reason, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateConfirmed runs the capacity, duplicate and past-slot rules and
// the insert in a single transaction. The class row is locked first so
// concurrent bookings for the same slot serialize on it and the
// capacity count stays accurate under load.
func (r *repository) CreateConfirmed(ctx context.Context, b *Booking, now time.Time) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var maxCapacity int
	err = tx.GetContext(ctx, &maxCapacity,
		`SELECT max_capacity FROM classes WHERE id = $1 FOR UPDATE`, b.ClassID)
	if err != nil {
		return nil, err
	}

	var confirmed int
	err = tx.GetContext(ctx, &confirmed,
		`SELECT COUNT(*) FROM bookings
		 WHERE class_id = $1 AND class_date = $2 AND class_time = $3::time AND status = 'Confirmed'`,
		b.ClassID, b.ClassDate, b.ClassTime)
	if err != nil {
		return nil, err
	}
	if confirmed >= maxCapacity {
		return nil, ErrClassFull
	}

	// Any prior booking for the slot blocks a rebook, cancelled ones
	// included. The unique index on (member, class, date, time) backs
	// this up at the storage level.
	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND class_id = $2 AND class_date = $3 AND class_time = $4::time
		)`,
		b.MemberID, b.ClassID, b.ClassDate, b.ClassTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBooking
	}

	// A slot starting at this exact instant is still bookable; only a
	// start strictly in the past is rejected.
	startsAt, err := clock.At(b.ClassDate, b.ClassTime)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if startsAt.Before(now) {
		return nil, ErrPastBooking
	}

	query := `
		INSERT INTO bookings (member_id, class_id, class_date, class_time, status, amount_cents, currency)
		VALUES ($1, $2, $3, $4::time, 'Confirmed', $5, $6)
		RETURNING ` + bookingColumns

	var created Booking
	err = tx.GetContext(ctx, &created, query,
		b.MemberID, b.ClassID, b.ClassDate, b.ClassTime, b.AmountCents, b.Currency)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	var b Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Cancel(ctx context.Context, id int, reason string) error {
	query := `
		UPDATE bookings
		SET status = 'Cancelled', cancellation_reason = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $1 AND status = 'Confirmed'
	`
	return r.transition(ctx, query, id, reason)
}

func (r *repository) Complete(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'Completed', updated_at = NOW()
		WHERE id = $1 AND status = 'Confirmed'
	`
	return r.transition(ctx, query, id)
}

func (r *repository) MarkNoShow(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'No Show', updated_at = NOW()
		WHERE id = $1 AND status = 'Confirmed'
	`
	return r.transition(ctx, query, id)
}

// transition guards every status change with a rows-affected check so
// a booking that already left Confirmed cannot be moved twice.
func (r *repository) transition(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotConfirmed
	}

	return nil
}

const detailColumns = `
	b.id, b.member_id, b.class_id, b.class_date, to_char(b.class_time, 'HH24:MI') AS class_time,
	b.status, b.amount_cents, b.currency, COALESCE(b.cancellation_reason, '') AS cancellation_reason,
	b.created_at, b.updated_at,
	c.name AS class_name,
	m.first_name || ' ' || m.last_name AS member_name,
	m.email AS member_email`

func (r *repository) ListByMember(ctx context.Context, memberID int, status string) ([]BookingWithDetails, error) {
	var bookings []BookingWithDetails
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		JOIN members m ON m.id = b.member_id
		WHERE b.member_id = $1 AND ($2 = '' OR b.status = $2)
		ORDER BY b.class_date DESC, b.class_time DESC
	`
	if err := r.db.SelectContext(ctx, &bookings, query, memberID, status); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListByClass(ctx context.Context, classID int, date *time.Time) ([]BookingWithDetails, error) {
	var bookings []BookingWithDetails
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		JOIN members m ON m.id = b.member_id
		WHERE b.class_id = $1 AND ($2::date IS NULL OR b.class_date = $2)
		ORDER BY b.class_date DESC, b.class_time, m.last_name
	`
	if err := r.db.SelectContext(ctx, &bookings, query, classID, date); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListUpcoming(ctx context.Context, memberID int, from time.Time) ([]BookingWithDetails, error) {
	var bookings []BookingWithDetails
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		JOIN members m ON m.id = b.member_id
		WHERE b.member_id = $1 AND b.status = 'Confirmed' AND b.class_date >= $2
		ORDER BY b.class_date, b.class_time
	`
	if err := r.db.SelectContext(ctx, &bookings, query, memberID, from); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) Stats(ctx context.Context, from, to *time.Time) (*Stats, error) {
	var stats Stats
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'Confirmed') AS confirmed,
		       COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled,
		       COUNT(*) FILTER (WHERE status = 'Completed') AS completed,
		       COUNT(*) FILTER (WHERE status = 'No Show') AS no_show
		FROM bookings
		WHERE ($1::date IS NULL OR class_date >= $1)
		  AND ($2::date IS NULL OR class_date <= $2)
	`
	if err := r.db.GetContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	attended := stats.Completed + stats.NoShow
	if attended > 0 {
		stats.AttendanceRate = float64(stats.Completed) / float64(attended) * 100
	}

	return &stats, nil
}
