package visit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymcore/internal/clock"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const visitColumns = `id, member_id, visit_date, check_in, check_out, duration_minutes, visit_type, trainer_id, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateOpen starts a session. The partial unique index on
// (member_id, visit_date) for open rows turns a concurrent double
// check-in into a constraint violation.
func (r *repository) CreateOpen(ctx context.Context, memberID int, checkIn time.Time, visitType string, trainerID *int) (*Visit, error) {
	query := `
		INSERT INTO visits (member_id, visit_date, check_in, visit_type, trainer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + visitColumns

	var created Visit
	err := r.db.GetContext(ctx, &created, query, memberID, clock.DateOnly(checkIn), checkIn, visitType, trainerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetOpen(ctx context.Context, memberID int, date time.Time) (*Visit, error) {
	var v Visit
	query := `
		SELECT ` + visitColumns + `
		FROM visits
		WHERE member_id = $1 AND visit_date = $2 AND check_out IS NULL
	`
	err := r.db.GetContext(ctx, &v, query, memberID, clock.DateOnly(date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Close(ctx context.Context, visitID int, checkOut time.Time, durationMinutes int) (*Visit, error) {
	query := `
		UPDATE visits
		SET check_out = $2, duration_minutes = $3
		WHERE id = $1 AND check_out IS NULL
		RETURNING ` + visitColumns

	var closed Visit
	err := r.db.GetContext(ctx, &closed, query, visitID, checkOut, durationMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

func (r *repository) History(ctx context.Context, memberID, limit, offset int) ([]Visit, error) {
	if limit <= 0 {
		limit = 50
	}

	var visits []Visit
	query := `
		SELECT ` + visitColumns + `
		FROM visits
		WHERE member_id = $1
		ORDER BY check_in DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &visits, query, memberID, limit, offset); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repository) ListByDate(ctx context.Context, date time.Time) ([]VisitWithMember, error) {
	var visits []VisitWithMember
	query := `
		SELECT v.id, v.member_id, v.visit_date, v.check_in, v.check_out, v.duration_minutes, v.visit_type, v.trainer_id, v.created_at,
		       m.first_name || ' ' || m.last_name AS member_name,
		       m.email AS member_email
		FROM visits v
		JOIN members m ON m.id = v.member_id
		WHERE v.visit_date = $1
		ORDER BY v.check_in
	`
	if err := r.db.SelectContext(ctx, &visits, query, clock.DateOnly(date)); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repository) Stats(ctx context.Context, from, to time.Time) (*Statistics, error) {
	var stats Statistics
	query := `
		SELECT COUNT(*) AS total_visits,
		       COUNT(DISTINCT member_id) AS unique_members,
		       COALESCE(AVG(duration_minutes), 0) AS avg_duration_minutes,
		       COUNT(*) FILTER (WHERE check_out IS NULL) AS open_sessions
		FROM visits
		WHERE visit_date >= $1 AND visit_date <= $2
	`
	if err := r.db.GetContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return &stats, nil
}
