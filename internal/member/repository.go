package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

const memberColumns = `id, first_name, last_name, email, password_hash, role, mobile_no,
	plan_id, membership_start_date, membership_end_date, membership_status,
	is_active, total_visits, last_visit, notes, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, firstName, lastName, email, passwordHash, role, mobileNo string) (*Member, error) {
	query := `
		INSERT INTO members (first_name, last_name, email, password_hash, role, mobile_no, membership_status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, 'Inactive', FALSE)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, firstName, lastName, email, passwordHash, role, mobileNo)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) UpdateProfile(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET first_name = $2, last_name = $3, mobile_no = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, m.ID, m.FirstName, m.LastName, m.MobileNo, m.Notes)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) UpdateMembership(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET plan_id = $2, membership_start_date = $3, membership_end_date = $4,
		    membership_status = $5, is_active = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.PlanID, m.StartDate, m.EndDate, m.Status, m.IsActive, m.Notes)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// RecordVisit is the only statement that touches the visit aggregates,
// so counts can never drift by more than the one closed session.
func (r *repository) RecordVisit(ctx context.Context, memberID int, at time.Time) error {
	query := `
		UPDATE members
		SET total_visits = total_visits + 1, last_visit = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, memberID, at)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE members
		SET is_active = FALSE, membership_status = 'Inactive', updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}
