package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPlanNotFound = errors.New("plan not found")

type Repository interface {
	Create(ctx context.Context, p *Plan) (*Plan, error)
	Update(ctx context.Context, p *Plan) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
	SetActive(ctx context.Context, id int, active bool) error
}

const planColumns = `id, name, type, duration_months, price_cents, currency,
	unlimited_visits, max_visits_per_month, description, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Plan) (*Plan, error) {
	query := `
		INSERT INTO membership_plans
			(name, type, duration_months, price_cents, currency, unlimited_visits, max_visits_per_month, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + planColumns

	var created Plan
	err := r.db.GetContext(ctx, &created, query,
		p.Name, p.Type, p.DurationMonths, p.PriceCents, p.Currency,
		p.UnlimitedVisits, p.MaxVisitsPerMonth, p.Description)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, p *Plan) (*Plan, error) {
	query := `
		UPDATE membership_plans
		SET name = $2, type = $3, duration_months = $4, price_cents = $5, currency = $6,
		    unlimited_visits = $7, max_visits_per_month = $8, description = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planColumns

	var updated Plan
	err := r.db.GetContext(ctx, &updated, query,
		p.ID, p.Name, p.Type, p.DurationMonths, p.PriceCents, p.Currency,
		p.UnlimitedVisits, p.MaxVisitsPerMonth, p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	err := r.db.GetContext(ctx, &p, `SELECT `+planColumns+` FROM membership_plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	query := `SELECT ` + planColumns + ` FROM membership_plans WHERE is_active ORDER BY price_cents ASC`
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE membership_plans SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPlanNotFound
	}
	return nil
}
