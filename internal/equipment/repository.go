package equipment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const equipmentColumns = `id, name, category, brand, location, serial_number, purchase_date, warranty_expiry,
       maintenance_interval_days, last_maintenance, next_maintenance, status,
       COALESCE(notes, '') AS notes, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, e *Equipment) (*Equipment, error)
	GetByID(ctx context.Context, id int) (*Equipment, error)
	List(ctx context.Context, filter ListFilter) ([]Equipment, error)
	ListMaintenanceDue(ctx context.Context, asOf time.Time) ([]Equipment, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
	CompleteMaintenance(ctx context.Context, id int, at, next time.Time) (*Equipment, error)
	StatusCounts(ctx context.Context) (*StatusCounts, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Equipment) (*Equipment, error) {
	query := `
		INSERT INTO equipment (name, category, brand, location, serial_number, purchase_date,
		                       warranty_expiry, maintenance_interval_days, next_maintenance, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
		RETURNING ` + equipmentColumns

	var created Equipment
	err := r.db.GetContext(ctx, &created, query,
		e.Name, e.Category, e.Brand, e.Location, e.SerialNumber, e.PurchaseDate, e.WarrantyExpiry,
		e.MaintenanceIntervalDays, e.NextMaintenance, e.Status, e.Notes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSerialExists
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Equipment, error) {
	var e Equipment
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Equipment, error) {
	var items []Equipment
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR location = $2)
		ORDER BY category, name
	`
	if err := r.db.SelectContext(ctx, &items, query, filter.Category, filter.Location); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListMaintenanceDue(ctx context.Context, asOf time.Time) ([]Equipment, error) {
	var items []Equipment
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE next_maintenance IS NOT NULL AND next_maintenance <= $1
		  AND status <> 'Out of Order'
		ORDER BY next_maintenance
	`
	if err := r.db.SelectContext(ctx, &items, query, asOf); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}

func (r *repository) CompleteMaintenance(ctx context.Context, id int, at, next time.Time) (*Equipment, error) {
	query := `
		UPDATE equipment
		SET last_maintenance = $2, next_maintenance = $3, status = 'Operational', updated_at = NOW()
		WHERE id = $1
		RETURNING ` + equipmentColumns

	var updated Equipment
	err := r.db.GetContext(ctx, &updated, query, id, at, next)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	var counts StatusCounts
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'Operational') AS operational,
		       COUNT(*) FILTER (WHERE status = 'Under Maintenance') AS under_maintenance,
		       COUNT(*) FILTER (WHERE status = 'Out of Order') AS out_of_order,
		       COUNT(*) AS total
		FROM equipment
	`
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return &counts, nil
}
