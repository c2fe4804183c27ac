package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrClassNotFound = errors.New("class not found")

const classColumns = `id, name, type, level, trainer_id, max_capacity, duration_minutes, price_cents, currency, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the class and its schedule entries in one transaction
// so a class never exists without a schedule.
func (r *repository) Create(ctx context.Context, c *Class) (*Class, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO classes (name, type, level, trainer_id, max_capacity, duration_minutes, price_cents, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + classColumns

	var created Class
	err = tx.GetContext(ctx, &created, query,
		c.Name, c.Type, c.Level, c.TrainerID, c.MaxCapacity, c.DurationMinutes, c.PriceCents, c.Currency)
	if err != nil {
		return nil, err
	}

	entryQuery := `
		INSERT INTO class_schedule_entries (class_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, class_id, weekday, to_char(start_time, 'HH24:MI') AS start_time,
		          to_char(end_time, 'HH24:MI') AS end_time, is_active
	`
	for _, e := range c.Schedule {
		var entry ScheduleEntry
		if err := tx.GetContext(ctx, &entry, entryQuery, created.ID, e.Weekday, e.StartTime, e.EndTime); err != nil {
			return nil, err
		}
		created.Schedule = append(created.Schedule, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Class, error) {
	var c Class
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}

	schedule, err := r.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Schedule = schedule

	return &c, nil
}

func (r *repository) loadSchedule(ctx context.Context, classID int) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	query := `
		SELECT id, class_id, weekday, to_char(start_time, 'HH24:MI') AS start_time,
		       to_char(end_time, 'HH24:MI') AS end_time, is_active
		FROM class_schedule_entries
		WHERE class_id = $1 AND is_active
		ORDER BY weekday, start_time
	`
	if err := r.db.SelectContext(ctx, &entries, query, classID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Class, error) {
	var classes []Class
	query := `SELECT ` + classColumns + ` FROM classes WHERE is_active ORDER BY name`
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Class, error) {
	var classes []Class
	query := `SELECT ` + classColumns + ` FROM classes WHERE trainer_id = $1 AND is_active ORDER BY name`
	if err := r.db.SelectContext(ctx, &classes, query, trainerID); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) ScheduleForWeekday(ctx context.Context, classID int, weekday string) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	query := `
		SELECT id, class_id, weekday, to_char(start_time, 'HH24:MI') AS start_time,
		       to_char(end_time, 'HH24:MI') AS end_time, is_active
		FROM class_schedule_entries
		WHERE class_id = $1 AND weekday = $2 AND is_active
		ORDER BY start_time
	`
	if err := r.db.SelectContext(ctx, &entries, query, classID, weekday); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) GetScheduleEntry(ctx context.Context, classID int, weekday, startTime string) (*ScheduleEntry, error) {
	var entry ScheduleEntry
	query := `
		SELECT id, class_id, weekday, to_char(start_time, 'HH24:MI') AS start_time,
		       to_char(end_time, 'HH24:MI') AS end_time, is_active
		FROM class_schedule_entries
		WHERE class_id = $1 AND weekday = $2 AND start_time = $3::time AND is_active
	`
	err := r.db.GetContext(ctx, &entry, query, classID, weekday, startTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) CountConfirmed(ctx context.Context, classID int, date time.Time, startTime string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE class_id = $1 AND class_date = $2 AND class_time = $3::time AND status = 'Confirmed'
	`
	if err := r.db.GetContext(ctx, &count, query, classID, date, startTime); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) StatusCounts(ctx context.Context, classID int, from, to *time.Time) (*StatusCounts, error) {
	var counts StatusCounts
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'Confirmed') AS confirmed,
		       COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled,
		       COUNT(*) FILTER (WHERE status = 'Completed') AS completed,
		       COUNT(*) FILTER (WHERE status = 'No Show') AS no_show
		FROM bookings
		WHERE class_id = $1
		  AND ($2::date IS NULL OR class_date >= $2)
		  AND ($3::date IS NULL OR class_date <= $3)
	`
	if err := r.db.GetContext(ctx, &counts, query, classID, from, to); err != nil {
		return nil, err
	}
	return &counts, nil
}

// Revenue sums the booked amount snapshots, not the current class
// price, so later price changes do not rewrite history.
func (r *repository) Revenue(ctx context.Context, classID int, from, to time.Time) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM bookings
		WHERE class_id = $1 AND status IN ('Confirmed', 'Completed')
		  AND class_date >= $2 AND class_date <= $3
	`
	if err := r.db.GetContext(ctx, &total, query, classID, from, to); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) SetActive(ctx context.Context, classID int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE classes SET is_active = $2 WHERE id = $1`, classID, active)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClassNotFound
	}

	return nil
}
