package trainer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Trainer) (*Trainer, error) {
	query := `
		INSERT INTO trainers (first_name, last_name, email, mobile_no, specialty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, mobile_no, specialty, is_active, created_at
	`

	var created Trainer
	err := r.db.GetContext(ctx, &created, query, t.FirstName, t.LastName, t.Email, t.MobileNo, t.Specialty)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	var t Trainer
	query := `SELECT id, first_name, last_name, email, mobile_no, specialty, is_active, created_at FROM trainers WHERE id = $1`
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Trainer, error) {
	var trainers []Trainer
	query := `
		SELECT id, first_name, last_name, email, mobile_no, specialty, is_active, created_at
		FROM trainers
		WHERE is_active
		ORDER BY last_name, first_name
	`
	if err := r.db.SelectContext(ctx, &trainers, query); err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *repository) AddWorkingHour(ctx context.Context, h *WorkingHour) (*WorkingHour, error) {
	query := `
		INSERT INTO trainer_working_hours (trainer_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trainer_id, weekday, start_time, end_time, is_active
	`

	var created WorkingHour
	err := r.db.GetContext(ctx, &created, query, h.TrainerID, h.Weekday, h.StartTime, h.EndTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) WorkingHoursForWeekday(ctx context.Context, trainerID int, weekday string) ([]WorkingHour, error) {
	var hours []WorkingHour
	query := `
		SELECT id, trainer_id, weekday, to_char(start_time, 'HH24:MI') AS start_time,
		       to_char(end_time, 'HH24:MI') AS end_time, is_active
		FROM trainer_working_hours
		WHERE trainer_id = $1 AND weekday = $2 AND is_active
		ORDER BY start_time
	`
	if err := r.db.SelectContext(ctx, &hours, query, trainerID, weekday); err != nil {
		return nil, err
	}
	return hours, nil
}

// ClassEntriesForWeekday lists the active schedule entries of the
// trainer's active classes for one weekday. excludeClassID lets a class
// being edited skip its own entries.
func (r *repository) ClassEntriesForWeekday(ctx context.Context, trainerID int, weekday string, excludeClassID int) ([]BusySlot, error) {
	var slots []BusySlot
	query := `
		SELECT c.id AS class_id, c.name AS class_name,
		       to_char(e.start_time, 'HH24:MI') AS start_time,
		       to_char(e.end_time, 'HH24:MI') AS end_time
		FROM class_schedule_entries e
		JOIN classes c ON c.id = e.class_id
		WHERE c.trainer_id = $1 AND e.weekday = $2
		  AND c.is_active AND e.is_active AND c.id <> $3
		ORDER BY e.start_time
	`
	if err := r.db.SelectContext(ctx, &slots, query, trainerID, weekday, excludeClassID); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) CountAssignedClasses(ctx context.Context, trainerID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM classes WHERE trainer_id = $1 AND is_active`
	if err := r.db.GetContext(ctx, &count, query, trainerID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountCompletedSessions(ctx context.Context, trainerID int, from, to *time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		WHERE c.trainer_id = $1 AND b.status = 'Completed'
		  AND ($2::date IS NULL OR b.class_date >= $2)
		  AND ($3::date IS NULL OR b.class_date <= $3)
	`
	if err := r.db.GetContext(ctx, &count, query, trainerID, from, to); err != nil {
		return 0, err
	}
	return count, nil
}
