package class

import (
	"errors"
	"fmt"
	"time"

	"gymcore/internal/clock"
)

var (
	ErrInvalidCapacity = errors.New("maximum capacity must be greater than 0")
	ErrEmptySchedule   = errors.New("at least one schedule entry is required")
)

type Class struct {
	ID              int       `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Type            string    `db:"type" json:"type"`
	Level           string    `db:"level" json:"level,omitempty"`
	TrainerID       *int      `db:"trainer_id" json:"trainer_id,omitempty"`
	MaxCapacity     int       `db:"max_capacity" json:"max_capacity"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	Currency        string    `db:"currency" json:"currency"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	Schedule []ScheduleEntry `db:"-" json:"schedule,omitempty"`
}

type ScheduleEntry struct {
	ID        int    `db:"id" json:"id"`
	ClassID   int    `db:"class_id" json:"class_id"`
	Weekday   string `db:"weekday" json:"weekday"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

// Validate enforces the class invariants: positive capacity and a
// non-empty schedule whose entries all have start before end.
func (c *Class) Validate() error {
	if c.MaxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	if len(c.Schedule) == 0 {
		return ErrEmptySchedule
	}

	for _, e := range c.Schedule {
		start, err := clock.ParseClockTime(e.StartTime)
		if err != nil {
			return err
		}
		end, err := clock.ParseClockTime(e.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("start time must be before end time for %s", e.Weekday)
		}
	}

	return nil
}

// AvailableSlot is one bookable schedule entry on a concrete date.
type AvailableSlot struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	AvailableSpots int    `json:"available_spots"`
	MaxCapacity    int    `json:"max_capacity"`
	IsFullyBooked  bool   `json:"is_fully_booked"`
}

type Statistics struct {
	TotalBookings        int     `json:"total_bookings"`
	ConfirmedBookings    int     `json:"confirmed_bookings"`
	CancelledBookings    int     `json:"cancelled_bookings"`
	CompletedBookings    int     `json:"completed_bookings"`
	NoShowBookings       int     `json:"no_show_bookings"`
	CurrentMonthBookings int     `json:"current_month_bookings"`
	AttendanceRate       float64 `json:"attendance_rate"`
}

type StatusCounts struct {
	Total     int `db:"total"`
	Confirmed int `db:"confirmed"`
	Cancelled int `db:"cancelled"`
	Completed int `db:"completed"`
	NoShow    int `db:"no_show"`
}

type ScheduleEntryRequest struct {
	Weekday   string `json:"weekday" binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,clocktime"`
	EndTime   string `json:"end_time" binding:"required,clocktime"`
}

type CreateClassRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Type            string                 `json:"type" binding:"required"`
	Level           string                 `json:"level"`
	TrainerID       *int                   `json:"trainer_id"`
	MaxCapacity     int                    `json:"max_capacity" binding:"required"`
	DurationMinutes int                    `json:"duration_minutes"`
	PriceCents      int64                  `json:"price_cents" binding:"required,min=1"`
	Currency        string                 `json:"currency" binding:"required,len=3"`
	Schedule        []ScheduleEntryRequest `json:"schedule" binding:"required,dive"`
}
