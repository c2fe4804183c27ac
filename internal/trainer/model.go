package trainer

import (
	"time"

	"gymcore/internal/clock"
)

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	MobileNo  string    `db:"mobile_no" json:"mobile_no"`
	Specialty string    `db:"specialty" json:"specialty,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type WorkingHour struct {
	ID        int    `db:"id" json:"id"`
	TrainerID int    `db:"trainer_id" json:"trainer_id"`
	Weekday   string `db:"weekday" json:"weekday"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

// BusySlot is a class schedule entry already claiming the trainer's time.
type BusySlot struct {
	ClassID   int    `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

type DaySchedule struct {
	Weekday      string        `json:"weekday"`
	WorkingHours []WorkingHour `json:"working_hours"`
	Classes      []BusySlot    `json:"scheduled_classes"`
}

type Statistics struct {
	TotalSessions        int `json:"total_sessions"`
	CurrentMonthSessions int `json:"current_month_sessions"`
	AssignedClasses      int `json:"assigned_classes"`
}

// Available decides whether the [start,end) interval can be covered:
// it must sit fully inside some active working window and must not
// overlap any existing class entry. Overlap is half-open, so back-to-back
// slots do not conflict.
func Available(hours []WorkingHour, busy []BusySlot, start, end string) (bool, error) {
	startMin, err := clock.ParseClockTime(start)
	if err != nil {
		return false, err
	}
	endMin, err := clock.ParseClockTime(end)
	if err != nil {
		return false, err
	}
	if startMin >= endMin {
		return false, nil
	}

	within := false
	for _, h := range hours {
		if !h.IsActive {
			continue
		}
		hStart, err := clock.ParseClockTime(h.StartTime)
		if err != nil {
			return false, err
		}
		hEnd, err := clock.ParseClockTime(h.EndTime)
		if err != nil {
			return false, err
		}
		if startMin >= hStart && endMin <= hEnd {
			within = true
			break
		}
	}
	if !within {
		return false, nil
	}

	for _, b := range busy {
		bStart, err := clock.ParseClockTime(b.StartTime)
		if err != nil {
			return false, err
		}
		bEnd, err := clock.ParseClockTime(b.EndTime)
		if err != nil {
			return false, err
		}
		if startMin < bEnd && endMin > bStart {
			return false, nil
		}
	}

	return true, nil
}

type CreateTrainerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	MobileNo  string `json:"mobile_no"`
	Specialty string `json:"specialty"`
}

type WorkingHourRequest struct {
	Weekday   string `json:"weekday" binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,clocktime"`
	EndTime   string `json:"end_time" binding:"required,clocktime"`
}
