package booking

import (
	"errors"
	"time"
)

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
	StatusNoShow    Status = "No Show"
)

// Booking validation failures, in the order the rules are evaluated.
var (
	ErrInvalidMembership = errors.New("membership is not valid")
	ErrClassInactive     = errors.New("class is not active")
	ErrInvalidSlot       = errors.New("class has no such slot on that date")
	ErrClassFull         = errors.New("class is fully booked")
	ErrDuplicateBooking  = errors.New("member already has a booking for this slot")
	ErrPastBooking       = errors.New("cannot book a class in the past")
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotOwner         = errors.New("booking belongs to another member")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyCompleted = errors.New("booking is already completed")
	ErrAlreadyNoShow    = errors.New("booking is already marked as no show")
	ErrNotConfirmed     = errors.New("booking is not in confirmed status")
)

type Booking struct {
	ID                 int       `db:"id" json:"id"`
	MemberID           int       `db:"member_id" json:"member_id"`
	ClassID            int       `db:"class_id" json:"class_id"`
	ClassDate          time.Time `db:"class_date" json:"class_date"`
	ClassTime          string    `db:"class_time" json:"class_time"`
	Status             Status    `db:"status" json:"status"`
	AmountCents        int64     `db:"amount_cents" json:"amount_cents"`
	Currency           string    `db:"currency" json:"currency"`
	CancellationReason string    `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type BookingWithDetails struct {
	Booking
	ClassName   string `db:"class_name" json:"class_name"`
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

type Stats struct {
	Total          int     `db:"total" json:"total"`
	Confirmed      int     `db:"confirmed" json:"confirmed"`
	Cancelled      int     `db:"cancelled" json:"cancelled"`
	Completed      int     `db:"completed" json:"completed"`
	NoShow         int     `db:"no_show" json:"no_show"`
	AttendanceRate float64 `db:"-" json:"attendance_rate"`
}

type BookRequest struct {
	ClassID   int    `json:"class_id" binding:"required"`
	ClassDate string `json:"class_date" binding:"required"` // YYYY-MM-DD
	ClassTime string `json:"class_time" binding:"required,clocktime"` // HH:MM
}

type CancelRequest struct {
	Reason string `json:"reason"`
}
