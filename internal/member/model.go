package member

import (
	"time"

	"gymcore/internal/clock"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusExpired   Status = "Expired"
	StatusSuspended Status = "Suspended"
)

type Member struct {
	ID           int        `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	MobileNo     string     `db:"mobile_no" json:"mobile_no"`
	PlanID       *int       `db:"plan_id" json:"plan_id,omitempty"`
	StartDate    *time.Time `db:"membership_start_date" json:"membership_start_date,omitempty"`
	EndDate      *time.Time `db:"membership_end_date" json:"membership_end_date,omitempty"`
	Status       Status     `db:"membership_status" json:"membership_status"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	TotalVisits  int        `db:"total_visits" json:"total_visits"`
	LastVisit    *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	Notes        string     `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsValid reports whether the membership can be used right now:
// the member must be active and the end date must not have passed.
func (m *Member) IsValid(now time.Time) bool {
	if m.EndDate == nil {
		return false
	}
	return m.IsActive && !clock.DateOnly(*m.EndDate).Before(clock.DateOnly(now))
}

// DaysRemaining returns the whole days left on the membership, floored
// at zero. Nil when the member has no end date.
func (m *Member) DaysRemaining(now time.Time) *int {
	if m.EndDate == nil {
		return nil
	}
	days := int(clock.DateOnly(*m.EndDate).Sub(clock.DateOnly(now)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// MembershipState is the date-derived part of a member record.
type MembershipState struct {
	Status   Status
	IsActive bool
}

// NextStatus computes the membership state the record should transition
// to given the current date. Expiry wins over everything, a future start
// date deactivates, and only Expired/Inactive members are reactivated;
// a Suspended member with valid dates stays Suspended until manually
// reactivated.
func NextStatus(current MembershipState, start, end *time.Time, now time.Time) MembershipState {
	if end == nil {
		return current
	}

	today := clock.DateOnly(now)

	switch {
	case clock.DateOnly(*end).Before(today):
		return MembershipState{Status: StatusExpired, IsActive: false}
	case start != nil && clock.DateOnly(*start).After(today):
		return MembershipState{Status: StatusInactive, IsActive: false}
	case current.Status == StatusExpired || current.Status == StatusInactive:
		return MembershipState{Status: StatusActive, IsActive: true}
	}

	return current
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	MobileNo  string `json:"mobile_no"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	MobileNo  *string `json:"mobile_no"`
	Notes     *string `json:"notes"`
}

type AssignPlanRequest struct {
	PlanID    int    `json:"plan_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
}

type ExtendRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

type SuspendRequest struct {
	Reason string `json:"reason"`
}

type AuthResponse struct {
	Member       *Member `json:"member"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token,omitempty"`
}

type Profile struct {
	Member        *Member `json:"member"`
	DaysRemaining *int    `json:"membership_days_remaining"`
	IsValid       bool    `json:"is_membership_valid"`
}
