package visit

import (
	"errors"
	"time"
)

var (
	ErrInvalidMembership = errors.New("membership is not valid")
	ErrAlreadyCheckedIn  = errors.New("member already has an open session today")
	ErrNoActiveSession   = errors.New("no open session to check out from")
	ErrInvalidTimeOrder  = errors.New("check-out must be after check-in")
	ErrVisitNotFound     = errors.New("visit not found")
)

// DefaultVisitType is used when a check-in does not say what the
// member came for.
const DefaultVisitType = "Gym Floor"

type Visit struct {
	ID              int        `db:"id" json:"id"`
	MemberID        int        `db:"member_id" json:"member_id"`
	VisitDate       time.Time  `db:"visit_date" json:"visit_date"`
	CheckIn         time.Time  `db:"check_in" json:"check_in"`
	CheckOut        *time.Time `db:"check_out" json:"check_out,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	VisitType       string     `db:"visit_type" json:"visit_type"`
	TrainerID       *int       `db:"trainer_id" json:"trainer_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

type CheckInRequest struct {
	VisitType string `json:"visit_type"`
	TrainerID *int   `json:"trainer_id"`
}

type VisitWithMember struct {
	Visit
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

type Statistics struct {
	TotalVisits        int     `db:"total_visits" json:"total_visits"`
	UniqueMembers      int     `db:"unique_members" json:"unique_members"`
	AvgDurationMinutes float64 `db:"avg_duration_minutes" json:"avg_duration_minutes"`
	OpenSessions       int     `db:"open_sessions" json:"open_sessions"`
}
