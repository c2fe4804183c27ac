package dashboard

import (
	"gymcore/internal/booking"
	"gymcore/internal/equipment"
	"gymcore/internal/member"
	"gymcore/internal/visit"
)

type MemberStatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// AdminOverview rolls the month's numbers into one payload. Every
// range inside covers the first of the current month through today.
type AdminOverview struct {
	MembersByStatus []MemberStatusCount     `json:"members_by_status"`
	Visits          *visit.Statistics       `json:"visits"`
	Bookings        *booking.Stats          `json:"bookings"`
	Equipment       *equipment.StatusCounts `json:"equipment"`
}

type MemberOverview struct {
	Member           *member.Member               `json:"member"`
	DaysRemaining    *int                         `json:"membership_days_remaining"`
	IsValid          bool                         `json:"is_membership_valid"`
	UpcomingBookings []booking.BookingWithDetails `json:"upcoming_bookings"`
	VisitsThisMonth  int                          `json:"visits_this_month"`
}
