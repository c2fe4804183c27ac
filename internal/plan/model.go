package plan

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPrice    = errors.New("price must be greater than 0")
	ErrInvalidDuration = errors.New("duration must be greater than 0 months")
	ErrInvalidVisitCap = errors.New("specify maximum visits per month or enable unlimited visits")
)

type Plan struct {
	ID                int       `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Type              string    `db:"type" json:"type"`
	DurationMonths    int       `db:"duration_months" json:"duration_months"`
	PriceCents        int64     `db:"price_cents" json:"price_cents"`
	Currency          string    `db:"currency" json:"currency"`
	UnlimitedVisits   bool      `db:"unlimited_visits" json:"unlimited_visits"`
	MaxVisitsPerMonth *int      `db:"max_visits_per_month" json:"max_visits_per_month,omitempty"`
	Description       string    `db:"description" json:"description,omitempty"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Validate enforces the plan invariants: positive price and duration,
// and either unlimited visits or a positive monthly cap.
func (p *Plan) Validate() error {
	if p.PriceCents <= 0 {
		return ErrInvalidPrice
	}
	if p.DurationMonths <= 0 {
		return ErrInvalidDuration
	}
	if !p.UnlimitedVisits && (p.MaxVisitsPerMonth == nil || *p.MaxVisitsPerMonth <= 0) {
		return ErrInvalidVisitCap
	}
	return nil
}

// MonthlyPriceCents spreads the plan price across its duration.
func (p *Plan) MonthlyPriceCents() int64 {
	if p.DurationMonths > 0 {
		return p.PriceCents / int64(p.DurationMonths)
	}
	return p.PriceCents
}

// VisitAllowed reports whether a member on this plan may visit again
// this month.
func (p *Plan) VisitAllowed(visitsThisMonth int) bool {
	if p.UnlimitedVisits {
		return true
	}
	if p.MaxVisitsPerMonth == nil {
		return false
	}
	return visitsThisMonth < *p.MaxVisitsPerMonth
}

// Summary is the comparison row shown on the plans page.
type Summary struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Duration     string `json:"duration"`
	Price        string `json:"price"`
	MonthlyPrice string `json:"monthly_price"`
	Visits       string `json:"visits"`
}

func (p *Plan) Summarize() Summary {
	visits := "Unlimited"
	if !p.UnlimitedVisits && p.MaxVisitsPerMonth != nil {
		visits = fmt.Sprintf("%d per month", *p.MaxVisitsPerMonth)
	}

	return Summary{
		Name:         p.Name,
		Type:         p.Type,
		Duration:     fmt.Sprintf("%d month(s)", p.DurationMonths),
		Price:        fmt.Sprintf("%s %.2f", p.Currency, float64(p.PriceCents)/100),
		MonthlyPrice: fmt.Sprintf("%s %.2f", p.Currency, float64(p.MonthlyPriceCents())/100),
		Visits:       visits,
	}
}

type CreatePlanRequest struct {
	Name              string `json:"name" binding:"required"`
	Type              string `json:"type" binding:"required"`
	DurationMonths    int    `json:"duration_months" binding:"required,min=1"`
	PriceCents        int64  `json:"price_cents" binding:"required,min=1"`
	Currency          string `json:"currency" binding:"required,len=3"`
	UnlimitedVisits   bool   `json:"unlimited_visits"`
	MaxVisitsPerMonth *int   `json:"max_visits_per_month"`
	Description       string `json:"description"`
}
