package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	base := Plan{
		Name:            "Basic Monthly",
		Type:            "Basic",
		DurationMonths:  1,
		PriceCents:      2999,
		Currency:        "USD",
		UnlimitedVisits: true,
	}

	t.Run("Valid unlimited plan", func(t *testing.T) {
		p := base
		assert.NoError(t, p.Validate())
	})

	t.Run("Non-positive price rejected", func(t *testing.T) {
		p := base
		p.PriceCents = 0
		assert.Equal(t, ErrInvalidPrice, p.Validate())
	})

	t.Run("Non-positive duration rejected", func(t *testing.T) {
		p := base
		p.DurationMonths = 0
		assert.Equal(t, ErrInvalidDuration, p.Validate())
	})

	t.Run("Capped plan requires positive cap", func(t *testing.T) {
		p := base
		p.UnlimitedVisits = false
		p.MaxVisitsPerMonth = nil
		assert.Equal(t, ErrInvalidVisitCap, p.Validate())

		p.MaxVisitsPerMonth = intPtr(0)
		assert.Equal(t, ErrInvalidVisitCap, p.Validate())

		p.MaxVisitsPerMonth = intPtr(12)
		assert.NoError(t, p.Validate())
	})
}

func TestMonthlyPriceCents(t *testing.T) {
	p := Plan{PriceCents: 29997, DurationMonths: 3}
	assert.Equal(t, int64(9999), p.MonthlyPriceCents())
}

func TestVisitAllowed(t *testing.T) {
	unlimited := Plan{UnlimitedVisits: true}
	assert.True(t, unlimited.VisitAllowed(1000))

	capped := Plan{MaxVisitsPerMonth: intPtr(8)}
	assert.True(t, capped.VisitAllowed(7))
	assert.False(t, capped.VisitAllowed(8))

	broken := Plan{}
	assert.False(t, broken.VisitAllowed(0))
}

func TestSummarize(t *testing.T) {
	p := Plan{
		Name:              "Premium",
		Type:              "Premium",
		DurationMonths:    1,
		PriceCents:        4999,
		Currency:          "USD",
		MaxVisitsPerMonth: intPtr(20),
	}

	s := p.Summarize()
	assert.Equal(t, "USD 49.99", s.Price)
	assert.Equal(t, "20 per month", s.Visits)
	assert.Equal(t, "1 month(s)", s.Duration)
}
