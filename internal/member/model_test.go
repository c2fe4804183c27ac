package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestIsValid(t *testing.T) {
	now := date(2024, 1, 15)

	t.Run("Active member within window", func(t *testing.T) {
		m := Member{IsActive: true, EndDate: datePtr(2024, 2, 1)}
		assert.True(t, m.IsValid(now))
	})

	t.Run("End date today still valid", func(t *testing.T) {
		m := Member{IsActive: true, EndDate: datePtr(2024, 1, 15)}
		assert.True(t, m.IsValid(now))
	})

	t.Run("Past end date invalid", func(t *testing.T) {
		m := Member{IsActive: true, EndDate: datePtr(2024, 1, 14)}
		assert.False(t, m.IsValid(now))
	})

	t.Run("Inactive flag invalid regardless of dates", func(t *testing.T) {
		m := Member{IsActive: false, EndDate: datePtr(2024, 6, 1)}
		assert.False(t, m.IsValid(now))
	})

	t.Run("No end date invalid", func(t *testing.T) {
		m := Member{IsActive: true}
		assert.False(t, m.IsValid(now))
	})
}

func TestDaysRemaining(t *testing.T) {
	now := date(2024, 1, 15)

	t.Run("Seventeen days left", func(t *testing.T) {
		m := Member{IsActive: true, EndDate: datePtr(2024, 2, 1)}
		days := m.DaysRemaining(now)
		require.NotNil(t, days)
		assert.Equal(t, 17, *days)
	})

	t.Run("Expired floors at zero", func(t *testing.T) {
		m := Member{EndDate: datePtr(2024, 1, 1)}
		days := m.DaysRemaining(now)
		require.NotNil(t, days)
		assert.Equal(t, 0, *days)
	})

	t.Run("No end date returns nil", func(t *testing.T) {
		m := Member{}
		assert.Nil(t, m.DaysRemaining(now))
	})
}

func TestNextStatus(t *testing.T) {
	now := date(2024, 1, 15)

	t.Run("Past end date expires and deactivates", func(t *testing.T) {
		next := NextStatus(
			MembershipState{Status: StatusActive, IsActive: true},
			datePtr(2023, 12, 1), datePtr(2024, 1, 1), now)
		assert.Equal(t, MembershipState{Status: StatusExpired, IsActive: false}, next)
	})

	t.Run("Future start date deactivates", func(t *testing.T) {
		next := NextStatus(
			MembershipState{Status: StatusActive, IsActive: true},
			datePtr(2024, 2, 1), datePtr(2024, 8, 1), now)
		assert.Equal(t, MembershipState{Status: StatusInactive, IsActive: false}, next)
	})

	t.Run("Expired member with extended dates reactivates", func(t *testing.T) {
		next := NextStatus(
			MembershipState{Status: StatusExpired, IsActive: false},
			datePtr(2023, 12, 1), datePtr(2024, 3, 1), now)
		assert.Equal(t, MembershipState{Status: StatusActive, IsActive: true}, next)
	})

	t.Run("Suspension survives valid dates", func(t *testing.T) {
		current := MembershipState{Status: StatusSuspended, IsActive: false}
		next := NextStatus(current, datePtr(2023, 12, 1), datePtr(2024, 3, 1), now)
		assert.Equal(t, current, next)
	})

	t.Run("Suspension does not survive expiry", func(t *testing.T) {
		next := NextStatus(
			MembershipState{Status: StatusSuspended, IsActive: false},
			datePtr(2023, 6, 1), datePtr(2024, 1, 1), now)
		assert.Equal(t, StatusExpired, next.Status)
	})

	t.Run("No end date leaves state alone", func(t *testing.T) {
		current := MembershipState{Status: StatusActive, IsActive: true}
		next := NextStatus(current, nil, nil, now)
		assert.Equal(t, current, next)
	})
}
