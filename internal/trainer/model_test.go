package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	mondayHours := []WorkingHour{
		{Weekday: "Monday", StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}
	mondayClass := []BusySlot{
		{ClassID: 1, ClassName: "Yoga", StartTime: "10:00", EndTime: "11:00"},
	}

	t.Run("Overlapping class blocks the slot", func(t *testing.T) {
		ok, err := Available(mondayHours, mondayClass, "10:30", "11:30")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Free window inside working hours is available", func(t *testing.T) {
		ok, err := Available(mondayHours, mondayClass, "12:00", "13:00")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Back-to-back with class is available", func(t *testing.T) {
		ok, err := Available(mondayHours, mondayClass, "11:00", "12:00")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Outside working hours", func(t *testing.T) {
		ok, err := Available(mondayHours, nil, "08:00", "09:30")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = Available(mondayHours, nil, "16:30", "17:30")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Inactive working window ignored", func(t *testing.T) {
		inactive := []WorkingHour{
			{Weekday: "Monday", StartTime: "09:00", EndTime: "17:00", IsActive: false},
		}
		ok, err := Available(inactive, nil, "10:00", "11:00")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Degenerate interval rejected", func(t *testing.T) {
		ok, err := Available(mondayHours, nil, "12:00", "12:00")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Bad clock time errors", func(t *testing.T) {
		_, err := Available(mondayHours, nil, "nope", "12:00")
		assert.Error(t, err)
	})
}
