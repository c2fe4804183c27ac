package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassValidate(t *testing.T) {
	valid := func() *Class {
		return &Class{
			Name:        "Morning Yoga",
			MaxCapacity: 15,
			Schedule: []ScheduleEntry{
				{Weekday: "Monday", StartTime: "09:00", EndTime: "10:00"},
				{Weekday: "Wednesday", StartTime: "09:00", EndTime: "10:00"},
			},
		}
	}

	t.Run("Valid class passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Zero capacity rejected", func(t *testing.T) {
		c := valid()
		c.MaxCapacity = 0
		assert.ErrorIs(t, c.Validate(), ErrInvalidCapacity)
	})

	t.Run("Negative capacity rejected", func(t *testing.T) {
		c := valid()
		c.MaxCapacity = -3
		assert.ErrorIs(t, c.Validate(), ErrInvalidCapacity)
	})

	t.Run("Empty schedule rejected", func(t *testing.T) {
		c := valid()
		c.Schedule = nil
		assert.ErrorIs(t, c.Validate(), ErrEmptySchedule)
	})

	t.Run("Entry with start after end rejected", func(t *testing.T) {
		c := valid()
		c.Schedule[1] = ScheduleEntry{Weekday: "Wednesday", StartTime: "10:00", EndTime: "09:00"}
		assert.Error(t, c.Validate())
	})

	t.Run("Entry with equal start and end rejected", func(t *testing.T) {
		c := valid()
		c.Schedule[0] = ScheduleEntry{Weekday: "Monday", StartTime: "09:00", EndTime: "09:00"}
		assert.Error(t, c.Validate())
	})

	t.Run("Unparseable time rejected", func(t *testing.T) {
		c := valid()
		c.Schedule[0].StartTime = "morning"
		assert.Error(t, c.Validate())
	})
}
