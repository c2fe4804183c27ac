package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	instant := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	c := Fixed{T: instant}

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestParseClockTime(t *testing.T) {
	m, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClockTime("17:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1020, m)

	_, err = ParseClockTime("25:99")
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	date := time.Date(2024, 3, 4, 13, 45, 12, 0, time.UTC)

	got, err := At(date, "10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), got)

	_, err = At(date, "bogus")
	assert.Error(t, err)
}
