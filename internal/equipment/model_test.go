package equipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNextStatus(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	t.Run("Expired warranty forces out of order", func(t *testing.T) {
		got := NextStatus(StatusOperational, datePtr(2024, 1, 14), nil, now)
		assert.Equal(t, StatusOutOfOrder, got)
	})

	t.Run("Warranty expiry wins over maintenance", func(t *testing.T) {
		got := NextStatus(StatusUnderMaintenance, datePtr(2023, 12, 1), datePtr(2024, 1, 10), now)
		assert.Equal(t, StatusOutOfOrder, got)
	})

	t.Run("Warranty expiring today still valid", func(t *testing.T) {
		got := NextStatus(StatusOperational, datePtr(2024, 1, 15), nil, now)
		assert.Equal(t, StatusOperational, got)
	})

	t.Run("Due maintenance pulls operational unit in", func(t *testing.T) {
		got := NextStatus(StatusOperational, datePtr(2025, 1, 1), datePtr(2024, 1, 15), now)
		assert.Equal(t, StatusUnderMaintenance, got)
	})

	t.Run("Due maintenance leaves out of order unit alone", func(t *testing.T) {
		got := NextStatus(StatusOutOfOrder, nil, datePtr(2024, 1, 10), now)
		assert.Equal(t, StatusOutOfOrder, got)
	})

	t.Run("Future maintenance keeps current status", func(t *testing.T) {
		got := NextStatus(StatusOperational, datePtr(2025, 1, 1), datePtr(2024, 2, 1), now)
		assert.Equal(t, StatusOperational, got)
	})

	t.Run("No dates keeps current status", func(t *testing.T) {
		got := NextStatus(StatusUnderMaintenance, nil, nil, now)
		assert.Equal(t, StatusUnderMaintenance, got)
	})
}

func TestEquipmentValidate(t *testing.T) {
	t.Run("Purchase after warranty rejected", func(t *testing.T) {
		e := &Equipment{
			PurchaseDate:            datePtr(2024, 6, 1),
			WarrantyExpiry:          datePtr(2024, 1, 1),
			MaintenanceIntervalDays: 30,
		}
		assert.ErrorIs(t, e.Validate(), ErrPurchaseAfterWarranty)
	})

	t.Run("Last maintenance after next rejected", func(t *testing.T) {
		e := &Equipment{
			LastMaintenance:         datePtr(2024, 3, 1),
			NextMaintenance:         datePtr(2024, 2, 1),
			MaintenanceIntervalDays: 30,
		}
		assert.ErrorIs(t, e.Validate(), ErrMaintenanceOutOfOrder)
	})

	t.Run("Zero interval rejected", func(t *testing.T) {
		e := &Equipment{MaintenanceIntervalDays: 0}
		assert.ErrorIs(t, e.Validate(), ErrInvalidInterval)
	})

	t.Run("Valid equipment passes", func(t *testing.T) {
		e := &Equipment{
			PurchaseDate:            datePtr(2023, 1, 1),
			WarrantyExpiry:          datePtr(2025, 1, 1),
			MaintenanceIntervalDays: 90,
		}
		assert.NoError(t, e.Validate())
	})
}
