package equipment

import (
	"errors"
	"time"

	"gymcore/internal/clock"
)

type Status string

const (
	StatusOperational      Status = "Operational"
	StatusUnderMaintenance Status = "Under Maintenance"
	StatusOutOfOrder       Status = "Out of Order"
)

var (
	ErrEquipmentNotFound     = errors.New("equipment not found")
	ErrSerialExists          = errors.New("serial number already exists")
	ErrPurchaseAfterWarranty = errors.New("purchase date cannot be after warranty expiry")
	ErrMaintenanceOutOfOrder = errors.New("last maintenance cannot be after next maintenance")
	ErrInvalidInterval       = errors.New("maintenance interval must be at least 1 day")
)

type Equipment struct {
	ID                      int        `db:"id" json:"id"`
	Name                    string     `db:"name" json:"name"`
	Category                string     `db:"category" json:"category"`
	Brand                   string     `db:"brand" json:"brand,omitempty"`
	Location                string     `db:"location" json:"location,omitempty"`
	SerialNumber            string     `db:"serial_number" json:"serial_number"`
	PurchaseDate            *time.Time `db:"purchase_date" json:"purchase_date,omitempty"`
	WarrantyExpiry          *time.Time `db:"warranty_expiry" json:"warranty_expiry,omitempty"`
	MaintenanceIntervalDays int        `db:"maintenance_interval_days" json:"maintenance_interval_days"`
	LastMaintenance         *time.Time `db:"last_maintenance" json:"last_maintenance,omitempty"`
	NextMaintenance         *time.Time `db:"next_maintenance" json:"next_maintenance,omitempty"`
	Status                  Status     `db:"status" json:"status"`
	Notes                   string     `db:"notes" json:"notes,omitempty"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

func (e *Equipment) Validate() error {
	if e.PurchaseDate != nil && e.WarrantyExpiry != nil && e.PurchaseDate.After(*e.WarrantyExpiry) {
		return ErrPurchaseAfterWarranty
	}
	if e.LastMaintenance != nil && e.NextMaintenance != nil && e.LastMaintenance.After(*e.NextMaintenance) {
		return ErrMaintenanceOutOfOrder
	}
	if e.MaintenanceIntervalDays < 1 {
		return ErrInvalidInterval
	}
	return nil
}

// NextStatus derives the status a piece of equipment should carry on a
// given date. An expired warranty takes it out of order outright; a
// due maintenance date pulls an operational unit into maintenance.
// Anything else keeps its current status.
func NextStatus(current Status, warrantyExpiry, nextMaintenance *time.Time, now time.Time) Status {
	today := clock.DateOnly(now)

	if warrantyExpiry != nil && clock.DateOnly(*warrantyExpiry).Before(today) {
		return StatusOutOfOrder
	}
	if nextMaintenance != nil && !clock.DateOnly(*nextMaintenance).After(today) && current == StatusOperational {
		return StatusUnderMaintenance
	}
	return current
}

type StatusCounts struct {
	Operational      int `db:"operational" json:"operational"`
	UnderMaintenance int `db:"under_maintenance" json:"under_maintenance"`
	OutOfOrder       int `db:"out_of_order" json:"out_of_order"`
	Total            int `db:"total" json:"total"`
}

// ListFilter narrows equipment listings; empty fields match anything.
type ListFilter struct {
	Category string
	Location string
}

type CreateEquipmentRequest struct {
	Name                    string `json:"name" binding:"required"`
	Category                string `json:"category" binding:"required"`
	Brand                   string `json:"brand"`
	Location                string `json:"location"`
	SerialNumber            string `json:"serial_number" binding:"required"`
	PurchaseDate            string `json:"purchase_date"`             // YYYY-MM-DD
	WarrantyExpiry          string `json:"warranty_expiry"`           // YYYY-MM-DD
	MaintenanceIntervalDays int    `json:"maintenance_interval_days" binding:"required,min=1"`
	Notes                   string `json:"notes"`
}
