package equipment

import (
	"context"
	"time"

	"gymcore/internal/clock"
)

type Service interface {
	Create(ctx context.Context, req CreateEquipmentRequest) (*Equipment, error)
	Get(ctx context.Context, id int) (*Equipment, error)
	List(ctx context.Context, filter ListFilter) ([]Equipment, error)
	MaintenanceDue(ctx context.Context) ([]Equipment, error)
	RefreshStatus(ctx context.Context, id int) (*Equipment, error)
	CompleteMaintenance(ctx context.Context, id int) (*Equipment, error)
	StatusCounts(ctx context.Context) (*StatusCounts, error)
}

type service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{repo: repo, clk: clk}
}

func (s *service) Create(ctx context.Context, req CreateEquipmentRequest) (*Equipment, error) {
	e := &Equipment{
		Name:                    req.Name,
		Category:                req.Category,
		Brand:                   req.Brand,
		Location:                req.Location,
		SerialNumber:            req.SerialNumber,
		MaintenanceIntervalDays: req.MaintenanceIntervalDays,
		Status:                  StatusOperational,
		Notes:                   req.Notes,
	}

	if req.PurchaseDate != "" {
		purchased, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		e.PurchaseDate = &purchased
	}
	if req.WarrantyExpiry != "" {
		expiry, err := time.Parse("2006-01-02", req.WarrantyExpiry)
		if err != nil {
			return nil, err
		}
		e.WarrantyExpiry = &expiry
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	// First maintenance is one interval out from today.
	next := clock.Today(s.clk).AddDate(0, 0, e.MaintenanceIntervalDays)
	e.NextMaintenance = &next
	e.Status = NextStatus(e.Status, e.WarrantyExpiry, e.NextMaintenance, s.clk.Now())

	return s.repo.Create(ctx, e)
}

func (s *service) Get(ctx context.Context, id int) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Equipment, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MaintenanceDue(ctx context.Context) ([]Equipment, error) {
	return s.repo.ListMaintenanceDue(ctx, clock.Today(s.clk))
}

// RefreshStatus re-derives the status from today's date and persists
// it when it changed.
func (s *service) RefreshStatus(ctx context.Context, id int) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := NextStatus(e.Status, e.WarrantyExpiry, e.NextMaintenance, s.clk.Now())
	if next == e.Status {
		return e, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	e.Status = next

	return e, nil
}

// CompleteMaintenance records today's service and schedules the next
// one an interval out. The unit returns to Operational.
func (s *service) CompleteMaintenance(ctx context.Context, id int) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	next := today.AddDate(0, 0, e.MaintenanceIntervalDays)

	return s.repo.CompleteMaintenance(ctx, id, today, next)
}

func (s *service) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	return s.repo.StatusCounts(ctx)
}
