package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymcore/internal/auth"
	"gymcore/internal/clock"
	"gymcore/internal/plan"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStartAfterEnd      = errors.New("membership start date cannot be after end date")
	ErrNoEndDate          = errors.New("no membership end date found")
	ErrCannotReactivate   = errors.New("cannot reactivate expired membership")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	GetProfile(ctx context.Context, memberID int) (*Profile, error)
	UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error)
	AssignPlan(ctx context.Context, memberID, planID int, startDate time.Time) (*Member, error)
	ExtendMembership(ctx context.Context, memberID, days int) (*Member, error)
	Suspend(ctx context.Context, memberID int, reason string) (*Member, error)
	Reactivate(ctx context.Context, memberID int) (*Member, error)
	Deactivate(ctx context.Context, memberID int) error
}

type service struct {
	repo      Repository
	planRepo  plan.Repository
	clk       clock.Clock
	jwtSecret string
}

func NewService(repo Repository, planRepo plan.Repository, clk clock.Clock, jwtSecret string) Service {
	return &service{
		repo:      repo,
		planRepo:  planRepo,
		clk:       clk,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.Create(ctx, req.FirstName, req.LastName, req.Email, passwordHash, auth.RoleMember, req.MobileNo)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.Email, m.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Member: m, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	m, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.Email, m.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Member: m, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateAccessToken(m.ID, m.Email, m.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Member: m, AccessToken: accessToken}, nil
}

func (s *service) GetProfile(ctx context.Context, memberID int) (*Profile, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	return &Profile{
		Member:        m,
		DaysRemaining: m.DaysRemaining(now),
		IsValid:       m.IsValid(now),
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.MobileNo != nil {
		m.MobileNo = *req.MobileNo
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := s.repo.UpdateProfile(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) AssignPlan(ctx context.Context, memberID, planID int, startDate time.Time) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	p, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	start := clock.DateOnly(startDate)
	end := start.AddDate(0, p.DurationMonths, 0)

	m.PlanID = &p.ID
	m.StartDate = &start
	m.EndDate = &end

	return s.persistWithStatusRule(ctx, m)
}

func (s *service) ExtendMembership(ctx context.Context, memberID, days int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if m.EndDate == nil {
		return nil, ErrNoEndDate
	}

	// days may be negative (corrections); the window must stay ordered.
	extended := m.EndDate.AddDate(0, 0, days)
	if m.StartDate != nil && clock.DateOnly(*m.StartDate).After(extended) {
		return nil, ErrStartAfterEnd
	}
	m.EndDate = &extended

	return s.persistWithStatusRule(ctx, m)
}

func (s *service) Suspend(ctx context.Context, memberID int, reason string) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	m.Status = StatusSuspended
	m.IsActive = false
	if reason != "" {
		m.Notes = m.Notes + fmt.Sprintf("\nSuspended: %s", reason)
	}

	if err := s.repo.UpdateMembership(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Reactivate(ctx context.Context, memberID int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	if m.EndDate == nil || clock.DateOnly(*m.EndDate).Before(today) {
		return nil, ErrCannotReactivate
	}

	m.Status = StatusActive
	m.IsActive = true

	if err := s.repo.UpdateMembership(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Deactivate(ctx context.Context, memberID int) error {
	return s.repo.Deactivate(ctx, memberID)
}

// persistWithStatusRule applies the date-derived status transition and
// then writes the record. Deciding and persisting stay separate steps.
func (s *service) persistWithStatusRule(ctx context.Context, m *Member) (*Member, error) {
	next := NextStatus(MembershipState{Status: m.Status, IsActive: m.IsActive}, m.StartDate, m.EndDate, s.clk.Now())
	m.Status = next.Status
	m.IsActive = next.IsActive

	if err := s.repo.UpdateMembership(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
