package visit

import (
	"context"
	"os"
	"testing"
	"time"

	"gymcore/internal/clock"
	"gymcore/internal/logger"
	"gymcore/internal/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()

	os.Exit(m.Run())
}

type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) CreateOpen(ctx context.Context, memberID int, checkIn time.Time, visitType string, trainerID *int) (*Visit, error) {
	args := m.Called(ctx, memberID, checkIn, visitType, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Visit), args.Error(1)
}

func (m *MockVisitRepo) GetOpen(ctx context.Context, memberID int, date time.Time) (*Visit, error) {
	args := m.Called(ctx, memberID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Visit), args.Error(1)
}

func (m *MockVisitRepo) Close(ctx context.Context, visitID int, checkOut time.Time, durationMinutes int) (*Visit, error) {
	args := m.Called(ctx, visitID, checkOut, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Visit), args.Error(1)
}

func (m *MockVisitRepo) History(ctx context.Context, memberID, limit, offset int) ([]Visit, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Visit), args.Error(1)
}

func (m *MockVisitRepo) ListByDate(ctx context.Context, date time.Time) ([]VisitWithMember, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]VisitWithMember), args.Error(1)
}

func (m *MockVisitRepo) Stats(ctx context.Context, from, to time.Time) (*Statistics, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Statistics), args.Error(1)
}

type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, firstName, lastName, email, passwordHash, role, mobileNo string) (*member.Member, error) {
	args := m.Called(ctx, firstName, lastName, email, passwordHash, role, mobileNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByID(ctx context.Context, id int) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByEmail(ctx context.Context, email string) (*member.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepo) UpdateProfile(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepo) UpdateMembership(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepo) RecordVisit(ctx context.Context, memberID int, at time.Time) error {
	args := m.Called(ctx, memberID, at)
	return args.Error(0)
}

func (m *MockMemberRepo) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validMember(now time.Time) *member.Member {
	end := now.AddDate(0, 1, 0)
	return &member.Member{ID: 1, Status: member.StatusActive, IsActive: true, EndDate: &end}
}

func TestCheckIn(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Valid member opens a session", func(t *testing.T) {
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		members.On("GetByID", mock.Anything, 1).Return(validMember(now), nil)
		repo.On("GetOpen", mock.Anything, 1, now).Return(nil, nil)
		repo.On("CreateOpen", mock.Anything, 1, now, DefaultVisitType, (*int)(nil)).
			Return(&Visit{ID: 9, MemberID: 1, VisitDate: today, CheckIn: now, VisitType: DefaultVisitType}, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		v, err := svc.CheckIn(context.Background(), 1, "", nil)

		require.NoError(t, err)
		assert.Equal(t, 9, v.ID)
		assert.Equal(t, DefaultVisitType, v.VisitType)
		assert.Nil(t, v.CheckOut)
	})

	t.Run("Personal training visit keeps its trainer", func(t *testing.T) {
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		trainerID := 7
		members.On("GetByID", mock.Anything, 1).Return(validMember(now), nil)
		repo.On("GetOpen", mock.Anything, 1, now).Return(nil, nil)
		repo.On("CreateOpen", mock.Anything, 1, now, "Personal Training", &trainerID).
			Return(&Visit{ID: 10, MemberID: 1, VisitDate: today, CheckIn: now, VisitType: "Personal Training", TrainerID: &trainerID}, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		v, err := svc.CheckIn(context.Background(), 1, "Personal Training", &trainerID)

		require.NoError(t, err)
		require.NotNil(t, v.TrainerID)
		assert.Equal(t, 7, *v.TrainerID)
	})

	t.Run("Expired membership rejected", func(t *testing.T) {
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		expired := validMember(now)
		past := now.AddDate(0, 0, -1)
		expired.EndDate = &past
		members.On("GetByID", mock.Anything, 1).Return(expired, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		_, err := svc.CheckIn(context.Background(), 1, "", nil)

		assert.ErrorIs(t, err, ErrInvalidMembership)
		repo.AssertNotCalled(t, "CreateOpen")
	})

	t.Run("Open session blocks a second check-in", func(t *testing.T) {
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		members.On("GetByID", mock.Anything, 1).Return(validMember(now), nil)
		repo.On("GetOpen", mock.Anything, 1, now).
			Return(&Visit{ID: 9, MemberID: 1, CheckIn: now.Add(-time.Hour)}, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		_, err := svc.CheckIn(context.Background(), 1, "", nil)

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		repo.AssertNotCalled(t, "CreateOpen")
	})
}

func TestCheckOut(t *testing.T) {
	checkIn := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Ninety minute session recorded", func(t *testing.T) {
		now := checkIn.Add(90 * time.Minute)
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		repo.On("GetOpen", mock.Anything, 1, now).
			Return(&Visit{ID: 9, MemberID: 1, CheckIn: checkIn}, nil)
		duration := 90
		repo.On("Close", mock.Anything, 9, now, 90).
			Return(&Visit{ID: 9, MemberID: 1, CheckIn: checkIn, CheckOut: &now, DurationMinutes: &duration}, nil)
		members.On("RecordVisit", mock.Anything, 1, now).Return(nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		v, err := svc.CheckOut(context.Background(), 1)

		require.NoError(t, err)
		require.NotNil(t, v.DurationMinutes)
		assert.Equal(t, 90, *v.DurationMinutes)
		members.AssertExpectations(t)
	})

	t.Run("Partial minutes truncated", func(t *testing.T) {
		now := checkIn.Add(45*time.Minute + 59*time.Second)
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		repo.On("GetOpen", mock.Anything, 1, now).
			Return(&Visit{ID: 9, MemberID: 1, CheckIn: checkIn}, nil)
		duration := 45
		repo.On("Close", mock.Anything, 9, now, 45).
			Return(&Visit{ID: 9, DurationMinutes: &duration}, nil)
		members.On("RecordVisit", mock.Anything, 1, now).Return(nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		v, err := svc.CheckOut(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 45, *v.DurationMinutes)
	})

	t.Run("Sub-minute session rejected", func(t *testing.T) {
		now := checkIn.Add(30 * time.Second)
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		repo.On("GetOpen", mock.Anything, 1, now).
			Return(&Visit{ID: 9, MemberID: 1, CheckIn: checkIn}, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		_, err := svc.CheckOut(context.Background(), 1)

		assert.ErrorIs(t, err, ErrInvalidTimeOrder)
		repo.AssertNotCalled(t, "Close")
		members.AssertNotCalled(t, "RecordVisit")
	})

	t.Run("No open session", func(t *testing.T) {
		now := checkIn.Add(time.Hour)
		repo := new(MockVisitRepo)
		members := new(MockMemberRepo)
		repo.On("GetOpen", mock.Anything, 1, now).Return(nil, nil)

		svc := NewService(repo, members, clock.Fixed{T: now})
		_, err := svc.CheckOut(context.Background(), 1)

		assert.ErrorIs(t, err, ErrNoActiveSession)
	})
}

func TestMonthStatisticsRange(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := new(MockVisitRepo)
	members := new(MockMemberRepo)
	repo.On("Stats", mock.Anything, monthStart, today).
		Return(&Statistics{TotalVisits: 120, UniqueMembers: 40, AvgDurationMinutes: 62.5}, nil)

	svc := NewService(repo, members, clock.Fixed{T: now})
	stats, err := svc.MonthStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalVisits)
	repo.AssertExpectations(t)
}
