package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func pendingBooking() *Booking {
	return &Booking{
		MemberID:    1,
		ClassID:     5,
		ClassDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		ClassTime:   "09:00",
		AmountCents: 1500,
		Currency:    "USD",
	}
}

func expectClassLock(mock sqlmock.Sqlmock, capacity int) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT max_capacity FROM classes WHERE id = $1 FOR UPDATE`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"max_capacity"}).AddRow(capacity))
}

func expectConfirmedCount(mock sqlmock.Sqlmock, count int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(5, sqlmock.AnyArg(), "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectDuplicateCheck(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1, 5, sqlmock.AnyArg(), "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestCreateConfirmed(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	t.Run("Inserts when every rule passes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		expectClassLock(mock, 2)
		expectConfirmedCount(mock, 1)
		expectDuplicateCheck(mock, false)
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(1, 5, sqlmock.AnyArg(), "09:00", int64(1500), "USD").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "member_id", "class_id", "class_date", "class_time",
				"status", "amount_cents", "currency", "cancellation_reason", "created_at", "updated_at",
			}).AddRow(42, 1, 5, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "09:00",
				"Confirmed", int64(1500), "USD", "", now, now))
		mock.ExpectCommit()

		created, err := repo.CreateConfirmed(context.Background(), pendingBooking(), now)

		require.NoError(t, err)
		assert.Equal(t, 42, created.ID)
		assert.Equal(t, StatusConfirmed, created.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Full class rejected before insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		// Capacity 2 with two confirmed bookings already in place.
		mock.ExpectBegin()
		expectClassLock(mock, 2)
		expectConfirmedCount(mock, 2)
		mock.ExpectRollback()

		_, err := repo.CreateConfirmed(context.Background(), pendingBooking(), now)

		assert.ErrorIs(t, err, ErrClassFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate booking rejected", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		expectClassLock(mock, 2)
		expectConfirmedCount(mock, 0)
		expectDuplicateCheck(mock, true)
		mock.ExpectRollback()

		_, err := repo.CreateConfirmed(context.Background(), pendingBooking(), now)

		assert.ErrorIs(t, err, ErrDuplicateBooking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Slot starting exactly now accepted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		expectClassLock(mock, 2)
		expectConfirmedCount(mock, 0)
		expectDuplicateCheck(mock, false)
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(1, 5, sqlmock.AnyArg(), "09:00", int64(1500), "USD").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "member_id", "class_id", "class_date", "class_time",
				"status", "amount_cents", "currency", "cancellation_reason", "created_at", "updated_at",
			}).AddRow(43, 1, 5, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "09:00",
				"Confirmed", int64(1500), "USD", "", now, now))
		mock.ExpectCommit()

		// "Now" is the slot's start down to the second.
		atStart := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
		created, err := repo.CreateConfirmed(context.Background(), pendingBooking(), atStart)

		require.NoError(t, err)
		assert.Equal(t, 43, created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Past slot rejected", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		expectClassLock(mock, 2)
		expectConfirmedCount(mock, 0)
		expectDuplicateCheck(mock, false)
		mock.ExpectRollback()

		// The class started an hour before "now".
		late := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
		_, err := repo.CreateConfirmed(context.Background(), pendingBooking(), late)

		assert.ErrorIs(t, err, ErrPastBooking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelGuardsStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE bookings`).
		WithArgs(42, "sick").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 42, "sick")

	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteUpdatesConfirmedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE bookings`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Complete(context.Background(), 42)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsComputesAttendanceRate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total`).
		WithArgs(nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"total", "confirmed", "cancelled", "completed", "no_show"}).
			AddRow(10, 2, 2, 4, 2))

	stats, err := repo.Stats(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.InDelta(t, 66.67, stats.AttendanceRate, 0.01)
	assert.NoError(t, mock.ExpectationsWereMet())
}
