package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestGetActiveByDateKeepsDriverError(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Ошибка драйвера (в т.ч. конфликт сериализации 40001 внутри транзакции)
	// должна оставаться в цепочке за ErrExecQuery
	serErr := &pq.Error{Code: "40001", Message: "could not serialize access"}
	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnError(serErr)

	_, err := repo.GetActiveByDate(context.Background(), time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeepsDriverError(t *testing.T) {
	repo, mock := newMockRepo(t)

	serErr := &pq.Error{Code: "40001", Message: "could not serialize access"}
	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(serErr)

	booking := &domain.Booking{
		ServiceID:       1,
		BookingDate:     time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		StartTime:       600,
		DurationMinutes: 30,
		Customer: domain.Customer{
			Name:  "Jordan Smith",
			Email: "jordan@example.com",
			Phone: "+1 555 0100",
		},
		Status:       domain.StatusConfirmed,
		ServiceName:  "Regular Cut",
		ServicePrice: 30,
	}

	_, err := repo.Create(context.Background(), booking)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
