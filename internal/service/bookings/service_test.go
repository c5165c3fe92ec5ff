package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	bookingRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/booking"
	"github.com/arentz1234-code/jrodstudios/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	listed  []*domain.Booking
	updated map[int64]domain.BookingStatus
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:    make(map[int64]*domain.Booking),
		updated: make(map[int64]domain.BookingStatus),
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.listed, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updated[id] = status
	return nil
}

func (f *fakeBookingRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func seedBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServiceID:       1,
		BookingDate:     time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		StartTime:       600,
		DurationMinutes: 30,
		Customer: domain.Customer{
			Name:  "Jordan Smith",
			Email: "jordan@example.com",
			Phone: "+1 555 0100",
		},
		Status:       status,
		ServiceName:  "Regular Cut",
		ServicePrice: 30,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.byID[1] = seedBooking(1, domain.StatusConfirmed)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"confirmed to completed", domain.StatusConfirmed, "completed", nil},
		{"confirmed to cancelled", domain.StatusConfirmed, "cancelled", nil},
		// Терминальные статусы не меняются
		{"completed to cancelled", domain.StatusCompleted, "cancelled", ErrInvalidTransition},
		{"cancelled to completed", domain.StatusCancelled, "completed", ErrInvalidTransition},
		{"cancelled to confirmed", domain.StatusCancelled, "confirmed", ErrInvalidTransition},
		{"confirmed to confirmed", domain.StatusConfirmed, "confirmed", ErrInvalidTransition},
		{"unknown status", domain.StatusConfirmed, "no_show", ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			repo.byID[1] = seedBooking(1, tt.from)
			svc := NewService(repo, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.updated[1])
		})
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListInvalidFilter(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	badDate := "17.03.2026"
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: &badDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badStatus := "pending"
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.listed = []*domain.Booking{
		seedBooking(1, domain.StatusConfirmed),
		seedBooking(2, domain.StatusCompleted),
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "confirmed", resp.Bookings[0].Status)
	assert.Equal(t, "completed", resp.Bookings[1].Status)
}
