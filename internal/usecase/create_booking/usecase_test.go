package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	hoursRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/hours"
	serviceRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/service"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	created   *domain.Booking
	activeErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	active := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active, nil
}

type fakeHoursRepo struct {
	rules map[time.Weekday]*domain.DayRule
}

func (f *fakeHoursRepo) GetByWeekday(_ context.Context, weekday time.Weekday) (*domain.DayRule, error) {
	rule, ok := f.rules[weekday]
	if !ok {
		return nil, hoursRepo.ErrRuleNotFound
	}
	return rule, nil
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedTime
}

func (f *fakeBlockedRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.BlockedTime, error) {
	return f.blocks, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные функции

func mustTime(t *testing.T, s string) timeslot.TimeOfDay {
	t.Helper()
	v, err := timeslot.Parse(s)
	require.NoError(t, err)
	return v
}

func timePtr(t *testing.T, s string) *timeslot.TimeOfDay {
	t.Helper()
	v := mustTime(t, s)
	return &v
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	blocked  *fakeBlockedRepo
}

// Вторник 2026-03-17, 09:00-18:00 с обедом 13:00-14:00, услуга 30 минут
func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookings := &fakeBookingRepo{}
	blocked := &fakeBlockedRepo{}
	hours := &fakeHoursRepo{
		rules: map[time.Weekday]*domain.DayRule{
			time.Tuesday: {
				Weekday:    time.Tuesday,
				IsOpen:     true,
				OpenTime:   timePtr(t, "09:00"),
				CloseTime:  timePtr(t, "18:00"),
				BreakStart: timePtr(t, "13:00"),
				BreakEnd:   timePtr(t, "14:00"),
			},
		},
	}
	services := &fakeServiceRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Regular Cut", Price: 30, DurationMinutes: 30, IsActive: true},
			2: {ID: 2, Name: "Old Service", Price: 10, DurationMinutes: 30, IsActive: false},
		},
	}

	uc := NewUseCase(bookings, hours, blocked, services, &fakeTxManager{}, time.UTC, 15, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookings: bookings, blocked: blocked}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "10:00"),
		Customer: domain.Customer{
			Name:  "Jordan Smith",
			Email: "jordan@example.com",
			Phone: "+1 555 0100",
		},
	}
}

func TestExecuteCreatesBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, mustTime(t, "10:00"), resp.StartTime)
	assert.Equal(t, mustTime(t, "10:30"), resp.EndTime)

	// Снапшот услуги зафиксирован на бронировании
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, "Regular Cut", f.bookings.created.ServiceName)
	assert.Equal(t, 30.0, f.bookings.created.ServicePrice)
	assert.Equal(t, 30, f.bookings.created.DurationMinutes)
}

func TestExecuteSlotTaken(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{StartTime: mustTime(t, "10:00"), DurationMinutes: 45, Status: domain.StatusConfirmed},
	}

	req := validRequest(t)
	req.StartTime = mustTime(t, "10:15")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteCancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{StartTime: mustTime(t, "10:00"), DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "10:00"), resp.StartTime)
}

func TestExecuteDuringBreak(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.StartTime = mustTime(t, "13:15")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteOffStepStartTime(t *testing.T) {
	f := newFixture(t)

	// 10:05 не лежит на сетке с шагом 15 минут
	req := validRequest(t)
	req.StartTime = mustTime(t, "10:05")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteClosedDay(t *testing.T) {
	f := newFixture(t)

	// Понедельник не настроен - считается закрытым
	req := validRequest(t)
	req.Date = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecuteAllDayBlock(t *testing.T) {
	f := newFixture(t)
	f.blocked.blocks = []*domain.BlockedTime{{AllDay: true}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecutePastDate(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteServiceNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.ServiceID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteServiceInactive(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.ServiceID = 2

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteRepositoryErrorKeepsCause(t *testing.T) {
	f := newFixture(t)

	// Конфликт сериализации из запроса внутри транзакции должен остаться
	// в цепочке за ErrInternal - менеджер транзакций повторяет по нему попытку
	serErr := &pq.Error{Code: "40001", Message: "could not serialize access"}
	f.bookings.activeErr = fmt.Errorf("storage: execute query: %w", serErr)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, req *Request)
	}{
		{"missing name", func(t *testing.T, req *Request) { req.Customer.Name = "  " }},
		{"missing email", func(t *testing.T, req *Request) { req.Customer.Email = "" }},
		{"bad email", func(t *testing.T, req *Request) { req.Customer.Email = "not-an-email" }},
		{"missing phone", func(t *testing.T, req *Request) { req.Customer.Phone = "" }},
		{"zero service", func(t *testing.T, req *Request) { req.ServiceID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest(t)
			tt.mutate(t, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
