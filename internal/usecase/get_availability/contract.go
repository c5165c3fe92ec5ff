package get_availability

import (
	"context"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByDate получает все активные бронирования на дату
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// HoursRepository интерфейс репозитория расписания работы
type HoursRepository interface {
	GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.DayRule, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedTime, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
