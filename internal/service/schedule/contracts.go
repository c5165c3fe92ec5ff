package schedule

import (
	"context"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
)

// HoursRepository интерфейс репозитория расписания работы
type HoursRepository interface {
	GetAll(ctx context.Context) ([]*domain.DayRule, error)
	GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.DayRule, error)
	Upsert(ctx context.Context, rule domain.DayRuleUpdate) (*domain.DayRule, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	Create(ctx context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error)
	List(ctx context.Context, from *time.Time) ([]*domain.BlockedTime, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
