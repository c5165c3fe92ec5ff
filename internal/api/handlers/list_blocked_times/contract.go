package list_blocked_times

import (
	"context"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedTimes(ctx context.Context, from *time.Time) (*models.BlockedTimeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
