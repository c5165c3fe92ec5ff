package get_business_hours

import (
	"context"

	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBusinessHours(ctx context.Context) (*models.BusinessHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
