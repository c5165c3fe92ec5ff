package update_business_hours

import (
	"context"

	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateBusinessHours(ctx context.Context, req *models.UpdateBusinessHoursRequest) (*models.BusinessHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
