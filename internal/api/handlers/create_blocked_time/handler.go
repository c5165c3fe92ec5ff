package create_blocked_time

import (
	"errors"
	"net/http"

	"github.com/arentz1234-code/jrodstudios/internal/api/handlers"
	"github.com/arentz1234-code/jrodstudios/internal/service/schedule"
	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlock       = "некорректные параметры блокировки"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocked-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockedTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlockedTime(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-times - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /admin/blocked-times - Failed to create block: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-times - Block created successfully: block_id=%d, date=%s",
		result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
