package list_blocked_times

import (
	"net/http"
	"time"

	"github.com/arentz1234-code/jrodstudios/internal/api/handlers"
	"github.com/arentz1234-code/jrodstudios/internal/domain"
)

const (
	msgInvalidFrom = "некорректный формат параметра from, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/blocked-times
// Query params: from (YYYY-MM-DD, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /admin/blocked-times - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &parsed
	}

	result, err := h.service.ListBlockedTimes(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /admin/blocked-times - Failed to list blocks: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/blocked-times - Blocks retrieved successfully: count=%d", len(result.BlockedTimes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
