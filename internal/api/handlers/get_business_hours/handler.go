package get_business_hours

import (
	"net/http"

	"github.com/arentz1234-code/jrodstudios/internal/api/handlers"
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

// Handle GET /api/v1/admin/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/business-hours - Failed to get schedule: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/business-hours - Schedule retrieved successfully: rules_count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
