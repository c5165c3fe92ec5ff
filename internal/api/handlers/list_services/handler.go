package list_services

import (
	"net/http"

	"github.com/arentz1234-code/jrodstudios/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger

	// activeOnly=true для публичной витрины, false для админки
	activeOnly bool
}

func NewHandler(service CatalogService, activeOnly bool, logger Logger) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		activeOnly: activeOnly,
	}
}

// Handle GET /api/v1/services и GET /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.List(r.Context(), h.activeOnly)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(services.Services))
	handlers.RespondJSON(w, http.StatusOK, services)
}
