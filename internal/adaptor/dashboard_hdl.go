package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// GetAdminSummary handles GET /api/dashboard/admin (admin only)
func (h *DashboardHandler) GetAdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetAdminSummary(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get admin summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetGuideSummary handles GET /api/dashboard/guide (guide only)
func (h *DashboardHandler) GetGuideSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	summary, err := h.service.GetGuideSummary(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get guide summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetTouristSummary handles GET /api/dashboard/tourist (tourist only)
func (h *DashboardHandler) GetTouristSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	summary, err := h.service.GetTouristSummary(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get tourist summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}
