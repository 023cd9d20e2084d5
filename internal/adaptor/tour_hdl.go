package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// CreateTour handles POST /api/tours (guide only)
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.CreateTour(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create tour")
		return
	}

	utils.ResponseCreated(w, "success", tour)
}

// GetTour handles GET /api/tours/{id} (public)
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	tour, err := h.service.GetTour(r.Context(), tourID)
	if err != nil {
		handleServiceError(h.log, w, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}

// GetTours handles GET /api/tours (public)
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.service.GetTours(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get tours")
		return
	}

	utils.ResponsePaginated(w, "success", tours.Data, tours.Meta)
}

// GetMyTours handles GET /api/tours/mine (guide only)
func (h *TourHandler) GetMyTours(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tours, err := h.service.GetMyTours(r.Context(), userID.String(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get my tours")
		return
	}

	utils.ResponsePaginated(w, "success", tours.Data, tours.Meta)
}

// UpdateTour handles PATCH /api/tours/{id} (owning guide only)
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	var req request.UpdateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.UpdateTour(r.Context(), tourID, userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}

// DeleteTour handles DELETE /api/tours/{id} (owning guide only)
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	if err := h.service.DeleteTour(r.Context(), tourID, userID.String()); err != nil {
		handleServiceError(h.log, w, err, "delete tour")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
