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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (tourist only)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, role, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// GetGuideReviews handles GET /api/reviews/guide/{id} (public)
func (h *ReviewHandler) GetGuideReviews(w http.ResponseWriter, r *http.Request) {
	guideID := chi.URLParam(r, "id")
	if guideID == "" {
		utils.ResponseBadRequest(w, "Guide ID is required", nil)
		return
	}

	reviews, err := h.service.GetGuideReviews(r.Context(), guideID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get guide reviews")
		return
	}

	utils.ResponsePaginated(w, "success", reviews.Data, reviews.Meta)
}

// GetTourReviews handles GET /api/reviews/tour/{id} (public)
func (h *ReviewHandler) GetTourReviews(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	if tourID == "" {
		utils.ResponseBadRequest(w, "Tour ID is required", nil)
		return
	}

	reviews, err := h.service.GetTourReviews(r.Context(), tourID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get tour reviews")
		return
	}

	utils.ResponsePaginated(w, "success", reviews.Data, reviews.Meta)
}

// UpdateReview handles PATCH /api/reviews/{id} (author only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required", nil)
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), reviewID, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/reviews/{id} (author or admin)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required", nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID, userID, role); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
