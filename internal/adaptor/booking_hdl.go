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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (tourist only)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, role, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id} (participant or admin)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID, userID, role)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookings handles GET /api/bookings (role-scoped listing)
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.GetBookings(r.Context(), userID, role, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings")
		return
	}

	utils.ResponsePaginated(w, "success", bookings.Data, bookings.Meta)
}

// GetPendingBookings handles GET /api/bookings/pending (guide only)
func (h *BookingHandler) GetPendingBookings(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.GetPendingBookings(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get pending bookings")
		return
	}

	utils.ResponsePaginated(w, "success", bookings.Data, bookings.Meta)
}

// GetConfirmedCompleteBookings handles GET /api/bookings/confirmed-complete (guide only)
func (h *BookingHandler) GetConfirmedCompleteBookings(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.GetConfirmedCompleteBookings(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get confirmed-complete bookings")
		return
	}

	utils.ResponsePaginated(w, "success", bookings.Data, bookings.Meta)
}

// GetBookingsNeedingPayment handles GET /api/bookings/need-payment (tourist only)
func (h *BookingHandler) GetBookingsNeedingPayment(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.GetBookingsNeedingPayment(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings needing payment")
		return
	}

	utils.ResponsePaginated(w, "success", bookings.Data, bookings.Meta)
}

// UpdateBookingStatus handles PATCH /api/bookings/{id} (participant only)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), bookingID, userID, role, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// requireUser pulls the authenticated identity out of the request context.
func requireUser(w http.ResponseWriter, r *http.Request) (userID, role string, ok bool) {
	id, idOK := utils.GetUserIDFromContext(r.Context())
	roleValue, roleOK := utils.GetRoleFromContext(r.Context())
	if !idOK || !roleOK {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", "", false
	}
	return id.String(), roleValue, true
}
