package adaptor

import (
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Tour      *TourHandler
	Booking   *BookingHandler
	Payment   *PaymentHandler
	Review    *ReviewHandler
	Dashboard *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Tour:      NewTourHandler(service.Tour, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Payment:   NewPaymentHandler(service.Payment, log),
		Review:    NewReviewHandler(service.Review, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
	}
}

// handleServiceError writes the typed service error onto the envelope; anything
// untyped becomes a 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	if appErr, ok := utils.AsAppError(err); ok {
		log.Warn(operation+" rejected",
			zap.String("kind", string(appErr.Kind)),
			zap.String("operation", operation),
			zap.Error(err),
		)
		utils.ResponseAppError(w, appErr)
		return
	}

	log.Error(operation+" failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	utils.ResponseInternalError(w, "Internal server error")
}

// paginationFromQuery reads page/limit query params with sane defaults.
func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 10),
	}
}
