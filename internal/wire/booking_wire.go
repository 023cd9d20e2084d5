package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking configures the booking lifecycle routes. Everything here needs an
// authenticated user; specific routes narrow the role further.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
			Post("/", bookingHandler.CreateBooking)
		r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
			Get("/need-payment", bookingHandler.GetBookingsNeedingPayment)

		r.With(middleware.RequireRoles(log, string(entity.RoleGuide))).
			Get("/pending", bookingHandler.GetPendingBookings)
		r.With(middleware.RequireRoles(log, string(entity.RoleGuide))).
			Get("/confirmed-complete", bookingHandler.GetConfirmedCompleteBookings)

		r.Get("/", bookingHandler.GetBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Patch("/{id}", bookingHandler.UpdateBookingStatus)
	})
}
