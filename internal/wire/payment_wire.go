package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePayment configures the payment routes. Paying is a tourist action; the
// receipt lookup also admits admins, checked in the service.
func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
			Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
		r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
			Post("/save-payment", paymentHandler.SavePayment)

		r.Get("/{bookingId}", paymentHandler.GetPayment)
	})
}
