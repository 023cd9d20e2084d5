package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user routes.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, config *utils.Config, log *zap.Logger) {
	// Guide directory is public
	r.Get("/api/users/guides", userHandler.GetGuides)

	r.With(middleware.Auth(config.JWT.Secret, log)).
		Get("/api/users/me", userHandler.GetProfile)
}
