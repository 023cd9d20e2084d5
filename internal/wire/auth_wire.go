package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth configures the public authentication routes.
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
}
