package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview configures review routes. Listings are public so tour and guide
// pages can render ratings without a session.
func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/guide/{id}", reviewHandler.GetGuideReviews)
		r.Get("/tour/{id}", reviewHandler.GetTourReviews)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(config.JWT.Secret, log))

			r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
				Post("/", reviewHandler.CreateReview)
			r.Patch("/{id}", reviewHandler.UpdateReview)
			r.Delete("/{id}", reviewHandler.DeleteReview)
		})
	})
}
