package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTour configures the tour catalog routes. Browsing is public, mutation is
// restricted to guides.
func wireTour(r chi.Router, tourHandler *adaptor.TourHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/tours", func(r chi.Router) {
		r.Get("/", tourHandler.GetTours)
		r.Get("/{id}", tourHandler.GetTour)

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.Auth(config.JWT.Secret, log),
				middleware.RequireRoles(log, string(entity.RoleGuide)),
			)
			r.Get("/mine", tourHandler.GetMyTours)
			r.Post("/", tourHandler.CreateTour)
			r.Patch("/{id}", tourHandler.UpdateTour)
			r.Delete("/{id}", tourHandler.DeleteTour)
		})
	})
}
