package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireDashboard configures the role-scoped summary routes.
func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.With(middleware.RequireRoles(log, string(entity.RoleAdmin))).
			Get("/admin", dashboardHandler.GetAdminSummary)
		r.With(middleware.RequireRoles(log, string(entity.RoleGuide))).
			Get("/guide", dashboardHandler.GetGuideSummary)
		r.With(middleware.RequireRoles(log, string(entity.RoleTourist))).
			Get("/tourist", dashboardHandler.GetTouristSummary)
	})
}
