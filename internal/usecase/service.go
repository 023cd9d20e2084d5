package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/gateway"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Tour      TourService
	Booking   BookingService
	Payment   PaymentService
	Review    ReviewService
	Dashboard DashboardService
}

func NewService(repo *repository.Repository, gw gateway.PaymentGateway, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config.JWT.Secret, config.JWT.ExpiryHours, log),
		User:      NewUserService(repo, log),
		Tour:      NewTourService(repo, log),
		Booking:   NewBookingService(repo, log),
		Payment:   NewPaymentService(repo, gw, config.Stripe.Currency, log),
		Review:    NewReviewService(repo, log),
		Dashboard: NewDashboardService(repo, log),
	}
}
