package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardService interface {
	GetAdminSummary(ctx context.Context) (*response.AdminSummaryResponse, error)
	GetGuideSummary(ctx context.Context, guideID string) (*response.GuideSummaryResponse, error)
	GetTouristSummary(ctx context.Context, touristID string) (*response.TouristSummaryResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) GetAdminSummary(ctx context.Context) (*response.AdminSummaryResponse, error) {
	totalUsers, err := s.repo.User.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalGuides, err := s.repo.User.CountByRole(ctx, entity.RoleGuide)
	if err != nil {
		return nil, fmt.Errorf("count guides: %w", err)
	}
	totalTourists, err := s.repo.User.CountByRole(ctx, entity.RoleTourist)
	if err != nil {
		return nil, fmt.Errorf("count tourists: %w", err)
	}
	totalTours, err := s.repo.Tour.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tours: %w", err)
	}

	completed := repository.BookingFilter{Statuses: []entity.BookingStatus{entity.BookingStatusCompleted}}
	totalCompleted, err := s.repo.Booking.Count(ctx, completed)
	if err != nil {
		return nil, fmt.Errorf("count completed bookings: %w", err)
	}

	paid := entity.PaymentStatusPaid
	revenue, err := s.repo.Booking.SumTotalPrice(ctx, repository.BookingFilter{PaymentStatus: &paid})
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	return &response.AdminSummaryResponse{
		TotalUsers:             totalUsers,
		TotalGuides:            totalGuides,
		TotalTourists:          totalTourists,
		TotalTours:             totalTours,
		TotalCompletedBookings: totalCompleted,
		TotalRevenue:           revenue,
	}, nil
}

func (s *dashboardService) GetGuideSummary(ctx context.Context, guideID string) (*response.GuideSummaryResponse, error) {
	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	myTours, err := s.repo.Tour.CountByGuideID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count guide tours: %w", err)
	}

	totalBookings, err := s.repo.Booking.Count(ctx, repository.BookingFilter{GuideID: &id})
	if err != nil {
		return nil, fmt.Errorf("count guide bookings: %w", err)
	}

	completedFilter := repository.BookingFilter{
		GuideID:  &id,
		Statuses: []entity.BookingStatus{entity.BookingStatusCompleted},
	}
	completed, err := s.repo.Booking.Count(ctx, completedFilter)
	if err != nil {
		return nil, fmt.Errorf("count guide completed bookings: %w", err)
	}

	paid := entity.PaymentStatusPaid
	earnings, err := s.repo.Booking.SumTotalPrice(ctx, repository.BookingFilter{
		GuideID:       &id,
		PaymentStatus: &paid,
	})
	if err != nil {
		return nil, fmt.Errorf("sum guide earnings: %w", err)
	}

	return &response.GuideSummaryResponse{
		MyTours:           myTours,
		TotalBookings:     totalBookings,
		CompletedBookings: completed,
		TotalEarnings:     earnings,
	}, nil
}

func (s *dashboardService) GetTouristSummary(ctx context.Context, touristID string) (*response.TouristSummaryResponse, error) {
	id, err := uuid.Parse(touristID)
	if err != nil {
		return nil, fmt.Errorf("invalid tourist ID format %s: %w", touristID, err)
	}

	totalBookings, err := s.repo.Booking.Count(ctx, repository.BookingFilter{TouristID: &id})
	if err != nil {
		return nil, fmt.Errorf("count tourist bookings: %w", err)
	}

	pending, err := s.repo.Booking.Count(ctx, repository.BookingFilter{
		TouristID: &id,
		Statuses:  []entity.BookingStatus{entity.BookingStatusPending},
	})
	if err != nil {
		return nil, fmt.Errorf("count tourist pending bookings: %w", err)
	}

	completed, err := s.repo.Booking.Count(ctx, repository.BookingFilter{
		TouristID: &id,
		Statuses:  []entity.BookingStatus{entity.BookingStatusCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("count tourist completed bookings: %w", err)
	}

	paid := entity.PaymentStatusPaid
	spent, err := s.repo.Booking.SumTotalPrice(ctx, repository.BookingFilter{
		TouristID:     &id,
		PaymentStatus: &paid,
	})
	if err != nil {
		return nil, fmt.Errorf("sum tourist spend: %w", err)
	}

	return &response.TouristSummaryResponse{
		TotalBookings:     totalBookings,
		PendingBookings:   pending,
		CompletedBookings: completed,
		TotalSpent:        spent,
	}, nil
}
