package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TourService interface {
	CreateTour(ctx context.Context, guideID string, req *request.CreateTourRequest) (*response.TourResponse, error)
	GetTour(ctx context.Context, tourID string) (*response.TourDetailResponse, error)
	GetTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
	GetMyTours(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
	UpdateTour(ctx context.Context, tourID, guideID string, req *request.UpdateTourRequest) (*response.TourResponse, error)
	DeleteTour(ctx context.Context, tourID, guideID string) error
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) CreateTour(ctx context.Context, guideID string, req *request.CreateTourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create tour validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	now := time.Now()
	tour := &entity.Tour{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuideID:     guideUUID,
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Duration:    req.Duration,
		Spots:       req.Spots,
		Description: req.Description,
		CoverPhoto:  req.CoverPhoto,
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		s.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("guide_id", guideID),
		)
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.log.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("guide_id", guideID),
		zap.String("title", tour.Title),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) GetTour(ctx context.Context, tourID string) (*response.TourDetailResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid tour ID format %s", tourID))
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	if tour == nil {
		return nil, utils.NewNotFound("Tour not found")
	}

	avgRating, totalReviews, err := s.repo.Review.GetTargetStats(ctx, entity.ReviewTargetTour, id)
	if err != nil {
		return nil, fmt.Errorf("get tour review stats: %w", err)
	}

	return &response.TourDetailResponse{
		TourResponse: response.TourToResponse(tour),
		AvgRating:    avgRating,
		TotalReviews: totalReviews,
	}, nil
}

func (s *tourService) GetTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	tours, err := s.repo.Tour.FindAll(ctx, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list tours", zap.Error(err))
		return nil, fmt.Errorf("list tours: %w", err)
	}

	total, err := s.repo.Tour.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count tours", zap.Error(err))
		return nil, fmt.Errorf("count tours: %w", err)
	}

	tourResponses := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		tourResponses[i] = response.TourToResponse(tour)
	}

	return response.NewPaginatedResponse(tourResponses, req.Page, req.PerPage(), total), nil
}

func (s *tourService) GetMyTours(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	tours, err := s.repo.Tour.FindByGuideID(ctx, guideUUID, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list guide tours", zap.Error(err), zap.String("guide_id", guideID))
		return nil, fmt.Errorf("list guide tours: %w", err)
	}

	total, err := s.repo.Tour.CountByGuideID(ctx, guideUUID)
	if err != nil {
		s.log.Error("Failed to count guide tours", zap.Error(err))
		return nil, fmt.Errorf("count guide tours: %w", err)
	}

	tourResponses := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		tourResponses[i] = response.TourToResponse(tour)
	}

	return response.NewPaginatedResponse(tourResponses, req.Page, req.PerPage(), total), nil
}

func (s *tourService) UpdateTour(ctx context.Context, tourID, guideID string, req *request.UpdateTourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update tour validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	tour, err := s.ownedTour(ctx, tourID, guideID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		tour.Title = *req.Title
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.Spots != nil {
		tour.Spots = *req.Spots
	}
	if req.Description != nil {
		tour.Description = req.Description
	}
	tour.UpdatedAt = time.Now()

	if err := s.repo.Tour.Update(ctx, tour); err != nil {
		s.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tourID),
		)
		return nil, fmt.Errorf("update tour: %w", err)
	}

	s.log.Info("Tour updated", zap.String("tour_id", tourID))

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) DeleteTour(ctx context.Context, tourID, guideID string) error {
	tour, err := s.ownedTour(ctx, tourID, guideID)
	if err != nil {
		return err
	}

	if err := s.repo.Tour.Delete(ctx, tour.ID); err != nil {
		s.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", tourID),
		)
		return fmt.Errorf("delete tour: %w", err)
	}

	return nil
}

// ownedTour loads a tour and checks the acting guide owns it.
func (s *tourService) ownedTour(ctx context.Context, tourID, guideID string) (*entity.Tour, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid tour ID format %s", tourID))
	}
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	if tour == nil {
		return nil, utils.NewNotFound("Tour not found")
	}

	if tour.GuideID != guideUUID {
		return nil, utils.NewForbidden("Tour not found or unauthorized")
	}

	return tour, nil
}
