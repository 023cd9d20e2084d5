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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, role string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetGuideReviews(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetTourReviews(ctx context.Context, tourID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, userID, role string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, role string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	if entity.UserRole(role) != entity.RoleTourist {
		return nil, utils.NewForbidden("Only tourists can review")
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid booking ID format %s", req.BookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", req.BookingID, err)
	}
	if booking == nil {
		return nil, utils.NewNotFound("Booking not found")
	}

	if booking.TouristID != userUUID {
		return nil, utils.NewForbidden("This booking is not yours")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, utils.NewInvalidState("Booking not completed yet")
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflict("You already reviewed this booking")
	}

	// Target is derived from the booking, never taken from the client.
	var targetType entity.ReviewTargetType
	var targetID uuid.UUID
	switch booking.BookingType {
	case entity.BookingTypeGuideHire:
		if booking.GuideID == nil {
			return nil, fmt.Errorf("guide hire booking %s has no guide", req.BookingID)
		}
		targetType = entity.ReviewTargetGuide
		targetID = *booking.GuideID
	case entity.BookingTypeTourPackage:
		if booking.TourID == nil {
			return nil, fmt.Errorf("package booking %s has no tour", req.BookingID)
		}
		targetType = entity.ReviewTargetTour
		targetID = *booking.TourID
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReviewerID: userUUID,
		BookingID:  bookingID,
		TargetType: targetType,
		TargetID:   targetID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if err == repository.ErrDuplicateReview {
			return nil, utils.NewConflict("You already reviewed this booking")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("reviewer_id", userID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("target_type", string(targetType)),
		zap.String("target_id", targetID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetGuideReviews(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	return s.listReviews(ctx, entity.ReviewTargetGuide, guideID, req)
}

func (s *reviewService) GetTourReviews(ctx context.Context, tourID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	return s.listReviews(ctx, entity.ReviewTargetTour, tourID, req)
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	review, userUUID, err := s.findReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if review.ReviewerID != userUUID {
		return nil, utils.NewForbidden("Not your review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID, role string) error {
	review, userUUID, err := s.findReview(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if review.ReviewerID != userUUID && entity.UserRole(role) != entity.RoleAdmin {
		return utils.NewForbidden("Not allowed")
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

func (s *reviewService) findReview(ctx context.Context, reviewID, userID string) (*entity.Review, uuid.UUID, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, uuid.Nil, utils.NewValidation(fmt.Sprintf("invalid review ID format %s", reviewID))
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("get review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, uuid.Nil, utils.NewNotFound("Review not found")
	}

	return review, userUUID, nil
}

func (s *reviewService) listReviews(ctx context.Context, targetType entity.ReviewTargetType, targetID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid target ID format %s", targetID))
	}

	reviews, err := s.repo.Review.FindByTarget(ctx, targetType, id, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("target_type", string(targetType)),
			zap.String("target_id", targetID),
		)
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTarget(ctx, targetType, id)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage(), total), nil
}
