package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetGuides(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetGuides(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	guides, err := s.repo.User.FindByRole(ctx, entity.RoleGuide, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list guides", zap.Error(err))
		return nil, fmt.Errorf("list guides: %w", err)
	}

	total, err := s.repo.User.CountByRole(ctx, entity.RoleGuide)
	if err != nil {
		s.log.Error("Failed to count guides", zap.Error(err))
		return nil, fmt.Errorf("count guides: %w", err)
	}

	guideResponses := make([]response.UserResponse, len(guides))
	for i, guide := range guides {
		guideResponses[i] = response.UserToResponse(guide)
	}

	return response.NewPaginatedResponse(guideResponses, req.Page, req.PerPage(), total), nil
}
