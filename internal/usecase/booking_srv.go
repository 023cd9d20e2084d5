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

type BookingService interface {
	CreateBooking(ctx context.Context, touristID, role string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID, role string) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetPendingBookings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetConfirmedCompleteBookings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingsNeedingPayment(ctx context.Context, touristID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, bookingID, userID, role string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, touristID, role string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	if entity.UserRole(role) != entity.RoleTourist {
		return nil, utils.NewForbidden("Only tourists can create bookings")
	}

	touristUUID, err := uuid.Parse(touristID)
	if err != nil {
		return nil, fmt.Errorf("invalid tourist ID format %s: %w", touristID, err)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingType:   entity.BookingType(req.BookingType),
		TouristID:     touristUUID,
		TourDate:      req.TourDate,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		StatusHistory: []entity.StatusLog{
			{
				Status:    entity.BookingStatusPending,
				ChangedBy: touristUUID,
				Role:      entity.RoleTourist,
				ChangedAt: now,
			},
		},
	}

	switch booking.BookingType {
	case entity.BookingTypeGuideHire:
		guideID, err := uuid.Parse(req.GuideID)
		if err != nil {
			return nil, utils.NewValidation(fmt.Sprintf("invalid guide ID format %s", req.GuideID))
		}

		guide, err := s.repo.User.FindByID(ctx, guideID)
		if err != nil {
			return nil, fmt.Errorf("look up guide %s: %w", req.GuideID, err)
		}
		if guide == nil || guide.Role != entity.RoleGuide {
			return nil, utils.NewNotFound("Guide not found")
		}

		hourlyRate := req.HourlyRate
		hours := req.Hours
		booking.GuideID = &guideID
		booking.HourlyRate = &hourlyRate
		booking.Hours = &hours
		booking.TotalPrice = hourlyRate * hours

	case entity.BookingTypeTourPackage:
		tourID, err := uuid.Parse(req.TourID)
		if err != nil {
			return nil, utils.NewValidation(fmt.Sprintf("invalid tour ID format %s", req.TourID))
		}

		tour, err := s.repo.Tour.FindByID(ctx, tourID)
		if err != nil {
			return nil, fmt.Errorf("look up tour %s: %w", req.TourID, err)
		}
		if tour == nil {
			return nil, utils.NewNotFound("Tour not found")
		}

		booking.TourID = &tourID
		// Price is captured at creation time; later catalog edits never touch
		// existing bookings.
		booking.TotalPrice = tour.Price
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("tourist_id", touristID),
			zap.String("booking_type", req.BookingType),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("tourist_id", touristID),
		zap.String("booking_type", string(booking.BookingType)),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID, role string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, utils.NewNotFound("Booking not found")
	}

	switch entity.UserRole(role) {
	case entity.RoleAdmin:
		// Admin sees everything
	case entity.RoleTourist:
		if booking.TouristID != userUUID {
			return nil, utils.NewForbidden("Unauthorized")
		}
	case entity.RoleGuide:
		owns, err := s.guideOwns(ctx, booking, userUUID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, utils.NewForbidden("Unauthorized")
		}
	default:
		return nil, utils.NewForbidden("Unauthorized")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	var filter repository.BookingFilter
	switch entity.UserRole(role) {
	case entity.RoleTourist:
		filter.TouristID = &userUUID
	case entity.RoleGuide:
		filter.GuideID = &userUUID
	case entity.RoleAdmin:
		// no filter: admin sees all
	default:
		return nil, utils.NewForbidden("Unauthorized")
	}

	return s.listBookings(ctx, filter, req)
}

func (s *bookingService) GetPendingBookings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	return s.listBookings(ctx, repository.BookingFilter{
		GuideID:  &guideUUID,
		Statuses: []entity.BookingStatus{entity.BookingStatusPending},
	}, req)
}

func (s *bookingService) GetConfirmedCompleteBookings(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, fmt.Errorf("invalid guide ID format %s: %w", guideID, err)
	}

	return s.listBookings(ctx, repository.BookingFilter{
		GuideID:  &guideUUID,
		Statuses: []entity.BookingStatus{entity.BookingStatusConfirmed, entity.BookingStatusCompleted},
	}, req)
}

func (s *bookingService) GetBookingsNeedingPayment(ctx context.Context, touristID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	touristUUID, err := uuid.Parse(touristID)
	if err != nil {
		return nil, fmt.Errorf("invalid tourist ID format %s: %w", touristID, err)
	}

	unpaid := entity.PaymentStatusUnpaid
	return s.listBookings(ctx, repository.BookingFilter{
		TouristID:     &touristUUID,
		Statuses:      []entity.BookingStatus{entity.BookingStatusCompleted},
		PaymentStatus: &unpaid,
	}, req)
}

// UpdateBookingStatus runs the role- and type-aware guarded transition table.
// Same-status requests are idempotent no-ops; every successful transition
// appends exactly one history entry in the same write as the status change.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID, userID, role string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.NewValidation(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, utils.NewNotFound("Booking not found")
	}

	target := entity.BookingStatus(req.Status)

	// Idempotent: no state change, no history append.
	if target == booking.Status {
		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	now := time.Now()
	actorRole := entity.UserRole(role)

	if err := s.authorizeTransition(ctx, booking, userUUID, actorRole, target, now); err != nil {
		return nil, err
	}

	previous := booking.Status
	history := append(booking.StatusHistory, entity.StatusLog{
		Status:    target,
		ChangedBy: userUUID,
		Role:      actorRole,
		ChangedAt: now,
	})

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, previous, target, history); err != nil {
		if err == repository.ErrStatusChanged {
			return nil, utils.NewConflict("Booking status changed concurrently, please retry")
		}
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("target", string(target)),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = target
	booking.StatusHistory = history
	booking.UpdatedAt = now

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
		zap.String("changed_by", userID),
		zap.String("role", role),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// authorizeTransition is the transition table. CANCELLED and COMPLETED are
// terminal; nothing ever moves back to PENDING. Cancellation is PENDING-only
// for both tourist and guide.
func (s *bookingService) authorizeTransition(ctx context.Context, booking *entity.Booking, actorID uuid.UUID, role entity.UserRole, target entity.BookingStatus, now time.Time) error {
	switch role {
	case entity.RoleTourist:
		if booking.TouristID != actorID {
			return utils.NewForbidden("Unauthorized")
		}

		switch target {
		case entity.BookingStatusCancelled:
			if booking.Status != entity.BookingStatusPending {
				return utils.NewInvalidTransition("Cannot cancel after booking is confirmed or completed")
			}
			return nil
		case entity.BookingStatusConfirmed:
			return utils.NewForbidden("Tourist cannot confirm booking")
		case entity.BookingStatusCompleted:
			return utils.NewForbidden("Tourist cannot mark booking complete")
		}

	case entity.RoleGuide:
		owns, err := s.guideOwns(ctx, booking, actorID)
		if err != nil {
			return err
		}
		if !owns {
			return utils.NewForbidden("Unauthorized")
		}

		switch target {
		case entity.BookingStatusCancelled:
			if booking.Status != entity.BookingStatusPending {
				return utils.NewInvalidTransition("Guide cannot cancel after confirmation or complete")
			}
			return nil
		case entity.BookingStatusConfirmed:
			if booking.Status != entity.BookingStatusPending {
				return utils.NewInvalidTransition("Only pending bookings can be confirmed")
			}
			return nil
		case entity.BookingStatusCompleted:
			if booking.Status != entity.BookingStatusConfirmed {
				return utils.NewInvalidTransition("Cannot complete booking before confirmed")
			}
			if booking.TourDate.After(now) {
				return utils.NewInvalidTransition("Cannot complete booking before tour date")
			}
			return nil
		}
	}

	return utils.NewForbidden("Only the tourist or guide involved can update booking status")
}

// guideOwns reports whether the guide owns the booking: directly for guide
// hires, through the tour's listed guide for packages.
func (s *bookingService) guideOwns(ctx context.Context, booking *entity.Booking, guideID uuid.UUID) (bool, error) {
	switch booking.BookingType {
	case entity.BookingTypeGuideHire:
		return booking.GuideID != nil && *booking.GuideID == guideID, nil

	case entity.BookingTypeTourPackage:
		if booking.TourID == nil {
			return false, nil
		}
		tour, err := s.repo.Tour.FindByID(ctx, *booking.TourID)
		if err != nil {
			return false, fmt.Errorf("look up tour %s: %w", booking.TourID.String(), err)
		}
		return tour != nil && tour.GuideID == guideID, nil
	}

	return false, nil
}

func (s *bookingService) listBookings(ctx context.Context, filter repository.BookingFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.List(ctx, filter, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage(), total), nil
}
