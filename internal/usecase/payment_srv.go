package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/gateway"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, userID string, req *request.CreatePaymentIntentRequest) (*response.PaymentIntentResponse, error)
	SavePayment(ctx context.Context, userID string, req *request.SavePaymentRequest) (*response.PaymentResponse, error)
	GetPaymentByBookingID(ctx context.Context, bookingID, userID, role string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	gateway  gateway.PaymentGateway
	currency string
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw gateway.PaymentGateway, currency string, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gw,
		currency: currency,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, userID string, req *request.CreatePaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment intent validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	booking, err := s.payableBooking(ctx, req.BookingID, userID)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreateIntent(ctx, booking.TotalPrice, s.currency)
	if err != nil {
		s.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	s.log.Info("Payment intent created",
		zap.String("booking_id", req.BookingID),
		zap.String("intent_id", intent.ID),
		zap.Float64("amount", booking.TotalPrice),
	)

	return &response.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

func (s *paymentService) SavePayment(ctx context.Context, userID string, req *request.SavePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save payment validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidation(utils.FormatValidationErrors(errs))
	}

	booking, err := s.payableBooking(ctx, req.BookingID, userID)
	if err != nil {
		return nil, err
	}

	tourist, err := s.repo.User.FindByID(ctx, booking.TouristID)
	if err != nil {
		return nil, fmt.Errorf("look up tourist %s: %w", booking.TouristID.String(), err)
	}
	if tourist == nil {
		return nil, fmt.Errorf("tourist %s missing for booking %s", booking.TouristID.String(), req.BookingID)
	}

	payment := &entity.Payment{
		ID:            uuid.New(),
		BookingID:     booking.ID,
		TouristEmail:  tourist.Email,
		Amount:        booking.TotalPrice,
		Method:        "card",
		TransactionID: req.TransactionID,
		PaymentDate:   time.Now(),
	}

	// Insert + paymentStatus flip happen in one transaction; on a racing
	// duplicate the store guards decide the winner.
	if err := s.repo.Payment.CreateAndMarkPaid(ctx, payment); err != nil {
		switch err {
		case repository.ErrPaymentNotOpen:
			return nil, utils.NewConflict("Booking already paid")
		case repository.ErrDuplicatePayment:
			return nil, utils.NewConflict("Payment already recorded for this booking")
		}
		s.log.Error("Failed to save payment",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("save payment: %w", err)
	}

	s.log.Info("Payment saved",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("transaction_id", req.TransactionID),
		zap.Float64("amount", payment.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetPaymentByBookingID(ctx context.Context, bookingID, userID, role string) (*response.PaymentResponse, error) {
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

	if entity.UserRole(role) != entity.RoleAdmin && booking.TouristID != userUUID {
		return nil, utils.NewForbidden("This booking is not yours")
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment for booking %s: %w", bookingID, err)
	}
	if payment == nil {
		return nil, utils.NewNotFound("Payment not found")
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// payableBooking loads the booking and checks the payment preconditions:
// owned by the caller, COMPLETED, and still UNPAID.
func (s *paymentService) payableBooking(ctx context.Context, bookingID, userID string) (*entity.Booking, error) {
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

	if booking.TouristID != userUUID {
		return nil, utils.NewForbidden("This booking is not yours")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, utils.NewInvalidState("Booking not completed")
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		return nil, utils.NewConflict("Booking already paid")
	}

	return booking, nil
}
