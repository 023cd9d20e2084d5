package repository

import (
	"errors"

	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

// Sentinel errors for store-level guard failures. Services translate these into
// the typed error taxonomy.
var (
	ErrStatusChanged    = errors.New("booking status changed concurrently")
	ErrPaymentNotOpen   = errors.New("booking is not completed and unpaid")
	ErrDuplicatePayment = errors.New("payment already recorded for booking")
	ErrDuplicateReview  = errors.New("booking already reviewed")
)

type Repository struct {
	User    UserRepository
	Tour    TourRepository
	Booking BookingRepository
	Payment PaymentRepository
	Review  ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Tour:    NewTourRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Payment: NewPaymentRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}
