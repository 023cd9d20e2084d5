package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTypeGuideHire   BookingType = "GUIDE_HIRE"
	BookingTypeTourPackage BookingType = "TOUR_PACKAGE"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// StatusLog is one append-only audit entry. The log is stored as JSONB on the
// booking row so status and history always change in a single write.
type StatusLog struct {
	Status    BookingStatus `json:"status"`
	ChangedBy uuid.UUID     `json:"changedBy"`
	Role      UserRole      `json:"role"`
	ChangedAt time.Time     `json:"changedAt"`
}

type Booking struct {
	Base
	BookingType BookingType `db:"booking_type"`

	// Only for TOUR_PACKAGE
	TourID *uuid.UUID `db:"tour_id"`

	// Only for GUIDE_HIRE
	GuideID    *uuid.UUID `db:"guide_id"`
	HourlyRate *float64   `db:"hourly_rate"`
	Hours      *float64   `db:"hours"`

	TouristID uuid.UUID `db:"tourist_id"`
	TourDate  time.Time `db:"tour_date"`

	Status        BookingStatus `db:"status"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	TotalPrice    float64       `db:"total_price"`

	StatusHistory []StatusLog `db:"status_history"`
}

// CurrentStatusLog returns the last history entry, which always mirrors Status.
func (b *Booking) CurrentStatusLog() *StatusLog {
	if len(b.StatusHistory) == 0 {
		return nil
	}
	return &b.StatusHistory[len(b.StatusHistory)-1]
}
