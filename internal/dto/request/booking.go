package request

import (
	"time"
)

// CreateBookingRequest carries both variants; the type-specific fields are
// mutually exclusive and enforced per bookingType.
type CreateBookingRequest struct {
	BookingType string `json:"bookingType" validate:"required,oneof=GUIDE_HIRE TOUR_PACKAGE"`

	// Only for TOUR_PACKAGE
	TourID string `json:"tourId,omitempty" validate:"required_if=BookingType TOUR_PACKAGE,omitempty,uuid4"`

	// Only for GUIDE_HIRE
	GuideID    string  `json:"guideId,omitempty" validate:"required_if=BookingType GUIDE_HIRE,omitempty,uuid4"`
	HourlyRate float64 `json:"hourlyRate,omitempty" validate:"required_if=BookingType GUIDE_HIRE,omitempty,gt=0"`
	Hours      float64 `json:"hours,omitempty" validate:"required_if=BookingType GUIDE_HIRE,omitempty,gt=0"`

	TourDate time.Time `json:"tourDate" validate:"required"`
}

// UpdateBookingStatusRequest is the transition input. PENDING is never a valid
// target, so the oneof excludes it.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED COMPLETED CANCELLED"`
}
