package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type StatusLogResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	Role      string    `json:"role"`
	ChangedAt time.Time `json:"changedAt"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	BookingType string `json:"bookingType"`

	TourID *string `json:"tourId,omitempty"`

	GuideID    *string  `json:"guideId,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Hours      *float64 `json:"hours,omitempty"`

	TouristID     string              `json:"touristId"`
	TourDate      time.Time           `json:"tourDate"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	TotalPrice    float64             `json:"totalPrice"`
	StatusHistory []StatusLogResponse `json:"statusHistory"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	history := make([]StatusLogResponse, len(booking.StatusHistory))
	for i, log := range booking.StatusHistory {
		history[i] = StatusLogResponse{
			Status:    string(log.Status),
			ChangedBy: log.ChangedBy.String(),
			Role:      string(log.Role),
			ChangedAt: log.ChangedAt,
		}
	}

	resp := BookingResponse{
		ID:            booking.ID.String(),
		BookingType:   string(booking.BookingType),
		HourlyRate:    booking.HourlyRate,
		Hours:         booking.Hours,
		TouristID:     booking.TouristID.String(),
		TourDate:      booking.TourDate,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		TotalPrice:    booking.TotalPrice,
		StatusHistory: history,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}

	if booking.TourID != nil {
		tourID := booking.TourID.String()
		resp.TourID = &tourID
	}
	if booking.GuideID != nil {
		guideID := booking.GuideID.String()
		resp.GuideID = &guideID
	}

	return resp
}
