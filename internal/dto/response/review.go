package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	ReviewerID string    `json:"reviewerId"`
	BookingID  string    `json:"bookingId"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		ReviewerID: review.ReviewerID.String(),
		BookingID:  review.BookingID.String(),
		TargetType: string(review.TargetType),
		TargetID:   review.TargetID.String(),
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}
