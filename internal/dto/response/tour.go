package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID          string    `json:"id"`
	GuideID     string    `json:"guideId"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	Spots       int       `json:"spots"`
	Description *string   `json:"description,omitempty"`
	CoverPhoto  *string   `json:"coverPhoto,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TourDetailResponse adds the review rollup shown on a single tour page.
type TourDetailResponse struct {
	TourResponse
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int64   `json:"totalReviews"`
}

func TourToResponse(tour *entity.Tour) TourResponse {
	return TourResponse{
		ID:          tour.ID.String(),
		GuideID:     tour.GuideID.String(),
		Title:       tour.Title,
		Location:    tour.Location,
		Price:       tour.Price,
		Duration:    tour.Duration,
		Spots:       tour.Spots,
		Description: tour.Description,
		CoverPhoto:  tour.CoverPhoto,
		CreatedAt:   tour.CreatedAt,
	}
}
