package entity

import (
	"github.com/google/uuid"
)

type ReviewTargetType string

const (
	ReviewTargetGuide ReviewTargetType = "GUIDE"
	ReviewTargetTour  ReviewTargetType = "TOUR"
)

// Review is one-to-one with a completed booking (unique index on booking_id).
// TargetType/TargetID are derived from the booking, never client-supplied.
type Review struct {
	Base
	ReviewerID uuid.UUID        `db:"reviewer_id"`
	BookingID  uuid.UUID        `db:"booking_id"`
	TargetType ReviewTargetType `db:"target_type"`
	TargetID   uuid.UUID        `db:"target_id"`
	Rating     int              `db:"rating"` // 1-5
	Comment    *string          `db:"comment"`
}
