package entity

import (
	"github.com/google/uuid"
)

type Tour struct {
	Base
	GuideID     uuid.UUID `db:"guide_id"`
	Title       string    `db:"title"`
	Location    string    `db:"location"`
	Price       float64   `db:"price"`
	Duration    string    `db:"duration"`
	Spots       int       `db:"spots"`
	Description *string   `db:"description"`
	CoverPhoto  *string   `db:"cover_photo"`
}
