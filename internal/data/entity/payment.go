package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a settled charge. At most one exists per booking, enforced by a
// unique index on booking_id.
type Payment struct {
	ID            uuid.UUID `db:"id"`
	BookingID     uuid.UUID `db:"booking_id"`
	TouristEmail  string    `db:"tourist_email"`
	Amount        float64   `db:"amount"`
	Method        string    `db:"method"`
	TransactionID string    `db:"transaction_id"`
	PaymentDate   time.Time `db:"payment_date"`
}
