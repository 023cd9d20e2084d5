package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"bookingId"`
	TouristEmail  string    `json:"touristEmail"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	PaymentDate   time.Time `json:"paymentDate"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		TouristEmail:  payment.TouristEmail,
		Amount:        payment.Amount,
		Method:        payment.Method,
		TransactionID: payment.TransactionID,
		PaymentDate:   payment.PaymentDate,
	}
}
