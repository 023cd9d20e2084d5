package request

type CreatePaymentIntentRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid4"`
}

type SavePaymentRequest struct {
	BookingID     string `json:"bookingId" validate:"required,uuid4"`
	TransactionID string `json:"transactionId" validate:"required,max=255"`
}
