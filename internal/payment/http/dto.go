package http

// CreateIntentBody requests a payment intent for a booking.
type CreateIntentBody struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// IntentResponse is the API shape of a payment intent.
type IntentResponse struct {
	BookingID    string `json:"booking_id"`
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret,omitempty"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// WebhookBody is the provider callback payload reporting a payment outcome.
type WebhookBody struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=succeeded failed"`
}
