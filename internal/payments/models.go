package payments

type CheckoutRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

type CheckoutResponse struct {
	BookingID string `json:"booking_id"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type ConfirmRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	SessionID string `json:"session_id" binding:"required"`
}
