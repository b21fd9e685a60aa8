package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tripcoach/internal/shared/config"
)

// CheckoutSessionRequest is what we hand the external provider to open
// a hosted-payment session.
type CheckoutSessionRequest struct {
	BookingID  string  `json:"booking_id"`
	BookingRef string  `json:"booking_ref"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	SuccessURL string  `json:"success_url"`
	CancelURL  string  `json:"cancel_url"`
}

// CheckoutSession is the provider's answer. URL is where the member's
// browser must be sent to pay.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutProvider abstracts the hosted-checkout service so tests can
// substitute a fake.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

type hostedCheckout struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHostedCheckoutProvider(cfg *config.Config) CheckoutProvider {
	return &hostedCheckout{
		client: &http.Client{
			Timeout: cfg.Checkout.Timeout,
		},
		baseURL: cfg.Checkout.ProviderURL,
		apiKey:  cfg.Checkout.APIKey,
	}
}

func (h *hostedCheckout) CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}

	return &session, nil
}
