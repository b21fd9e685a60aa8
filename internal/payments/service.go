package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tripcoach/internal/bookings"
	"tripcoach/internal/shared/config"
)

var (
	// ErrCheckoutURLMissing means the provider answered without a
	// redirect URL. The whole attempt fails: nothing is recorded and
	// the member is not sent anywhere.
	ErrCheckoutURLMissing = errors.New("checkout provider returned no redirect URL")

	ErrBookingNotEligible = errors.New("booking is not eligible for checkout")

	// ErrConfirmationAmbiguous is the distinct failure kind for a
	// confirm call that failed after the member paid: the charge may
	// have gone through but the booking was not updated.
	ErrConfirmationAmbiguous = errors.New("payment may have succeeded but confirmation failed; contact support with your booking id")
)

type Service interface {
	CreateCheckout(ctx context.Context, memberID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, memberID uuid.UUID, req ConfirmRequest) (*bookings.BookingResponse, error)
}

type service struct {
	bookingService bookings.Service
	provider       CheckoutProvider
	config         *config.Config
}

func NewService(bookingService bookings.Service, provider CheckoutProvider, cfg *config.Config) Service {
	return &service{
		bookingService: bookingService,
		provider:       provider,
		config:         cfg,
	}
}

func (s *service) CreateCheckout(ctx context.Context, memberID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookingService.GetBooking(ctx, bookingID, memberID, false)
	if err != nil {
		return nil, err
	}

	// Only the member's own pending, unpaid booking can enter checkout
	if booking.MemberID != memberID.String() {
		return nil, bookings.ErrNotBookingOwner
	}
	if booking.Status != bookings.StatusPending || booking.PaymentStatus != bookings.PaymentUnpaid {
		return nil, ErrBookingNotEligible
	}

	session, err := s.provider.CreateSession(ctx, CheckoutSessionRequest{
		BookingID:  booking.ID,
		BookingRef: booking.BookingRef,
		Amount:     booking.TotalAmount,
		Currency:   booking.Currency,
		SuccessURL: s.config.Checkout.SuccessURL,
		CancelURL:  s.config.Checkout.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	if session.URL == "" {
		return nil, ErrCheckoutURLMissing
	}

	return &CheckoutResponse{
		BookingID: booking.ID,
		SessionID: session.SessionID,
		URL:       session.URL,
	}, nil
}

// ConfirmPayment is the required explicit step after the provider
// redirects back. Until it succeeds, the booking stays PENDING/UNPAID.
func (s *service) ConfirmPayment(ctx context.Context, memberID uuid.UUID, req ConfirmRequest) (*bookings.BookingResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookingService.ConfirmPaid(ctx, bookingID, memberID, req.SessionID)
	if err != nil {
		// Ownership and state failures are the caller's mistake.
		// Anything else happened after the member already paid, so the
		// outcome is ambiguous and support needs the booking id.
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound),
			errors.Is(err, bookings.ErrNotBookingOwner),
			errors.Is(err, bookings.ErrAlreadyConfirmed),
			errors.Is(err, bookings.ErrNotConfirmable):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfirmationAmbiguous, err)
		}
	}

	return booking, nil
}
