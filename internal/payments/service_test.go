package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcoach/internal/bookings"
	"tripcoach/internal/shared/config"
)

type fakeBookingService struct {
	booking    *bookings.BookingResponse
	getErr     error
	confirmErr error

	confirmCalls int
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, memberID uuid.UUID, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetBooking(ctx context.Context, bookingID uuid.UUID, callerID uuid.UUID, isAdmin bool) (*bookings.BookingResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingService) GetUserBookings(ctx context.Context, memberID uuid.UUID, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetAllBookings(ctx context.Context, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetGuideBookings(ctx context.Context, guideID uuid.UUID, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID) (*bookings.BookingResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) AdminUpdateStatus(ctx context.Context, bookingID uuid.UUID, req bookings.AdminUpdateStatusRequest) (*bookings.BookingResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) ConfirmPaid(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID, sessionID string) (*bookings.BookingResponse, error) {
	f.confirmCalls++
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.booking, nil
}

func (f *fakeBookingService) GetAllPayments(ctx context.Context, page, limit int) (*bookings.PaginatedPayments, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*bookings.PaymentRecord, error) {
	return nil, errors.New("not implemented")
}

type fakeProvider struct {
	session *CheckoutSession
	err     error

	lastRequest CheckoutSessionRequest
}

func (f *fakeProvider) CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			SuccessURL: "http://localhost:3000/success",
			CancelURL:  "http://localhost:3000/cancel",
		},
	}
}

func pendingBooking(memberID uuid.UUID) *bookings.BookingResponse {
	return &bookings.BookingResponse{
		ID:            uuid.New().String(),
		MemberID:      memberID.String(),
		Status:        bookings.StatusPending,
		PaymentStatus: bookings.PaymentUnpaid,
		BookingRef:    "TRIP-TESTREF",
		TotalAmount:   450,
		Currency:      "EUR",
	}
}

func TestCreateCheckoutReturnsSessionURL(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	provider := &fakeProvider{
		session: &CheckoutSession{SessionID: "cs_123", URL: "https://pay.example.com/cs_123"},
	}
	svc := NewService(&fakeBookingService{booking: booking}, provider, testConfig())

	resp, err := svc.CreateCheckout(context.Background(), memberID, CheckoutRequest{BookingID: booking.ID})
	require.NoError(t, err)

	assert.Equal(t, "cs_123", resp.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_123", resp.URL)
	assert.Equal(t, booking.TotalAmount, provider.lastRequest.Amount)
	assert.Equal(t, booking.Currency, provider.lastRequest.Currency)
	assert.Equal(t, "TRIP-TESTREF", provider.lastRequest.BookingRef)
}

func TestCreateCheckoutFailsWithoutRedirectURL(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	provider := &fakeProvider{
		session: &CheckoutSession{SessionID: "cs_123", URL: ""},
	}
	svc := NewService(&fakeBookingService{booking: booking}, provider, testConfig())

	_, err := svc.CreateCheckout(context.Background(), memberID, CheckoutRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrCheckoutURLMissing)
}

func TestCreateCheckoutRejectsConfirmedBooking(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	booking.Status = bookings.StatusConfirmed
	booking.PaymentStatus = bookings.PaymentPaid
	svc := NewService(&fakeBookingService{booking: booking}, &fakeProvider{}, testConfig())

	_, err := svc.CreateCheckout(context.Background(), memberID, CheckoutRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrBookingNotEligible)
}

func TestCreateCheckoutRejectsCancelledBooking(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	booking.Status = bookings.StatusCancelled
	svc := NewService(&fakeBookingService{booking: booking}, &fakeProvider{}, testConfig())

	_, err := svc.CreateCheckout(context.Background(), memberID, CheckoutRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrBookingNotEligible)
}

func TestCreateCheckoutPropagatesProviderError(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	providerErr := errors.New("connection refused")
	svc := NewService(&fakeBookingService{booking: booking}, &fakeProvider{err: providerErr}, testConfig())

	_, err := svc.CreateCheckout(context.Background(), memberID, CheckoutRequest{BookingID: booking.ID})
	assert.ErrorIs(t, err, providerErr)
}

func TestConfirmPaymentPassesThroughCallerErrors(t *testing.T) {
	memberID := uuid.New()

	for _, callerErr := range []error{
		bookings.ErrBookingNotFound,
		bookings.ErrNotBookingOwner,
		bookings.ErrAlreadyConfirmed,
		bookings.ErrNotConfirmable,
	} {
		svc := NewService(&fakeBookingService{confirmErr: callerErr}, &fakeProvider{}, testConfig())

		_, err := svc.ConfirmPayment(context.Background(), memberID, ConfirmRequest{
			BookingID: uuid.New().String(),
			SessionID: "cs_123",
		})
		assert.ErrorIs(t, err, callerErr)
		assert.NotErrorIs(t, err, ErrConfirmationAmbiguous)
	}
}

func TestConfirmPaymentWrapsInfrastructureErrors(t *testing.T) {
	memberID := uuid.New()
	svc := NewService(&fakeBookingService{confirmErr: errors.New("db connection lost")}, &fakeProvider{}, testConfig())

	_, err := svc.ConfirmPayment(context.Background(), memberID, ConfirmRequest{
		BookingID: uuid.New().String(),
		SessionID: "cs_123",
	})
	assert.ErrorIs(t, err, ErrConfirmationAmbiguous)
}

func TestConfirmPaymentSucceeds(t *testing.T) {
	memberID := uuid.New()
	booking := pendingBooking(memberID)
	booking.Status = bookings.StatusConfirmed
	booking.PaymentStatus = bookings.PaymentPaid
	fake := &fakeBookingService{booking: booking}
	svc := NewService(fake, &fakeProvider{}, testConfig())

	resp, err := svc.ConfirmPayment(context.Background(), memberID, ConfirmRequest{
		BookingID: uuid.New().String(),
		SessionID: "cs_123",
	})
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusConfirmed, resp.Status)
	assert.Equal(t, 1, fake.confirmCalls)
}
