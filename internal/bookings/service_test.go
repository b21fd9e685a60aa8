package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tripcoach/internal/packages"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	bookings map[uuid.UUID]*Booking
	payments map[uuid.UUID]*Payment

	seatReleases   int
	failPaymentRow bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookings: make(map[uuid.UUID]*Booking),
		payments: make(map[uuid.UUID]*Payment),
	}
}

func (f *fakeRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeRepository) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.GetBookingByID(ctx, id)
}

func (f *fakeRepository) UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	booking, ok := f.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"]; ok {
		booking.Status = status.(Status)
	}
	if paymentStatus, ok := updates["payment_status"]; ok {
		booking.PaymentStatus = paymentStatus.(PaymentStatus)
	}
	return nil
}

func (f *fakeRepository) GetUserBookings(ctx context.Context, memberID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, booking := range f.bookings {
		if booking.MemberID == memberID {
			result = append(result, *booking)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, booking := range f.bookings {
		result = append(result, *booking)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) GetGuideBookings(ctx context.Context, guideID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, booking := range f.bookings {
		if booking.Package != nil && booking.Package.OwnerGuideID == guideID {
			result = append(result, *booking)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) CreateBookingWithSeatReservation(ctx context.Context, booking *Booking) error {
	booking.ID = uuid.New()
	booking.TotalAmount = 100.0 * float64(booking.Pax)
	booking.Currency = "USD"
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeRepository) CancelBookingWithSeatRelease(ctx context.Context, booking *Booking) error {
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = StatusCancelled
	f.seatReleases++
	return nil
}

func (f *fakeRepository) ConfirmBookingWithPayment(ctx context.Context, bookingID uuid.UUID, payment *Payment) error {
	stored, ok := f.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if f.failPaymentRow {
		return errors.New("insert payments: connection reset")
	}
	stored.Status = StatusConfirmed
	stored.PaymentStatus = PaymentPaid
	payment.ID = uuid.New()
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakeRepository) CreatePayment(ctx context.Context, payment *Payment) error {
	payment.ID = uuid.New()
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakeRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakeRepository) GetAllPayments(ctx context.Context, page, limit int) ([]Payment, int64, error) {
	var result []Payment
	for _, payment := range f.payments {
		result = append(result, *payment)
	}
	return result, int64(len(result)), nil
}

func seedBooking(repo *fakeRepository, memberID uuid.UUID, status Status, paymentStatus PaymentStatus) *Booking {
	booking := &Booking{
		ID:            uuid.New(),
		PackageID:     uuid.New(),
		MemberID:      memberID,
		Pax:           2,
		TotalAmount:   500,
		Currency:      "EUR",
		Status:        status,
		PaymentStatus: paymentStatus,
		BookingRef:    "TRIP-TESTREF",
	}
	repo.bookings[booking.ID] = booking
	return booking
}

func TestCreateBookingStartsPendingUnpaid(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), memberID, CreateBookingRequest{
		PackageID: uuid.New().String(),
		Pax:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, string(StatusPending), string(resp.Status))
	assert.Equal(t, string(PaymentUnpaid), string(resp.PaymentStatus))
	assert.Equal(t, 3, resp.Pax)
	assert.True(t, strings.HasPrefix(resp.BookingRef, "TRIP-"))
	assert.Len(t, resp.BookingRef, len("TRIP-")+8)
}

func TestCreateBookingRejectsInvalidPackageID(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		PackageID: "not-a-uuid",
		Pax:       1,
	})
	assert.Error(t, err)
}

func TestCancelBookingReleasesSeatsOnce(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusPending, PaymentUnpaid)

	resp, err := svc.CancelBooking(context.Background(), booking.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), string(resp.Status))
	assert.Equal(t, 1, repo.seatReleases)

	// A second cancel must be rejected and must not release seats again
	_, err = svc.CancelBooking(context.Background(), booking.ID, memberID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 1, repo.seatReleases)
}

func TestCancelBookingRejectsNonOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	booking := seedBooking(repo, uuid.New(), StatusPending, PaymentUnpaid)

	_, err := svc.CancelBooking(context.Background(), booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestCancelBookingRejectsConfirmed(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusConfirmed, PaymentPaid)

	_, err := svc.CancelBooking(context.Background(), booking.ID, memberID)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestConfirmPaidTransitionsAndRecordsPayment(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusPending, PaymentUnpaid)

	resp, err := svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), string(resp.Status))
	assert.Equal(t, string(PaymentPaid), string(resp.PaymentStatus))

	require.Len(t, repo.payments, 1)
	for _, payment := range repo.payments {
		assert.Equal(t, booking.ID, payment.BookingID)
		assert.Equal(t, booking.TotalAmount, payment.Amount)
		assert.Equal(t, "COMPLETED", payment.Status)
		assert.Equal(t, "cs_test_123", payment.SessionID)
	}
}

func TestConfirmPaidFailureLeavesBookingPending(t *testing.T) {
	repo := newFakeRepository()
	repo.failPaymentRow = true
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusPending, PaymentUnpaid)

	_, err := svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_fail")
	require.Error(t, err)

	// The failed confirmation must roll back as a unit: the booking is
	// still pending and unpaid, and a retry succeeds.
	stored, err := repo.GetBookingByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, PaymentUnpaid, stored.PaymentStatus)
	assert.Empty(t, repo.payments)

	repo.failPaymentRow = false
	resp, err := svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_retry")
	require.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), string(resp.Status))
}

func TestConfirmPaidRejectsRepeatedConfirm(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusPending, PaymentUnpaid)

	_, err := svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_123")
	require.NoError(t, err)

	_, err = svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_123")
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Len(t, repo.payments, 1)
}

func TestConfirmPaidRejectsCancelledBooking(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	booking := seedBooking(repo, memberID, StatusCancelled, PaymentUnpaid)

	_, err := svc.ConfirmPaid(context.Background(), booking.ID, memberID, "cs_test_123")
	assert.ErrorIs(t, err, ErrNotConfirmable)
}

func TestConfirmPaidRejectsNonOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	booking := seedBooking(repo, uuid.New(), StatusPending, PaymentUnpaid)

	_, err := svc.ConfirmPaid(context.Background(), booking.ID, uuid.New(), "cs_test_123")
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestGetBookingVisibility(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	memberID := uuid.New()
	guideID := uuid.New()

	booking := seedBooking(repo, memberID, StatusPending, PaymentUnpaid)
	booking.Package = &packages.Package{
		ID:           booking.PackageID,
		OwnerGuideID: guideID,
	}

	// Member sees their own booking
	_, err := svc.GetBooking(context.Background(), booking.ID, memberID, false)
	assert.NoError(t, err)

	// The guide owning the package sees it
	_, err = svc.GetBooking(context.Background(), booking.ID, guideID, false)
	assert.NoError(t, err)

	// Admin sees everything
	_, err = svc.GetBooking(context.Background(), booking.ID, uuid.New(), true)
	assert.NoError(t, err)

	// An unrelated user does not
	_, err = svc.GetBooking(context.Background(), booking.ID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestAdminUpdateStatusReleasesSeats(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	booking := seedBooking(repo, uuid.New(), StatusConfirmed, PaymentPaid)

	newStatus := string(StatusCancelled)
	_, err := svc.AdminUpdateStatus(context.Background(), booking.ID, AdminUpdateStatusRequest{
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.seatReleases)
}

func TestAdminUpdateStatusCompletedKeepsSeats(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	booking := seedBooking(repo, uuid.New(), StatusConfirmed, PaymentPaid)

	newStatus := string(StatusCompleted)
	_, err := svc.AdminUpdateStatus(context.Background(), booking.ID, AdminUpdateStatusRequest{
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.seatReleases)
}

func TestAdminUpdateStatusRejectsReactivatingCancelled(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	booking := seedBooking(repo, uuid.New(), StatusCancelled, PaymentRefunded)

	for _, target := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		newStatus := string(target)
		_, err := svc.AdminUpdateStatus(context.Background(), booking.ID, AdminUpdateStatusRequest{
			Status: &newStatus,
		})
		assert.ErrorIs(t, err, ErrCannotReactivate)
	}

	// The booking's seats were already returned at cancellation, so
	// it must still read back cancelled.
	stored, err := repo.GetBookingByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)
	assert.Equal(t, 0, repo.seatReleases)
}

func TestGenerateBookingRefAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		ref, err := generateBookingRef()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(ref, "TRIP-"))

		for _, r := range ref[len("TRIP-"):] {
			assert.Contains(t, bookingRefAlphabet, string(r))
		}
	}
}
