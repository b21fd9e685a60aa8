package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripcoach/internal/shared/constants"
	"tripcoach/pkg/cache"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to another member")
	ErrCannotCancel     = errors.New("booking can no longer be cancelled")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
	ErrNotConfirmable   = errors.New("only a pending unpaid booking can be confirmed")
	ErrCannotReactivate = errors.New("a cancelled booking cannot be reactivated")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// Notifier publishes booking side effects; wired to the notification
// pipeline at startup.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking)
	BookingCancelled(ctx context.Context, booking *Booking)
}

type Service interface {
	CreateBooking(ctx context.Context, memberID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID, callerID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, memberID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	GetGuideBookings(ctx context.Context, guideID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID) (*BookingResponse, error)
	AdminUpdateStatus(ctx context.Context, bookingID uuid.UUID, req AdminUpdateStatusRequest) (*BookingResponse, error)

	// ConfirmPaid is the single path to CONFIRMED/PAID; called by the
	// payment confirm endpoint, never implicitly.
	ConfirmPaid(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID, sessionID string) (*BookingResponse, error)

	// Payment projection (admin)
	GetAllPayments(ctx context.Context, page, limit int) (*PaginatedPayments, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	notifier Notifier
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

// NewServiceWithNotifier wires the notifier at construction time.
func NewServiceWithNotifier(repo Repository, cacheService cache.Service, notifier Notifier) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		notifier: notifier,
	}
}

func (s *service) CreateBooking(ctx context.Context, memberID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("invalid package id: %w", err)
	}

	bookingRef, err := generateBookingRef()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		PackageID:     packageID,
		MemberID:      memberID,
		Pax:           req.Pax,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
		BookingRef:    bookingRef,
	}

	if err := s.repo.CreateBookingWithSeatReservation(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, memberID)

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID, callerID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	// Visible to its member, the guide owning the package, and admins
	if !isAdmin && booking.MemberID != callerID {
		ownsPackage := booking.Package != nil && booking.Package.OwnerGuideID == callerID
		if !ownsPackage {
			return nil, ErrNotBookingOwner
		}
	}

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetUserBookings(ctx context.Context, memberID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	cacheable := query.Status == "" && query.PackageID == "" &&
		query.DateFrom == "" && query.DateTo == ""
	cacheKey := constants.BuildUserBookingsKey(memberID.String(), query.Page)

	if cacheable && s.cache != nil {
		var cached PaginatedBookings
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, memberID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	result := s.paginateBookings(bookings, totalCount, query)

	if cacheable && s.cache != nil {
		s.cache.Set(ctx, cacheKey, result, constants.TTL_USER_BOOKINGS)
	}

	return result, nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return s.paginateBookings(bookings, totalCount, query), nil
}

func (s *service) GetGuideBookings(ctx context.Context, guideID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetGuideBookings(ctx, guideID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide bookings: %w", err)
	}

	return s.paginateBookings(bookings, totalCount, query), nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.MemberID != memberID {
		return nil, ErrNotBookingOwner
	}

	// A repeated cancel, or a cancel after confirmation, is rejected
	if !booking.Status.CanBeCancelled() {
		return nil, ErrCannotCancel
	}

	if err := s.repo.CancelBookingWithSeatRelease(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, memberID)

	cancelled, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.BookingCancelled(ctx, cancelled)
	}

	response := cancelled.ToResponse()
	return &response, nil
}

func (s *service) AdminUpdateStatus(ctx context.Context, bookingID uuid.UUID, req AdminUpdateStatusRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Status != nil {
		newStatus := Status(*req.Status)
		if !newStatus.IsValid() {
			return nil, fmt.Errorf("invalid booking status: %s", *req.Status)
		}

		// Seat accounting must stay consistent with the status change.
		// A cancelled booking has already given its seats back, and
		// there is no re-reservation path, so it stays cancelled.
		if !booking.Status.HoldsSeats() && newStatus.HoldsSeats() {
			return nil, ErrCannotReactivate
		}
		if booking.Status.HoldsSeats() && !newStatus.HoldsSeats() {
			if err := s.repo.CancelBookingWithSeatRelease(ctx, booking); err != nil {
				return nil, err
			}
		}
		updates["status"] = newStatus
	}

	if req.PaymentStatus != nil {
		newPaymentStatus := PaymentStatus(*req.PaymentStatus)
		if !newPaymentStatus.IsValid() {
			return nil, fmt.Errorf("invalid payment status: %s", *req.PaymentStatus)
		}
		updates["payment_status"] = newPaymentStatus
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateBooking(ctx, bookingID, updates); err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	s.invalidateCache(ctx, booking.MemberID)

	updated, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) ConfirmPaid(ctx context.Context, bookingID uuid.UUID, memberID uuid.UUID, sessionID string) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.MemberID != memberID {
		return nil, ErrNotBookingOwner
	}

	if booking.Status == StatusConfirmed && booking.PaymentStatus == PaymentPaid {
		return nil, ErrAlreadyConfirmed
	}
	if booking.Status != StatusPending || booking.PaymentStatus != PaymentUnpaid {
		return nil, ErrNotConfirmable
	}

	payment := &Payment{
		BookingID: bookingID,
		Amount:    booking.TotalAmount,
		Currency:  booking.Currency,
	}
	payment.MarkCompleted(sessionID)

	if err := s.repo.ConfirmBookingWithPayment(ctx, bookingID, payment); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.invalidateCache(ctx, memberID)

	confirmed, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, confirmed)
	}

	response := confirmed.ToResponse()
	return &response, nil
}

func (s *service) GetAllPayments(ctx context.Context, page, limit int) (*PaginatedPayments, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	payments, totalCount, err := s.repo.GetAllPayments(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	records := make([]PaymentRecord, len(payments))
	for i, payment := range payments {
		records[i] = payment.ToRecord()
	}

	return &PaginatedPayments{
		Payments:   records,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: CalculateTotalPages(totalCount, limit),
	}, nil
}

func (s *service) GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error) {
	payment, err := s.repo.GetPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	record := payment.ToRecord()
	return &record, nil
}

func (s *service) paginateBookings(bookings []Booking, totalCount int64, query BookingListQuery) *PaginatedBookings {
	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = booking.ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}
}

func (s *service) invalidateCache(ctx context.Context, memberID uuid.UUID) {
	if s.cache == nil {
		return
	}

	s.cache.DeletePattern(ctx, constants.CACHE_KEY_USER_BOOKINGS+memberID.String()+"*")
	s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PACKAGES_ALL)
	s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_DASHBOARDS)
}

const bookingRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateBookingRef() (string, error) {
	ref := make([]byte, 8)
	for i := range ref {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingRefAlphabet))))
		if err != nil {
			return "", err
		}
		ref[i] = bookingRefAlphabet[n.Int64()]
	}
	return "TRIP-" + string(ref), nil
}
