package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrPackageNotBookable = errors.New("package is not available for booking")
	ErrInsufficientSeats  = errors.New("not enough seats available")
	ErrPackageFullyBooked = errors.New("package is fully booked")
)

type Repository interface {
	// Core booking operations
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error

	// Listing
	GetUserBookings(ctx context.Context, memberID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	GetGuideBookings(ctx context.Context, guideID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)

	// Seat-accounting transactions
	CreateBookingWithSeatReservation(ctx context.Context, booking *Booking) error
	CancelBookingWithSeatRelease(ctx context.Context, booking *Booking) error

	// Confirmation transaction
	ConfirmBookingWithPayment(ctx context.Context, bookingID uuid.UUID, payment *Payment) error

	// Payment rows
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetAllPayments(ctx context.Context, page, limit int) ([]Payment, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Member").
		Preload("Payments").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) GetUserBookings(ctx context.Context, memberID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("member_id = ?", memberID)

	return r.paginate(baseQuery, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	return r.paginate(baseQuery, query)
}

// GetGuideBookings returns bookings placed against packages the guide
// owns.
func (r *repository) GetGuideBookings(ctx context.Context, guideID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("package_id IN (?)",
			r.db.Table("packages").Select("id").Where("owner_guide_id = ?", guideID))

	return r.paginate(baseQuery, query)
}

func (r *repository) paginate(baseQuery *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Package").
		Preload("Member").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// CreateBookingWithSeatReservation creates the booking and bumps the
// package's booked seats inside one transaction. The package row is
// locked first, so two concurrent bookings can never oversell.
// TotalAmount and Currency are filled from the locked row; clients
// never supply them.
func (r *repository) CreateBookingWithSeatReservation(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg struct {
			ID          uuid.UUID `gorm:"column:id"`
			CostFrom    float64   `gorm:"column:cost_from"`
			Currency    string    `gorm:"column:currency"`
			TotalSeats  int       `gorm:"column:total_seats"`
			BookedSeats int       `gorm:"column:booked_seats"`
			Status      string    `gorm:"column:status"`
		}

		err := tx.Table("packages").
			Select("id, cost_from, currency, total_seats, booked_seats, status").
			Where("id = ?", booking.PackageID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&pkg).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return fmt.Errorf("failed to lock package: %w", err)
		}

		if pkg.Status != "published" {
			return ErrPackageNotBookable
		}

		newBookedSeats := pkg.BookedSeats + booking.Pax
		if newBookedSeats > pkg.TotalSeats {
			available := pkg.TotalSeats - pkg.BookedSeats
			if available <= 0 {
				return ErrPackageFullyBooked
			}
			return fmt.Errorf("%w: only %d seats available, requested %d",
				ErrInsufficientSeats, available, booking.Pax)
		}

		booking.TotalAmount = pkg.CostFrom * float64(booking.Pax)
		booking.Currency = pkg.Currency

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = tx.Table("packages").
			Where("id = ?", booking.PackageID).
			Update("booked_seats", newBookedSeats).Error
		if err != nil {
			return fmt.Errorf("failed to update booked seats: %w", err)
		}

		return nil
	})
}

// CancelBookingWithSeatRelease marks the booking cancelled and returns
// its seats to the package under the same row lock.
func (r *repository) CancelBookingWithSeatRelease(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg struct {
			ID          uuid.UUID `gorm:"column:id"`
			BookedSeats int       `gorm:"column:booked_seats"`
		}

		err := tx.Table("packages").
			Select("id, booked_seats").
			Where("id = ?", booking.PackageID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&pkg).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return fmt.Errorf("failed to lock package: %w", err)
		}

		now := time.Now()
		err = tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		newBookedSeats := pkg.BookedSeats - booking.Pax
		if newBookedSeats < 0 {
			newBookedSeats = 0
		}

		err = tx.Table("packages").
			Where("id = ?", booking.PackageID).
			Update("booked_seats", newBookedSeats).Error
		if err != nil {
			return fmt.Errorf("failed to release seats: %w", err)
		}

		return nil
	})
}

// ConfirmBookingWithPayment flips the booking to CONFIRMED/PAID and
// inserts the payment row in one transaction. Either both land or
// neither does, so a failed insert never leaves a confirmed booking
// without its payment record.
func (r *repository) ConfirmBookingWithPayment(ctx context.Context, bookingID uuid.UUID, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":         StatusConfirmed,
				"payment_status": PaymentPaid,
				"updated_at":     time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}

		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		return nil
	})
}

func (r *repository) CreatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetAllPayments(ctx context.Context, page, limit int) ([]Payment, int64, error) {
	var payments []Payment
	var totalCount int64

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Payment{})

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Preload("Booking").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, totalCount, err
}

func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.PackageID != "" {
		if packageID, err := uuid.Parse(filters.PackageID); err == nil {
			query = query.Where("package_id = ?", packageID)
		}
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("created_at <= ?", dateTo)
		}
	}

	return query
}

func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
