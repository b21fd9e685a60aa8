package bookings

import (
	"time"

	"github.com/google/uuid"

	"tripcoach/internal/packages"
	"tripcoach/internal/users"
)

type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PackageID     uuid.UUID     `gorm:"type:uuid;index;not null" json:"package_id"`
	MemberID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"member_id"`
	Pax           int           `gorm:"not null;check:pax > 0" json:"pax"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	Currency      string        `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status        Status        `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'UNPAID'" json:"payment_status"`
	BookingRef    string        `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`

	Package  *packages.Package `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	Member   *users.User       `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Payments []Payment         `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Payment records one settled checkout attempt against a booking.
type Payment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Currency    string     `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status      string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	SessionID   string     `gorm:"index" json:"session_id"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) MarkCompleted(sessionID string) {
	p.Status = "COMPLETED"
	p.SessionID = sessionID
	now := time.Now()
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

type BookingResponse struct {
	ID            string        `json:"id"`
	PackageID     string        `json:"package_id"`
	PackageTitle  string        `json:"package_title,omitempty"`
	MemberID      string        `json:"member_id"`
	MemberName    string        `json:"member_name,omitempty"`
	Pax           int           `json:"pax"`
	TotalAmount   float64       `json:"total_amount"`
	Currency      string        `json:"currency"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	BookingRef    string        `json:"booking_ref"`
	CreatedAt     time.Time     `json:"created_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		PackageID:     b.PackageID.String(),
		MemberID:      b.MemberID.String(),
		Pax:           b.Pax,
		TotalAmount:   b.TotalAmount,
		Currency:      b.Currency,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		BookingRef:    b.BookingRef,
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
	}

	if b.Package != nil {
		resp.PackageTitle = b.Package.Title
	}
	if b.Member != nil {
		resp.MemberName = b.Member.Name
	}

	return resp
}

type CreateBookingRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
	Pax       int    `json:"pax" binding:"required,min=1"`
}

type AdminUpdateStatusRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=UNPAID PAID FAILED REFUNDED"`
}

type BookingListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	PackageID string `form:"package_id" binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// PaymentRecord is the admin projection of one payment row joined with
// its booking.
type PaymentRecord struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"booking_id"`
	BookingRef  string     `json:"booking_ref"`
	MemberID    string     `json:"member_id"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	SessionID   string     `json:"session_id"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *Payment) ToRecord() PaymentRecord {
	record := PaymentRecord{
		ID:          p.ID.String(),
		BookingID:   p.BookingID.String(),
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		SessionID:   p.SessionID,
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
	}

	if p.Booking != nil {
		record.BookingRef = p.Booking.BookingRef
		record.MemberID = p.Booking.MemberID.String()
	}

	return record
}

type PaginatedPayments struct {
	Payments   []PaymentRecord `json:"payments"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
