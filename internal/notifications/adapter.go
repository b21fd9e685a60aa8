package notifications

import (
	"context"
	"log"

	"tripcoach/internal/bookings"
	"tripcoach/internal/users"
)

// Adapter bridges the feature services to the Kafka pipeline. Booking and
// guide flows must not fail because a notification could not be queued, so
// publish errors are logged and swallowed here.
type Adapter struct {
	service NotificationService
}

func NewAdapter(service NotificationService) *Adapter {
	return &Adapter{service: service}
}

func (a *Adapter) BookingConfirmed(ctx context.Context, booking *bookings.Booking) {
	if a == nil || a.service == nil || booking.Member == nil {
		return
	}

	data := map[string]interface{}{
		"booking_ref":  booking.BookingRef,
		"pax":          booking.Pax,
		"total_amount": booking.TotalAmount,
		"currency":     booking.Currency,
	}
	if booking.Package != nil {
		data["package_title"] = booking.Package.Title
		data["destination"] = booking.Package.Destination
	}

	err := a.service.SendBookingNotification(ctx,
		booking.MemberID, booking.Member.Email, booking.Member.Name,
		booking.ID, booking.PackageID,
		NotificationTypeBookingConfirmed, data)
	if err != nil {
		log.Printf("Failed to queue booking confirmation notification for %s: %v", booking.BookingRef, err)
	}
}

func (a *Adapter) BookingCancelled(ctx context.Context, booking *bookings.Booking) {
	if a == nil || a.service == nil || booking.Member == nil {
		return
	}

	data := map[string]interface{}{
		"booking_ref": booking.BookingRef,
	}
	if booking.Package != nil {
		data["package_title"] = booking.Package.Title
	}

	err := a.service.SendBookingNotification(ctx,
		booking.MemberID, booking.Member.Email, booking.Member.Name,
		booking.ID, booking.PackageID,
		NotificationTypeBookingCancelled, data)
	if err != nil {
		log.Printf("Failed to queue booking cancellation notification for %s: %v", booking.BookingRef, err)
	}
}

func (a *Adapter) GuideApproved(ctx context.Context, user *users.User) {
	if a == nil || a.service == nil || user == nil {
		return
	}

	err := a.service.SendGuideNotification(ctx,
		user.ID, user.Email, user.Name,
		NotificationTypeGuideApproved, nil)
	if err != nil {
		log.Printf("Failed to queue guide approval notification for %s: %v", user.Email, err)
	}
}
