package dashboard

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetAdminDashboard() (*AdminDashboard, error)
	GetGuideDashboard(guideID uuid.UUID) (*GuideDashboard, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAdminDashboard() (*AdminDashboard, error) {
	overview, err := r.getAdminOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to get overview: %w", err)
	}

	bookingsByStatus, err := r.getBookingsByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by status: %w", err)
	}

	revenueByMonth, err := r.getRevenueByMonth(6)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by month: %w", err)
	}

	topPackages, err := r.getTopPackages(nil, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get top packages: %w", err)
	}

	recentBookings, err := r.getRecentBookings(nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	return &AdminDashboard{
		Overview:         *overview,
		BookingsByStatus: bookingsByStatus,
		RevenueByMonth:   revenueByMonth,
		TopPackages:      topPackages,
		RecentBookings:   recentBookings,
	}, nil
}

func (r *repository) GetGuideDashboard(guideID uuid.UUID) (*GuideDashboard, error) {
	dashboard := &GuideDashboard{}

	row := struct {
		TotalPackages     int `gorm:"column:total_packages"`
		PublishedPackages int `gorm:"column:published_packages"`
		SeatsBooked       int `gorm:"column:seats_booked"`
	}{}

	err := r.db.Raw(`
		SELECT
			COUNT(*) as total_packages,
			COUNT(*) FILTER (WHERE status = 'published') as published_packages,
			COALESCE(SUM(booked_seats), 0) as seats_booked
		FROM packages
		WHERE owner_guide_id = ?
	`, guideID).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get package counts: %w", err)
	}

	dashboard.TotalPackages = row.TotalPackages
	dashboard.PublishedPackages = row.PublishedPackages
	dashboard.SeatsBooked = row.SeatsBooked

	bookingRow := struct {
		TotalBookings     int     `gorm:"column:total_bookings"`
		ConfirmedBookings int     `gorm:"column:confirmed_bookings"`
		TotalRevenue      float64 `gorm:"column:total_revenue"`
	}{}

	err = r.db.Raw(`
		SELECT
			COUNT(*) as total_bookings,
			COUNT(*) FILTER (WHERE b.status = 'CONFIRMED') as confirmed_bookings,
			COALESCE(SUM(b.total_amount) FILTER (WHERE b.payment_status = 'PAID'), 0) as total_revenue
		FROM bookings b
		JOIN packages p ON b.package_id = p.id
		WHERE p.owner_guide_id = ?
	`, guideID).Scan(&bookingRow).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get booking counts: %w", err)
	}

	dashboard.TotalBookings = bookingRow.TotalBookings
	dashboard.ConfirmedBookings = bookingRow.ConfirmedBookings
	dashboard.TotalRevenue = bookingRow.TotalRevenue

	topPackages, err := r.getTopPackages(&guideID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get top packages: %w", err)
	}
	dashboard.TopPackages = topPackages

	recentBookings, err := r.getRecentBookings(&guideID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	dashboard.RecentBookings = recentBookings

	return dashboard, nil
}

func (r *repository) getAdminOverview() (*AdminOverview, error) {
	var overview AdminOverview

	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE status != 'DELETED') as total_users,
			(SELECT COUNT(*) FROM users WHERE role = 'GUIDE' AND status != 'DELETED') as total_guides,
			(SELECT COUNT(*) FROM users WHERE role = 'TOURIST' AND status != 'DELETED') as total_tourists,
			(SELECT COUNT(*) FROM packages) as total_packages,
			(SELECT COUNT(*) FROM packages WHERE status = 'published') as published_packages,
			(SELECT COUNT(*) FROM bookings) as total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'CONFIRMED') as confirmed_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'CANCELLED') as cancelled_bookings,
			(SELECT COUNT(*) FROM guide_applications WHERE status = 'PENDING') as pending_guide_applications,
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = 'PAID') as total_revenue
	`).Scan(&overview).Error

	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *repository) getBookingsByStatus() (map[string]int, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int    `gorm:"column:count"`
	}

	err := r.db.Raw(`
		SELECT status, COUNT(*) as count
		FROM bookings
		GROUP BY status
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}

func (r *repository) getRevenueByMonth(months int) ([]MonthlyRevenue, error) {
	var revenue []MonthlyRevenue

	err := r.db.Raw(`
		SELECT
			TO_CHAR(created_at, 'YYYY-MM') as month,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'PAID'), 0) as revenue,
			COUNT(*) as bookings
		FROM bookings
		WHERE created_at >= NOW() - make_interval(months => ?)
		GROUP BY TO_CHAR(created_at, 'YYYY-MM')
		ORDER BY month DESC
	`, months).Scan(&revenue).Error

	return revenue, err
}

func (r *repository) getTopPackages(guideID *uuid.UUID, limit int) ([]PackagePerformance, error) {
	var performances []PackagePerformance

	query := `
		SELECT
			p.id as package_id,
			p.title,
			p.destination,
			COUNT(b.id) as booking_count,
			COALESCE(SUM(b.pax) FILTER (WHERE b.status != 'CANCELLED'), 0) as seats_booked,
			COALESCE(SUM(b.total_amount) FILTER (WHERE b.payment_status = 'PAID'), 0) as revenue,
			CASE
				WHEN p.total_seats > 0
				THEN ROUND((p.booked_seats * 100.0 / p.total_seats)::numeric, 2)
				ELSE 0
			END as utilization
		FROM packages p
		LEFT JOIN bookings b ON b.package_id = p.id
	`
	args := []interface{}{}

	if guideID != nil {
		query += " WHERE p.owner_guide_id = ?"
		args = append(args, *guideID)
	}

	query += `
		GROUP BY p.id, p.title, p.destination, p.total_seats, p.booked_seats
		ORDER BY revenue DESC, booking_count DESC
		LIMIT ?
	`
	args = append(args, limit)

	err := r.db.Raw(query, args...).Scan(&performances).Error
	return performances, err
}

func (r *repository) getRecentBookings(guideID *uuid.UUID, limit int) ([]RecentBooking, error) {
	var bookings []RecentBooking

	query := `
		SELECT
			b.id as booking_id,
			b.booking_ref,
			p.title as package_title,
			u.name as member_name,
			b.pax,
			b.total_amount,
			b.status,
			b.created_at
		FROM bookings b
		JOIN packages p ON b.package_id = p.id
		JOIN users u ON b.member_id = u.id
	`
	args := []interface{}{}

	if guideID != nil {
		query += " WHERE p.owner_guide_id = ?"
		args = append(args, *guideID)
	}

	query += " ORDER BY b.created_at DESC LIMIT ?"
	args = append(args, limit)

	err := r.db.Raw(query, args...).Scan(&bookings).Error
	return bookings, err
}
