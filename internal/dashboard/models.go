package dashboard

import "time"

// AdminDashboard aggregates platform-wide metrics for the admin
// landing page.
type AdminDashboard struct {
	Overview         AdminOverview        `json:"overview"`
	BookingsByStatus map[string]int       `json:"bookings_by_status"`
	RevenueByMonth   []MonthlyRevenue     `json:"revenue_by_month"`
	TopPackages      []PackagePerformance `json:"top_packages"`
	RecentBookings   []RecentBooking      `json:"recent_bookings"`
}

type AdminOverview struct {
	TotalUsers               int     `json:"total_users"`
	TotalGuides              int     `json:"total_guides"`
	TotalTourists            int     `json:"total_tourists"`
	TotalPackages            int     `json:"total_packages"`
	PublishedPackages        int     `json:"published_packages"`
	TotalBookings            int     `json:"total_bookings"`
	ConfirmedBookings        int     `json:"confirmed_bookings"`
	CancelledBookings        int     `json:"cancelled_bookings"`
	PendingGuideApplications int     `json:"pending_guide_applications"`
	TotalRevenue             float64 `json:"total_revenue"`
}

// GuideDashboard aggregates metrics scoped to one guide's packages.
type GuideDashboard struct {
	TotalPackages     int                  `json:"total_packages"`
	PublishedPackages int                  `json:"published_packages"`
	TotalBookings     int                  `json:"total_bookings"`
	ConfirmedBookings int                  `json:"confirmed_bookings"`
	SeatsBooked       int                  `json:"seats_booked"`
	TotalRevenue      float64              `json:"total_revenue"`
	TopPackages       []PackagePerformance `json:"top_packages"`
	RecentBookings    []RecentBooking      `json:"recent_bookings"`
}

type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type PackagePerformance struct {
	PackageID    string  `json:"package_id"`
	Title        string  `json:"title"`
	Destination  string  `json:"destination"`
	BookingCount int     `json:"booking_count"`
	SeatsBooked  int     `json:"seats_booked"`
	Revenue      float64 `json:"revenue"`
	Utilization  float64 `json:"utilization"`
}

type RecentBooking struct {
	BookingID    string    `json:"booking_id"`
	BookingRef   string    `json:"booking_ref"`
	PackageTitle string    `json:"package_title"`
	MemberName   string    `json:"member_name"`
	Pax          int       `json:"pax"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
