package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the Trip Coach application.
// Pattern: tripcoach:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG  = 24 * time.Hour // very stable data
	TTL_STATIC_SHORT = 6 * time.Hour  // user profiles

	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // package details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // package listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // filtered listings

	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // bookings, dashboards
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tripcoach"
)

// ================== PACKAGES MODULE ==================

const (
	CACHE_KEY_PACKAGES_LIST   = CACHE_PREFIX + ":packages:list"         // + :page:X:limit:Y:type:Z
	CACHE_KEY_PACKAGE_DETAIL  = CACHE_PREFIX + ":packages:detail:uuid:" // + package-id
	CACHE_KEY_PACKAGES_SEARCH = CACHE_PREFIX + ":packages:search"       // + :query:X:page:Y
)

const (
	TTL_PACKAGE_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_PACKAGE_DETAIL = TTL_SEMI_STATIC_MEDIUM
	TTL_PACKAGE_SEARCH = TTL_SEMI_STATIC_QUICK
)

// ================== PACKAGE TYPES MODULE ==================

const (
	CACHE_KEY_PACKAGE_TYPES_ACTIVE = CACHE_PREFIX + ":packagetypes:active:all"
	CACHE_KEY_PACKAGE_TYPES_ALL    = CACHE_PREFIX + ":packagetypes:list"
	CACHE_KEY_PACKAGE_TYPE_BY_SLUG = CACHE_PREFIX + ":packagetypes:detail:slug:" // + slug
)

const (
	TTL_PACKAGE_TYPES_ACTIVE = TTL_STATIC_LONG
	TTL_PACKAGE_TYPES_LIST   = TTL_STATIC_SHORT
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM
)

// ================== DASHBOARD MODULE ==================

const (
	CACHE_KEY_DASHBOARD_ADMIN = CACHE_PREFIX + ":dashboard:admin"
	CACHE_KEY_DASHBOARD_GUIDE = CACHE_PREFIX + ":dashboard:guide:uuid:" // + guide-id
)

const (
	TTL_DASHBOARD = TTL_DYNAMIC_MEDIUM
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PACKAGES_ALL      = CACHE_PREFIX + ":packages:*"
	PATTERN_INVALIDATE_PACKAGE_DETAIL    = CACHE_PREFIX + ":packages:detail:uuid:" // + package-id + *
	PATTERN_INVALIDATE_PACKAGE_TYPES_ALL = CACHE_PREFIX + ":packagetypes:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL      = CACHE_PREFIX + ":bookings:*"
	PATTERN_INVALIDATE_DASHBOARDS        = CACHE_PREFIX + ":dashboard:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildPackageListKey(page, limit int, packageType, status string) string {
	if status == "" {
		status = "any"
	}
	if packageType != "" {
		return fmt.Sprintf("%s:status:%s:page:%d:limit:%d:type:%s", CACHE_KEY_PACKAGES_LIST, status, page, limit, packageType)
	}
	return fmt.Sprintf("%s:status:%s:page:%d:limit:%d", CACHE_KEY_PACKAGES_LIST, status, page, limit)
}

func BuildPackageDetailKey(packageID string) string {
	return CACHE_KEY_PACKAGE_DETAIL + packageID
}

func BuildPackageTypeBySlugKey(slug string) string {
	return CACHE_KEY_PACKAGE_TYPE_BY_SLUG + slug
}

func BuildUserBookingsKey(userID string, page int) string {
	return fmt.Sprintf("%s%s:page:%d", CACHE_KEY_USER_BOOKINGS, userID, page)
}

func BuildGuideDashboardKey(guideID string) string {
	return CACHE_KEY_DASHBOARD_GUIDE + guideID
}
