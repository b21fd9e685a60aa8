package users

import (
	"time"

	"github.com/google/uuid"

	"tripcoach/internal/shared/constants"
)

type Role string

const (
	RoleTourist Role = constants.RoleTourist
	RoleGuide   Role = constants.RoleGuide
	RoleAdmin   Role = constants.RoleAdmin
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleTourist, RoleGuide, RoleAdmin:
		return true
	default:
		return false
	}
}

// DashboardPath returns the landing page a client of this role should be
// sent to when it requests a route group it is not allowed into.
func (r Role) DashboardPath() string {
	return constants.DashboardPathFor(string(r))
}

func (r Role) String() string {
	return string(r)
}

type Status string

const (
	StatusActive   Status = constants.StatusActive
	StatusInactive Status = constants.StatusInactive
	StatusBlocked  Status = constants.StatusBlocked
	StatusDeleted  Status = constants.StatusDeleted
)

func IsValidStatus(status string) bool {
	switch Status(status) {
	case StatusActive, StatusInactive, StatusBlocked, StatusDeleted:
		return true
	default:
		return false
	}
}

// CanAuthenticate reports whether a user in this status may hold a session.
func (s Status) CanAuthenticate() bool {
	return constants.StatusMayAuthenticate(string(s))
}

func (s Status) String() string {
	return string(s)
}

type User struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"` // hide in json
	Role       Role      `json:"role" gorm:"type:varchar(20);not null;default:'TOURIST'"`
	Status     Status    `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`

	// Guide profile, populated when a guide application is approved
	GuideCity      string `json:"guide_city,omitempty" gorm:"size:100"`
	GuideLanguages string `json:"guide_languages,omitempty" gorm:"size:255"`
	GuideBio       string `json:"guide_bio,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserResponse represents user data in responses (without sensitive info)
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	GuideCity  string    `json:"guide_city,omitempty"`
	GuideBio   string    `json:"guide_bio,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Status:     string(u.Status),
		IsVerified: u.IsVerified,
		GuideCity:  u.GuideCity,
		GuideBio:   u.GuideBio,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type UserListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Role   string `form:"role" binding:"omitempty,oneof=TOURIST GUIDE ADMIN"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE BLOCKED DELETED"`
	Search string `form:"search"`
}

type PaginatedUsers struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// UpdateUserRequest carries the admin-settable fields. Role, status and
// is_verified are independent; any subset may be patched in one call.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Role       *string `json:"role" binding:"omitempty,oneof=TOURIST GUIDE ADMIN"`
	Status     *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE BLOCKED DELETED"`
	IsVerified *bool   `json:"is_verified"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
