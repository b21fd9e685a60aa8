package packages

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripcoach/internal/packagetypes"
)

type PackageStatus string

const (
	StatusDraft     PackageStatus = "draft"
	StatusPublished PackageStatus = "published"
	StatusArchived  PackageStatus = "archived"
)

// StringList is an ordered list column stored as JSONB. Order is
// significant: itinerary days and inclusion lists must read back in
// the exact order they were written.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = StringList(items)
	return nil
}

type Package struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string        `json:"title" gorm:"not null;size:255"`
	Description  string        `json:"description" gorm:"type:text"`
	Destination  string        `json:"destination" gorm:"not null;size:255;index"`
	CostFrom     float64       `json:"cost_from" gorm:"not null;check:cost_from >= 0"`
	Currency     string        `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	DurationDays int           `json:"duration_days" gorm:"not null;check:duration_days > 0"`
	TotalSeats   int           `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	BookedSeats  int           `json:"booked_seats" gorm:"default:0;check:booked_seats >= 0"`
	Itinerary    StringList    `json:"itinerary" gorm:"type:jsonb"`
	Included     StringList    `json:"included" gorm:"type:jsonb"`
	Excluded     StringList    `json:"excluded" gorm:"type:jsonb"`
	Tags         StringList    `json:"tags" gorm:"type:jsonb"`
	Images       StringList    `json:"images" gorm:"type:jsonb"`
	Status       PackageStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`

	PackageTypeID uuid.UUID                 `json:"package_type_id" gorm:"type:uuid;index"`
	PackageType   *packagetypes.PackageType `json:"package_type,omitempty" gorm:"foreignKey:PackageTypeID"`

	OwnerGuideID uuid.UUID `json:"owner_guide_id" gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Package) TableName() string {
	return "packages"
}

type PackageResponse struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Destination    string        `json:"destination"`
	CostFrom       float64       `json:"cost_from"`
	Currency       string        `json:"currency"`
	DurationDays   int           `json:"duration_days"`
	TotalSeats     int           `json:"total_seats"`
	BookedSeats    int           `json:"booked_seats"`
	AvailableSeats int           `json:"available_seats"`
	Itinerary      []string      `json:"itinerary"`
	Included       []string      `json:"included"`
	Excluded       []string      `json:"excluded"`
	Tags           []string      `json:"tags"`
	Images         []string      `json:"images"`
	Status         PackageStatus `json:"status"`
	PackageTypeID  string        `json:"package_type_id,omitempty"`
	PackageType    string        `json:"package_type,omitempty"`
	OwnerGuideID   string        `json:"owner_guide_id"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ToResponse derives available seats server-side. Clients never
// compute availability.
func (p *Package) ToResponse() PackageResponse {
	availableSeats := p.TotalSeats - p.BookedSeats
	if availableSeats < 0 {
		availableSeats = 0
	}

	resp := PackageResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		Description:    p.Description,
		Destination:    p.Destination,
		CostFrom:       p.CostFrom,
		Currency:       p.Currency,
		DurationDays:   p.DurationDays,
		TotalSeats:     p.TotalSeats,
		BookedSeats:    p.BookedSeats,
		AvailableSeats: availableSeats,
		Itinerary:      emptyIfNil(p.Itinerary),
		Included:       emptyIfNil(p.Included),
		Excluded:       emptyIfNil(p.Excluded),
		Tags:           emptyIfNil(p.Tags),
		Images:         emptyIfNil(p.Images),
		Status:         p.Status,
		OwnerGuideID:   p.OwnerGuideID.String(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.PackageTypeID != uuid.Nil {
		resp.PackageTypeID = p.PackageTypeID.String()
	}
	if p.PackageType != nil {
		resp.PackageType = p.PackageType.Name
	}

	return resp
}

func emptyIfNil(list StringList) []string {
	if list == nil {
		return []string{}
	}
	return []string(list)
}

// List-valued fields arrive as comma-separated strings and are parsed
// server-side, preserving order.
type CreatePackageRequest struct {
	Title         string  `json:"title" binding:"required,min=3,max=255"`
	Description   string  `json:"description" binding:"max=5000"`
	Destination   string  `json:"destination" binding:"required,min=2,max=255"`
	CostFrom      float64 `json:"cost_from" binding:"required,min=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	DurationDays  int     `json:"duration_days" binding:"required,min=1,max=365"`
	TotalSeats    int     `json:"total_seats" binding:"required,min=1,max=10000"`
	Itinerary     string  `json:"itinerary"`
	Included      string  `json:"included"`
	Excluded      string  `json:"excluded"`
	Tags          string  `json:"tags"`
	Images        string  `json:"images"`
	PackageTypeID string  `json:"package_type_id" binding:"omitempty,uuid"`
	Status        string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type UpdatePackageRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=3,max=255"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	Destination   *string  `json:"destination" binding:"omitempty,min=2,max=255"`
	CostFrom      *float64 `json:"cost_from" binding:"omitempty,min=0"`
	Currency      *string  `json:"currency" binding:"omitempty,len=3"`
	DurationDays  *int     `json:"duration_days" binding:"omitempty,min=1,max=365"`
	TotalSeats    *int     `json:"total_seats" binding:"omitempty,min=1,max=10000"`
	Itinerary     *string  `json:"itinerary"`
	Included      *string  `json:"included"`
	Excluded      *string  `json:"excluded"`
	Tags          *string  `json:"tags"`
	Images        *string  `json:"images"`
	PackageTypeID *string  `json:"package_type_id" binding:"omitempty,uuid"`
	Status        *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type PackageListQuery struct {
	Page        int      `form:"page" binding:"omitempty,min=1"`
	Limit       int      `form:"limit" binding:"omitempty,min=1,max=100"`
	Search      string   `form:"search"`
	Destination string   `form:"destination"`
	Type        string   `form:"type"`
	Status      string   `form:"status" binding:"omitempty,oneof=draft published archived"`
	MinCost     *float64 `form:"min_cost"`
	MaxCost     *float64 `form:"max_cost"`
}

type PaginatedPackages struct {
	Packages   []PackageResponse `json:"packages"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
