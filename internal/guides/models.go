package guides

import (
	"time"

	"github.com/google/uuid"

	"tripcoach/internal/packages"
	"tripcoach/internal/users"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

type GuideApplication struct {
	ID              uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID           `json:"user_id" gorm:"type:uuid;index;not null"`
	City            string              `json:"city" gorm:"not null;size:100"`
	Languages       packages.StringList `json:"languages" gorm:"type:jsonb"`
	ExperienceYears int                 `json:"experience_years" gorm:"not null;check:experience_years >= 0"`
	TourType        string              `json:"tour_type" gorm:"size:100"`
	Availability    string              `json:"availability" gorm:"size:100"`
	Bio             string              `json:"bio" gorm:"type:text"`
	Portfolio       string              `json:"portfolio" gorm:"size:500"`
	Social          string              `json:"social" gorm:"size:500"`
	Status          ApplicationStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	User *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (GuideApplication) TableName() string {
	return "guide_applications"
}

type ApplicationResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	ApplicantName   string            `json:"applicant_name,omitempty"`
	ApplicantEmail  string            `json:"applicant_email,omitempty"`
	City            string            `json:"city"`
	Languages       []string          `json:"languages"`
	ExperienceYears int               `json:"experience_years"`
	TourType        string            `json:"tour_type"`
	Availability    string            `json:"availability"`
	Bio             string            `json:"bio"`
	Portfolio       string            `json:"portfolio,omitempty"`
	Social          string            `json:"social,omitempty"`
	Status          ApplicationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (a *GuideApplication) ToResponse() ApplicationResponse {
	languages := []string(a.Languages)
	if languages == nil {
		languages = []string{}
	}

	resp := ApplicationResponse{
		ID:              a.ID.String(),
		UserID:          a.UserID.String(),
		City:            a.City,
		Languages:       languages,
		ExperienceYears: a.ExperienceYears,
		TourType:        a.TourType,
		Availability:    a.Availability,
		Bio:             a.Bio,
		Portfolio:       a.Portfolio,
		Social:          a.Social,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}

	if a.User != nil {
		resp.ApplicantName = a.User.Name
		resp.ApplicantEmail = a.User.Email
	}

	return resp
}

// Languages arrive as comma-separated input and are parsed server-side.
type ApplyRequest struct {
	City            string `json:"city" binding:"required,min=2,max=100"`
	Languages       string `json:"languages" binding:"required"`
	ExperienceYears int    `json:"experience_years" binding:"min=0,max=60"`
	TourType        string `json:"tour_type" binding:"max=100"`
	Availability    string `json:"availability" binding:"max=100"`
	Bio             string `json:"bio" binding:"required,min=20,max=2000"`
	Portfolio       string `json:"portfolio" binding:"omitempty,url"`
	Social          string `json:"social" binding:"max=500"`
}
