package guides

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripcoach/internal/packages"
	"tripcoach/internal/users"
)

var (
	ErrApplicationNotFound = errors.New("guide application not found")
	ErrOpenApplication     = errors.New("an application is already pending for this user")
	ErrAlreadyGuide        = errors.New("user is already a guide")
	ErrNotPending          = errors.New("application has already been decided")
	ErrNoLanguages         = errors.New("at least one language is required")
)

// GuideNotifier publishes the approval side effect.
type GuideNotifier interface {
	GuideApproved(ctx context.Context, user *users.User)
}

type Service interface {
	Apply(ctx context.Context, userID uuid.UUID, req ApplyRequest) (*ApplicationResponse, error)
	GetMyApplication(ctx context.Context, userID uuid.UUID) (*ApplicationResponse, error)
	GetPending(ctx context.Context) ([]ApplicationResponse, error)
	Approve(ctx context.Context, applicationID uuid.UUID) (*ApplicationResponse, error)
	Reject(ctx context.Context, applicationID uuid.UUID) (*ApplicationResponse, error)
}

type service struct {
	repo     Repository
	userRepo users.Repository
	notifier GuideNotifier
}

func NewService(repo Repository, userRepo users.Repository, notifier GuideNotifier) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *service) Apply(ctx context.Context, userID uuid.UUID, req ApplyRequest) (*ApplicationResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicant: %w", err)
	}

	if user.Role == users.RoleGuide {
		return nil, ErrAlreadyGuide
	}

	// One open application per user
	existing, err := s.repo.GetOpenByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check open applications: %w", err)
	}
	if existing != nil {
		return nil, ErrOpenApplication
	}

	languages := packages.ParseCommaList(req.Languages)
	if len(languages) == 0 {
		return nil, ErrNoLanguages
	}

	application := &GuideApplication{
		UserID:          userID,
		City:            req.City,
		Languages:       languages,
		ExperienceYears: req.ExperienceYears,
		TourType:        req.TourType,
		Availability:    req.Availability,
		Bio:             req.Bio,
		Portfolio:       req.Portfolio,
		Social:          req.Social,
		Status:          ApplicationPending,
	}

	if err := s.repo.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	response := application.ToResponse()
	return &response, nil
}

func (s *service) GetMyApplication(ctx context.Context, userID uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetOpenByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	response := application.ToResponse()
	return &response, nil
}

func (s *service) GetPending(ctx context.Context) ([]ApplicationResponse, error) {
	applications, err := s.repo.GetPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending applications: %w", err)
	}

	responses := make([]ApplicationResponse, len(applications))
	for i, application := range applications {
		responses[i] = application.ToResponse()
	}

	return responses, nil
}

// Approve flips the applicant to a verified guide and stores the guide
// profile on the user record. Other pending applications are untouched.
func (s *service) Approve(ctx context.Context, applicationID uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if application.Status != ApplicationPending {
		return nil, ErrNotPending
	}

	user, err := s.userRepo.Update(ctx, application.UserID, map[string]interface{}{
		"role":            users.RoleGuide,
		"is_verified":     true,
		"guide_city":      application.City,
		"guide_languages": packages.JoinCommaList(application.Languages),
		"guide_bio":       application.Bio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote applicant: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, applicationID, ApplicationApproved); err != nil {
		return nil, fmt.Errorf("failed to approve application: %w", err)
	}

	if s.notifier != nil {
		s.notifier.GuideApproved(ctx, user)
	}

	application.Status = ApplicationApproved
	response := application.ToResponse()
	return &response, nil
}

// Reject closes the application. The user record is unchanged.
func (s *service) Reject(ctx context.Context, applicationID uuid.UUID) (*ApplicationResponse, error) {
	application, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if application.Status != ApplicationPending {
		return nil, ErrNotPending
	}

	if err := s.repo.UpdateStatus(ctx, applicationID, ApplicationRejected); err != nil {
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}

	application.Status = ApplicationRejected
	response := application.ToResponse()
	return &response, nil
}
