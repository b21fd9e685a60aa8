package guides

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, application *GuideApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*GuideApplication, error)
	GetOpenByUserID(ctx context.Context, userID uuid.UUID) (*GuideApplication, error)
	GetPending(ctx context.Context) ([]GuideApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, application *GuideApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*GuideApplication, error) {
	var application GuideApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *repository) GetOpenByUserID(ctx context.Context, userID uuid.UUID) (*GuideApplication, error) {
	var application GuideApplication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, ApplicationPending).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *repository) GetPending(ctx context.Context) ([]GuideApplication, error) {
	var applications []GuideApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", ApplicationPending).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&GuideApplication{}).
		Where("id = ?", id).
		Update("status", status).Error
}
