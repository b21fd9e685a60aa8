package packagetypes

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(packageType *PackageType) error
	GetByID(id uuid.UUID) (*PackageType, error)
	GetBySlug(slug string) (*PackageType, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*PackageType, error)
	Delete(id uuid.UUID) error
	GetAll(query PackageTypeListQuery) ([]PackageType, int64, error)
	GetActive() ([]PackageType, error)
	CountPackagesByType(id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(packageType *PackageType) error {
	return r.db.Create(packageType).Error
}

func (r *repository) GetByID(id uuid.UUID) (*PackageType, error) {
	var packageType PackageType
	err := r.db.Where("id = ?", id).First(&packageType).Error
	if err != nil {
		return nil, err
	}
	return &packageType, nil
}

func (r *repository) GetBySlug(slug string) (*PackageType, error) {
	var packageType PackageType
	err := r.db.Where("slug = ?", slug).First(&packageType).Error
	if err != nil {
		return nil, err
	}
	return &packageType, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*PackageType, error) {
	var packageType PackageType

	if err := r.db.Where("id = ?", id).First(&packageType).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&packageType).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&packageType).Error; err != nil {
		return nil, err
	}

	return &packageType, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&PackageType{}).Error
}

func (r *repository) GetAll(query PackageTypeListQuery) ([]PackageType, int64, error) {
	var packageTypes []PackageType
	var totalCount int64

	db := r.db.Model(&PackageType{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.IsActive != nil {
		db = db.Where("is_active = ?", *query.IsActive)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&packageTypes).Error

	return packageTypes, totalCount, err
}

func (r *repository) GetActive() ([]PackageType, error) {
	var packageTypes []PackageType
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&packageTypes).Error
	return packageTypes, err
}

// CountPackagesByType reports how many travel packages reference this
// type, to block deleting a type that is still in use.
func (r *repository) CountPackagesByType(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("packages").Where("package_type_id = ?", id).Count(&count).Error
	return count, err
}
