package packages

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(pkg *Package) error
	GetByID(id uuid.UUID) (*Package, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Package, error)
	Delete(id uuid.UUID) error
	GetAll(query PackageListQuery) ([]Package, int64, error)
	GetByGuide(guideID uuid.UUID, query PackageListQuery) ([]Package, int64, error)
	CountByGuide(guideID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(pkg *Package) error {
	return r.db.Create(pkg).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Package, error) {
	var pkg Package
	err := r.db.Preload("PackageType").Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Package, error) {
	var pkg Package

	if err := r.db.Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&pkg).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Preload("PackageType").Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Package{}).Error
}

func (r *repository) GetAll(query PackageListQuery) ([]Package, int64, error) {
	var packages []Package
	var totalCount int64

	db := r.db.Model(&Package{})
	db = r.applyFilters(db, query)

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

	err := db.Preload("PackageType").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&packages).Error

	return packages, totalCount, err
}

func (r *repository) GetByGuide(guideID uuid.UUID, query PackageListQuery) ([]Package, int64, error) {
	var packages []Package
	var totalCount int64

	db := r.db.Model(&Package{}).Where("owner_guide_id = ?", guideID)
	db = r.applyFilters(db, query)

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

	err := db.Preload("PackageType").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&packages).Error

	return packages, totalCount, err
}

func (r *repository) CountByGuide(guideID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Package{}).Where("owner_guide_id = ?", guideID).Count(&count).Error
	return count, err
}

func (r *repository) applyFilters(db *gorm.DB, query PackageListQuery) *gorm.DB {
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(destination) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Destination != "" {
		db = db.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(query.Destination)+"%")
	}

	if query.Type != "" {
		if typeID, err := uuid.Parse(query.Type); err == nil {
			db = db.Where("package_type_id = ?", typeID)
		} else {
			db = db.Where("package_type_id IN (?)",
				r.db.Table("package_types").Select("id").Where("slug = ?", query.Type))
		}
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.MinCost != nil {
		db = db.Where("cost_from >= ?", *query.MinCost)
	}
	if query.MaxCost != nil {
		db = db.Where("cost_from <= ?", *query.MaxCost)
	}

	return db
}
