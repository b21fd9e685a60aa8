package packagetypes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripcoach/internal/shared/constants"
	"tripcoach/pkg/cache"
)

var (
	ErrTypeNotFound      = errors.New("package type not found")
	ErrTypeAlreadyExists = errors.New("a package type with similar name already exists")
	ErrTypeInUse         = errors.New("package type is referenced by existing packages")
	ErrEmptyName         = errors.New("package type name must contain at least one alphanumeric character")
)

type Service interface {
	CreatePackageType(ctx context.Context, adminID uuid.UUID, req CreatePackageTypeRequest) (*PackageTypeResponse, error)
	GetPackageTypeByID(ctx context.Context, id uuid.UUID) (*PackageTypeResponse, error)
	GetPackageTypeBySlug(ctx context.Context, slug string) (*PackageTypeResponse, error)
	UpdatePackageType(ctx context.Context, id uuid.UUID, req UpdatePackageTypeRequest) (*PackageTypeResponse, error)
	DeletePackageType(ctx context.Context, id uuid.UUID) error
	GetAllPackageTypes(ctx context.Context, query PackageTypeListQuery) (*PaginatedPackageTypes, error)
	GetActivePackageTypes(ctx context.Context) ([]PackageTypeResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) CreatePackageType(ctx context.Context, adminID uuid.UUID, req CreatePackageTypeRequest) (*PackageTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	slug := GenerateSlug(name)
	if slug == "" {
		return nil, ErrEmptyName
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing package type: %w", err)
	}
	if existing != nil {
		return nil, ErrTypeAlreadyExists
	}

	packageType := &PackageType{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(packageType); err != nil {
		return nil, fmt.Errorf("failed to create package type: %w", err)
	}

	s.invalidateCache(ctx)

	response := packageType.ToResponse()
	return &response, nil
}

func (s *service) GetPackageTypeByID(ctx context.Context, id uuid.UUID) (*PackageTypeResponse, error) {
	packageType, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get package type: %w", err)
	}

	response := packageType.ToResponse()
	return &response, nil
}

func (s *service) GetPackageTypeBySlug(ctx context.Context, slug string) (*PackageTypeResponse, error) {
	cacheKey := constants.BuildPackageTypeBySlugKey(slug)

	var cached PackageTypeResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	packageType, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get package type: %w", err)
	}

	response := packageType.ToResponse()

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, response, constants.TTL_PACKAGE_TYPES_LIST)
	}

	return &response, nil
}

func (s *service) UpdatePackageType(ctx context.Context, id uuid.UUID, req UpdatePackageTypeRequest) (*PackageTypeResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get package type: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug := GenerateSlug(name)
		if slug == "" {
			return nil, ErrEmptyName
		}

		if slug != current.Slug {
			existing, err := s.repo.GetBySlug(slug)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check existing package type: %w", err)
			}
			if existing != nil && existing.ID != current.ID {
				return nil, ErrTypeAlreadyExists
			}
		}

		updates["name"] = name
		updates["slug"] = slug
	}

	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update package type: %w", err)
	}

	s.invalidateCache(ctx)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeletePackageType(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTypeNotFound
		}
		return fmt.Errorf("failed to get package type: %w", err)
	}

	count, err := s.repo.CountPackagesByType(id)
	if err != nil {
		return fmt.Errorf("failed to check package type usage: %w", err)
	}
	if count > 0 {
		return ErrTypeInUse
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete package type: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) GetAllPackageTypes(ctx context.Context, query PackageTypeListQuery) (*PaginatedPackageTypes, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	packageTypes, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get package types: %w", err)
	}

	responses := make([]PackageTypeResponse, len(packageTypes))
	for i, pt := range packageTypes {
		responses[i] = pt.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedPackageTypes{
		PackageTypes: responses,
		TotalCount:   totalCount,
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (s *service) GetActivePackageTypes(ctx context.Context) ([]PackageTypeResponse, error) {
	var cached []PackageTypeResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, constants.CACHE_KEY_PACKAGE_TYPES_ACTIVE, &cached); err == nil {
			return cached, nil
		}
	}

	packageTypes, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active package types: %w", err)
	}

	responses := make([]PackageTypeResponse, len(packageTypes))
	for i, pt := range packageTypes {
		responses[i] = pt.ToResponse()
	}

	if s.cache != nil {
		s.cache.Set(ctx, constants.CACHE_KEY_PACKAGE_TYPES_ACTIVE, responses, constants.TTL_PACKAGE_TYPES_ACTIVE)
	}

	return responses, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PACKAGE_TYPES_ALL)
}
