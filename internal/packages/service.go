package packages

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
	ErrPackageNotFound    = errors.New("package not found")
	ErrNotPackageOwner    = errors.New("package belongs to another guide")
	ErrPackageHasBookings = errors.New("package has active bookings and cannot be deleted")
)

type Service interface {
	CreatePackage(ctx context.Context, guideID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error)
	GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool, req UpdatePackageRequest) (*PackageResponse, error)
	DeletePackage(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool) error
	GetAllPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error)
	GetGuidePackages(ctx context.Context, guideID uuid.UUID, query PackageListQuery) (*PaginatedPackages, error)
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

func (s *service) CreatePackage(ctx context.Context, guideID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	status := PackageStatus(req.Status)
	if status == "" {
		status = StatusDraft
	}

	pkg := &Package{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Destination:  strings.TrimSpace(req.Destination),
		CostFrom:     req.CostFrom,
		Currency:     currency,
		DurationDays: req.DurationDays,
		TotalSeats:   req.TotalSeats,
		Itinerary:    ParseCommaList(req.Itinerary),
		Included:     ParseCommaList(req.Included),
		Excluded:     ParseCommaList(req.Excluded),
		Tags:         ParseCommaList(req.Tags),
		Images:       ParseCommaList(req.Images),
		Status:       status,
		OwnerGuideID: guideID,
	}

	if req.PackageTypeID != "" {
		typeID, err := uuid.Parse(req.PackageTypeID)
		if err != nil {
			return nil, fmt.Errorf("invalid package type id: %w", err)
		}
		pkg.PackageTypeID = typeID
	}

	if err := s.repo.Create(pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.invalidateCache(ctx, nil)

	response := pkg.ToResponse()
	return &response, nil
}

func (s *service) GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	cacheKey := constants.BuildPackageDetailKey(id.String())

	var cached PackageResponse
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	pkg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	response := pkg.ToResponse()

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, response, constants.TTL_PACKAGE_DETAIL)
	}

	return &response, nil
}

func (s *service) UpdatePackage(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool, req UpdatePackageRequest) (*PackageResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	if !isAdmin && current.OwnerGuideID != callerID {
		return nil, ErrNotPackageOwner
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Destination != nil {
		updates["destination"] = strings.TrimSpace(*req.Destination)
	}
	if req.CostFrom != nil {
		updates["cost_from"] = *req.CostFrom
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.TotalSeats != nil {
		if *req.TotalSeats < current.BookedSeats {
			return nil, fmt.Errorf("total seats cannot be reduced below %d already booked", current.BookedSeats)
		}
		updates["total_seats"] = *req.TotalSeats
	}
	if req.Itinerary != nil {
		updates["itinerary"] = StringList(ParseCommaList(*req.Itinerary))
	}
	if req.Included != nil {
		updates["included"] = StringList(ParseCommaList(*req.Included))
	}
	if req.Excluded != nil {
		updates["excluded"] = StringList(ParseCommaList(*req.Excluded))
	}
	if req.Tags != nil {
		updates["tags"] = StringList(ParseCommaList(*req.Tags))
	}
	if req.Images != nil {
		updates["images"] = StringList(ParseCommaList(*req.Images))
	}
	if req.PackageTypeID != nil {
		typeID, err := uuid.Parse(*req.PackageTypeID)
		if err != nil {
			return nil, fmt.Errorf("invalid package type id: %w", err)
		}
		updates["package_type_id"] = typeID
	}
	if req.Status != nil {
		updates["status"] = PackageStatus(*req.Status)
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidateCache(ctx, &id)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeletePackage(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool) error {
	pkg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to get package: %w", err)
	}

	if !isAdmin && pkg.OwnerGuideID != callerID {
		return ErrNotPackageOwner
	}

	if pkg.BookedSeats > 0 {
		return ErrPackageHasBookings
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidateCache(ctx, &id)
	return nil
}

func (s *service) GetAllPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	// Only unfiltered type/status listings go through the cache; filtered
	// searches hit the database directly.
	cacheable := query.Search == "" && query.Destination == "" &&
		query.MinCost == nil && query.MaxCost == nil
	cacheKey := constants.BuildPackageListKey(query.Page, query.Limit, query.Type, query.Status)

	if cacheable && s.cache != nil {
		var cached PaginatedPackages
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	packages, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}

	result := s.paginate(packages, totalCount, query)

	if cacheable && s.cache != nil {
		s.cache.Set(ctx, cacheKey, result, constants.TTL_PACKAGE_LIST)
	}

	return result, nil
}

func (s *service) GetGuidePackages(ctx context.Context, guideID uuid.UUID, query PackageListQuery) (*PaginatedPackages, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	packages, totalCount, err := s.repo.GetByGuide(guideID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide packages: %w", err)
	}

	return s.paginate(packages, totalCount, query), nil
}

func (s *service) paginate(packages []Package, totalCount int64, query PackageListQuery) *PaginatedPackages {
	responses := make([]PackageResponse, len(packages))
	for i, pkg := range packages {
		responses[i] = pkg.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedPackages{
		Packages:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}
}

func (s *service) invalidateCache(ctx context.Context, packageID *uuid.UUID) {
	if s.cache == nil {
		return
	}

	s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PACKAGES_ALL)
	if packageID != nil {
		s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PACKAGE_DETAIL+packageID.String()+"*")
	}
}
