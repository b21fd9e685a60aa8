package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tripcoach/internal/shared/constants"
	"tripcoach/pkg/cache"
)

type Service interface {
	GetAdminDashboard(ctx context.Context) (*AdminDashboard, error)
	GetGuideDashboard(ctx context.Context, guideID uuid.UUID) (*GuideDashboard, error)
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

func (s *service) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	if s.cache != nil {
		var cached AdminDashboard
		if err := s.cache.Get(ctx, constants.CACHE_KEY_DASHBOARD_ADMIN, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard, err := s.repo.GetAdminDashboard()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin dashboard: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, constants.CACHE_KEY_DASHBOARD_ADMIN, dashboard, constants.TTL_DASHBOARD)
	}

	return dashboard, nil
}

func (s *service) GetGuideDashboard(ctx context.Context, guideID uuid.UUID) (*GuideDashboard, error) {
	cacheKey := constants.BuildGuideDashboardKey(guideID.String())

	if s.cache != nil {
		var cached GuideDashboard
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard, err := s.repo.GetGuideDashboard(guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide dashboard: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, dashboard, constants.TTL_DASHBOARD)
	}

	return dashboard, nil
}
