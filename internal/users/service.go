package users

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrSelfDemotion    = errors.New("admins cannot change their own role or status")
	ErrNothingToUpdate = errors.New("no fields to update")
)

type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	GetAllUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error)
	UpdateUser(ctx context.Context, adminID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, adminID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) GetAllUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	users, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedUsers{
		Users:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateUser applies an admin patch. Role, status and is_verified are
// independent fields; none constrains the others.
func (s *service) UpdateUser(ctx context.Context, adminID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if adminID == id && (req.Role != nil || req.Status != nil) {
		return nil, ErrSelfDemotion
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if !IsValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = Role(*req.Role)
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = Status(*req.Status)
	}
	if req.IsVerified != nil {
		updates["is_verified"] = *req.IsVerified
	}

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}
	updates["updated_at"] = time.Now()

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.repo.Update(ctx, id, map[string]interface{}{
		"name":       req.Name,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) DeleteUser(ctx context.Context, adminID, id uuid.UUID) error {
	if adminID == id {
		return ErrSelfDemotion
	}
	return s.repo.Delete(ctx, id)
}
