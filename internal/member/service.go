package member

import (
	"context"
	"errors"
)

// Common errors
var ErrMemberNotFound = errors.New("member not found")

// Service handles member business logic
type Service struct {
	repo *Repository
}

// NewService creates a new member service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new member
func (s *Service) Create(ctx context.Context, req *CreateMemberRequest) (*Member, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a member by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// List retrieves all members with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Member, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing member
func (s *Service) Update(ctx context.Context, id int64, req *UpdateMemberRequest) (*Member, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrMemberNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a member
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMemberNotFound
	}

	return s.repo.Delete(ctx, id)
}
