package balance

import (
	"context"
	"errors"
)

// Common errors
var ErrGroupNotFound = errors.New("group not found")

// Store supplies the read-only snapshot the engine computes over. Both
// methods must return ErrGroupNotFound when the group does not exist.
type Store interface {
	GroupMembers(ctx context.Context, groupID int64) ([]Member, error)
	GroupExpenses(ctx context.Context, groupID int64) ([]Expense, error)
}

// Service computes derived balance views for a group. It never mutates
// stored data; every call re-reads current state and computes fresh
// output, so repeated calls without intervening writes are identical.
type Service struct {
	store Store
}

// NewService creates a new balance service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GroupBalances returns each current member's net position
func (s *Service) GroupBalances(ctx context.Context, groupID int64) ([]Balance, error) {
	members, expenses, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ComputeBalances(members, expenses), nil
}

// GroupSettlements returns a payment plan that zeroes every balance
func (s *Service) GroupSettlements(ctx context.Context, groupID int64) ([]Settlement, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ComputeSettlements(balances), nil
}

// GroupSummary returns aggregate spending totals for dashboards
func (s *Service) GroupSummary(ctx context.Context, groupID int64) (*Summary, error) {
	members, expenses, err := s.snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ComputeSummary(members, expenses), nil
}

func (s *Service) snapshot(ctx context.Context, groupID int64) ([]Member, []Expense, error) {
	members, err := s.store.GroupMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.GroupExpenses(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return members, expenses, nil
}
