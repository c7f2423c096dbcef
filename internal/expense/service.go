package expense

import (
	"context"
	"errors"

	"expense-splitter/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrGroupNotFound         = errors.New("group not found")
	ErrPayerNotInGroup       = errors.New("payer must be a member of the group")
	ErrParticipantNotInGroup = errors.New("all split participants must be members of the group")
)

// Service handles expense business logic. Split amounts are validated
// and calculated here, at write time; the balance engine trusts the
// persisted rows and never re-validates them.
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
	}
}

// CreateExpense creates a new expense and calculates splits using the
// appropriate strategy. Nothing is written when any validation fails.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if req.Currency == "" {
		req.Currency = CurrencyUSD
	}
	if req.Category == "" {
		req.Category = CategoryOther
	}

	exists, err := s.repo.GroupExists(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	memberIDs, err := s.repo.GroupMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	membership := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		membership[id] = true
	}

	if !membership[req.PayerID] {
		return nil, ErrPayerNotInGroup
	}

	// Default to splitting across the whole group when no participants
	// are given (only meaningful for EQUAL; the other strategies reject
	// missing values).
	inputs := make([]split.Input, 0, len(req.Participants))
	if len(req.Participants) == 0 {
		for _, id := range memberIDs {
			inputs = append(inputs, split.Input{MemberID: id})
		}
	} else {
		for _, p := range req.Participants {
			if !membership[p.MemberID] {
				return nil, ErrParticipantNotInGroup
			}
			inputs = append(inputs, p.ToSplitInput())
		}
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	entries, err := strategy.Calculate(req.Amount, inputs)
	if err != nil {
		return nil, err
	}

	expense, splits, err := s.repo.CreateExpense(ctx, req, entries)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// List retrieves expenses, optionally filtered to one group
func (s *Service) List(ctx context.Context, groupID *int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, groupID, perPage, offset)
}

// UpdateExpense modifies an expense. When the amount, payer, split type,
// or participant set changes, the splits are recalculated the same way
// creation calculates them.
func (s *Service) UpdateExpense(ctx context.Context, id int64, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	memberIDs, err := s.repo.GroupMemberIDs(ctx, existing.GroupID)
	if err != nil {
		return nil, err
	}
	membership := make(map[int64]bool, len(memberIDs))
	for _, mid := range memberIDs {
		membership[mid] = true
	}

	if req.PayerID != nil && !membership[*req.PayerID] {
		return nil, ErrPayerNotInGroup
	}

	var entries []split.Entry
	if req.Amount != nil || req.SplitType != nil || req.Participants != nil || req.PayerID != nil {
		amount := existing.Amount
		if req.Amount != nil {
			amount = *req.Amount
		}
		splitType := existing.SplitType
		if req.SplitType != nil {
			splitType = *req.SplitType
		}

		var inputs []split.Input
		if req.Participants != nil {
			for _, p := range req.Participants {
				if !membership[p.MemberID] {
					return nil, ErrParticipantNotInGroup
				}
				inputs = append(inputs, p.ToSplitInput())
			}
		} else {
			// Reuse the existing participant set; values must be
			// re-supplied for PERCENTAGE and EXACT recalculations.
			splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, sp := range splits {
				inputs = append(inputs, split.Input{MemberID: sp.MemberID})
			}
		}

		strategy, err := s.splitFactory.CreateFromString(splitType)
		if err != nil {
			return nil, err
		}

		entries, err = strategy.Calculate(amount, inputs)
		if err != nil {
			return nil, err
		}
	}

	expense, err := s.repo.UpdateExpense(ctx, id, req, entries)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{
		Expense: expense,
		Splits:  splits,
	}, nil
}

// DeleteExpense removes an expense and its splits
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExpenseNotFound
	}

	return s.repo.DeleteExpense(ctx, id)
}
