package expense

import (
	"context"
	"database/sql"
	"fmt"

	"expense-splitter/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts an expense and its split rows in one transaction
func (r *Repository) CreateExpense(ctx context.Context, req *CreateExpenseRequest, entries []split.Entry) (*Expense, []*Split, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, currency, split_type, category, spent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
		RETURNING id, group_id, payer_id, description, amount, currency, split_type, category, spent_at, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query,
		req.GroupID,
		req.PayerID,
		req.Description,
		req.Amount,
		req.Currency,
		req.SplitType,
		req.Category,
		req.Date,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expense.ID, entries)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return expense, splits, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency, e.split_type, e.category, e.spent_at, e.created_at, m.name
		FROM expenses e
		JOIN members m ON e.payer_id = m.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.member_id, s.amount, m.name
		FROM expense_splits s
		JOIN members m ON s.member_id = m.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(
			&s.ID,
			&s.ExpenseID,
			&s.MemberID,
			&s.Amount,
			&s.MemberName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// List retrieves expenses, optionally filtered to one group, newest first
func (r *Repository) List(ctx context.Context, groupID *int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE ($1::bigint IS NULL OR group_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency, e.split_type, e.category, e.spent_at, e.created_at, m.name
		FROM expenses e
		JOIN members m ON e.payer_id = m.id
		WHERE ($1::bigint IS NULL OR e.group_id = $1)
		ORDER BY e.spent_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.SplitType,
			&expense.Category,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// UpdateExpense modifies an expense; when entries is non-nil the split
// rows are replaced in the same transaction.
func (r *Repository) UpdateExpense(ctx context.Context, id int64, req *UpdateExpenseRequest, entries []split.Entry) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET description = COALESCE($2, description),
		    amount = COALESCE($3, amount),
		    currency = COALESCE($4, currency),
		    payer_id = COALESCE($5, payer_id),
		    split_type = COALESCE($6, split_type),
		    category = COALESCE($7, category),
		    spent_at = COALESCE($8, spent_at)
		WHERE id = $1
		RETURNING id, group_id, payer_id, description, amount, currency, split_type, category, spent_at, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query,
		id,
		req.Description,
		req.Amount,
		req.Currency,
		req.PayerID,
		req.SplitType,
		req.Category,
		req.Date,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.Category,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if entries != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to delete old splits: %w", err)
		}
		if _, err := insertSplits(ctx, tx, id, entries); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense and its splits
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return tx.Commit()
}

// GroupExists reports whether a group record exists
func (r *Repository) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return exists, nil
}

// GroupMemberIDs returns the IDs of a group's current members in the
// order they were added
func (r *Repository) GroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	query := `
		SELECT member_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group member ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID int64, entries []split.Entry) ([]*Split, error) {
	query := `
		INSERT INTO expense_splits (expense_id, member_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, expense_id, member_id, amount
	`

	splits := make([]*Split, len(entries))
	for i, entry := range entries {
		s := &Split{}
		err := tx.QueryRowContext(ctx, query, expenseID, entry.MemberID, entry.Amount).Scan(
			&s.ID,
			&s.ExpenseID,
			&s.MemberID,
			&s.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	return splits, nil
}
