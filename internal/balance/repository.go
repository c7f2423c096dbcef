package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository loads the balance snapshot from the database. It implements
// Store with plain read queries and owns no tables of its own.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupMembers returns the group's current members in the order they
// were added, or ErrGroupNotFound if the group does not exist.
func (r *Repository) GroupMembers(ctx context.Context, groupID int64) ([]Member, error) {
	if err := r.checkGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	query := `
		SELECT m.id, m.name
		FROM group_members gm
		JOIN members m ON gm.member_id = m.id
		WHERE gm.group_id = $1
		ORDER BY gm.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// GroupExpenses returns all expenses for the group with their split
// entries attached, or ErrGroupNotFound if the group does not exist.
func (r *Repository) GroupExpenses(ctx context.Context, groupID int64) ([]Expense, error) {
	if err := r.checkGroupExists(ctx, groupID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, payer_id, amount, category
		FROM expenses
		WHERE group_id = $1
		ORDER BY spent_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	var expenseIDs []int64
	index := make(map[int64]int)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.PayerID, &e.Amount, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
		expenseIDs = append(expenseIDs, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	splitQuery := `
		SELECT expense_id, member_id, amount
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID int64
		var s SplitEntry
		if err := splitRows.Scan(&expenseID, &s.MemberID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		i := index[expenseID]
		expenses[i].Splits = append(expenses[i].Splits, s)
	}

	return expenses, splitRows.Err()
}

func (r *Repository) checkGroupExists(ctx context.Context, groupID int64) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}
	if !exists {
		return ErrGroupNotFound
	}
	return nil
}
