package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Description).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name, description, created_at
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// List retrieves all groups with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Group, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM groups`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	// Get groups
	query := `
		SELECT id, name, description, created_at
		FROM groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}

// Update modifies an existing group
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group and everything it owns. Expenses and their
// split rows go with the group; member records do not.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = $1)`, id); err != nil {
		return fmt.Errorf("failed to delete group expense splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return tx.Commit()
}

// AddMember adds an existing member to a group
func (r *Repository) AddMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	query := `
		INSERT INTO group_members (group_id, member_id)
		VALUES ($1, $2)
		RETURNING id, group_id, member_id, added_at
	`

	member := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID).Scan(
		&member.ID,
		&member.GroupID,
		&member.MemberID,
		&member.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a single group membership, or nil if absent
func (r *Repository) GetMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.member_id, gm.added_at, m.name, m.email
		FROM group_members gm
		JOIN members m ON gm.member_id = m.id
		WHERE gm.group_id = $1 AND gm.member_id = $2
	`

	member := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID).Scan(
		&member.ID,
		&member.GroupID,
		&member.MemberID,
		&member.AddedAt,
		&member.Name,
		&member.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetMembers retrieves all members of a group in the order they were added
func (r *Repository) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.member_id, gm.added_at, m.name, m.email
		FROM group_members gm
		JOIN members m ON gm.member_id = m.id
		WHERE gm.group_id = $1
		ORDER BY gm.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*GroupMember
	for rows.Next() {
		member := &GroupMember{}
		if err := rows.Scan(
			&member.ID,
			&member.GroupID,
			&member.MemberID,
			&member.AddedAt,
			&member.Name,
			&member.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// RemoveMember removes a member from a group
func (r *Repository) RemoveMember(ctx context.Context, groupID, memberID int64) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND member_id = $2`

	result, err := r.db.ExecContext(ctx, query, groupID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotInGroup
	}

	return nil
}

// MemberExists reports whether a member record exists at all
func (r *Repository) MemberExists(ctx context.Context, memberID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, memberID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check member: %w", err)
	}
	return exists, nil
}

// CountMemberExpenseRefs counts how many of the group's expenses
// reference the member, either as payer or as a split participant.
func (r *Repository) CountMemberExpenseRefs(ctx context.Context, groupID, memberID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(DISTINCT e.id)
		FROM expenses e
		LEFT JOIN expense_splits es ON es.expense_id = e.id
		WHERE e.group_id = $1
		  AND (e.payer_id = $2 OR es.member_id = $2)
	`
	if err := r.db.QueryRowContext(ctx, query, groupID, memberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count member expense references: %w", err)
	}
	return count, nil
}
