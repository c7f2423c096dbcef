package member

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles member data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new member repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member into the database
func (r *Repository) Create(ctx context.Context, req *CreateMemberRequest) (*Member, error) {
	query := `
		INSERT INTO members (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Email).Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a member by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	query := `
		SELECT id, name, email, created_at
		FROM members
		WHERE id = $1
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// List retrieves all members with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM members`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	// Get members
	query := `
		SELECT id, name, email, created_at
		FROM members
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Email,
			&member.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, total, nil
}

// Update modifies an existing member
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, name, email, created_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Email).Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// Delete removes a member from the database
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM members WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
