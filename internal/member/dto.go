package member

// CreateMemberRequest represents the request body for creating a member
type CreateMemberRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateMemberRequest represents the request body for updating a member
type UpdateMemberRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// MemberResponse represents the response for a single member
type MemberResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
