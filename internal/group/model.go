package group

import "time"

// Group represents a group in the system
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMember represents a member's membership in a group
type GroupMember struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	MemberID int64     `json:"member_id"`
	AddedAt  time.Time `json:"added_at"`

	// Populated from JOIN
	Name  string  `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
