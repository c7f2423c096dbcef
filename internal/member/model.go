package member

import "time"

// Member represents a person who can participate in groups and expenses.
// Members exist independently of any group and are shared by reference;
// removing a member from a group never deletes the member record.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
