package balance

// Member is the read-only membership view the engine consumes.
// Presentation order is the order members were added to the group.
type Member struct {
	ID   int64
	Name string
}

// SplitEntry is one member's share of an expense
type SplitEntry struct {
	MemberID int64
	Amount   float64
}

// Expense is the read-only expense view the engine consumes.
// Splits are already validated at write time and are not re-checked here.
type Expense struct {
	ID       int64
	PayerID  int64
	Amount   float64
	Category string
	Splits   []SplitEntry
}

// Balance is a member's net position in a group, derived on demand and
// never persisted. Positive means the group owes the member, negative
// means the member owes the group.
type Balance struct {
	MemberID   int64   `json:"member_id"`
	MemberName string  `json:"member_name"`
	Balance    float64 `json:"balance"`
}

// Settlement is a suggested payment between two members. Applying every
// settlement for a group drives all balances to zero.
type Settlement struct {
	FromID   int64   `json:"from"`
	FromName string  `json:"from_name"`
	ToID     int64   `json:"to"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}

// CategoryTotal is the amount spent under one category tag
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MemberTotal is the amount a member has paid across all group expenses
type MemberTotal struct {
	MemberID   int64   `json:"member_id"`
	MemberName string  `json:"member_name"`
	Amount     float64 `json:"amount"`
}

// Summary aggregates a group's spending for dashboard views
type Summary struct {
	TotalSpent float64         `json:"total_spent"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByMember   []MemberTotal   `json:"by_member"`
}
