package expense

import "time"

// CreateExpenseRequest represents the request to create an expense.
// Participants may be omitted for EQUAL splits, in which case the
// expense is divided across the whole group.
type CreateExpenseRequest struct {
	GroupID      int64               `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,notblank,max=200"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	Currency     Currency            `json:"currency,omitempty" validate:"omitempty,oneof=USD EUR GBP INR JPY AUD CAD CHF CNY"`
	PayerID      int64               `json:"payer_id" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE EXACT"`
	Participants []*SplitParticipant `json:"participants,omitempty" validate:"omitempty,min=1,dive"`
	Category     Category            `json:"category,omitempty" validate:"omitempty,oneof=FOOD TRAVEL UTILITIES ENTERTAINMENT ACCOMMODATION SHOPPING OTHER"`
	Date         *time.Time          `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense.
// Changing the amount, split type, payer, or participants recalculates
// the persisted splits.
type UpdateExpenseRequest struct {
	Description  *string             `json:"description,omitempty" validate:"omitempty,notblank,max=200"`
	Amount       *float64            `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency     *Currency           `json:"currency,omitempty" validate:"omitempty,oneof=USD EUR GBP INR JPY AUD CAD CHF CNY"`
	PayerID      *int64              `json:"payer_id,omitempty"`
	SplitType    *string             `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL PERCENTAGE EXACT"`
	Participants []*SplitParticipant `json:"participants,omitempty" validate:"omitempty,min=1,dive"`
	Category     *Category           `json:"category,omitempty" validate:"omitempty,oneof=FOOD TRAVEL UTILITIES ENTERTAINMENT ACCOMMODATION SHOPPING OTHER"`
	Date         *time.Time          `json:"date,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Currency    Currency         `json:"currency"`
	SplitType   string           `json:"split_type"`
	Category    Category         `json:"category"`
	Date        string           `json:"date"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID         int64   `json:"id"`
	ExpenseID  int64   `json:"expense_id"`
	MemberID   int64   `json:"member_id"`
	MemberName string  `json:"member_name,omitempty"`
	Amount     float64 `json:"amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SplitType:   e.SplitType,
		Category:    e.Category,
		Date:        e.SpentAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		MemberID:   s.MemberID,
		MemberName: s.MemberName,
		Amount:     s.Amount,
	}
}
