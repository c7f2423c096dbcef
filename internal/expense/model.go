package expense

import (
	"time"

	"expense-splitter/internal/expense/split"
)

// Category tags an expense for reporting
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTravel        Category = "TRAVEL"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryAccommodation Category = "ACCOMMODATION"
	CategoryShopping      Category = "SHOPPING"
	CategoryOther         Category = "OTHER"
)

// Currency tags an expense's amount. Conversion between currencies is
// out of scope; the tag travels with the amount unchanged.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
)

// Expense represents an expense in the system
type Expense struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	PayerID     int64     `json:"payer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    Currency  `json:"currency"`
	SplitType   string    `json:"split_type"` // EQUAL, PERCENTAGE, EXACT
	Category    Category  `json:"category"`
	SpentAt     time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents one member's persisted share of an expense.
// The sum of an expense's split amounts equals its total within 0.01.
type Split struct {
	ID        int64   `json:"id"`
	ExpenseID int64   `json:"expense_id"`
	MemberID  int64   `json:"member_id"`
	Amount    float64 `json:"amount"`

	// Populated via JOIN
	MemberName string `json:"member_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its calculated splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// SplitParticipant is used when creating an expense with splits. Value
// carries the percentage for PERCENTAGE splits and the monetary amount
// for EXACT splits; it is ignored for EQUAL splits.
type SplitParticipant struct {
	MemberID int64    `json:"member_id" validate:"required"`
	Value    *float64 `json:"value,omitempty"`
}

// ToSplitInput converts to the split package's input type
func (p *SplitParticipant) ToSplitInput() split.Input {
	return split.Input{
		MemberID: p.MemberID,
		Value:    p.Value,
	}
}
