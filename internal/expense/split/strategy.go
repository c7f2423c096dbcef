package split

import (
	"errors"
	"fmt"
	"math"
)

// Type identifies a split policy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeExact      Type = "EXACT"
)

// Input represents one participant in a split with an optional value.
// Value carries the percentage for PERCENTAGE splits and the monetary
// amount for EXACT splits; it is ignored for EQUAL splits.
type Input struct {
	MemberID int64    `json:"member_id"`
	Value    *float64 `json:"value,omitempty"`
}

// Entry represents the calculated split for a single participant
type Entry struct {
	MemberID int64   `json:"member_id"`
	Amount   float64 `json:"amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the split amounts for all participants
	Calculate(totalAmount float64, participants []Input) ([]Entry, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, participants []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidSplit, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

// ErrInvalidSplit is the base error for every split validation failure.
// The specific sentinels below all wrap it, so callers can match the
// whole family with errors.Is(err, ErrInvalidSplit).
var ErrInvalidSplit = errors.New("invalid split")

var (
	ErrNoParticipants       = fmt.Errorf("%w: at least one participant is required", ErrInvalidSplit)
	ErrNegativeAmount       = fmt.Errorf("%w: amounts cannot be negative", ErrInvalidSplit)
	ErrInvalidPercentages   = fmt.Errorf("%w: percentages must sum to 100", ErrInvalidSplit)
	ErrInvalidExactAmounts  = fmt.Errorf("%w: split amounts must sum to total", ErrInvalidSplit)
	ErrMissingPercentage    = fmt.Errorf("%w: percentage value required for all participants", ErrInvalidSplit)
	ErrMissingExactAmount   = fmt.Errorf("%w: exact amount required for all participants", ErrInvalidSplit)
	ErrPercentageOutOfRange = fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidSplit)
)

// sumTolerance absorbs floating-point drift in percentage/exact sums
const sumTolerance = 0.01

// roundToTwoDecimals rounds half away from zero to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
