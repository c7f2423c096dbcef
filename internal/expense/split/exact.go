package split

import "math"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a specific exact amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(totalAmount float64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	// Check that all participants have amounts and they sum to total
	var totalExact float64
	for _, p := range participants {
		if p.Value == nil {
			return ErrMissingExactAmount
		}
		if *p.Value < 0 {
			return ErrNegativeAmount
		}
		totalExact += *p.Value
	}

	if math.Abs(totalExact-totalAmount) > sumTolerance {
		return ErrInvalidExactAmounts
	}

	return nil
}

// Calculate passes the specified amounts through as-is. They are already
// in final monetary form, so no rounding is applied.
func (s *ExactStrategy) Calculate(totalAmount float64, participants []Input) ([]Entry, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(participants))
	for i, p := range participants {
		entries[i] = Entry{
			MemberID: p.MemberID,
			Amount:   *p.Value,
		}
	}

	return entries, nil
}
