package split

import "math"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(totalAmount float64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	// Check that all participants have percentages and they sum to 100
	var totalPercentage float64
	for _, p := range participants {
		if p.Value == nil {
			return ErrMissingPercentage
		}
		if *p.Value < 0 || *p.Value > 100 {
			return ErrPercentageOutOfRange
		}
		totalPercentage += *p.Value
	}

	if math.Abs(totalPercentage-100) > sumTolerance {
		return ErrInvalidPercentages
	}

	return nil
}

// Calculate assigns each participant their percentage of the total,
// rounded to 2 decimals per entry
func (s *PercentageStrategy) Calculate(totalAmount float64, participants []Input) ([]Entry, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(participants))
	for i, p := range participants {
		entries[i] = Entry{
			MemberID: p.MemberID,
			Amount:   roundToTwoDecimals(totalAmount * (*p.Value) / 100),
		}
	}

	return entries, nil
}
