package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount float64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate divides the total amount evenly among all participants,
// payer included. Each share is rounded to 2 decimals independently;
// the rounding residue is not redistributed, so the sum of shares may
// drift from the total by a fraction of a cent per participant.
func (s *EqualStrategy) Calculate(totalAmount float64, participants []Input) ([]Entry, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	share := roundToTwoDecimals(totalAmount / float64(len(participants)))

	entries := make([]Entry, len(participants))
	for i, p := range participants {
		entries[i] = Entry{
			MemberID: p.MemberID,
			Amount:   share,
		}
	}

	return entries, nil
}
