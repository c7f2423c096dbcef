package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name      string
		splitType Type
		wantType  Type
		wantErr   bool
	}{
		{name: "equal", splitType: TypeEqual, wantType: TypeEqual},
		{name: "percentage", splitType: TypePercentage, wantType: TypePercentage},
		{name: "exact", splitType: TypeExact, wantType: TypeExact},
		{name: "unknown type", splitType: Type("RANDOM"), wantErr: true},
		{name: "empty type", splitType: Type(""), wantErr: true},
		{name: "lowercase is not accepted", splitType: Type("equal"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := factory.Create(tt.splitType)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSplit)
				assert.Nil(t, strategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, strategy.Type())
		})
	}
}

func TestFactoryCreateFromString(t *testing.T) {
	factory := NewFactory()

	strategy, err := factory.CreateFromString("PERCENTAGE")
	require.NoError(t, err)
	assert.Equal(t, TypePercentage, strategy.Type())

	_, err = factory.CreateFromString("SOMETHING_ELSE")
	assert.ErrorIs(t, err, ErrInvalidSplit)
}

func TestEqualStrategy(t *testing.T) {
	strategy := &EqualStrategy{}

	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantAmounts  []float64
		wantErr      error
	}{
		{
			name:         "three members split evenly",
			total:        90,
			participants: []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}},
			wantAmounts:  []float64{30, 30, 30},
		},
		{
			name:         "single participant gets everything",
			total:        42.50,
			participants: []Input{{MemberID: 7}},
			wantAmounts:  []float64{42.50},
		},
		{
			name:         "non-terminating share rounds per entry",
			total:        100,
			participants: []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}},
			wantAmounts:  []float64{33.33, 33.33, 33.33},
		},
		{
			name:         "zero amount produces zero shares",
			total:        0,
			participants: []Input{{MemberID: 1}, {MemberID: 2}},
			wantAmounts:  []float64{0, 0},
		},
		{
			name:         "values on participants are ignored",
			total:        10,
			participants: []Input{{MemberID: 1, Value: ptr(99)}, {MemberID: 2}},
			wantAmounts:  []float64{5, 5},
		},
		{
			name:    "no participants",
			total:   50,
			wantErr: ErrNoParticipants,
		},
		{
			name:         "negative amount",
			total:        -10,
			participants: []Input{{MemberID: 1}},
			wantErr:      ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := strategy.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidSplit)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.participants))
			for i, e := range entries {
				assert.Equal(t, tt.participants[i].MemberID, e.MemberID)
				assert.InDelta(t, tt.wantAmounts[i], e.Amount, 1e-9)
			}
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	strategy := &PercentageStrategy{}

	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantAmounts  []float64
		wantErr      error
	}{
		{
			name:  "60/40 split",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(60)},
				{MemberID: 2, Value: ptr(40)},
			},
			wantAmounts: []float64{60, 40},
		},
		{
			name:  "uneven percentages round per entry",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(33.33)},
				{MemberID: 2, Value: ptr(33.33)},
				{MemberID: 3, Value: ptr(33.34)},
			},
			wantAmounts: []float64{33.33, 33.33, 33.34},
		},
		{
			name:  "zero percent participant gets nothing",
			total: 80,
			participants: []Input{
				{MemberID: 1, Value: ptr(100)},
				{MemberID: 2, Value: ptr(0)},
			},
			wantAmounts: []float64{80, 0},
		},
		{
			name:  "sum within tolerance is accepted",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(50.004)},
				{MemberID: 2, Value: ptr(49.999)},
			},
			wantAmounts: []float64{50, 50},
		},
		{
			name:  "percentages summing to 90 are rejected",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(50)},
				{MemberID: 2, Value: ptr(40)},
			},
			wantErr: ErrInvalidPercentages,
		},
		{
			name:  "percentages summing above 100 are rejected",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(70)},
				{MemberID: 2, Value: ptr(40)},
			},
			wantErr: ErrInvalidPercentages,
		},
		{
			name:  "missing percentage",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(60)},
				{MemberID: 2},
			},
			wantErr: ErrMissingPercentage,
		},
		{
			name:  "negative percentage",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(-10)},
				{MemberID: 2, Value: ptr(110)},
			},
			wantErr: ErrPercentageOutOfRange,
		},
		{
			name:    "no participants",
			total:   100,
			wantErr: ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := strategy.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidSplit)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.participants))
			for i, e := range entries {
				assert.Equal(t, tt.participants[i].MemberID, e.MemberID)
				assert.InDelta(t, tt.wantAmounts[i], e.Amount, 1e-9)
			}
		})
	}
}

func TestExactStrategy(t *testing.T) {
	strategy := &ExactStrategy{}

	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantAmounts  []float64
		wantErr      error
	}{
		{
			name:  "amounts pass through untouched",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(70.25)},
				{MemberID: 2, Value: ptr(29.75)},
			},
			wantAmounts: []float64{70.25, 29.75},
		},
		{
			name:  "sub-cent precision is preserved",
			total: 10,
			participants: []Input{
				{MemberID: 1, Value: ptr(3.333)},
				{MemberID: 2, Value: ptr(6.667)},
			},
			wantAmounts: []float64{3.333, 6.667},
		},
		{
			name:  "zero amount participant is allowed",
			total: 50,
			participants: []Input{
				{MemberID: 1, Value: ptr(50)},
				{MemberID: 2, Value: ptr(0)},
			},
			wantAmounts: []float64{50, 0},
		},
		{
			name:  "amounts not summing to total are rejected",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(60)},
				{MemberID: 2, Value: ptr(30)},
			},
			wantErr: ErrInvalidExactAmounts,
		},
		{
			name:  "missing amount",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(100)},
				{MemberID: 2},
			},
			wantErr: ErrMissingExactAmount,
		},
		{
			name:  "negative share",
			total: 100,
			participants: []Input{
				{MemberID: 1, Value: ptr(-20)},
				{MemberID: 2, Value: ptr(120)},
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "no participants",
			total:   100,
			wantErr: ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := strategy.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidSplit)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.participants))
			for i, e := range entries {
				assert.Equal(t, tt.participants[i].MemberID, e.MemberID)
				assert.InDelta(t, tt.wantAmounts[i], e.Amount, 1e-9)
			}
		})
	}
}

// Shares from any valid calculation must add back up to the total,
// within a cent per participant of rounding drift.
func TestSplitSumsStayCloseToTotal(t *testing.T) {
	factory := NewFactory()

	cases := []struct {
		splitType    Type
		total        float64
		participants []Input
	}{
		{TypeEqual, 100, []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}}},
		{TypeEqual, 99.99, []Input{{MemberID: 1}, {MemberID: 2}, {MemberID: 3}, {MemberID: 4}, {MemberID: 5}, {MemberID: 6}, {MemberID: 7}}},
		{TypePercentage, 250.75, []Input{{MemberID: 1, Value: ptr(12.5)}, {MemberID: 2, Value: ptr(37.5)}, {MemberID: 3, Value: ptr(50)}}},
		{TypeExact, 75.50, []Input{{MemberID: 1, Value: ptr(25.50)}, {MemberID: 2, Value: ptr(50)}}},
	}

	for _, c := range cases {
		strategy, err := factory.Create(c.splitType)
		require.NoError(t, err)

		entries, err := strategy.Calculate(c.total, c.participants)
		require.NoError(t, err)

		var sum float64
		for _, e := range entries {
			sum += e.Amount
		}
		maxDrift := 0.01 * float64(len(c.participants))
		assert.LessOrEqual(t, math.Abs(sum-c.total), maxDrift,
			"split type %s: shares sum %v too far from total %v", c.splitType, sum, c.total)
	}
}
