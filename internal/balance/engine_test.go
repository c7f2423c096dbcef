package balance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		members  []Member
		expenses []Expense
		want     []Balance
	}{
		{
			name:    "equal split three members",
			members: []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}},
			expenses: []Expense{
				{
					ID: 1, PayerID: 1, Amount: 90, Category: "FOOD",
					Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}, {MemberID: 3, Amount: 30}},
				},
			},
			want: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 60},
				{MemberID: 2, MemberName: "Bob", Balance: -30},
				{MemberID: 3, MemberName: "Carol", Balance: -30},
			},
		},
		{
			name:    "percentage split nets payer to plus forty",
			members: []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
			expenses: []Expense{
				{
					ID: 1, PayerID: 1, Amount: 100, Category: "OTHER",
					Splits: []SplitEntry{{MemberID: 1, Amount: 60}, {MemberID: 2, Amount: 40}},
				},
			},
			want: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 40},
				{MemberID: 2, MemberName: "Bob", Balance: -40},
			},
		},
		{
			name:    "two expenses net against each other",
			members: []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
			expenses: []Expense{
				{
					ID: 1, PayerID: 1, Amount: 50, Category: "FOOD",
					Splits: []SplitEntry{{MemberID: 1, Amount: 25}, {MemberID: 2, Amount: 25}},
				},
				{
					ID: 2, PayerID: 2, Amount: 60, Category: "TRANSPORT",
					Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}},
				},
			},
			want: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: -5},
				{MemberID: 2, MemberName: "Bob", Balance: 5},
			},
		},
		{
			name:     "no expenses yields all zeros",
			members:  []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
			expenses: nil,
			want: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 0},
				{MemberID: 2, MemberName: "Bob", Balance: 0},
			},
		},
		{
			name:    "amounts owed by removed members are dropped",
			members: []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
			expenses: []Expense{
				{
					// member 3 left the group after this expense was recorded
					ID: 1, PayerID: 1, Amount: 90, Category: "FOOD",
					Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}, {MemberID: 3, Amount: 30}},
				},
			},
			want: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 60},
				{MemberID: 2, MemberName: "Bob", Balance: -30},
			},
		},
		{
			name:     "no members yields empty slice",
			members:  nil,
			expenses: nil,
			want:     []Balance{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.members, tt.expenses)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].MemberID, got[i].MemberID)
				assert.Equal(t, tt.want[i].MemberName, got[i].MemberName)
				assert.InDelta(t, tt.want[i].Balance, got[i].Balance, 1e-9)
			}
		})
	}
}

func TestComputeBalancesIsDeterministic(t *testing.T) {
	members := []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}}
	expenses := []Expense{
		{ID: 1, PayerID: 1, Amount: 100, Splits: []SplitEntry{{MemberID: 1, Amount: 33.33}, {MemberID: 2, Amount: 33.33}, {MemberID: 3, Amount: 33.33}}},
		{ID: 2, PayerID: 3, Amount: 45.50, Splits: []SplitEntry{{MemberID: 2, Amount: 20}, {MemberID: 3, Amount: 25.50}}},
	}

	first := ComputeBalances(members, expenses)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeBalances(members, expenses))
	}
}

// With no dangling split references, balances are a zero-sum game.
func TestComputeBalancesConservation(t *testing.T) {
	members := []Member{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"}}
	expenses := []Expense{
		{ID: 1, PayerID: 1, Amount: 120, Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}, {MemberID: 3, Amount: 30}, {MemberID: 4, Amount: 30}}},
		{ID: 2, PayerID: 2, Amount: 75.50, Splits: []SplitEntry{{MemberID: 1, Amount: 25.50}, {MemberID: 3, Amount: 50}}},
		{ID: 3, PayerID: 4, Amount: 33.34, Splits: []SplitEntry{{MemberID: 4, Amount: 11.12}, {MemberID: 2, Amount: 11.11}, {MemberID: 3, Amount: 11.11}}},
	}

	balances := ComputeBalances(members, expenses)

	var sum float64
	for _, b := range balances {
		sum += b.Balance
	}
	assert.InDelta(t, 0, sum, 0.01*float64(len(members)))
}

func TestComputeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []Settlement
	}{
		{
			name: "two debtors pay one creditor",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 60},
				{MemberID: 2, MemberName: "Bob", Balance: -30},
				{MemberID: 3, MemberName: "Carol", Balance: -30},
			},
			want: []Settlement{
				{FromID: 2, FromName: "Bob", ToID: 1, ToName: "Alice", Amount: 30},
				{FromID: 3, FromName: "Carol", ToID: 1, ToName: "Alice", Amount: 30},
			},
		},
		{
			name: "one debtor pays two creditors",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 40},
				{MemberID: 2, MemberName: "Bob", Balance: 20},
				{MemberID: 3, MemberName: "Carol", Balance: -60},
			},
			want: []Settlement{
				{FromID: 3, FromName: "Carol", ToID: 1, ToName: "Alice", Amount: 40},
				{FromID: 3, FromName: "Carol", ToID: 2, ToName: "Bob", Amount: 20},
			},
		},
		{
			name: "partial payment keeps debtor in the queue",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 10},
				{MemberID: 2, MemberName: "Bob", Balance: 15},
				{MemberID: 3, MemberName: "Carol", Balance: -25},
			},
			want: []Settlement{
				{FromID: 3, FromName: "Carol", ToID: 1, ToName: "Alice", Amount: 10},
				{FromID: 3, FromName: "Carol", ToID: 2, ToName: "Bob", Amount: 15},
			},
		},
		{
			name: "first debtor matches first creditor in presentation order",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: -20},
				{MemberID: 2, MemberName: "Bob", Balance: 30},
				{MemberID: 3, MemberName: "Carol", Balance: -10},
			},
			want: []Settlement{
				{FromID: 1, FromName: "Alice", ToID: 2, ToName: "Bob", Amount: 20},
				{FromID: 3, FromName: "Carol", ToID: 2, ToName: "Bob", Amount: 10},
			},
		},
		{
			name: "zero balances settle nothing",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 0},
				{MemberID: 2, MemberName: "Bob", Balance: 0},
			},
			want: nil,
		},
		{
			name:     "empty input",
			balances: nil,
			want:     nil,
		},
		{
			name: "sub-cent residue is treated as settled",
			balances: []Balance{
				{MemberID: 1, MemberName: "Alice", Balance: 0.005},
				{MemberID: 2, MemberName: "Bob", Balance: -0.005},
			},
			want: []Settlement{
				{FromID: 2, FromName: "Bob", ToID: 1, ToName: "Alice", Amount: 0.01},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlements(tt.balances)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].FromID, got[i].FromID)
				assert.Equal(t, tt.want[i].FromName, got[i].FromName)
				assert.Equal(t, tt.want[i].ToID, got[i].ToID)
				assert.Equal(t, tt.want[i].ToName, got[i].ToName)
				assert.InDelta(t, tt.want[i].Amount, got[i].Amount, 1e-9)
			}
		})
	}
}

// Applying every settlement must zero out every party's balance.
func TestComputeSettlementsZeroesBalances(t *testing.T) {
	balances := []Balance{
		{MemberID: 1, MemberName: "A", Balance: 83.45},
		{MemberID: 2, MemberName: "B", Balance: -17.20},
		{MemberID: 3, MemberName: "C", Balance: -12.35},
		{MemberID: 4, MemberName: "D", Balance: 6.10},
		{MemberID: 5, MemberName: "E", Balance: -60},
	}

	settlements := ComputeSettlements(balances)

	remaining := make(map[int64]float64, len(balances))
	for _, b := range balances {
		remaining[b.MemberID] = b.Balance
	}
	for _, s := range settlements {
		remaining[s.FromID] += s.Amount
		remaining[s.ToID] -= s.Amount
	}
	for id, r := range remaining {
		assert.LessOrEqual(t, math.Abs(r), 0.01, "member %d left with %v", id, r)
	}

	// Never pays yourself, never pays a non-positive amount
	for _, s := range settlements {
		assert.NotEqual(t, s.FromID, s.ToID)
		assert.Greater(t, s.Amount, 0.0)
	}
}

func TestComputeSummary(t *testing.T) {
	members := []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}}
	expenses := []Expense{
		{ID: 1, PayerID: 1, Amount: 90, Category: "FOOD", Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}, {MemberID: 3, Amount: 30}}},
		{ID: 2, PayerID: 2, Amount: 40, Category: "TRANSPORT", Splits: []SplitEntry{{MemberID: 1, Amount: 20}, {MemberID: 2, Amount: 20}}},
		{ID: 3, PayerID: 1, Amount: 10, Category: "FOOD", Splits: []SplitEntry{{MemberID: 1, Amount: 5}, {MemberID: 3, Amount: 5}}},
	}

	summary := ComputeSummary(members, expenses)

	assert.InDelta(t, 140, summary.TotalSpent, 1e-9)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "FOOD", summary.ByCategory[0].Category)
	assert.InDelta(t, 100, summary.ByCategory[0].Amount, 1e-9)
	assert.Equal(t, "TRANSPORT", summary.ByCategory[1].Category)
	assert.InDelta(t, 40, summary.ByCategory[1].Amount, 1e-9)

	require.Len(t, summary.ByMember, 3)
	assert.Equal(t, int64(1), summary.ByMember[0].MemberID)
	assert.InDelta(t, 100, summary.ByMember[0].Amount, 1e-9)
	assert.Equal(t, int64(2), summary.ByMember[1].MemberID)
	assert.InDelta(t, 40, summary.ByMember[1].Amount, 1e-9)
	assert.Equal(t, int64(3), summary.ByMember[2].MemberID)
	assert.InDelta(t, 0, summary.ByMember[2].Amount, 1e-9)
}

func TestComputeSummaryEmptyGroup(t *testing.T) {
	summary := ComputeSummary([]Member{{ID: 1, Name: "Alice"}}, nil)

	assert.Zero(t, summary.TotalSpent)
	assert.Empty(t, summary.ByCategory)
	require.Len(t, summary.ByMember, 1)
	assert.Zero(t, summary.ByMember[0].Amount)
}
