package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves a fixed in-memory snapshot for one group ID.
type fakeStore struct {
	groupID  int64
	members  []Member
	expenses []Expense
	calls    int
}

func (f *fakeStore) GroupMembers(_ context.Context, groupID int64) ([]Member, error) {
	f.calls++
	if groupID != f.groupID {
		return nil, ErrGroupNotFound
	}
	return f.members, nil
}

func (f *fakeStore) GroupExpenses(_ context.Context, groupID int64) ([]Expense, error) {
	if groupID != f.groupID {
		return nil, ErrGroupNotFound
	}
	return f.expenses, nil
}

func newTestStore() *fakeStore {
	return &fakeStore{
		groupID: 42,
		members: []Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}},
		expenses: []Expense{
			{
				ID: 1, PayerID: 1, Amount: 90, Category: "FOOD",
				Splits: []SplitEntry{{MemberID: 1, Amount: 30}, {MemberID: 2, Amount: 30}, {MemberID: 3, Amount: 30}},
			},
		},
	}
}

func TestServiceGroupBalances(t *testing.T) {
	service := NewService(newTestStore())

	balances, err := service.GroupBalances(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, balances, 3)
	assert.InDelta(t, 60, balances[0].Balance, 1e-9)
	assert.InDelta(t, -30, balances[1].Balance, 1e-9)
	assert.InDelta(t, -30, balances[2].Balance, 1e-9)
}

func TestServiceGroupSettlements(t *testing.T) {
	service := NewService(newTestStore())

	settlements, err := service.GroupSettlements(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, settlements, 2)
	assert.Equal(t, int64(1), settlements[0].ToID)
	assert.Equal(t, int64(1), settlements[1].ToID)
	assert.InDelta(t, 60, settlements[0].Amount+settlements[1].Amount, 1e-9)
}

func TestServiceGroupSummary(t *testing.T) {
	service := NewService(newTestStore())

	summary, err := service.GroupSummary(context.Background(), 42)
	require.NoError(t, err)

	assert.InDelta(t, 90, summary.TotalSpent, 1e-9)
	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "FOOD", summary.ByCategory[0].Category)
	require.Len(t, summary.ByMember, 3)
}

func TestServiceGroupNotFound(t *testing.T) {
	service := NewService(newTestStore())
	ctx := context.Background()

	_, err := service.GroupBalances(ctx, 999)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = service.GroupSettlements(ctx, 999)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = service.GroupSummary(ctx, 999)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

// Reads never mutate the snapshot, so repeated calls agree.
func TestServiceReadsAreIdempotent(t *testing.T) {
	store := newTestStore()
	service := NewService(store)
	ctx := context.Background()

	first, err := service.GroupBalances(ctx, 42)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := service.GroupBalances(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 6, store.calls)
}
