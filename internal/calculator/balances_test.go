package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBalance(t *testing.T, balances Balances, member, paid, owes, balance string) {
	t.Helper()
	mb, ok := balances.Get(member)
	require.True(t, ok, "missing balance for %s", member)
	assert.True(t, mb.Paid.Equal(amt(paid)), "%s paid = %s, want %s", member, mb.Paid, paid)
	assert.True(t, mb.Owes.Equal(amt(owes)), "%s owes = %s, want %s", member, mb.Owes, owes)
	assert.True(t, mb.Balance.Equal(amt(balance)), "%s balance = %s, want %s", member, mb.Balance, balance)
}

func TestComputeBalances(t *testing.T) {
	t.Run("two people, one expense", func(t *testing.T) {
		balances, err := ComputeBalances([]string{"A", "B"}, []Expense{
			expense("e1", "100", "A", "A", "B"),
		})
		require.NoError(t, err)

		assertBalance(t, balances, "A", "100", "50", "50")
		assertBalance(t, balances, "B", "0", "50", "-50")
	})

	t.Run("three people, two expenses", func(t *testing.T) {
		balances, err := ComputeBalances([]string{"A", "B", "C"}, []Expense{
			expense("e1", "90", "A", "A", "B", "C"),
			expense("e2", "30", "B", "B", "C"),
		})
		require.NoError(t, err)

		assertBalance(t, balances, "A", "90", "30", "60")
		assertBalance(t, balances, "B", "30", "45", "-15")
		assertBalance(t, balances, "C", "0", "45", "-45")
	})

	t.Run("members without expenses are kept in group order", func(t *testing.T) {
		members := []string{"Zoe", "Alice", "Idle"}
		balances, err := ComputeBalances(members, []Expense{
			expense("e1", "20", "Alice", "Zoe", "Alice"),
		})
		require.NoError(t, err)
		require.Len(t, balances, 3)

		for i, m := range members {
			assert.Equal(t, m, balances[i].Member)
		}
		assertBalance(t, balances, "Idle", "0", "0", "0")
	})

	t.Run("payer not in split", func(t *testing.T) {
		balances, err := ComputeBalances([]string{"A", "B", "C"}, []Expense{
			expense("e1", "40", "A", "B", "C"),
		})
		require.NoError(t, err)

		assertBalance(t, balances, "A", "40", "0", "40")
		assertBalance(t, balances, "B", "0", "20", "-20")
		assertBalance(t, balances, "C", "0", "20", "-20")
	})

	t.Run("no expenses", func(t *testing.T) {
		balances, err := ComputeBalances([]string{"A", "B"}, nil)
		require.NoError(t, err)
		for _, mb := range balances {
			assert.True(t, mb.Balance.IsZero())
		}
	})

	t.Run("invalid expense rejected before aggregation", func(t *testing.T) {
		balances, err := ComputeBalances([]string{"A", "B"}, []Expense{
			expense("e1", "10", "A", "A", "B"),
			expense("e2", "0", "A", "A", "B"),
		})
		var invalid *InvalidExpenseError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "e2", invalid.ExpenseID)
		assert.Nil(t, balances)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := ComputeBalances([]string{"A", "B"}, []Expense{
			expense("e1", "10", "A", "A", "C"),
		})
		var unknown *UnknownMemberError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "C", unknown.Member)
	})
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	balances, err := ComputeBalances([]string{"A", "B", "C", "D"}, []Expense{
		expense("e1", "10", "A", "A", "B", "C"),
		expense("e2", "7.77", "B", "A", "B", "C", "D"),
		expense("e3", "100.01", "D", "B", "C", "D"),
		expense("e4", "0.01", "C", "A", "B", "C"),
	})
	require.NoError(t, err)

	assert.True(t, balances.Sum().Abs().LessThanOrEqual(balanceTolerance), "sum = %s", balances.Sum())
}

func TestComputeBalances_Idempotent(t *testing.T) {
	members := []string{"A", "B", "C"}
	expenses := []Expense{
		expense("e1", "10", "A", "A", "B", "C"),
		expense("e2", "25.50", "C", "A", "C"),
	}

	first, err := ComputeBalances(members, expenses)
	require.NoError(t, err)
	second, err := ComputeBalances(members, expenses)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	members := []string{"A", "B", "C"}
	forward := []Expense{
		expense("e1", "10", "A", "A", "B", "C"),
		expense("e2", "25.50", "C", "A", "C"),
		expense("e3", "3", "B", "B", "C"),
	}
	reversed := []Expense{forward[2], forward[1], forward[0]}

	a, err := ComputeBalances(members, forward)
	require.NoError(t, err)
	b, err := ComputeBalances(members, reversed)
	require.NoError(t, err)

	for i := range a {
		assert.True(t, a[i].Balance.Equal(b[i].Balance), "%s: %s vs %s", a[i].Member, a[i].Balance, b[i].Balance)
	}
}
