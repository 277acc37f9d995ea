package calculator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applySettlement returns each member's balance after every transaction is paid.
func applySettlement(balances Balances, transactions []Transaction) map[string]decimal.Decimal {
	residual := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		residual[b.Member] = b.Balance
	}
	for _, tx := range transactions {
		residual[tx.From] = residual[tx.From].Add(tx.Amount)
		residual[tx.To] = residual[tx.To].Sub(tx.Amount)
	}
	return residual
}

func countParties(balances Balances) (debtors, creditors int) {
	for _, b := range balances {
		switch {
		case b.Balance.LessThan(Epsilon.Neg()):
			debtors++
		case b.Balance.GreaterThan(Epsilon):
			creditors++
		}
	}
	return debtors, creditors
}

func TestSimplify_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		expenses []Expense
		want     []Transaction
	}{
		{
			name:     "two people",
			members:  []string{"A", "B"},
			expenses: []Expense{expense("e1", "100", "A", "A", "B")},
			want:     []Transaction{{From: "B", To: "A", Amount: amt("50")}},
		},
		{
			name:    "largest debtor pays first",
			members: []string{"A", "B", "C"},
			expenses: []Expense{
				expense("e1", "90", "A", "A", "B", "C"),
				expense("e2", "30", "B", "B", "C"),
			},
			want: []Transaction{
				{From: "C", To: "A", Amount: amt("45")},
				{From: "B", To: "A", Amount: amt("15")},
			},
		},
		{
			name:    "three-way cycle settles to nothing",
			members: []string{"A", "B", "C"},
			expenses: []Expense{
				expense("e1", "10", "A", "A", "B", "C"),
				expense("e2", "10", "B", "A", "B", "C"),
				expense("e3", "10", "C", "A", "B", "C"),
			},
			want: []Transaction{},
		},
		{
			name:     "nobody owes anything",
			members:  []string{"A", "B"},
			expenses: []Expense{expense("e1", "10", "A", "A")},
			want:     []Transaction{},
		},
		{
			name:    "equal debts keep group order",
			members: []string{"A", "B", "C"},
			expenses: []Expense{
				expense("e1", "30", "C", "A", "B", "C"),
			},
			want: []Transaction{
				{From: "A", To: "C", Amount: amt("10")},
				{From: "B", To: "C", Amount: amt("10")},
			},
		},
		{
			name:    "one debtor, two creditors",
			members: []string{"A", "B", "C"},
			expenses: []Expense{
				expense("e1", "20", "A", "C"),
				expense("e2", "40", "B", "C"),
			},
			want: []Transaction{
				{From: "C", To: "B", Amount: amt("40")},
				{From: "C", To: "A", Amount: amt("20")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.members, tt.expenses)
			require.NoError(t, err)

			got, err := Simplify(balances)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.want))

			for i, want := range tt.want {
				assert.Equal(t, want.From, got[i].From, "transaction %d from", i)
				assert.Equal(t, want.To, got[i].To, "transaction %d to", i)
				assert.True(t, want.Amount.Equal(got[i].Amount), "transaction %d amount = %s, want %s", i, got[i].Amount, want.Amount)
			}
		})
	}
}

func TestSimplify_NonTerminatingShares(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		expenses []Expense
	}{
		{
			name:     "ten split three ways",
			members:  []string{"A", "B", "C"},
			expenses: []Expense{expense("e1", "10", "A", "A", "B", "C")},
		},
		{
			name:    "sevenths and thirds",
			members: []string{"A", "B", "C", "D", "E", "F", "G"},
			expenses: []Expense{
				expense("e1", "100", "A", "A", "B", "C", "D", "E", "F", "G"),
				expense("e2", "1", "B", "A", "C", "D"),
				expense("e3", "0.10", "G", "E", "F", "G"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.members, tt.expenses)
			require.NoError(t, err)

			transactions, err := Simplify(balances)
			require.NoError(t, err)

			for member, r := range applySettlement(balances, transactions) {
				assert.True(t, r.Abs().LessThanOrEqual(Epsilon), "%s left with %s", member, r)
			}
			for _, tx := range transactions {
				assert.True(t, tx.Amount.GreaterThan(Epsilon), "transaction %+v below epsilon", tx)
			}
		})
	}
}

func TestSimplify_Unbalanced(t *testing.T) {
	balances := Balances{
		{Member: "A", Balance: amt("10")},
		{Member: "B", Balance: amt("-9")},
	}

	_, err := Simplify(balances)

	var unbalanced *UnbalancedInputError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.Sum.Equal(amt("1")))
}

func TestSimplify_DeadZone(t *testing.T) {
	balances := Balances{
		{Member: "A", Balance: amt("0.005")},
		{Member: "B", Balance: amt("-0.005")},
	}

	got, err := Simplify(balances)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// randomGroup builds expenses whose shares are whole units, so every non-zero
// balance is at least 1 and nothing falls into the dead zone.
func randomGroup(r *rand.Rand, wholeShares bool) ([]string, []Expense) {
	n := 2 + r.IntN(7)
	members := make([]string, n)
	for i := range members {
		members[i] = fmt.Sprintf("m%d", i)
	}

	expenses := make([]Expense, 1+r.IntN(30))
	for i := range expenses {
		var split []string
		for _, m := range members {
			if r.IntN(2) == 0 {
				split = append(split, m)
			}
		}
		if len(split) == 0 {
			split = []string{members[r.IntN(n)]}
		}

		var amount decimal.Decimal
		if wholeShares {
			amount = decimal.NewFromInt(int64(len(split) * (1 + r.IntN(200))))
		} else {
			amount = decimal.New(int64(1+r.IntN(100000)), -2)
		}

		expenses[i] = Expense{
			ID:           fmt.Sprintf("e%d", i),
			Amount:       amount,
			PaidBy:       members[r.IntN(n)],
			SplitBetween: split,
		}
	}
	return members, expenses
}

func TestSimplify_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for iter := 0; iter < 200; iter++ {
		wholeShares := iter%2 == 0
		members, expenses := randomGroup(r, wholeShares)

		balances, err := ComputeBalances(members, expenses)
		require.NoError(t, err)
		require.True(t, balances.Sum().Abs().LessThanOrEqual(balanceTolerance), "iteration %d: sum %s", iter, balances.Sum())

		transactions, err := Simplify(balances)
		require.NoError(t, err)

		debtors, creditors := countParties(balances)
		if debtors > 0 && creditors > 0 {
			assert.LessOrEqual(t, len(transactions), debtors+creditors-1, "iteration %d", iter)
		} else {
			assert.Empty(t, transactions, "iteration %d", iter)
		}

		// Whole shares leave nothing in the dead zone, so settlement is exact.
		// Otherwise each member left out of the matching may strand up to Epsilon.
		tolerance := Epsilon.Mul(decimal.NewFromInt(int64(len(members))))
		if wholeShares {
			tolerance = balanceTolerance
		}
		for member, rest := range applySettlement(balances, transactions) {
			assert.True(t, rest.Abs().LessThanOrEqual(tolerance), "iteration %d: %s left with %s", iter, member, rest)
		}
		for _, tx := range transactions {
			assert.True(t, tx.Amount.GreaterThan(Epsilon), "iteration %d: %+v", iter, tx)
			assert.NotEqual(t, tx.From, tx.To)
		}
	}
}

func TestSettle(t *testing.T) {
	members := []string{"A", "B", "C"}
	expenses := []Expense{
		expense("e1", "90", "A", "A", "B", "C"),
		expense("e2", "30", "B", "B", "C"),
	}

	t.Run("netted", func(t *testing.T) {
		got, err := Settle(members, expenses, ModeNetted)
		require.NoError(t, err)
		require.Len(t, got, 2)

		total := decimal.Zero
		for _, tx := range got {
			total = total.Add(tx.Amount)
			assert.Empty(t, tx.ExpenseID)
		}
		assert.True(t, total.Equal(amt("60")))
		assert.Equal(t, "C", got[0].From)
	})

	t.Run("per-expense", func(t *testing.T) {
		got, err := Settle(members, expenses, ModePerExpense)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, Transaction{From: "B", To: "A", Amount: got[0].Amount, ExpenseID: "e1", Description: "e1"}, got[0])
		assert.Equal(t, "C", got[1].From)
		assert.Equal(t, "e2", got[2].ExpenseID)
		assert.True(t, got[2].Amount.Equal(amt("15")))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := Settle(members, expenses, Mode("cheapest"))
		assert.True(t, errors.Is(err, ErrUnknownMode))
	})

	t.Run("validation errors surface in both modes", func(t *testing.T) {
		bad := []Expense{expense("e1", "10", "A", "Z")}
		for _, mode := range []Mode{ModeNetted, ModePerExpense} {
			_, err := Settle(members, bad, mode)
			var unknown *UnknownMemberError
			assert.ErrorAs(t, err, &unknown, "mode %s", mode)
		}
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNetted, false},
		{"netted", ModeNetted, false},
		{"per-expense", ModePerExpense, false},
		{"detailed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
