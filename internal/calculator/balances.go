package calculator

import "github.com/shopspring/decimal"

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member  string
	Paid    decimal.Decimal // Total amount fronted across all expenses
	Owes    decimal.Decimal // Sum of this member's shares
	Balance decimal.Decimal // Positive = owed money, Negative = owes money
}

// Balances holds one entry per group member, in group order.
type Balances []MemberBalance

// Get returns the balance entry for a member.
func (b Balances) Get(member string) (MemberBalance, bool) {
	for _, mb := range b {
		if mb.Member == member {
			return mb, true
		}
	}
	return MemberBalance{}, false
}

// Sum adds up every net balance. For balances produced by ComputeBalances it is zero
// up to division precision.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, mb := range b {
		sum = sum.Add(mb.Balance)
	}
	return sum
}

// ComputeBalances reduces a list of expenses into per-member paid, owed and net amounts.
//
// Algorithm:
//   - Every member starts at zero, even without expenses
//   - For each expense: payer contributed +amount, each participant owes amount/len(split)
//   - Aggregate: balance = paid - owes
//
// The whole input is validated before any aggregation, so an error means no partial result.
// The result does not depend on expense order.
func ComputeBalances(members []string, expenses []Expense) (Balances, error) {
	index, err := validate(members, expenses)
	if err != nil {
		return nil, err
	}

	balances := make(Balances, len(members))
	for i, m := range members {
		balances[i] = MemberBalance{
			Member:  m,
			Paid:    decimal.Zero,
			Owes:    decimal.Zero,
			Balance: decimal.Zero,
		}
	}

	for _, e := range expenses {
		payer := &balances[index[e.PaidBy]]
		payer.Paid = payer.Paid.Add(e.Amount)

		share := Share(e)
		for _, m := range e.SplitBetween {
			participant := &balances[index[m]]
			participant.Owes = participant.Owes.Add(share)
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].Paid.Sub(balances[i].Owes)
	}

	return balances, nil
}
