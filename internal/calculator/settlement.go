package calculator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Mode selects how a settlement is derived from the expense list.
type Mode string

const (
	// ModeNetted minimizes payments across all expenses combined.
	ModeNetted Mode = "netted"
	// ModePerExpense settles every expense on its own, without optimization.
	ModePerExpense Mode = "per-expense"
)

// ParseMode converts a wire value into a Mode. An empty string means ModeNetted.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeNetted:
		return ModeNetted, nil
	case ModePerExpense:
		return ModePerExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Transaction represents a single suggested payment.
type Transaction struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal

	// Set in the per-expense view only.
	ExpenseID   string
	Description string
}

// party is one side of the matching: a debtor or a creditor with what is left to settle.
type party struct {
	member string
	order  int
	amount decimal.Decimal
}

// byMagnitude sorts descending by amount, then by original member order.
func byMagnitude(a, b party) int {
	if c := b.amount.Cmp(a.amount); c != 0 {
		return c
	}
	return cmp.Compare(a.order, b.order)
}

// Simplify produces the list of payments that settles all balances.
//
// Members within Epsilon of zero are left out. Debtors and creditors are each sorted
// by descending magnitude (ties keep group order) and matched greedily: each step
// settles min(debt, credit) between the current pair and moves past whichever side
// dropped below Epsilon. Both sides lose the same amount at every step, so they run
// out together and the result has at most debtors+creditors-1 payments.
func Simplify(balances Balances) ([]Transaction, error) {
	if sum := balances.Sum(); sum.Abs().GreaterThan(balanceTolerance) {
		return nil, &UnbalancedInputError{Sum: sum}
	}

	var debtors, creditors []party
	for i, b := range balances {
		switch {
		case b.Balance.LessThan(Epsilon.Neg()):
			debtors = append(debtors, party{member: b.Member, order: i, amount: b.Balance.Neg()})
		case b.Balance.GreaterThan(Epsilon):
			creditors = append(creditors, party{member: b.Member, order: i, amount: b.Balance})
		}
	}

	if len(debtors) == 0 || len(creditors) == 0 {
		return []Transaction{}, nil
	}

	slices.SortFunc(debtors, byMagnitude)
	slices.SortFunc(creditors, byMagnitude)

	transactions := make([]Transaction, 0, len(debtors)+len(creditors)-1)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		if amount.GreaterThan(Epsilon) {
			transactions = append(transactions, Transaction{
				From:   debtor.member,
				To:     creditor.member,
				Amount: amount,
			})
		}

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.LessThan(Epsilon) {
			i++
		}
		if creditor.amount.LessThan(Epsilon) {
			j++
		}
	}

	return transactions, nil
}

// Settle computes the settlement for a group in the requested mode.
// ModePerExpense flattens PerExpense into a single list in expense order.
func Settle(members []string, expenses []Expense, mode Mode) ([]Transaction, error) {
	switch mode {
	case ModeNetted:
		balances, err := ComputeBalances(members, expenses)
		if err != nil {
			return nil, err
		}
		return Simplify(balances)
	case ModePerExpense:
		settlements, err := PerExpense(members, expenses)
		if err != nil {
			return nil, err
		}
		transactions := []Transaction{}
		for _, s := range settlements {
			transactions = append(transactions, s.Payments...)
		}
		return transactions, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
