package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseSettlement lists who pays the payer of one expense, and how much.
type ExpenseSettlement struct {
	ExpenseID   string
	Description string
	PaidBy      string
	Amount      decimal.Decimal
	Shares      int // number of people the expense is split between
	Payments    []Transaction
}

// PerExpense settles every expense independently: each participant other than the payer
// owes the payer their share. Payments within an expense are ordered by debtor name.
func PerExpense(members []string, expenses []Expense) ([]ExpenseSettlement, error) {
	if _, err := validate(members, expenses); err != nil {
		return nil, err
	}

	settlements := make([]ExpenseSettlement, 0, len(expenses))
	for _, e := range expenses {
		share := Share(e)

		payments := make([]Transaction, 0, len(e.SplitBetween))
		for _, m := range e.SplitBetween {
			if m == e.PaidBy {
				continue
			}
			payments = append(payments, Transaction{
				From:        m,
				To:          e.PaidBy,
				Amount:      share,
				ExpenseID:   e.ID,
				Description: e.Description,
			})
		}
		slices.SortStableFunc(payments, func(a, b Transaction) int {
			return strings.Compare(a.From, b.From)
		})

		settlements = append(settlements, ExpenseSettlement{
			ExpenseID:   e.ID,
			Description: e.Description,
			PaidBy:      e.PaidBy,
			Amount:      e.Amount,
			Shares:      len(e.SplitBetween),
			Payments:    payments,
		})
	}

	return settlements, nil
}
