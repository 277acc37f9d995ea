package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Epsilon is the dead zone below which an amount is treated as settled.
	Epsilon = decimal.New(1, -2)

	// balanceTolerance bounds how far the sum of all balances may drift from zero.
	balanceTolerance = decimal.New(1, -6)
)

// Expense represents an expense with the minimal information needed for balance calculations.
type Expense struct {
	ID           string
	Description  string
	Amount       decimal.Decimal
	PaidBy       string
	SplitBetween []string
}

// Share returns the equal per-person share of an expense.
// No rounding is applied; callers compare against Epsilon instead.
func Share(e Expense) decimal.Decimal {
	if len(e.SplitBetween) == 0 {
		return decimal.Zero
	}
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.SplitBetween))))
}

// memberIndex maps each member name to its position in the group.
func memberIndex(members []string) (map[string]int, error) {
	if len(members) == 0 {
		return nil, &InvalidExpenseError{Reason: "group has no members"}
	}

	index := make(map[string]int, len(members))
	for i, m := range members {
		if strings.TrimSpace(m) == "" {
			return nil, &InvalidExpenseError{Reason: "group has a blank member name"}
		}
		if _, dup := index[m]; dup {
			return nil, &InvalidExpenseError{Reason: fmt.Sprintf("member %q listed more than once", m)}
		}
		index[m] = i
	}
	return index, nil
}

func validateExpense(e Expense, index map[string]int) error {
	if !e.Amount.IsPositive() {
		return &InvalidExpenseError{ExpenseID: e.ID, Reason: "amount must be positive"}
	}
	if len(e.SplitBetween) == 0 {
		return &InvalidExpenseError{ExpenseID: e.ID, Reason: "must be split between at least one member"}
	}
	if _, ok := index[e.PaidBy]; !ok {
		return &UnknownMemberError{ExpenseID: e.ID, Member: e.PaidBy}
	}

	seen := make(map[string]bool, len(e.SplitBetween))
	for _, m := range e.SplitBetween {
		if _, ok := index[m]; !ok {
			return &UnknownMemberError{ExpenseID: e.ID, Member: m}
		}
		if seen[m] {
			return &InvalidExpenseError{ExpenseID: e.ID, Reason: fmt.Sprintf("%q appears more than once in the split", m)}
		}
		seen[m] = true
	}
	return nil
}

// validate checks the group and every expense before any aggregation happens.
func validate(members []string, expenses []Expense) (map[string]int, error) {
	index, err := memberIndex(members)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if err := validateExpense(e, index); err != nil {
			return nil, err
		}
	}
	return index, nil
}

// ValidateMembers checks a member list the way every calculation does.
func ValidateMembers(members []string) error {
	_, err := memberIndex(members)
	return err
}

// ValidateExpense checks a single expense against a member list.
func ValidateExpense(members []string, e Expense) error {
	_, err := validate(members, []Expense{e})
	return err
}
