package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownMode is returned by ParseMode and Settle for an unsupported settlement mode.
var ErrUnknownMode = errors.New("unknown settlement mode")

// InvalidExpenseError reports an expense (or group) that cannot be aggregated:
// a non-positive amount, an empty or repeated split set, or an unusable member list.
type InvalidExpenseError struct {
	ExpenseID string // empty when the group itself is invalid
	Reason    string
}

func (e *InvalidExpenseError) Error() string {
	if e.ExpenseID == "" {
		return "invalid expense: " + e.Reason
	}
	return fmt.Sprintf("invalid expense %q: %s", e.ExpenseID, e.Reason)
}

// UnknownMemberError reports an expense whose payer or participant is not in the group.
type UnknownMemberError struct {
	ExpenseID string
	Member    string
}

func (e *UnknownMemberError) Error() string {
	if e.ExpenseID == "" {
		return fmt.Sprintf("unknown member %q", e.Member)
	}
	return fmt.Sprintf("expense %q references unknown member %q", e.ExpenseID, e.Member)
}

// UnbalancedInputError means the balances handed to Simplify do not sum to zero.
// ComputeBalances never produces such input, so seeing this is a bug upstream.
type UnbalancedInputError struct {
	Sum decimal.Decimal
}

func (e *UnbalancedInputError) Error() string {
	return fmt.Sprintf("balances do not sum to zero (sum=%s)", e.Sum.String())
}
