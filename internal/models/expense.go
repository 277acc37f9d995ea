package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents one shared cost recorded in a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format). Never reused.
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a free-text label (e.g., "Groceries").
	Description string

	// Amount is the total cost. Always positive.
	Amount decimal.Decimal

	// PaidBy is the member who fronted the money.
	PaidBy string

	// SplitBetween lists the members sharing the cost equally.
	SplitBetween []string

	// Date is when the expense was recorded. Used only for ordering.
	Date time.Time
}
