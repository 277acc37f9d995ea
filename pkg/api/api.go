// Package api defines the JSON messages exchanged with the splitsettle services.
package api

import "time"

// Expense is one shared cost. Amounts are in the group's currency unit.
type Expense struct {
	ID           string    `json:"id,omitempty"`
	Description  string    `json:"description,omitempty"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	SplitBetween []string  `json:"splitBetween"`
	Date         time.Time `json:"date,omitzero"`
}

// Group is a stored set of members.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// MemberBalance is positive when the member is owed money.
type MemberBalance struct {
	Member  string  `json:"member"`
	Paid    float64 `json:"paid"`
	Owes    float64 `json:"owes"`
	Balance float64 `json:"balance"`
}

// Transaction is a single payment from one member to another.
type Transaction struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Amount      float64 `json:"amount"`
	ExpenseID   string  `json:"expenseId,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ExpenseSettlement lists the payments that settle one expense on its own.
type ExpenseSettlement struct {
	ExpenseID   string        `json:"expenseId"`
	Description string        `json:"description,omitempty"`
	PaidBy      string        `json:"paidBy"`
	Amount      float64       `json:"amount"`
	Shares      int           `json:"shares"`
	Payments    []Transaction `json:"payments"`
}

// ConsumedExpense is an expense a member took part in, with their share.
type ConsumedExpense struct {
	Expense Expense `json:"expense"`
	Share   float64 `json:"share"`
}

type PersonalBreakdown struct {
	Member   string            `json:"member"`
	Paid     float64           `json:"paid"`
	Owes     float64           `json:"owes"`
	Balance  float64           `json:"balance"`
	PaidFor  []Expense         `json:"paidFor"`
	Consumed []ConsumedExpense `json:"consumed"`
}

type DebtItem struct {
	ExpenseID   string  `json:"expenseId"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

// DebtGroup is everything a debtor owes one creditor.
type DebtGroup struct {
	To    string     `json:"to"`
	Total float64    `json:"total"`
	Items []DebtItem `json:"items"`
}

type DebtorDebts struct {
	Debtor string      `json:"debtor"`
	Total  float64     `json:"total"`
	Debts  []DebtGroup `json:"debts"`
}

// Summary totals a set of expenses.
type Summary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// SettlementService messages

type GetBalancesRequest struct {
	Members  []string  `json:"members"`
	Expenses []Expense `json:"expenses"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
	Summary  Summary         `json:"summary"`
}

// GetSettlementRequest selects the view with Mode: "netted" (default) or "per-expense".
type GetSettlementRequest struct {
	Members  []string  `json:"members"`
	Expenses []Expense `json:"expenses"`
	Mode     string    `json:"mode,omitempty"`
}

// GetSettlementResponse carries the flat transaction list for either mode.
// Expenses is only populated in per-expense mode.
type GetSettlementResponse struct {
	Mode         string              `json:"mode"`
	Transactions []Transaction       `json:"transactions"`
	Expenses     []ExpenseSettlement `json:"expenses,omitempty"`
}

type GetPersonalBreakdownRequest struct {
	Members  []string  `json:"members"`
	Expenses []Expense `json:"expenses"`
	Member   string    `json:"member"`
}

type GetPersonalBreakdownResponse struct {
	Breakdown PersonalBreakdown `json:"breakdown"`
}

type GetDebtBreakdownRequest struct {
	Members  []string  `json:"members"`
	Expenses []Expense `json:"expenses"`
}

type GetDebtBreakdownResponse struct {
	Debtors []DebtorDebts `json:"debtors"`
}

// GroupService messages

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddExpenseRequest struct {
	GroupID string  `json:"groupId"`
	Expense Expense `json:"expense"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct{}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
	Summary  Summary   `json:"summary"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
	Summary  Summary         `json:"summary"`
}

type GetGroupSettlementRequest struct {
	GroupID string `json:"groupId"`
	Mode    string `json:"mode,omitempty"`
}

type GetGroupSettlementResponse struct {
	Mode         string              `json:"mode"`
	Transactions []Transaction       `json:"transactions"`
	Expenses     []ExpenseSettlement `json:"expenses,omitempty"`
}
