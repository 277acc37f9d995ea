package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Summary is the headline total for a list of expenses.
type Summary struct {
	Total decimal.Decimal
	Count int
}

// Summarize totals the expense amounts.
func Summarize(expenses []Expense) Summary {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return Summary{Total: total, Count: len(expenses)}
}

// ConsumedExpense is an expense a member took part in, with that member's share.
type ConsumedExpense struct {
	Expense Expense
	Share   decimal.Decimal
}

// PersonalBreakdown explains one member's balance expense by expense.
type PersonalBreakdown struct {
	Member   string
	Paid     decimal.Decimal
	Owes     decimal.Decimal
	Balance  decimal.Decimal
	PaidFor  []Expense         // expenses this member fronted
	Consumed []ConsumedExpense // expenses this member shares in
}

// Breakdown returns the personal breakdown for person. Its totals match the
// corresponding ComputeBalances entry.
func Breakdown(members []string, expenses []Expense, person string) (PersonalBreakdown, error) {
	index, err := validate(members, expenses)
	if err != nil {
		return PersonalBreakdown{}, err
	}
	if _, ok := index[person]; !ok {
		return PersonalBreakdown{}, &UnknownMemberError{Member: person}
	}

	b := PersonalBreakdown{
		Member:   person,
		Paid:     decimal.Zero,
		Owes:     decimal.Zero,
		PaidFor:  []Expense{},
		Consumed: []ConsumedExpense{},
	}
	for _, e := range expenses {
		if e.PaidBy == person {
			b.Paid = b.Paid.Add(e.Amount)
			b.PaidFor = append(b.PaidFor, e)
		}
		if slices.Contains(e.SplitBetween, person) {
			share := Share(e)
			b.Owes = b.Owes.Add(share)
			b.Consumed = append(b.Consumed, ConsumedExpense{Expense: e, Share: share})
		}
	}
	b.Balance = b.Paid.Sub(b.Owes)

	return b, nil
}

// DebtItem is one expense contributing to a debt.
type DebtItem struct {
	ExpenseID   string
	Description string
	Amount      decimal.Decimal
}

// DebtGroup is everything one debtor owes a single creditor, before netting.
type DebtGroup struct {
	To    string
	Total decimal.Decimal
	Items []DebtItem
}

// DebtorDebts collects a debtor's debts, grouped by creditor.
type DebtorDebts struct {
	Debtor string
	Total  decimal.Decimal
	Debts  []DebtGroup
}

// DebtsByDebtor combines the per-expense payments by (debtor, creditor) pair without
// netting opposite directions. Members who owe nothing are omitted. Debtors are sorted
// by total owed, largest first; creditors appear in the order they were first owed.
func DebtsByDebtor(members []string, expenses []Expense) ([]DebtorDebts, error) {
	settlements, err := PerExpense(members, expenses)
	if err != nil {
		return nil, err
	}
	index, _ := memberIndex(members)

	// groupIdx[debtor][creditor] is the creditor's position in debts[debtor].Debts
	debts := make([]DebtorDebts, len(members))
	groupIdx := make([]map[string]int, len(members))
	for i, m := range members {
		debts[i] = DebtorDebts{Debtor: m, Total: decimal.Zero}
		groupIdx[i] = make(map[string]int)
	}

	for _, s := range settlements {
		for _, p := range s.Payments {
			d := &debts[index[p.From]]
			gi, ok := groupIdx[index[p.From]][p.To]
			if !ok {
				d.Debts = append(d.Debts, DebtGroup{To: p.To, Total: decimal.Zero})
				gi = len(d.Debts) - 1
				groupIdx[index[p.From]][p.To] = gi
			}
			g := &d.Debts[gi]
			g.Total = g.Total.Add(p.Amount)
			g.Items = append(g.Items, DebtItem{
				ExpenseID:   p.ExpenseID,
				Description: p.Description,
				Amount:      p.Amount,
			})
			d.Total = d.Total.Add(p.Amount)
		}
	}

	result := make([]DebtorDebts, 0, len(debts))
	for _, d := range debts {
		if len(d.Debts) > 0 {
			result = append(result, d)
		}
	}
	slices.SortStableFunc(result, func(a, b DebtorDebts) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(index[a.Debtor], index[b.Debtor])
	})

	return result, nil
}
