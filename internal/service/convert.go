package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/pkg/api"
)

// Amounts travel as JSON numbers and are exact decimals everywhere else.

func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func calcExpenses(in []api.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(in))
	for i, e := range in {
		id := e.ID
		if id == "" {
			id = defaultExpenseID(i)
		}
		out[i] = calculator.Expense{
			ID:           id,
			Description:  e.Description,
			Amount:       toDecimal(e.Amount),
			PaidBy:       e.PaidBy,
			SplitBetween: e.SplitBetween,
		}
	}
	return out
}

func storedCalcExpenses(in []*models.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(in))
	for i, e := range in {
		out[i] = calculator.Expense{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			SplitBetween: e.SplitBetween,
		}
	}
	return out
}

func apiGroup(g *models.Group) api.Group {
	return api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

func apiStoredExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       toFloat(e.Amount),
		PaidBy:       e.PaidBy,
		SplitBetween: e.SplitBetween,
		Date:         e.Date.UTC(),
	}
}

func apiExpense(e calculator.Expense) api.Expense {
	return api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       toFloat(e.Amount),
		PaidBy:       e.PaidBy,
		SplitBetween: e.SplitBetween,
	}
}

func apiBalances(in calculator.Balances) []api.MemberBalance {
	out := make([]api.MemberBalance, len(in))
	for i, b := range in {
		out[i] = api.MemberBalance{
			Member:  b.Member,
			Paid:    toFloat(b.Paid),
			Owes:    toFloat(b.Owes),
			Balance: toFloat(b.Balance),
		}
	}
	return out
}

func apiSummary(s calculator.Summary) api.Summary {
	return api.Summary{Total: toFloat(s.Total), Count: s.Count}
}

func apiTransactions(in []calculator.Transaction) []api.Transaction {
	out := make([]api.Transaction, len(in))
	for i, tx := range in {
		out[i] = api.Transaction{
			From:        tx.From,
			To:          tx.To,
			Amount:      toFloat(tx.Amount),
			ExpenseID:   tx.ExpenseID,
			Description: tx.Description,
		}
	}
	return out
}

func apiExpenseSettlements(in []calculator.ExpenseSettlement) []api.ExpenseSettlement {
	out := make([]api.ExpenseSettlement, len(in))
	for i, s := range in {
		out[i] = api.ExpenseSettlement{
			ExpenseID:   s.ExpenseID,
			Description: s.Description,
			PaidBy:      s.PaidBy,
			Amount:      toFloat(s.Amount),
			Shares:      s.Shares,
			Payments:    apiTransactions(s.Payments),
		}
	}
	return out
}

func apiBreakdown(b calculator.PersonalBreakdown) api.PersonalBreakdown {
	out := api.PersonalBreakdown{
		Member:   b.Member,
		Paid:     toFloat(b.Paid),
		Owes:     toFloat(b.Owes),
		Balance:  toFloat(b.Balance),
		PaidFor:  make([]api.Expense, len(b.PaidFor)),
		Consumed: make([]api.ConsumedExpense, len(b.Consumed)),
	}
	for i, e := range b.PaidFor {
		out.PaidFor[i] = apiExpense(e)
	}
	for i, c := range b.Consumed {
		out.Consumed[i] = api.ConsumedExpense{Expense: apiExpense(c.Expense), Share: toFloat(c.Share)}
	}
	return out
}

func apiDebtors(in []calculator.DebtorDebts) []api.DebtorDebts {
	out := make([]api.DebtorDebts, len(in))
	for i, d := range in {
		debts := make([]api.DebtGroup, len(d.Debts))
		for j, g := range d.Debts {
			items := make([]api.DebtItem, len(g.Items))
			for k, item := range g.Items {
				items[k] = api.DebtItem{
					ExpenseID:   item.ExpenseID,
					Description: item.Description,
					Amount:      toFloat(item.Amount),
				}
			}
			debts[j] = api.DebtGroup{To: g.To, Total: toFloat(g.Total), Items: items}
		}
		out[i] = api.DebtorDebts{Debtor: d.Debtor, Total: toFloat(d.Total), Debts: debts}
	}
	return out
}
