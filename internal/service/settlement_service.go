package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/pkg/api"
	"github.com/mmynk/splitsettle/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService.
// Every call is computed from the members and expenses in the request; nothing is stored.
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	metrics *metrics.Metrics
}

// NewSettlementService creates a SettlementService. m may be nil.
func NewSettlementService(m *metrics.Metrics) *SettlementService {
	return &SettlementService{metrics: m}
}

// settlement is the result of either settlement mode.
type settlement struct {
	mode         calculator.Mode
	transactions []calculator.Transaction
	perExpense   []calculator.ExpenseSettlement // per-expense mode only
}

// computeSettlement runs the requested mode and records it in m.
func computeSettlement(m *metrics.Metrics, members []string, expenses []calculator.Expense, rawMode string) (settlement, error) {
	mode, err := calculator.ParseMode(rawMode)
	if err != nil {
		return settlement{}, err
	}

	s := settlement{mode: mode}
	if mode == calculator.ModePerExpense {
		s.perExpense, err = calculator.PerExpense(members, expenses)
		if err != nil {
			return settlement{}, err
		}
		s.transactions = []calculator.Transaction{}
		for _, es := range s.perExpense {
			s.transactions = append(s.transactions, es.Payments...)
		}
	} else {
		s.transactions, err = calculator.Settle(members, expenses, mode)
		if err != nil {
			return settlement{}, err
		}
	}

	m.ObserveSettlement(string(mode), len(s.transactions))
	return s, nil
}

// GetBalances returns each member's net position.
func (s *SettlementService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Debug("GetBalances request received",
		"members_count", len(req.Msg.Members),
		"expenses_count", len(req.Msg.Expenses),
	)

	expenses := calcExpenses(req.Msg.Expenses)
	balances, err := calculator.ComputeBalances(req.Msg.Members, expenses)
	if err != nil {
		slog.Warn("GetBalances failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances: apiBalances(balances),
		Summary:  apiSummary(calculator.Summarize(expenses)),
	}), nil
}

// GetSettlement returns the payments that settle the group in the requested mode.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	slog.Debug("GetSettlement request received",
		"members_count", len(req.Msg.Members),
		"expenses_count", len(req.Msg.Expenses),
		"mode", req.Msg.Mode,
	)

	result, err := computeSettlement(s.metrics, req.Msg.Members, calcExpenses(req.Msg.Expenses), req.Msg.Mode)
	if err != nil {
		slog.Warn("GetSettlement failed", "mode", req.Msg.Mode, "error", err)
		return nil, connectError(err)
	}

	slog.Debug("GetSettlement successful", "mode", result.mode, "transactions", len(result.transactions))

	resp := &api.GetSettlementResponse{
		Mode:         string(result.mode),
		Transactions: apiTransactions(result.transactions),
	}
	if result.perExpense != nil {
		resp.Expenses = apiExpenseSettlements(result.perExpense)
	}
	return connect.NewResponse(resp), nil
}

// GetPersonalBreakdown explains one member's balance.
func (s *SettlementService) GetPersonalBreakdown(ctx context.Context, req *connect.Request[api.GetPersonalBreakdownRequest]) (*connect.Response[api.GetPersonalBreakdownResponse], error) {
	slog.Debug("GetPersonalBreakdown request received", "member", req.Msg.Member)

	b, err := calculator.Breakdown(req.Msg.Members, calcExpenses(req.Msg.Expenses), req.Msg.Member)
	if err != nil {
		slog.Warn("GetPersonalBreakdown failed", "member", req.Msg.Member, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetPersonalBreakdownResponse{Breakdown: apiBreakdown(b)}), nil
}

// GetDebtBreakdown lists who owes whom, per expense, without netting.
func (s *SettlementService) GetDebtBreakdown(ctx context.Context, req *connect.Request[api.GetDebtBreakdownRequest]) (*connect.Response[api.GetDebtBreakdownResponse], error) {
	slog.Debug("GetDebtBreakdown request received", "members_count", len(req.Msg.Members))

	debtors, err := calculator.DebtsByDebtor(req.Msg.Members, calcExpenses(req.Msg.Expenses))
	if err != nil {
		slog.Warn("GetDebtBreakdown failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetDebtBreakdownResponse{Debtors: apiDebtors(debtors)}), nil
}
