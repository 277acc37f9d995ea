package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/events"
	"github.com/mmynk/splitsettle/internal/metrics"
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/storage"
	"github.com/mmynk/splitsettle/pkg/api"
	"github.com/mmynk/splitsettle/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store     storage.Store
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewGroupService creates a new GroupService with the given storage backend.
// A nil publisher drops events; m may be nil.
func NewGroupService(store storage.Store, publisher events.Publisher, m *metrics.Metrics) *GroupService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &GroupService{store: store, publisher: publisher, metrics: m}
}

// publish sends an event. Broker failures are logged and never fail the request.
func (s *GroupService) publish(ctx context.Context, typ events.Type, groupID, expenseID string) {
	if err := s.publisher.Publish(ctx, events.New(typ, groupID, expenseID)); err != nil {
		slog.Error("Failed to publish event",
			"type", typ,
			"group_id", groupID,
			"expense_id", expenseID,
			"error", err,
		)
	}
}

func requireGroupID(groupID string) error {
	if groupID == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("group_id required"))
	}
	return nil
}

// loadGroup fetches a group and its expenses in calculator form.
func (s *GroupService) loadGroup(ctx context.Context, groupID string) (*models.Group, []calculator.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	stored, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, storedCalcExpenses(stored), nil
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if strings.TrimSpace(req.Msg.Name) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name required"))
	}
	if err := calculator.ValidateMembers(req.Msg.Members); err != nil {
		slog.Warn("CreateGroup validation failed", "error", err)
		return nil, connectError(err)
	}

	group := &models.Group{
		Name:    req.Msg.Name,
		Members: req.Msg.Members,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID)
	s.publish(ctx, events.GroupCreated, group.ID, "")

	return connect.NewResponse(&api.CreateGroupResponse{Group: apiGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	if err := requireGroupID(req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: apiGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Group, len(groups))
	for i, group := range groups {
		out[i] = apiGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group and its expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := requireGroupID(req.Msg.GroupID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	s.publish(ctx, events.GroupDeleted, req.Msg.GroupID, "")

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddExpense validates an expense against the group's members and stores it.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	in := req.Msg.Expense
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", in.Amount,
		"paid_by", in.PaidBy,
		"split_count", len(in.SplitBetween),
	)

	if err := requireGroupID(req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("AddExpense failed - group not found", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	expense := &models.Expense{
		GroupID:      group.ID,
		Description:  in.Description,
		Amount:       toDecimal(in.Amount),
		PaidBy:       in.PaidBy,
		SplitBetween: in.SplitBetween,
		Date:         in.Date,
	}

	err = calculator.ValidateExpense(group.Members, calculator.Expense{
		Amount:       expense.Amount,
		PaidBy:       expense.PaidBy,
		SplitBetween: expense.SplitBetween,
	})
	if err != nil {
		slog.Warn("AddExpense validation failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	// Save to storage (generates ID and Date if unset)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense added", "group_id", group.ID, "expense_id", expense.ID)
	s.publish(ctx, events.ExpenseAdded, group.ID, expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: apiStoredExpense(expense)}), nil
}

// RemoveExpense deletes one expense from a group.
func (s *GroupService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	slog.Info("RemoveExpense request received",
		"group_id", req.Msg.GroupID,
		"expense_id", req.Msg.ExpenseID,
	)

	if err := requireGroupID(req.Msg.GroupID); err != nil {
		return nil, err
	}
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("expense_id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID); err != nil {
		slog.Error("RemoveExpense failed", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense removed", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)
	s.publish(ctx, events.ExpenseRemoved, req.Msg.GroupID, req.Msg.ExpenseID)

	return connect.NewResponse(&api.RemoveExpenseResponse{}), nil
}

// ListExpenses returns a group's expenses, oldest first, with their total.
func (s *GroupService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	if err := requireGroupID(req.Msg.GroupID); err != nil {
		return nil, err
	}

	// Verify group exists
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("ListExpenses failed - group not found", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	stored, err := s.store.ListExpenses(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Expense, len(stored))
	for i, e := range stored {
		out[i] = apiStoredExpense(e)
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(stored))

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: out,
		Summary:  apiSummary(calculator.Summarize(storedCalcExpenses(stored))),
	}), nil
}

// GetGroupBalances calculates balances across all expenses in a group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if err := requireGroupID(groupID); err != nil {
		return nil, err
	}

	group, expenses, err := s.loadGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed - could not load group", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	balances, err := calculator.ComputeBalances(group.Members, expenses)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetGroupBalances successful", "group_id", groupID, "expenses_count", len(expenses))

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Balances: apiBalances(balances),
		Summary:  apiSummary(calculator.Summarize(expenses)),
	}), nil
}

// GetGroupSettlement computes the settlement for a stored group.
func (s *GroupService) GetGroupSettlement(ctx context.Context, req *connect.Request[api.GetGroupSettlementRequest]) (*connect.Response[api.GetGroupSettlementResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupSettlement request received", "group_id", groupID, "mode", req.Msg.Mode)

	if err := requireGroupID(groupID); err != nil {
		return nil, err
	}

	group, expenses, err := s.loadGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupSettlement failed - could not load group", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	result, err := computeSettlement(s.metrics, group.Members, expenses, req.Msg.Mode)
	if err != nil {
		slog.Error("GetGroupSettlement failed", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetGroupSettlement successful",
		"group_id", groupID,
		"mode", result.mode,
		"transactions", len(result.transactions),
	)

	resp := &api.GetGroupSettlementResponse{
		Mode:         string(result.mode),
		Transactions: apiTransactions(result.transactions),
	}
	if result.perExpense != nil {
		resp.Expenses = apiExpenseSettlements(result.perExpense)
	}
	return connect.NewResponse(resp), nil
}
