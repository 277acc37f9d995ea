// Package apiconnect wires the splitsettle services onto Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsettle/pkg/api"
)

const (
	// SettlementServiceName is the fully-qualified name of the SettlementService service.
	SettlementServiceName = "splitsettle.v1.SettlementService"
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = "splitsettle.v1.GroupService"
)

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	SettlementServiceGetBalancesProcedure          = "/splitsettle.v1.SettlementService/GetBalances"
	SettlementServiceGetSettlementProcedure        = "/splitsettle.v1.SettlementService/GetSettlement"
	SettlementServiceGetPersonalBreakdownProcedure = "/splitsettle.v1.SettlementService/GetPersonalBreakdown"
	SettlementServiceGetDebtBreakdownProcedure     = "/splitsettle.v1.SettlementService/GetDebtBreakdown"

	GroupServiceCreateGroupProcedure        = "/splitsettle.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure           = "/splitsettle.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure         = "/splitsettle.v1.GroupService/ListGroups"
	GroupServiceDeleteGroupProcedure        = "/splitsettle.v1.GroupService/DeleteGroup"
	GroupServiceAddExpenseProcedure         = "/splitsettle.v1.GroupService/AddExpense"
	GroupServiceRemoveExpenseProcedure      = "/splitsettle.v1.GroupService/RemoveExpense"
	GroupServiceListExpensesProcedure       = "/splitsettle.v1.GroupService/ListExpenses"
	GroupServiceGetGroupBalancesProcedure   = "/splitsettle.v1.GroupService/GetGroupBalances"
	GroupServiceGetGroupSettlementProcedure = "/splitsettle.v1.GroupService/GetGroupSettlement"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// route serves handlers keyed by procedure under a single service path.
func route(handlers map[string]*connect.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// SettlementServiceClient is a client for the splitsettle.v1.SettlementService service.
type SettlementServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetPersonalBreakdown(context.Context, *connect.Request[api.GetPersonalBreakdownRequest]) (*connect.Response[api.GetPersonalBreakdownResponse], error)
	GetDebtBreakdown(context.Context, *connect.Request[api.GetDebtBreakdownRequest]) (*connect.Response[api.GetDebtBreakdownResponse], error)
}

// NewSettlementServiceClient constructs a client for the splitsettle.v1.SettlementService
// service. The JSON codec is always applied; opts may add interceptors and the like.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &settlementServiceClient{
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](
			httpClient, baseURL+SettlementServiceGetBalancesProcedure, opts...),
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](
			httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		getPersonalBreakdown: connect.NewClient[api.GetPersonalBreakdownRequest, api.GetPersonalBreakdownResponse](
			httpClient, baseURL+SettlementServiceGetPersonalBreakdownProcedure, opts...),
		getDebtBreakdown: connect.NewClient[api.GetDebtBreakdownRequest, api.GetDebtBreakdownResponse](
			httpClient, baseURL+SettlementServiceGetDebtBreakdownProcedure, opts...),
	}
}

// settlementServiceClient implements SettlementServiceClient.
type settlementServiceClient struct {
	getBalances          *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getSettlement        *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	getPersonalBreakdown *connect.Client[api.GetPersonalBreakdownRequest, api.GetPersonalBreakdownResponse]
	getDebtBreakdown     *connect.Client[api.GetDebtBreakdownRequest, api.GetDebtBreakdownResponse]
}

func (c *settlementServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetPersonalBreakdown(ctx context.Context, req *connect.Request[api.GetPersonalBreakdownRequest]) (*connect.Response[api.GetPersonalBreakdownResponse], error) {
	return c.getPersonalBreakdown.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetDebtBreakdown(ctx context.Context, req *connect.Request[api.GetDebtBreakdownRequest]) (*connect.Response[api.GetDebtBreakdownResponse], error) {
	return c.getDebtBreakdown.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the splitsettle.v1.SettlementService service.
type SettlementServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetPersonalBreakdown(context.Context, *connect.Request[api.GetPersonalBreakdownRequest]) (*connect.Response[api.GetPersonalBreakdownResponse], error)
	GetDebtBreakdown(context.Context, *connect.Request[api.GetDebtBreakdownRequest]) (*connect.Response[api.GetDebtBreakdownResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation. It returns
// the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", route(map[string]*connect.Handler{
		SettlementServiceGetBalancesProcedure: connect.NewUnaryHandler(
			SettlementServiceGetBalancesProcedure, svc.GetBalances, opts...),
		SettlementServiceGetSettlementProcedure: connect.NewUnaryHandler(
			SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		SettlementServiceGetPersonalBreakdownProcedure: connect.NewUnaryHandler(
			SettlementServiceGetPersonalBreakdownProcedure, svc.GetPersonalBreakdown, opts...),
		SettlementServiceGetDebtBreakdownProcedure: connect.NewUnaryHandler(
			SettlementServiceGetDebtBreakdownProcedure, svc.GetDebtBreakdown, opts...),
	})
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.SettlementService.GetBalances is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.SettlementService.GetSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetPersonalBreakdown(context.Context, *connect.Request[api.GetPersonalBreakdownRequest]) (*connect.Response[api.GetPersonalBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.SettlementService.GetPersonalBreakdown is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetDebtBreakdown(context.Context, *connect.Request[api.GetDebtBreakdownRequest]) (*connect.Response[api.GetDebtBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.SettlementService.GetDebtBreakdown is not implemented"))
}

// GroupServiceClient is a client for the splitsettle.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupSettlement(context.Context, *connect.Request[api.GetGroupSettlementRequest]) (*connect.Response[api.GetGroupSettlementResponse], error)
}

// NewGroupServiceClient constructs a client for the splitsettle.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup: connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](
			httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups: connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](
			httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		deleteGroup: connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](
			httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addExpense: connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](
			httpClient, baseURL+GroupServiceAddExpenseProcedure, opts...),
		removeExpense: connect.NewClient[api.RemoveExpenseRequest, api.RemoveExpenseResponse](
			httpClient, baseURL+GroupServiceRemoveExpenseProcedure, opts...),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+GroupServiceListExpensesProcedure, opts...),
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](
			httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		getGroupSettlement: connect.NewClient[api.GetGroupSettlementRequest, api.GetGroupSettlementResponse](
			httpClient, baseURL+GroupServiceGetGroupSettlementProcedure, opts...),
	}
}

// groupServiceClient implements GroupServiceClient.
type groupServiceClient struct {
	createGroup        *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup        *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addExpense         *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	removeExpense      *connect.Client[api.RemoveExpenseRequest, api.RemoveExpenseResponse]
	listExpenses       *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getGroupBalances   *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getGroupSettlement *connect.Client[api.GetGroupSettlementRequest, api.GetGroupSettlementResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupSettlement(ctx context.Context, req *connect.Request[api.GetGroupSettlementRequest]) (*connect.Response[api.GetGroupSettlementResponse], error) {
	return c.getGroupSettlement.CallUnary(ctx, req)
}

// GroupServiceHandler is an implementation of the splitsettle.v1.GroupService service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupSettlement(context.Context, *connect.Request[api.GetGroupSettlementRequest]) (*connect.Response[api.GetGroupSettlementResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]*connect.Handler{
		GroupServiceCreateGroupProcedure: connect.NewUnaryHandler(
			GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure: connect.NewUnaryHandler(
			GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure: connect.NewUnaryHandler(
			GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceDeleteGroupProcedure: connect.NewUnaryHandler(
			GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceAddExpenseProcedure: connect.NewUnaryHandler(
			GroupServiceAddExpenseProcedure, svc.AddExpense, opts...),
		GroupServiceRemoveExpenseProcedure: connect.NewUnaryHandler(
			GroupServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		GroupServiceListExpensesProcedure: connect.NewUnaryHandler(
			GroupServiceListExpensesProcedure, svc.ListExpenses, opts...),
		GroupServiceGetGroupBalancesProcedure: connect.NewUnaryHandler(
			GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...),
		GroupServiceGetGroupSettlementProcedure: connect.NewUnaryHandler(
			GroupServiceGetGroupSettlementProcedure, svc.GetGroupSettlement, opts...),
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.DeleteGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.AddExpense is not implemented"))
}

func (UnimplementedGroupServiceHandler) RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.RemoveExpense is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.ListExpenses is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.GetGroupBalances is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupSettlement(context.Context, *connect.Request[api.GetGroupSettlementRequest]) (*connect.Response[api.GetGroupSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitsettle.v1.GroupService.GetGroupSettlement is not implemented"))
}
