package service

import (
	"errors"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/storage"
)

// defaultExpenseID names expenses sent without an ID by their position in the request,
// so errors and per-expense payments can still refer to them.
func defaultExpenseID(i int) string {
	return "#" + strconv.Itoa(i+1)
}

// connectError maps domain and storage errors onto Connect codes.
func connectError(err error) *connect.Error {
	var (
		invalid    *calculator.InvalidExpenseError
		unknown    *calculator.UnknownMemberError
		unbalanced *calculator.UnbalancedInputError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &unknown), errors.Is(err, calculator.ErrUnknownMode):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &unbalanced):
		return connect.NewError(connect.CodeInternal, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
