package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_WireNames(t *testing.T) {
	data, err := Codec{}.Marshal(&GetSettlementRequest{
		Members:  []string{"A", "B"},
		Expenses: []Expense{{Amount: 100, PaidBy: "A", SplitBetween: []string{"A", "B"}}},
		Mode:     "per-expense",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"members": ["A", "B"],
		"expenses": [{"amount": 100, "paidBy": "A", "splitBetween": ["A", "B"]}],
		"mode": "per-expense"
	}`, string(data))
}

func TestCodec_Unmarshal(t *testing.T) {
	var req AddExpenseRequest
	err := Codec{}.Unmarshal([]byte(`{
		"groupId": "g1",
		"expense": {"description": "Taxi", "amount": 12.5, "paidBy": "B", "splitBetween": ["A"], "date": "2024-05-01T10:00:00Z"}
	}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "g1", req.GroupID)
	assert.Equal(t, 12.5, req.Expense.Amount)
	assert.Equal(t, []string{"A"}, req.Expense.SplitBetween)
	assert.True(t, req.Expense.Date.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestCodec_EmptyBody(t *testing.T) {
	var req ListGroupsRequest
	assert.NoError(t, Codec{}.Unmarshal(nil, &req))

	var bad GetGroupRequest
	assert.Error(t, Codec{}.Unmarshal([]byte(`{"groupId":`), &bad))
	assert.Equal(t, "json", Codec{}.Name())
}
