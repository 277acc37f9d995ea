package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id, amount, paidBy string, split ...string) Expense {
	return Expense{
		ID:           id,
		Description:  id,
		Amount:       amt(amount),
		PaidBy:       paidBy,
		SplitBetween: split,
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name string
		e    Expense
		want string
	}{
		{"two ways", expense("e1", "100", "A", "A", "B"), "50"},
		{"single person", expense("e1", "12.34", "A", "A"), "12.34"},
		{"thirds", expense("e1", "10", "A", "A", "B", "C"), "3.3333333333333333"},
		{"no participants", Expense{Amount: amt("10")}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Share(tt.e).Equal(amt(tt.want)), "Share() = %s, want %s", Share(tt.e), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	members := []string{"Alice", "Bob", "Charlie"}

	tests := []struct {
		name        string
		members     []string
		expenses    []Expense
		wantInvalid bool
		wantUnknown string
	}{
		{
			name:     "valid expenses",
			members:  members,
			expenses: []Expense{expense("e1", "30", "Alice", "Alice", "Bob")},
		},
		{
			name:     "no expenses",
			members:  members,
			expenses: nil,
		},
		{
			name:        "empty group",
			members:     []string{},
			wantInvalid: true,
		},
		{
			name:        "duplicate member",
			members:     []string{"Alice", "Alice"},
			wantInvalid: true,
		},
		{
			name:        "blank member",
			members:     []string{"Alice", "  "},
			wantInvalid: true,
		},
		{
			name:        "zero amount",
			members:     members,
			expenses:    []Expense{expense("e1", "0", "Alice", "Alice")},
			wantInvalid: true,
		},
		{
			name:        "negative amount",
			members:     members,
			expenses:    []Expense{expense("e1", "-5", "Alice", "Alice")},
			wantInvalid: true,
		},
		{
			name:        "empty split",
			members:     members,
			expenses:    []Expense{expense("e1", "5", "Alice")},
			wantInvalid: true,
		},
		{
			name:        "repeated participant",
			members:     members,
			expenses:    []Expense{expense("e1", "5", "Alice", "Bob", "Bob")},
			wantInvalid: true,
		},
		{
			name:        "unknown payer",
			members:     members,
			expenses:    []Expense{expense("e1", "5", "Mallory", "Alice")},
			wantUnknown: "Mallory",
		},
		{
			name:        "unknown participant",
			members:     members,
			expenses:    []Expense{expense("e1", "5", "Alice", "Alice", "Eve")},
			wantUnknown: "Eve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate(tt.members, tt.expenses)

			switch {
			case tt.wantInvalid:
				var invalid *InvalidExpenseError
				require.ErrorAs(t, err, &invalid)
			case tt.wantUnknown != "":
				var unknown *UnknownMemberError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, tt.wantUnknown, unknown.Member)
				assert.Equal(t, "e1", unknown.ExpenseID)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `invalid expense "e1": amount must be positive`,
		(&InvalidExpenseError{ExpenseID: "e1", Reason: "amount must be positive"}).Error())
	assert.Equal(t, "invalid expense: group has no members",
		(&InvalidExpenseError{Reason: "group has no members"}).Error())
	assert.Equal(t, `expense "e1" references unknown member "Eve"`,
		(&UnknownMemberError{ExpenseID: "e1", Member: "Eve"}).Error())
	assert.Equal(t, `unknown member "Eve"`, (&UnknownMemberError{Member: "Eve"}).Error())
	assert.Contains(t, (&UnbalancedInputError{Sum: amt("0.5")}).Error(), "sum=0.5")
}

func TestValidateMembersAndExpense(t *testing.T) {
	assert.NoError(t, ValidateMembers([]string{"A", "B"}))

	var invalid *InvalidExpenseError
	assert.ErrorAs(t, ValidateMembers(nil), &invalid)
	assert.ErrorAs(t, ValidateMembers([]string{"A", "A"}), &invalid)
	assert.ErrorAs(t, ValidateMembers([]string{"A", " "}), &invalid)

	members := []string{"A", "B"}
	assert.NoError(t, ValidateExpense(members, expense("e1", "10", "A", "A", "B")))
	assert.ErrorAs(t, ValidateExpense(members, expense("e1", "0", "A", "B")), &invalid)

	var unknown *UnknownMemberError
	require.ErrorAs(t, ValidateExpense(members, expense("e1", "10", "C", "A")), &unknown)
	assert.Equal(t, "C", unknown.Member)
}
