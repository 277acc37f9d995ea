// Package storagetest holds behaviour checks shared by every storage.Store backend.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/storage"
)

// Run exercises store against the storage.Store contract.
// The store must start empty.
func Run(t *testing.T, store storage.Store) {
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := &models.Group{Name: "Trip", Members: []string{"Alice", "Bob"}}
		require.NoError(t, store.CreateGroup(ctx, group))

		assert.NotEmpty(t, group.ID)
		assert.NotZero(t, group.CreatedAt)
	})

	t.Run("GetGroup keeps member order", func(t *testing.T) {
		group := &models.Group{Name: "Flat", Members: []string{"Zoe", "Adam", "Mia"}}
		require.NoError(t, store.CreateGroup(ctx, group))

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat", got.Name)
		assert.Equal(t, []string{"Zoe", "Adam", "Mia"}, got.Members)
		assert.Equal(t, group.CreatedAt, got.CreatedAt)
	})

	t.Run("GetGroup unknown ID", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListGroups newest first", func(t *testing.T) {
		older := &models.Group{Name: "Older", Members: []string{"A"}, CreatedAt: 1000}
		newer := &models.Group{Name: "Newer", Members: []string{"B"}, CreatedAt: 2000}
		require.NoError(t, store.CreateGroup(ctx, older))
		require.NoError(t, store.CreateGroup(ctx, newer))

		groups, err := store.ListGroups(ctx)
		require.NoError(t, err)

		var order []string
		for _, g := range groups {
			if g.ID == older.ID || g.ID == newer.ID {
				order = append(order, g.Name)
			}
		}
		assert.Equal(t, []string{"Newer", "Older"}, order)
	})

	t.Run("expenses round trip", func(t *testing.T) {
		group := &models.Group{Name: "Dinner", Members: []string{"Alice", "Bob", "Charlie"}}
		require.NoError(t, store.CreateGroup(ctx, group))

		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		second := &models.Expense{
			GroupID:      group.ID,
			Description:  "Wine",
			Amount:       decimal.RequireFromString("18.75"),
			PaidBy:       "Bob",
			SplitBetween: []string{"Charlie", "Alice"},
			Date:         base.Add(time.Hour),
		}
		first := &models.Expense{
			GroupID:      group.ID,
			Description:  "Pizza",
			Amount:       decimal.RequireFromString("30"),
			PaidBy:       "Alice",
			SplitBetween: []string{"Alice", "Bob", "Charlie"},
			Date:         base,
		}
		require.NoError(t, store.CreateExpense(ctx, second))
		require.NoError(t, store.CreateExpense(ctx, first))
		assert.NotEmpty(t, first.ID)

		expenses, err := store.ListExpenses(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)

		assert.Equal(t, first.ID, expenses[0].ID, "oldest first")
		assert.Equal(t, "Pizza", expenses[0].Description)
		assert.True(t, expenses[0].Amount.Equal(decimal.NewFromInt(30)))
		assert.True(t, expenses[0].Date.Equal(base))

		assert.Equal(t, "Wine", expenses[1].Description)
		assert.True(t, expenses[1].Amount.Equal(decimal.RequireFromString("18.75")), "got %s", expenses[1].Amount)
		assert.Equal(t, "Bob", expenses[1].PaidBy)
		assert.Equal(t, []string{"Charlie", "Alice"}, expenses[1].SplitBetween)
		assert.Equal(t, group.ID, expenses[1].GroupID)
	})

	t.Run("CreateExpense defaults date", func(t *testing.T) {
		group := &models.Group{Name: "Lunch", Members: []string{"A", "B"}}
		require.NoError(t, store.CreateGroup(ctx, group))

		expense := &models.Expense{
			GroupID:      group.ID,
			Amount:       decimal.NewFromInt(5),
			PaidBy:       "A",
			SplitBetween: []string{"A", "B"},
		}
		require.NoError(t, store.CreateExpense(ctx, expense))
		assert.False(t, expense.Date.IsZero())
	})

	t.Run("CreateExpense unknown group", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID:      "missing",
			Amount:       decimal.NewFromInt(1),
			PaidBy:       "A",
			SplitBetween: []string{"A"},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListExpenses empty group", func(t *testing.T) {
		group := &models.Group{Name: "Empty", Members: []string{"A"}}
		require.NoError(t, store.CreateGroup(ctx, group))

		expenses, err := store.ListExpenses(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		group := &models.Group{Name: "Cabin", Members: []string{"A", "B"}}
		require.NoError(t, store.CreateGroup(ctx, group))
		keep := &models.Expense{GroupID: group.ID, Amount: decimal.NewFromInt(10), PaidBy: "A", SplitBetween: []string{"B"}}
		drop := &models.Expense{GroupID: group.ID, Amount: decimal.NewFromInt(20), PaidBy: "B", SplitBetween: []string{"A"}}
		require.NoError(t, store.CreateExpense(ctx, keep))
		require.NoError(t, store.CreateExpense(ctx, drop))

		assert.ErrorIs(t, store.DeleteExpense(ctx, "other-group", drop.ID), storage.ErrNotFound)
		require.NoError(t, store.DeleteExpense(ctx, group.ID, drop.ID))
		assert.ErrorIs(t, store.DeleteExpense(ctx, group.ID, drop.ID), storage.ErrNotFound)

		expenses, err := store.ListExpenses(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, keep.ID, expenses[0].ID)
	})

	t.Run("DeleteGroup removes expenses", func(t *testing.T) {
		group := &models.Group{Name: "Gone", Members: []string{"A", "B"}}
		require.NoError(t, store.CreateGroup(ctx, group))
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: decimal.NewFromInt(4), PaidBy: "A", SplitBetween: []string{"A", "B"},
		}))

		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		expenses, err := store.ListExpenses(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)

		assert.ErrorIs(t, store.DeleteGroup(ctx, group.ID), storage.ErrNotFound)
	})
}
