// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitsettle/internal/models"
)

// ErrNotFound is wrapped by every store when a group or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and expense storage operations.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID, members in their original order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and all of its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense in an existing group.
	// The expense.ID and expense.Date fields will be populated by the store if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves a group's expenses ordered by date, oldest first.
	ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense from a group.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
