// Package memory provides an in-process storage.Store, used by default and in tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps groups and expenses in maps guarded by a mutex.
// Values are copied in and out so callers never share slices with the store.
type Store struct {
	mu       sync.RWMutex
	groups   map[string]*models.Group
	expenses map[string][]*models.Expense // by group ID, in insertion order
}

// New returns an empty store.
func New() *Store {
	return &Store{
		groups:   make(map[string]*models.Group),
		expenses: make(map[string][]*models.Expense),
	}
}

func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return &c
}

func copyExpense(e *models.Expense) *models.Expense {
	c := *e
	c.SplitBetween = slices.Clone(e.SplitBetween)
	return &c
}

// CreateGroup stores a new group.
func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.ID]; ok {
		return fmt.Errorf("group %s already exists", group.ID)
	}
	s.groups[group.ID] = copyGroup(group)
	return nil
}

// GetGroup returns a copy of the group.
func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return copyGroup(g), nil
}

// ListGroups returns every group, newest first.
func (s *Store) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, copyGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].CreatedAt != groups[j].CreatedAt {
			return groups[i].CreatedAt > groups[j].CreatedAt
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}

// DeleteGroup removes a group and its expenses.
func (s *Store) DeleteGroup(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	delete(s.groups, groupID)
	delete(s.expenses, groupID)
	return nil
}

// CreateExpense appends an expense to an existing group.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}
	s.expenses[expense.GroupID] = append(s.expenses[expense.GroupID], copyExpense(expense))
	return nil
}

// ListExpenses returns a group's expenses by date, oldest first.
// Expenses with equal dates keep insertion order.
func (s *Store) ListExpenses(_ context.Context, groupID string) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.expenses[groupID]
	expenses := make([]*models.Expense, 0, len(stored))
	for _, e := range stored {
		expenses = append(expenses, copyExpense(e))
	}
	slices.SortStableFunc(expenses, func(a, b *models.Expense) int {
		return a.Date.Compare(b.Date)
	})
	return expenses, nil
}

// DeleteExpense removes one expense from a group.
func (s *Store) DeleteExpense(_ context.Context, groupID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.expenses[groupID]
	i := slices.IndexFunc(stored, func(e *models.Expense) bool { return e.ID == expenseID })
	if i < 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	s.expenses[groupID] = slices.Delete(stored, i, i+1)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
