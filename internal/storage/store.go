// Package storage persists users and transactions. The Store interface keeps
// the relational backend swappable; handlers and tests never touch SQL.
package storage

import (
	"context"

	"fintrack/internal/core"
)

// Store is the persistence contract. Every transaction query is scoped to a
// user id; lookups that miss within that scope return core.ErrNotFound so
// one user can never observe another's records.
type Store interface {
	// CreateUser inserts a new user and returns it with the assigned id.
	// Returns core.ErrDuplicate when the username or email is taken.
	CreateUser(ctx context.Context, user core.User) (core.User, error)
	UserByUsername(ctx context.Context, username string) (core.User, error)

	ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error)
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	GetExpense(ctx context.Context, userID, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, userID, id int64) error
	// RecentExpenses returns up to limit expenses ordered by date descending.
	RecentExpenses(ctx context.Context, userID int64, limit int) ([]core.Expense, error)

	ListIncomes(ctx context.Context, userID int64) ([]core.Income, error)
	CreateIncome(ctx context.Context, in core.Income) (core.Income, error)
	GetIncome(ctx context.Context, userID, id int64) (core.Income, error)
	UpdateIncome(ctx context.Context, in core.Income) error
	DeleteIncome(ctx context.Context, userID, id int64) error
	RecentIncomes(ctx context.Context, userID int64, limit int) ([]core.Income, error)

	Close() error
}
