package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

// MemoryStore is an in-memory Store used by handler tests and as a
// throwaway backend. It mirrors the SQLite repository's scoping and
// not-found semantics.
type MemoryStore struct {
	mu       sync.Mutex
	users    []core.User
	expenses []core.Expense
	incomes  []core.Income
	nextUser int64
	nextExp  int64
	nextInc  int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextUser: 1, nextExp: 1, nextInc: 1}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) CreateUser(_ context.Context, user core.User) (core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return core.User{}, core.ErrDuplicate
		}
	}
	user.ID = m.nextUser
	m.nextUser++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users = append(m.users, user)
	return user, nil
}

func (m *MemoryStore) UserByUsername(_ context.Context, username string) (core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, core.ErrNotFound
}

func (m *MemoryStore) ListExpenses(_ context.Context, userID int64) ([]core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.Expense
	for _, e := range m.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextExp
	m.nextExp++
	m.expenses = append(m.expenses, e)
	return e, nil
}

func (m *MemoryStore) GetExpense(_ context.Context, userID, id int64) (core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.expenses {
		if e.ID == id && e.UserID == userID {
			return e, nil
		}
	}
	return core.Expense{}, core.ErrNotFound
}

func (m *MemoryStore) UpdateExpense(_ context.Context, e core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.expenses {
		if cur.ID == e.ID && cur.UserID == e.UserID {
			m.expenses[i] = e
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *MemoryStore) DeleteExpense(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.expenses {
		if e.ID == id && e.UserID == userID {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *MemoryStore) RecentExpenses(ctx context.Context, userID int64, limit int) ([]core.Expense, error) {
	out, _ := m.ListExpenses(ctx, userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListIncomes(_ context.Context, userID int64) ([]core.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []core.Income
	for _, in := range m.incomes {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateIncome(_ context.Context, in core.Income) (core.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.ID = m.nextInc
	m.nextInc++
	m.incomes = append(m.incomes, in)
	return in, nil
}

func (m *MemoryStore) GetIncome(_ context.Context, userID, id int64) (core.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.incomes {
		if in.ID == id && in.UserID == userID {
			return in, nil
		}
	}
	return core.Income{}, core.ErrNotFound
}

func (m *MemoryStore) UpdateIncome(_ context.Context, in core.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.incomes {
		if cur.ID == in.ID && cur.UserID == in.UserID {
			m.incomes[i] = in
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *MemoryStore) DeleteIncome(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, in := range m.incomes {
		if in.ID == id && in.UserID == userID {
			m.incomes = append(m.incomes[:i], m.incomes[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *MemoryStore) RecentIncomes(ctx context.Context, userID int64, limit int) ([]core.Income, error) {
	out, _ := m.ListIncomes(ctx, userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
