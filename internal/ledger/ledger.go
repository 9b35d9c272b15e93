// Package ledger holds the wallet balance and expense list as one
// consistency unit. Every mutation validates first, applies in memory,
// then triggers a best-effort persistence write of whatever changed.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("expense not found")
)

// Fields carries the caller-editable parts of an expense record for
// create and edit operations.
type Fields struct {
	Title    string
	Amount   core.Money
	Category string
	Date     core.Date
}

// Ledger is the shared mutation point for wallet and expenses. A single
// mutex serializes all operations, so HTTP handlers may call it from any
// goroutine; rejected operations leave state untouched.
type Ledger struct {
	mu      sync.Mutex
	balance core.Money
	records []core.ExpenseRecord
	rev     uint64

	store *storage.Adapter
	newID func() string
}

// Open hydrates a ledger from the persistence adapter, falling back to
// the given initial balance and an empty expense list.
func Open(ctx context.Context, store *storage.Adapter, initial core.Money) *Ledger {
	l := &Ledger{
		store: store,
		newID: uuid.NewString,
	}
	l.balance = store.LoadBalance(ctx, initial)
	l.records = store.LoadExpenses(ctx)
	slog.InfoContext(ctx, "Ledger hydrated",
		"balance", l.balance.String(),
		"expenses", len(l.records))
	return l
}

// Balance returns the current wallet balance.
func (l *Ledger) Balance() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Expenses returns a copy of the expense list in insertion order.
func (l *Ledger) Expenses() []core.ExpenseRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Revision increments on every successful mutation. Callers caching
// derived views key their entries on it.
func (l *Ledger) Revision() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rev
}

// AddIncome credits the wallet. The amount must be strictly positive;
// there is no other rejection path for income.
func (l *Ledger) AddIncome(ctx context.Context, amount core.Money) (core.Money, error) {
	if err := amount.Validate(); err != nil {
		return core.Money{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance.Cents += amount.Cents
	l.rev++
	l.store.SaveBalance(ctx, l.balance)

	slog.InfoContext(ctx, "Income added",
		"amount", amount.String(),
		"balance", l.balance.String())
	return l.balance, nil
}

// AddExpense validates the candidate record, checks the balance covers
// it, then appends it with a fresh ID and debits the wallet.
func (l *Ledger) AddExpense(ctx context.Context, f Fields) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		ID:       l.newID(),
		Title:    strings.TrimSpace(f.Title),
		Amount:   f.Amount,
		Category: strings.TrimSpace(f.Category),
		Date:     f.Date,
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.Amount.Cents > l.balance.Cents {
		return core.ExpenseRecord{}, ErrInsufficientBalance
	}

	l.records = append(l.records, rec)
	l.balance.Cents -= rec.Amount.Cents
	l.rev++
	l.store.SaveExpenses(ctx, l.records)
	l.store.SaveBalance(ctx, l.balance)

	slog.InfoContext(ctx, "Expense added",
		"id", rec.ID,
		"title", rec.Title,
		"amount", rec.Amount.String(),
		"category", rec.Category,
		"balance", l.balance.String())
	return rec, nil
}

// EditExpense replaces the fields of an existing record. Spending more
// is allowed only while the extra delta fits in the current balance;
// spending less refunds the difference. Rejections leave both the list
// and the balance exactly as they were.
func (l *Ledger) EditExpense(ctx context.Context, id string, f Fields) (core.ExpenseRecord, error) {
	candidate := core.ExpenseRecord{
		ID:       id,
		Title:    strings.TrimSpace(f.Title),
		Amount:   f.Amount,
		Category: strings.TrimSpace(f.Category),
		Date:     f.Date,
	}
	if err := candidate.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return core.ExpenseRecord{}, ErrNotFound
	}

	old := l.records[idx]
	delta := candidate.Amount.Cents - old.Amount.Cents
	if delta > 0 && delta > l.balance.Cents {
		return core.ExpenseRecord{}, ErrInsufficientBalance
	}

	l.records[idx] = candidate
	l.balance.Cents -= delta
	l.rev++
	l.store.SaveExpenses(ctx, l.records)
	l.store.SaveBalance(ctx, l.balance)

	slog.InfoContext(ctx, "Expense edited",
		"id", id,
		"old_amount", old.Amount.String(),
		"new_amount", candidate.Amount.String(),
		"balance", l.balance.String())
	return candidate, nil
}

// DeleteExpense removes a record and refunds its amount. An unknown id
// is a no-op, not an error.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		slog.DebugContext(ctx, "Delete for unknown expense ignored", "id", id)
		return nil
	}

	// Capture the refund before the record leaves the list.
	refund := l.records[idx].Amount

	l.records = append(l.records[:idx], l.records[idx+1:]...)
	l.balance.Cents += refund.Cents
	l.rev++
	l.store.SaveExpenses(ctx, l.records)
	l.store.SaveBalance(ctx, l.balance)

	slog.InfoContext(ctx, "Expense deleted",
		"id", id,
		"refund", refund.String(),
		"balance", l.balance.String())
	return nil
}

func (l *Ledger) indexOf(id string) int {
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
