package ledger

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/core"
	"kharcha/internal/storage"
)

const initialCents = 500000 // 5000.00

func newTestLedger(t *testing.T) (*Ledger, *storage.Adapter) {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewMemoryKV())
	l := Open(context.Background(), adapter, core.Money{Cents: initialCents})
	return l, adapter
}

func fields(title string, cents int64, category string) Fields {
	return Fields{
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     core.NewDate(2025, 3, 9),
	}
}

func TestOpenUsesFallbacks(t *testing.T) {
	l, _ := newTestLedger(t)
	if l.Balance().Cents != initialCents {
		t.Fatalf("expected initial balance %d, got %d", initialCents, l.Balance().Cents)
	}
	if len(l.Expenses()) != 0 {
		t.Fatalf("expected empty expense list, got %d", len(l.Expenses()))
	}
}

func TestAddIncome(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	balance, err := l.AddIncome(ctx, core.Money{Cents: 10000})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if balance.Cents != initialCents+10000 {
		t.Fatalf("expected %d, got %d", initialCents+10000, balance.Cents)
	}

	for _, cents := range []int64{0, -100} {
		if _, err := l.AddIncome(ctx, core.Money{Cents: cents}); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("cents=%d expected ErrInvalidAmount, got %v", cents, err)
		}
	}
	// Rejected income leaves the balance alone.
	if l.Balance().Cents != initialCents+10000 {
		t.Fatalf("balance changed by rejected income: %d", l.Balance().Cents)
	}
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	rec, err := l.AddExpense(ctx, fields("Groceries", 15000, "Food"))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected assigned id")
	}
	if l.Balance().Cents != initialCents-15000 {
		t.Fatalf("expected balance %d, got %d", initialCents-15000, l.Balance().Cents)
	}
	if got := l.Expenses(); len(got) != 1 || got[0] != rec {
		t.Fatalf("expected [%+v], got %+v", rec, got)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	cases := []struct {
		f    Fields
		want error
	}{
		{fields("", 100, "Food"), core.ErrEmptyTitle},
		{fields("Lunch", 100, ""), core.ErrEmptyCategory},
		{fields("Lunch", 0, "Food"), core.ErrInvalidAmount},
		{fields("Lunch", -100, "Food"), core.ErrInvalidAmount},
		{Fields{Title: "Lunch", Amount: core.Money{Cents: 100}, Category: "Food"}, core.ErrInvalidDate},
	}
	for i, tc := range cases {
		if _, err := l.AddExpense(ctx, tc.f); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
	if l.Balance().Cents != initialCents || len(l.Expenses()) != 0 {
		t.Fatal("rejected expense mutated state")
	}
}

func TestAddExpenseInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	if _, err := l.AddExpense(ctx, fields("Yacht", initialCents+1, "Travel")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if l.Balance().Cents != initialCents || len(l.Expenses()) != 0 {
		t.Fatal("rejected expense mutated state")
	}

	// Spending the exact balance is allowed.
	if _, err := l.AddExpense(ctx, fields("Everything", initialCents, "Other")); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if l.Balance().Cents != 0 {
		t.Fatalf("expected zero balance, got %d", l.Balance().Cents)
	}
}

func TestEditExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	rec, err := l.AddExpense(ctx, fields("Dinner", 10000, "Food"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := l.EditExpense(ctx, rec.ID, fields("Dinner out", 12500, "Entertainment"))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if updated.ID != rec.ID {
		t.Fatalf("id changed on edit: %q -> %q", rec.ID, updated.ID)
	}
	if updated.Title != "Dinner out" || updated.Category != "Entertainment" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	// Balance moved by exactly the delta.
	if want := int64(initialCents - 12500); l.Balance().Cents != want {
		t.Fatalf("expected balance %d, got %d", want, l.Balance().Cents)
	}

	// Reducing the amount refunds the difference.
	if _, err := l.EditExpense(ctx, rec.ID, fields("Dinner out", 2500, "Entertainment")); err != nil {
		t.Fatal(err)
	}
	if want := int64(initialCents - 2500); l.Balance().Cents != want {
		t.Fatalf("expected balance %d, got %d", want, l.Balance().Cents)
	}
}

func TestEditExpenseRejections(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	rec, err := l.AddExpense(ctx, fields("Rent", 400000, "Other"))
	if err != nil {
		t.Fatal(err)
	}
	balanceBefore := l.Balance()
	listBefore := l.Expenses()

	if _, err := l.EditExpense(ctx, "no-such-id", fields("x", 100, "Food")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Delta (200001) exceeds the remaining balance (100000).
	if _, err := l.EditExpense(ctx, rec.ID, fields("Rent", 600001, "Other")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if _, err := l.EditExpense(ctx, rec.ID, fields("", 100, "Food")); !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	if l.Balance() != balanceBefore {
		t.Fatalf("balance changed by rejected edit: %v -> %v", balanceBefore, l.Balance())
	}
	listAfter := l.Expenses()
	if len(listAfter) != len(listBefore) || listAfter[0] != listBefore[0] {
		t.Fatal("expense list changed by rejected edit")
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	first, _ := l.AddExpense(ctx, fields("Bus", 500, "Travel"))
	second, _ := l.AddExpense(ctx, fields("Lunch", 1200, "Food"))

	if err := l.DeleteExpense(ctx, first.ID); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if want := int64(initialCents - 1200); l.Balance().Cents != want {
		t.Fatalf("expected refund to %d, got %d", want, l.Balance().Cents)
	}
	got := l.Expenses()
	if len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("expected only %q to remain, got %+v", second.ID, got)
	}

	// Unknown id is a no-op.
	if err := l.DeleteExpense(ctx, "no-such-id"); err != nil {
		t.Fatalf("expected nil for unknown id, got %v", err)
	}
	if l.Balance().Cents != initialCents-1200 || len(l.Expenses()) != 1 {
		t.Fatal("no-op delete mutated state")
	}
}

// The core bookkeeping invariant: balance always equals initial
// + incomes - sum of current expense amounts, over any operation mix.
func TestBalanceInvariant(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	var incomes int64
	check := func() {
		t.Helper()
		var spent int64
		for _, r := range l.Expenses() {
			spent += r.Amount.Cents
		}
		if want := initialCents + incomes - spent; l.Balance().Cents != want {
			t.Fatalf("invariant broken: balance %d, want %d", l.Balance().Cents, want)
		}
	}

	a, _ := l.AddExpense(ctx, fields("A", 10000, "Food"))
	check()
	if _, err := l.AddIncome(ctx, core.Money{Cents: 25000}); err != nil {
		t.Fatal(err)
	}
	incomes += 25000
	check()
	b, _ := l.AddExpense(ctx, fields("B", 50000, "Travel"))
	check()
	if _, err := l.EditExpense(ctx, a.ID, fields("A2", 7500, "Food")); err != nil {
		t.Fatal(err)
	}
	check()
	if err := l.DeleteExpense(ctx, b.ID); err != nil {
		t.Fatal(err)
	}
	check()
	// Failed operations must not disturb the invariant either.
	l.AddExpense(ctx, fields("too big", 1<<40, "Other"))
	check()
}

// Mutations must survive a reload through the same adapter.
func TestLedgerPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	l, adapter := newTestLedger(t)

	rec, err := l.AddExpense(ctx, fields("Groceries", 15050, "Food"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddIncome(ctx, core.Money{Cents: 20000}); err != nil {
		t.Fatal(err)
	}

	reloaded := Open(ctx, adapter, core.Money{Cents: initialCents})
	if reloaded.Balance() != l.Balance() {
		t.Fatalf("balance lost: %v != %v", reloaded.Balance(), l.Balance())
	}
	got := reloaded.Expenses()
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("expenses lost: %+v", got)
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	before := l.Revision()
	if _, err := l.AddIncome(ctx, core.Money{Cents: 100}); err != nil {
		t.Fatal(err)
	}
	if l.Revision() == before {
		t.Fatal("revision did not advance on mutation")
	}

	before = l.Revision()
	l.AddExpense(ctx, fields("", 100, "Food")) // rejected
	if l.Revision() != before {
		t.Fatal("revision advanced on rejected mutation")
	}
}
