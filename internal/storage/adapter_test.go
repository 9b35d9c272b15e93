package storage

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/core"
)

// failingKV simulates an exhausted or broken backend.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend unavailable")
}

func (failingKV) Put(context.Context, string, string) error {
	return errors.New("backend unavailable")
}

func TestAdapterBalanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV())

	fallback := core.Money{Cents: 500000}
	if got := a.LoadBalance(ctx, fallback); got != fallback {
		t.Fatalf("empty store should yield fallback, got %v", got)
	}

	a.SaveBalance(ctx, core.Money{Cents: 123456})
	if got := a.LoadBalance(ctx, fallback); got.Cents != 123456 {
		t.Fatalf("expected 123456 cents, got %d", got.Cents)
	}
}

func TestAdapterBalanceMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv)

	if err := kv.Put(ctx, KeyWalletBalance, "not-a-number"); err != nil {
		t.Fatal(err)
	}
	fallback := core.Money{Cents: 500000}
	if got := a.LoadBalance(ctx, fallback); got != fallback {
		t.Fatalf("malformed balance should yield fallback, got %v", got)
	}
}

func TestAdapterExpensesRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryKV())

	records := []core.ExpenseRecord{
		{ID: "a1", Title: "Groceries", Amount: core.Money{Cents: 15050}, Category: "Food", Date: core.NewDate(2025, 3, 9)},
		{ID: "b2", Title: "Cinema", Amount: core.Money{Cents: 4000}, Category: "Entertainment", Date: core.NewDate(2025, 3, 10)},
	}
	a.SaveExpenses(ctx, records)

	got := a.LoadExpenses(ctx)
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d mismatch:\n  want %+v\n  got  %+v", i, records[i], got[i])
		}
	}
}

func TestAdapterExpensesMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv)

	cases := []string{
		"not json at all",
		`{"id":"x"}`, // object, not array
		`[{"id":"","title":"t","amount":"1.00","category":"c","date":"2025-01-01"}]`,
		`[{"id":"x","title":"t","amount":"0","category":"c","date":"2025-01-01"}]`,
		`[{"id":"x","title":"t","amount":"1.00","category":"c","date":"01/01/2025"}]`,
		`[{"id":"x","title":"","amount":"1.00","category":"c","date":"2025-01-01"}]`,
	}
	for i, raw := range cases {
		if err := kv.Put(ctx, KeyExpenses, raw); err != nil {
			t.Fatal(err)
		}
		if got := a.LoadExpenses(ctx); len(got) != 0 {
			t.Fatalf("case %d: malformed list should yield empty, got %d records", i, len(got))
		}
	}
}

func TestAdapterSwallowsBackendErrors(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(failingKV{})

	fallback := core.Money{Cents: 500000}
	if got := a.LoadBalance(ctx, fallback); got != fallback {
		t.Fatalf("read error should yield fallback, got %v", got)
	}
	if got := a.LoadExpenses(ctx); got != nil {
		t.Fatalf("read error should yield empty list, got %v", got)
	}

	// Saves must not panic or surface errors.
	a.SaveBalance(ctx, core.Money{Cents: 100})
	a.SaveExpenses(ctx, []core.ExpenseRecord{
		{ID: "x", Title: "t", Amount: core.Money{Cents: 1}, Category: "c", Date: core.NewDate(2025, 1, 1)},
	})
}
