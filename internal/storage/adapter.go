package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"kharcha/internal/core"
)

// persistedRecord is the JSON shape of one expense on disk. Amounts are
// json.Number carrying the exact decimal text, so values round-trip
// through cents without float conversion.
type persistedRecord struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// Adapter bridges the ledger to a KV backend. Loads substitute the given
// fallback on any missing, unreadable, or schema-invalid value; saves are
// best effort and never report failure to the caller.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// LoadBalance reads the persisted wallet balance, or fallback if the key
// is absent or does not hold a decimal number.
func (a *Adapter) LoadBalance(ctx context.Context, fallback core.Money) core.Money {
	raw, ok := a.get(ctx, KeyWalletBalance)
	if !ok {
		return fallback
	}
	cents, err := core.ParseDecimal(raw)
	if err != nil {
		slog.WarnContext(ctx, "Persisted balance is malformed, using fallback",
			"key", KeyWalletBalance, "fallback", fallback.String())
		return fallback
	}
	return core.Money{Cents: cents}
}

// LoadExpenses reads the persisted expense list in insertion order, or an
// empty list if the key is absent or any record fails to decode. A list
// where even one record is invalid is discarded wholesale, never returned
// partially.
func (a *Adapter) LoadExpenses(ctx context.Context) []core.ExpenseRecord {
	raw, ok := a.get(ctx, KeyExpenses)
	if !ok {
		return nil
	}
	records, err := decodeExpenses(raw)
	if err != nil {
		slog.WarnContext(ctx, "Persisted expense list is malformed, using empty list",
			"key", KeyExpenses, "error", err)
		return nil
	}
	return records
}

// SaveBalance persists the balance as decimal text. Write failures are
// logged and swallowed; the in-memory ledger stays authoritative.
func (a *Adapter) SaveBalance(ctx context.Context, balance core.Money) {
	if err := a.kv.Put(ctx, KeyWalletBalance, balance.String()); err != nil {
		slog.WarnContext(ctx, "Failed to persist balance",
			"key", KeyWalletBalance, "error", err)
	}
}

// SaveExpenses persists the full expense list as a JSON array.
func (a *Adapter) SaveExpenses(ctx context.Context, records []core.ExpenseRecord) {
	out := make([]persistedRecord, len(records))
	for i, r := range records {
		out[i] = persistedRecord{
			ID:       r.ID,
			Title:    r.Title,
			Amount:   json.Number(r.Amount.String()),
			Category: r.Category,
			Date:     r.Date.String(),
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode expense list", "error", err)
		return
	}
	if err := a.kv.Put(ctx, KeyExpenses, string(data)); err != nil {
		slog.WarnContext(ctx, "Failed to persist expense list",
			"key", KeyExpenses, "count", len(records), "error", err)
	}
}

func (a *Adapter) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read persisted value", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

func decodeExpenses(raw string) ([]core.ExpenseRecord, error) {
	var persisted []persistedRecord
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return nil, err
	}
	records := make([]core.ExpenseRecord, 0, len(persisted))
	for _, p := range persisted {
		if p.ID == "" {
			return nil, errors.New("record missing id")
		}
		cents, err := core.ParseDecimalToCents(p.Amount.String())
		if err != nil {
			return nil, err
		}
		date, err := core.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		rec := core.ExpenseRecord{
			ID:       p.ID,
			Title:    p.Title,
			Amount:   core.Money{Cents: cents},
			Category: p.Category,
			Date:     date,
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
