// Package storage is the persistence adapter: a string-keyed local store
// holding the ledger's two persisted values, with load-with-fallback
// semantics on the way out and best-effort writes on the way in.
package storage

import "context"

// Keys under which the ledger state is persisted.
const (
	KeyWalletBalance = "walletBalance"
	KeyExpenses      = "expenses"
)

// KV is a string-keyed local store.
type KV interface {
	// Get returns the raw value for key, reporting whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}
