package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteKV(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kharcha.db")

	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.Put(ctx, KeyWalletBalance, "5000.00"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if v, ok, err := kv.Get(ctx, KeyWalletBalance); err != nil || !ok || v != "5000.00" {
		t.Fatalf("get after put: v=%q ok=%v err=%v", v, ok, err)
	}

	// Put on an existing key replaces the value.
	if err := kv.Put(ctx, KeyWalletBalance, "4850.50"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := kv.Get(ctx, KeyWalletBalance); v != "4850.50" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kharcha.db")

	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	if err := kv.Put(ctx, KeyExpenses, `[]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok, err := reopened.Get(ctx, KeyExpenses); err != nil || !ok || v != `[]` {
		t.Fatalf("value lost across reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}
