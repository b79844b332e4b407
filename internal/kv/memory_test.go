// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_BasicOperations(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	// Test Set and Get
	if err := store.Set(ctx, "key1", []byte("value1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := store.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	// Test Has
	has, err := store.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	// Test Delete
	if err := store.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = store.Get(ctx, "key1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Missing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	has, err := store.Has(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if has {
		t.Error("expected nonexistent key to not exist")
	}

	// Deleting an absent key is fine
	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []byte("original")
	if err := store.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	in[0] = 'X'

	out, _ := store.Get(ctx, "k")
	if string(out) != "original" {
		t.Errorf("stored value mutated through input slice: %q", out)
	}

	out[0] = 'Y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("one"))
	_ = store.Set(ctx, "k", []byte("two"))

	val, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "two" {
		t.Errorf("Get = %q, want %q", val, "two")
	}
}

func TestMemoryStore_SortedKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "b", []byte("1"))
	_ = store.Set(ctx, "a", []byte("2"))

	keys := store.keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys() = %v, want [a b]", keys)
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Close()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close: expected ErrClosed, got %v", err)
	}
	if err := store.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close: expected ErrClosed, got %v", err)
	}
	if err := store.Delete(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Delete after Close: expected ErrClosed, got %v", err)
	}
	if _, err := store.Has(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Has after Close: expected ErrClosed, got %v", err)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			_ = store.Set(ctx, key, []byte(key))
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if got := len(store.keys()); got != 50 {
		t.Errorf("expected 50 keys, got %d", got)
	}
}
