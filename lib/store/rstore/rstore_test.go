package rstore

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	storetesting "github.com/ValentinKolb/dStruct/lib/store/testing"
	"github.com/alicebob/miniredis/v2"
)

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// startServer starts an in-memory store that is stopped with the test
func startServer(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

// configFor returns a client config pointing at m
func configFor(t testing.TB, m *miniredis.Miniredis) common.ClientConfig {
	t.Helper()
	port, err := strconv.Atoi(m.Port())
	if err != nil {
		t.Fatalf("Invalid miniredis port %q: %v", m.Port(), err)
	}
	config := common.DefaultClientConfig()
	config.Host = m.Host()
	config.Port = port
	return config
}

// closeWith closes c when the test ends
func closeWith(t testing.TB, c interface{ Close() error }) {
	t.Cleanup(func() {
		_ = c.Close()
	})
}

// --------------------------------------------------------------------------
// Conformance suites
// --------------------------------------------------------------------------

func TestKeyed(t *testing.T) {
	storetesting.RunKeyedTests(t, "KeyValue", func(t testing.TB) store.Keyed[string] {
		kv, err := NewKeyValue[string](context.Background(), "kv", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewKeyValue: %v", err)
		}
		closeWith(t, kv)
		return kv
	})

	storetesting.RunKeyedTests(t, "Hash", func(t testing.TB) store.Keyed[string] {
		h, err := NewHash[string](context.Background(), "hash", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewHash: %v", err)
		}
		closeWith(t, h)
		return h
	})
}

func TestOrdered(t *testing.T) {
	storetesting.RunOrderedTests(t, "Queue", true, func(t testing.TB) store.Ordered[string] {
		q, err := NewQueue[string](context.Background(), "queue", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewQueue: %v", err)
		}
		closeWith(t, q)
		return q
	})

	storetesting.RunOrderedTests(t, "Stack", false, func(t testing.TB) store.Ordered[string] {
		s, err := NewStack[string](context.Background(), "stack", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewStack: %v", err)
		}
		closeWith(t, s)
		return s
	})
}

func BenchmarkKeyed(b *testing.B) {
	storetesting.RunKeyedBenchmarks(b, "KeyValue", func(t testing.TB) store.Keyed[string] {
		kv, err := NewKeyValue[string](context.Background(), "kv", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewKeyValue: %v", err)
		}
		closeWith(t, kv)
		return kv
	})
}

func BenchmarkOrdered(b *testing.B) {
	storetesting.RunOrderedBenchmarks(b, "Queue", func(t testing.TB) store.Ordered[string] {
		q, err := NewQueue[string](context.Background(), "queue", configFor(t, startServer(t)), nil)
		if err != nil {
			t.Fatalf("NewQueue: %v", err)
		}
		closeWith(t, q)
		return q
	})
}

// --------------------------------------------------------------------------
// Shared adapter behavior
// --------------------------------------------------------------------------

func TestAdapterRejectsEmptyName(t *testing.T) {
	config := configFor(t, startServer(t))
	ctx := context.Background()

	constructors := map[string]func() error{
		"KeyValue":  func() error { _, err := NewKeyValue[int](ctx, "", config, nil); return err },
		"List":      func() error { _, err := NewList[int](ctx, "", config, nil); return err },
		"Queue":     func() error { _, err := NewQueue[int](ctx, "", config, nil); return err },
		"Stack":     func() error { _, err := NewStack[int](ctx, "", config, nil); return err },
		"Set":       func() error { _, err := NewSet[int](ctx, "", config, nil); return err },
		"SortedSet": func() error { _, err := NewSortedSet[int](ctx, "", config, nil); return err },
		"Hash":      func() error { _, err := NewHash[int](ctx, "", config, nil); return err },
	}

	for name, create := range constructors {
		t.Run(name, func(t *testing.T) {
			if err := create(); !isCode(err, store.RetCInvalidArgument) {
				t.Errorf("Expected invalid argument error, got %v", err)
			}
		})
	}
}

func TestAdapterNameAndString(t *testing.T) {
	q, err := NewQueue[int](context.Background(), "jobs", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	defer q.Close()

	if q.Name() != "jobs" {
		t.Errorf("Expected name jobs, got %s", q.Name())
	}
	if q.String() != "Queue(name=jobs)" {
		t.Errorf("Unexpected string representation %s", q.String())
	}
}

func TestAdapterEncodeError(t *testing.T) {
	kv, err := NewKeyValue[any](context.Background(), "kv", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewKeyValue: %v", err)
	}
	defer kv.Close()

	// channels cannot be encoded as json
	err = kv.Set(context.Background(), "bad", make(chan int))
	if !isCode(err, store.RetCInvalidArgument) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

// isCode checks if err is a store error with the given code
func isCode(err error, code store.RetCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, store.NewError(code, ""))
}
