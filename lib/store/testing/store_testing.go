package testing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ValentinKolb/dStruct/lib/store"
)

// KeyedFactory creates a new, empty Keyed implementation. The factory registers
// the cleanup of the instance with t.
type KeyedFactory func(t testing.TB) store.Keyed[string]

// OrderedFactory creates a new, empty Ordered implementation. The factory registers
// the cleanup of the instance with t.
type OrderedFactory func(t testing.TB) store.Ordered[string]

// RunKeyedTests runs the conformance test suite for a Keyed implementation.
func RunKeyedTests(t *testing.T, name string, factory KeyedFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testKeyedSetGet(t, factory(t))
		})

		t.Run("Delete", func(t *testing.T) {
			testKeyedDelete(t, factory(t))
		})

		t.Run("Exists", func(t *testing.T) {
			testKeyedExists(t, factory(t))
		})

		t.Run("GetAll", func(t *testing.T) {
			testKeyedGetAll(t, factory(t))
		})

		t.Run("Clear", func(t *testing.T) {
			testKeyedClear(t, factory(t))
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testKeyedEdgeCases(t, factory(t))
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testKeyedConcurrentAccess(t, factory(t))
		})
	})
}

// RunOrderedTests runs the conformance test suite for an Ordered implementation.
// fifo selects the expected removal order.
func RunOrderedTests(t *testing.T, name string, fifo bool, factory OrderedFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Order", func(t *testing.T) {
			testOrderedOrder(t, factory(t), fifo)
		})

		t.Run("GetEmpty", func(t *testing.T) {
			testOrderedGetEmpty(t, factory(t))
		})

		t.Run("GetMany", func(t *testing.T) {
			testOrderedGetMany(t, factory(t), fifo)
		})

		t.Run("GetAll", func(t *testing.T) {
			testOrderedGetAll(t, factory(t))
		})

		t.Run("Clear", func(t *testing.T) {
			testOrderedClear(t, factory(t))
		})

		t.Run("ConcurrentProducers", func(t *testing.T) {
			testOrderedConcurrentProducers(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// must fails the test immediately if err is not nil
func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// expectSize checks the size of a Sized implementation
func expectSize(t testing.TB, s store.Sized, want int64) {
	t.Helper()
	size, err := s.Size(context.Background())
	must(t, err)
	if size != want {
		t.Errorf("Expected size %d, got %d", want, size)
	}
	empty, err := s.IsEmpty(context.Background())
	must(t, err)
	if empty != (want == 0) {
		t.Errorf("Expected IsEmpty=%v with size %d", want == 0, want)
	}
}

// --------------------------------------------------------------------------
// Keyed test functions
// --------------------------------------------------------------------------

func testKeyedSetGet(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	must(t, s.Set(ctx, "test-key", "test-value1"))

	value, loaded, err := s.Get(ctx, "test-key")
	must(t, err)
	if !loaded {
		t.Fatalf("Expected key %s to exist after Set", "test-key")
	}
	if value != "test-value1" {
		t.Errorf("Expected value %s, got %s", "test-value1", value)
	}

	must(t, s.Set(ctx, "test-key", "test-value2"))

	value, loaded, err = s.Get(ctx, "test-key")
	must(t, err)
	if !loaded || value != "test-value2" {
		t.Errorf("Expected overwritten value %s, got %s (loaded=%v)", "test-value2", value, loaded)
	}

	value, loaded, err = s.Get(ctx, "nonexistent-key")
	must(t, err)
	if loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}
	if value != "" {
		t.Errorf("Expected zero value for nonexistent key, got %q", value)
	}
}

func testKeyedDelete(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	must(t, s.Set(ctx, "delete-key", "value"))
	must(t, s.Delete(ctx, "delete-key"))

	if _, loaded, err := s.Get(ctx, "delete-key"); err != nil || loaded {
		t.Errorf("Expected key to be gone after Delete (loaded=%v, err=%v)", loaded, err)
	}

	// deleting a missing key is not an error
	must(t, s.Delete(ctx, "delete-key"))
	must(t, s.Delete(ctx, "never-existed"))
}

func testKeyedExists(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	ok, err := s.Exists(ctx, "exists-key")
	must(t, err)
	if ok {
		t.Errorf("Expected key not to exist before Set")
	}

	must(t, s.Set(ctx, "exists-key", "value"))
	ok, err = s.Exists(ctx, "exists-key")
	must(t, err)
	if !ok {
		t.Errorf("Expected key to exist after Set")
	}

	must(t, s.Delete(ctx, "exists-key"))
	ok, err = s.Exists(ctx, "exists-key")
	must(t, err)
	if ok {
		t.Errorf("Expected key not to exist after Delete")
	}
}

func testKeyedGetAll(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	all, err := s.GetAll(ctx)
	must(t, err)
	if len(all) != 0 {
		t.Errorf("Expected no entries in a new structure, got %d", len(all))
	}

	want := map[string]string{
		"a":          "1",
		"b":          "2",
		"with:colon": "3",
	}
	for k, v := range want {
		must(t, s.Set(ctx, k, v))
	}

	all, err = s.GetAll(ctx)
	must(t, err)
	if len(all) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %v", len(want), len(all), all)
	}
	for k, v := range want {
		if all[k] != v {
			t.Errorf("Expected %s=%s, got %s", k, v, all[k])
		}
	}
}

func testKeyedClear(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		must(t, s.Set(ctx, fmt.Sprintf("clear-%d", i), "value"))
	}
	must(t, s.Clear(ctx))

	all, err := s.GetAll(ctx)
	must(t, err)
	if len(all) != 0 {
		t.Errorf("Expected no entries after Clear, got %d", len(all))
	}

	// clearing an empty structure is not an error
	must(t, s.Clear(ctx))
}

func testKeyedEdgeCases(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty value", "empty-value", ""},
		{"unicode", "ключ-🔑", "значение-✓"},
		{"glob characters", "key*[?]", "glob"},
		{"whitespace", "key with spaces", "  value  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			must(t, s.Set(ctx, tt.key, tt.value))
			value, loaded, err := s.Get(ctx, tt.key)
			must(t, err)
			if !loaded || value != tt.value {
				t.Errorf("Expected %q, got %q (loaded=%v)", tt.value, value, loaded)
			}
		})
	}

	all, err := s.GetAll(ctx)
	must(t, err)
	if len(all) != len(tests) {
		t.Errorf("Expected %d entries, got %d", len(tests), len(all))
	}
}

func testKeyedConcurrentAccess(t *testing.T, s store.Keyed[string]) {
	ctx := context.Background()
	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.Set(ctx, fmt.Sprintf("w%d-k%d", w, i), fmt.Sprintf("%d", i)); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Concurrent Set failed: %v", err)
	}

	all, err := s.GetAll(ctx)
	must(t, err)
	if len(all) != workers*perWorker {
		t.Errorf("Expected %d entries, got %d", workers*perWorker, len(all))
	}
}

// --------------------------------------------------------------------------
// Ordered test functions
// --------------------------------------------------------------------------

func testOrderedOrder(t *testing.T, s store.Ordered[string], fifo bool) {
	ctx := context.Background()

	input := []string{"first", "second", "third"}
	for _, v := range input {
		must(t, s.Set(ctx, v))
	}
	expectSize(t, s, int64(len(input)))

	for i := range input {
		want := input[i]
		if !fifo {
			want = input[len(input)-1-i]
		}
		v, loaded, err := s.Get(ctx)
		must(t, err)
		if !loaded || v != want {
			t.Errorf("Expected %s at position %d, got %s (loaded=%v)", want, i, v, loaded)
		}
	}
	expectSize(t, s, 0)
}

func testOrderedGetEmpty(t *testing.T, s store.Ordered[string]) {
	ctx := context.Background()

	v, loaded, err := s.Get(ctx)
	must(t, err)
	if loaded {
		t.Errorf("Expected loaded=false on an empty structure, got %q", v)
	}

	many, err := s.GetMany(ctx, 5)
	must(t, err)
	if len(many) != 0 {
		t.Errorf("Expected no values from an empty structure, got %v", many)
	}
	expectSize(t, s, 0)
}

func testOrderedGetMany(t *testing.T, s store.Ordered[string], fifo bool) {
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		must(t, s.Set(ctx, v))
	}

	first, err := s.GetMany(ctx, 2)
	must(t, err)
	want := []string{"a", "b"}
	if !fifo {
		want = []string{"c", "b"}
	}
	if fmt.Sprint(first) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, first)
	}

	// fewer values than requested is not an error
	rest, err := s.GetMany(ctx, 10)
	must(t, err)
	if len(rest) != 1 {
		t.Errorf("Expected the single remaining value, got %v", rest)
	}

	none, err := s.GetMany(ctx, 0)
	must(t, err)
	if len(none) != 0 {
		t.Errorf("Expected no values for count 0, got %v", none)
	}
}

func testOrderedGetAll(t *testing.T, s store.Ordered[string]) {
	ctx := context.Background()

	for _, v := range []string{"x", "y", "z"} {
		must(t, s.Set(ctx, v))
	}

	all, err := s.GetAll(ctx)
	must(t, err)
	if fmt.Sprint(all) != fmt.Sprint([]string{"x", "y", "z"}) {
		t.Errorf("Expected values in insertion order, got %v", all)
	}

	// GetAll does not remove values
	expectSize(t, s, 3)
}

func testOrderedClear(t *testing.T, s store.Ordered[string]) {
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		must(t, s.Set(ctx, fmt.Sprintf("v%d", i)))
	}
	must(t, s.Clear(ctx))
	expectSize(t, s, 0)

	if _, loaded, err := s.Get(ctx); err != nil || loaded {
		t.Errorf("Expected nothing to get after Clear (loaded=%v, err=%v)", loaded, err)
	}
}

func testOrderedConcurrentProducers(t *testing.T, s store.Ordered[string]) {
	ctx := context.Background()
	const producers = 4
	const perProducer = 25

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := s.Set(ctx, fmt.Sprintf("p%d-%03d", p, i)); err != nil {
					t.Errorf("Concurrent Set failed: %v", err)
					return
				}
			}
		}(p)
	}
	wg.Wait()

	values, err := s.GetMany(ctx, producers*perProducer+10)
	must(t, err)
	if len(values) != producers*perProducer {
		t.Fatalf("Expected %d values, got %d", producers*perProducer, len(values))
	}

	// every value exactly once
	sort.Strings(values)
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			t.Errorf("Value %s was returned twice", values[i])
		}
	}
}
