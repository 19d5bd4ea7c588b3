package testing

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
)

// RunKeyedBenchmarks runs all benchmarks for a Keyed implementation
func RunKeyedBenchmarks(b *testing.B, name string, factory KeyedFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Set", func(b *testing.B) {
			benchmarkKeyedSet(b, factory)
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkKeyedGet(b, factory)
		})

		b.Run("Exists(not)", func(b *testing.B) {
			benchmarkKeyedExistsNot(b, factory)
		})

		b.Run("MixedUsage", func(b *testing.B) {
			benchmarkKeyedMixedUsage(b, factory)
		})
	})
}

// RunOrderedBenchmarks runs all benchmarks for an Ordered implementation
func RunOrderedBenchmarks(b *testing.B, name string, factory OrderedFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Set", func(b *testing.B) {
			benchmarkOrderedSet(b, factory)
		})

		b.Run("SetGet", func(b *testing.B) {
			benchmarkOrderedSetGet(b, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkKeyedSet(b *testing.B, factory KeyedFactory) {
	s := factory(b)
	ctx := context.Background()
	var counter atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := s.Set(ctx, fmt.Sprintf("key-%d", counter.Add(1)), "value"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func benchmarkKeyedGet(b *testing.B, factory KeyedFactory) {
	s := factory(b)
	ctx := context.Background()

	const keyCount = 1000
	for i := 0; i < keyCount; i++ {
		if err := s.Set(ctx, fmt.Sprintf("key-%d", i), "value"); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			if _, _, err := s.Get(ctx, fmt.Sprintf("key-%d", r.Intn(keyCount))); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func benchmarkKeyedExistsNot(b *testing.B, factory KeyedFactory) {
	s := factory(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Exists(ctx, "missing"); err != nil {
			b.Fatal(err)
		}
	}
}

// 80% reads, 20% writes
func benchmarkKeyedMixedUsage(b *testing.B, factory KeyedFactory) {
	s := factory(b)
	ctx := context.Background()

	const keyCount = 100
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			key := fmt.Sprintf("key-%d", r.Intn(keyCount))
			var err error
			if r.Intn(10) < 8 {
				_, _, err = s.Get(ctx, key)
			} else {
				err = s.Set(ctx, key, "value")
			}
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func benchmarkOrderedSet(b *testing.B, factory OrderedFactory) {
	s := factory(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Set(ctx, "value"); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkOrderedSetGet(b *testing.B, factory OrderedFactory) {
	s := factory(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Set(ctx, "value"); err != nil {
			b.Fatal(err)
		}
		if _, _, err := s.Get(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
