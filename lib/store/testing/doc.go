// Package testing provides standardised conformance tests and benchmarks for
// implementations of the store capability interfaces.
//
// The package contains:
//   - RunKeyedTests / RunKeyedBenchmarks for store.Keyed implementations
//   - RunOrderedTests / RunOrderedBenchmarks for store.Ordered implementations,
//     parameterized with the expected removal order (FIFO or LIFO)
//
// All suites use string values, so any codec that round trips strings can be tested.
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(t testing.TB) store.Keyed[string] {
//		s := NewMyStore(t.Name())
//		t.Cleanup(func() { s.Close() })
//		return s
//	}
//
//	// Running the standard test suite
//	storetesting.RunKeyedTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	storetesting.RunKeyedBenchmarks(b, "MyStore", factory)
package testing
