// Package codec provides value serialization for the dStruct adapters. It defines a
// common interface and multiple implementations for converting caller values into
// the byte representation stored in the remote store and back again.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Round-trip fidelity: decoding an encoded value reproduces an equivalent value
//   - Deterministic output, so encoded values can be compared by the store
//     (set membership, list removal, sorted set scores)
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - jsonCodecImpl: The default. Values are stored as JSON text, which keeps the
//     stored data readable from any other client of the store. Map keys are sorted
//     by encoding/json, so equal values always produce equal bytes.
//
//   - gobCodecImpl: Go's gob encoding. Useful when all readers and writers are Go
//     programs sharing the same types. Interface-typed values need gob.Register.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	c := codec.NewJSONCodec()
//	data, err := c.Encode(map[string]any{"order_id": 1})
//	// ... store data ...
//	var v map[string]any
//	err = c.Decode(data, &v)
package codec
