package codec

import (
	"strings"
	"testing"
)

// benchmarkValues returns a set of values for targeted benchmarking
func benchmarkValues() map[string]testOrder {
	return map[string]testOrder{
		"Empty": {},
		"Small": {
			ID:       1,
			Customer: "c",
		},
		"Medium": {
			ID:       2,
			Customer: "medium-length-customer-name-for-testing",
			Items:    []string{"book", "pen", "paper"},
			Total:    42.5,
			Paid:     true,
		},
		"Large": {
			ID:       3,
			Customer: strings.Repeat("x", 1024), // 1KB of data
			Items:    strings.Split(strings.Repeat("item,", 256), ","),
			Meta:     map[string]string{"note": strings.Repeat("y", 1024*16)}, // 16KB of data
		},
	}
}

// BenchmarkEncode benchmarks encoding for all implementations with various values
func BenchmarkEncode(b *testing.B) {
	values := benchmarkValues()

	for name, factory := range testCodecs {
		for valueName, value := range values {
			b.Run(name+"_"+valueName, func(b *testing.B) {
				c := factory()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := c.Encode(value)
					if err != nil {
						b.Fatalf("Failed to encode: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDecode benchmarks decoding for all implementations with various values
func BenchmarkDecode(b *testing.B) {
	values := benchmarkValues()
	encoded := make(map[string]map[string][]byte)

	// Pre-encode all values with all codecs
	for name, factory := range testCodecs {
		c := factory()
		encoded[name] = make(map[string][]byte)

		for valueName, value := range values {
			data, err := c.Encode(value)
			if err != nil {
				b.Fatalf("Failed to encode %s with %s: %v", valueName, name, err)
			}
			encoded[name][valueName] = data
		}
	}

	for name, factory := range testCodecs {
		for valueName := range values {
			b.Run(name+"_"+valueName, func(b *testing.B) {
				c := factory()
				data := encoded[name][valueName]
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					var v testOrder
					if err := c.Decode(data, &v); err != nil {
						b.Fatalf("Failed to decode: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkSize measures and reports the encoded size for each value
func BenchmarkSize(b *testing.B) {
	values := benchmarkValues()

	for name, factory := range testCodecs {
		c := factory()

		for valueName, value := range values {
			b.Run(name+"_"+valueName, func(b *testing.B) {
				data, err := c.Encode(value)
				if err != nil {
					b.Fatalf("Failed to encode: %v", err)
				}

				b.ReportMetric(float64(len(data)), "bytes")

				for i := 0; i < b.N; i++ {
					_ = data
				}
			})
		}
	}
}
