package codec

import (
	"reflect"
	"testing"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() ICodec{
	"JSON": NewJSONCodec,
	"GOB":  NewGOBCodec,
}

type testOrder struct {
	ID       int
	Customer string
	Items    []string
	Total    float64
	Paid     bool
	Meta     map[string]string
}

// testOrders creates a set of test values with different fields filled
func testOrders() []testOrder {
	return []testOrder{
		// Only the id
		{ID: 1},

		// All fields filled
		{
			ID:       2,
			Customer: "Ozan Metin",
			Items:    []string{"book", "pen"},
			Total:    12.5,
			Paid:     true,
			Meta:     map[string]string{"email": "example@example.com"},
		},

		// Unicode and negative numbers
		{
			ID:       -3,
			Customer: "Jöhn Dœ ✓",
			Total:    -0.25,
		},
	}
}

// TestCodecRoundTrip tests that values can be encoded and decoded correctly
func TestCodecRoundTrip(t *testing.T) {
	orders := testOrders()

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			for i, order := range orders {
				data, err := c.Encode(order)
				if err != nil {
					t.Errorf("Failed to encode value %d: %v", i, err)
					continue
				}

				var result testOrder
				if err := c.Decode(data, &result); err != nil {
					t.Errorf("Failed to decode value %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(order, result) {
					t.Errorf("Value %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, order, result)
				}
			}
		})
	}
}

// TestCodecScalars tests top level scalar values with each codec
func TestCodecScalars(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			data, err := c.Encode(42)
			if err != nil {
				t.Fatalf("Failed to encode int: %v", err)
			}
			var i int
			if err := c.Decode(data, &i); err != nil {
				t.Fatalf("Failed to decode int: %v", err)
			}
			if i != 42 {
				t.Errorf("Expected 42, got %d", i)
			}

			data, err = c.Encode("hello")
			if err != nil {
				t.Fatalf("Failed to encode string: %v", err)
			}
			var s string
			if err := c.Decode(data, &s); err != nil {
				t.Fatalf("Failed to decode string: %v", err)
			}
			if s != "hello" {
				t.Errorf("Expected hello, got %s", s)
			}
		})
	}
}

// TestJSONCodecDynamicValues tests values decoded into interface types
func TestJSONCodecDynamicValues(t *testing.T) {
	c := NewJSONCodec()

	testCases := []struct {
		name  string
		value any
	}{
		{name: "Object", value: map[string]any{"order_id": float64(1), "tags": []any{"a", "b"}}},
		{name: "Array", value: []any{float64(1), "two", true, nil}},
		{name: "String", value: "text"},
		{name: "Number", value: 3.5},
		{name: "Bool", value: false},
		{name: "Null", value: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Encode(tc.value)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}

			var result any
			if err := c.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}

			if !reflect.DeepEqual(tc.value, result) {
				t.Errorf("Value doesn't match after round trip:\nOriginal: %#v\nResult: %#v", tc.value, result)
			}
		})
	}
}

// TestJSONCodecDeterministic tests that equal maps produce equal bytes
func TestJSONCodecDeterministic(t *testing.T) {
	c := NewJSONCodec()

	a, err := c.Encode(map[string]any{"name": "Alice", "age": 30, "city": "Berlin"})
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	b, err := c.Encode(map[string]any{"city": "Berlin", "age": 30, "name": "Alice"})
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	if string(a) != string(b) {
		t.Errorf("Expected equal encodings, got %s and %s", a, b)
	}
}

// TestInvalidData tests how the codecs handle corrupt data
func TestInvalidData(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "Empty data", data: []byte{}},
		{name: "Garbage", data: []byte{0xff, 0x00, 0x12}},
		{name: "Truncated", data: []byte(`{"ID": 1, "Custo`)},
	}

	for name, factory := range testCodecs {
		c := factory()
		for _, tc := range testCases {
			t.Run(name+"_"+tc.name, func(t *testing.T) {
				var result testOrder
				if err := c.Decode(tc.data, &result); err == nil {
					t.Errorf("Expected error but got none")
				}
			})
		}
	}
}

// TestLookup tests the codec registry
func TestLookup(t *testing.T) {
	testCases := []struct {
		name        string
		expected    string
		expectError bool
	}{
		{name: "", expected: "json"},
		{name: "json", expected: "json"},
		{name: "gob", expected: "gob"},
		{name: "xml", expectError: true},
	}

	for _, tc := range testCases {
		c, err := Lookup(tc.name)
		if tc.expectError {
			if err == nil {
				t.Errorf("Lookup(%q): expected error but got none", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q): did not expect error but got: %v", tc.name, err)
			continue
		}
		if c.Name() != tc.expected {
			t.Errorf("Lookup(%q): expected %s, got %s", tc.name, tc.expected, c.Name())
		}
	}
}
