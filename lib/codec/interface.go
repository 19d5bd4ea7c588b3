package codec

import "fmt"

// ICodec is the interface for all value codecs.
// A codec converts caller values into the representation stored in the remote store and back.
type ICodec interface {
	// Name returns the name under which the codec is registered (e.g. "json")
	Name() string
	// Encode serializes a value into a byte array
	// It returns the serialized byte array and an error if any
	Encode(v any) ([]byte, error)
	// Decode deserializes a byte array into the value pointed to by v
	// It returns an error if the data cannot be reverse-transformed
	Decode(b []byte, v any) error
}

// Default returns the codec used when none is configured (json)
func Default() ICodec {
	return NewJSONCodec()
}

// Lookup returns the codec registered under the given name
func Lookup(name string) (ICodec, error) {
	switch name {
	case "", "json":
		return NewJSONCodec(), nil
	case "gob":
		return NewGOBCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s (expected one of: json, gob)", name)
	}
}
