package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cause := fmt.Errorf("dial tcp 127.0.0.1:1: connect: connection refused")
	err := WrapError(RetCConnection, "connecting to store", cause)

	if !errors.Is(err, ErrConnection) {
		t.Errorf("Expected error to match ErrConnection")
	}
	if errors.Is(err, ErrAuth) {
		t.Errorf("Expected error not to match ErrAuth")
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected error to unwrap to its cause")
	}

	// wrapping with fmt keeps the code reachable
	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrConnection) {
		t.Errorf("Expected wrapped error to match ErrConnection")
	}

	var storeErr *Error
	if !errors.As(wrapped, &storeErr) || storeErr.Code != RetCConnection {
		t.Errorf("Expected errors.As to find the store error")
	}
}

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		err      *Error
		expected string
	}{
		{
			err:      NewError(RetCDecode, "entry 1-0"),
			expected: "StoreError (code DecodeError): entry 1-0",
		},
		{
			err:      WrapError(RetCGroupCreation, "group workers", errors.New("ERR boom")),
			expected: "StoreError (code GroupCreationError): group workers: ERR boom",
		},
		{
			err:      NewError(RetCode(99), "x"),
			expected: "StoreError (code Unknown): x",
		},
	}

	for _, tc := range testCases {
		if tc.err.Error() != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, tc.err.Error())
		}
	}
}

func TestKeyScheme(t *testing.T) {
	k := NewKeyScheme("users")

	if k.Base() != "users" {
		t.Errorf("Expected base users, got %s", k.Base())
	}
	if k.Key("42") != "users:42" {
		t.Errorf("Expected users:42, got %s", k.Key("42"))
	}

	testCases := []struct {
		physical string
		item     string
		ok       bool
	}{
		{physical: "users:42", item: "42", ok: true},
		{physical: "users:a:b", item: "a:b", ok: true},
		{physical: "users:", item: "", ok: true},
		{physical: "orders:42", ok: false},
		{physical: "users", ok: false},
	}

	for _, tc := range testCases {
		item, ok := k.Item(tc.physical)
		if ok != tc.ok || (ok && item != tc.item) {
			t.Errorf("Item(%q): expected (%q, %t), got (%q, %t)", tc.physical, tc.item, tc.ok, item, ok)
		}
	}
}

func TestKeySchemePattern(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "users", expected: "users:*"},
		{name: "a*b", expected: `a\*b:*`},
		{name: "q?[x]", expected: `q\?\[x\]:*`},
		{name: `back\slash`, expected: `back\\slash:*`},
	}

	for _, tc := range testCases {
		if p := NewKeyScheme(tc.name).Pattern(); p != tc.expected {
			t.Errorf("Pattern(%q): expected %q, got %q", tc.name, tc.expected, p)
		}
	}
}
