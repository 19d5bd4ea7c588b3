package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and the underlying cause.
// Two errors are considered equal by errors.Is if their codes match, so callers
// can check for a class of errors with the sentinels below:
//
//	if errors.Is(err, store.ErrAuth) { ... }
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new Error with the given code and message wrapping err.
func WrapError(code RetCode, msg string, err error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Command executed successfully.
	RetCInternalError                  // 1: Command failed due to an internal error.
	RetCConnection                     // 2: The store could not be reached.
	RetCAuth                           // 3: The store rejected the credentials.
	RetCTimeout                        // 4: Connecting to the store timed out.
	RetCGroupCreation                  // 5: The consumer group could not be created.
	RetCDecode                         // 6: A stored value could not be decoded.
	RetCInvalidArgument                // 7: An argument was rejected before reaching the store.
)

// String returns the string representation of a RetCode.
func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCConnection:
		return "ConnectionError"
	case RetCAuth:
		return "AuthError"
	case RetCTimeout:
		return "TimeoutError"
	case RetCGroupCreation:
		return "GroupCreationError"
	case RetCDecode:
		return "DecodeError"
	case RetCInvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Sentinels (for errors.Is)
// --------------------------------------------------------------------------

var (
	ErrConnection      = NewError(RetCConnection, "connection error")
	ErrAuth            = NewError(RetCAuth, "authentication error")
	ErrTimeout         = NewError(RetCTimeout, "timeout error")
	ErrGroupCreation   = NewError(RetCGroupCreation, "group creation error")
	ErrDecode          = NewError(RetCDecode, "decode error")
	ErrInvalidArgument = NewError(RetCInvalidArgument, "invalid argument")
)
