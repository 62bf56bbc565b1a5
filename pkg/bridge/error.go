// Package bridge translates between the developer-facing wrapper API and the
// inference server's native C API: enum and error conversion, output buffer
// allocation delegation, and the single-response completion rendezvous.
package bridge

import "github.com/vertexml/inferbridge/pkg/native"

// Error is a pass-by-value result reported by the wrapper API. An empty
// message means success. Immutable after construction.
type Error struct {
	msg string
}

// Success is the "no error" value.
var Success = Error{}

// NewError creates an error with the specified message.
func NewError(msg string) Error {
	return Error{msg: msg}
}

// FromNative converts an engine error into a wrapper error. A nil engine
// error maps to Success.
func FromNative(err *native.Error) Error {
	if err == nil {
		return Success
	}
	return Error{msg: err.Error()}
}

// Message returns the message for the error. Empty if no error.
func (e Error) Message() string {
	return e.msg
}

// IsOk reports whether this value indicates success.
func (e Error) IsOk() bool {
	return e.msg == ""
}

// Error satisfies the standard error interface.
func (e Error) Error() string {
	return e.msg
}
