// Package native mirrors the inference server's C API types so values can
// cross the cgo boundary unmodified. Constants must stay in sync with the
// engine header; they are declared here rather than generated so the
// translation layer can be built and tested without the engine installed.
package native

import "fmt"

// DataType mirrors the engine's tensor data type enum.
type DataType uint32

const (
	TypeInvalid DataType = iota
	TypeBool
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFP16
	TypeFP32
	TypeFP64
	TypeBytes
	TypeBF16
)

// MemoryType mirrors the engine's memory type enum.
type MemoryType int32

const (
	MemoryCPU MemoryType = iota
	MemoryCPUPinned
	MemoryGPU
)

// ModelControlMode mirrors the engine's model control mode enum.
type ModelControlMode int32

const (
	ModelControlNone ModelControlMode = iota
	ModelControlPoll
	ModelControlExplicit
)

// LogFormat mirrors the engine's log format enum.
type LogFormat int32

const (
	LogFormatDefault LogFormat = iota
	LogFormatISO8601
)

// ErrorCode mirrors the engine's error code enum.
type ErrorCode int32

const (
	CodeUnknown ErrorCode = iota
	CodeInternal
	CodeNotFound
	CodeInvalidArg
	CodeUnavailable
	CodeUnsupported
	CodeAlreadyExists
)

// String returns the engine's canonical string for the error code.
func (c ErrorCode) String() string {
	switch c {
	case CodeUnknown:
		return "Unknown"
	case CodeInternal:
		return "Internal"
	case CodeNotFound:
		return "Not found"
	case CodeInvalidArg:
		return "Invalid argument"
	case CodeUnavailable:
		return "Unavailable"
	case CodeUnsupported:
		return "Unsupported"
	case CodeAlreadyExists:
		return "Already exists"
	}
	return "Unknown"
}

// Error is an error returned by the engine's C API.
type Error struct {
	Code ErrorCode
	Msg  string
}

// NewError creates an engine error with the given code and message.
func NewError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Error renders the engine's code string and message join.
func (e *Error) Error() string {
	return fmt.Sprintf("%s - %s", e.Code, e.Msg)
}

// Request is an inference request handle owned by the engine. The engine
// signals when it is done with the request; Close releases it.
type Request interface {
	Close() error
}

// Response is a completed inference response handed back by the engine.
// The concrete type is owned by the engine binding and is opaque here.
type Response interface{}
