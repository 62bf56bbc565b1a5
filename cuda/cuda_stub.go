//go:build !cuda
// +build !cuda

// Package cuda wraps the CUDA runtime memory primitives used by the output
// buffer allocator. This is the stub variant built without the cuda tag.
package cuda

import (
	"errors"
	"unsafe"
)

// ErrNotBuilt is returned by every operation when CUDA support is not
// compiled in.
var ErrNotBuilt = errors.New("built without CUDA support")

// Available reports whether CUDA support is compiled in.
func Available() bool {
	return false
}

// SetDevice is unavailable without CUDA support.
func SetDevice(deviceID int64) error {
	return ErrNotBuilt
}

// MallocHost is unavailable without CUDA support.
func MallocHost(byteSize uint64) (unsafe.Pointer, error) {
	return nil, ErrNotBuilt
}

// MallocDevice is unavailable without CUDA support.
func MallocDevice(byteSize uint64) (unsafe.Pointer, error) {
	return nil, ErrNotBuilt
}

// FreeHost is unavailable without CUDA support.
func FreeHost(ptr unsafe.Pointer) error {
	return ErrNotBuilt
}

// FreeDevice is unavailable without CUDA support.
func FreeDevice(ptr unsafe.Pointer) error {
	return ErrNotBuilt
}
