//go:build cuda
// +build cuda

// Package cuda wraps the CUDA runtime memory primitives used by the output
// buffer allocator. Built only with the cuda tag; the stub variant reports
// CUDA as unavailable.
package cuda

/*
#cgo LDFLAGS: -lcudart
#include <cuda_runtime_api.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// Available reports whether CUDA support is compiled in.
func Available() bool {
	return true
}

// SetDevice selects the device for subsequent allocations. A missing device
// or an insufficient driver is benign here: the runtime falls back to the
// current context, matching the engine's recover-device contract.
func SetDevice(deviceID int64) error {
	err := C.cudaSetDevice(C.int(deviceID))
	if err != C.cudaSuccess && err != C.cudaErrorNoDevice && err != C.cudaErrorInsufficientDriver {
		return cudaError(err)
	}
	return nil
}

// MallocHost allocates portable pinned (page-locked) host memory.
func MallocHost(byteSize uint64) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := C.cudaHostAlloc(&ptr, C.size_t(byteSize), C.cudaHostAllocPortable); err != C.cudaSuccess {
		return nil, cudaError(err)
	}
	return ptr, nil
}

// MallocDevice allocates device memory on the currently selected device.
func MallocDevice(byteSize uint64) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	if err := C.cudaMalloc(&ptr, C.size_t(byteSize)); err != C.cudaSuccess {
		return nil, cudaError(err)
	}
	return ptr, nil
}

// FreeHost frees pinned host memory obtained from MallocHost.
func FreeHost(ptr unsafe.Pointer) error {
	if err := C.cudaFreeHost(ptr); err != C.cudaSuccess {
		return cudaError(err)
	}
	return nil
}

// FreeDevice frees device memory obtained from MallocDevice.
func FreeDevice(ptr unsafe.Pointer) error {
	if err := C.cudaFree(ptr); err != C.cudaSuccess {
		return cudaError(err)
	}
	return nil
}

func cudaError(err C.cudaError_t) error {
	return fmt.Errorf("%s", C.GoString(C.cudaGetErrorString(err)))
}
