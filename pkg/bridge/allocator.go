package bridge

import (
	"fmt"
	"unsafe"

	"github.com/vertexml/inferbridge/cuda"
	"go.uber.org/zap"
)

// Buffer is a block of output-tensor memory produced by an Allocator. Host
// buffers carry their storage in Data; pinned and device buffers carry a raw
// pointer obtained from the CUDA runtime.
type Buffer struct {
	Data       []byte
	Ptr        unsafe.Pointer
	ByteSize   uint64
	MemoryType MemoryType
	DeviceID   int64
}

// Allocator produces and releases output buffers. Allocate attempts the
// preferred location but may fall back; the returned buffer reports the
// location actually used. Release must be called exactly once per buffer.
type Allocator interface {
	Allocate(tensorName string, byteSize uint64, preferred MemoryType, preferredDeviceID int64) (*Buffer, error)
	Release(buf *Buffer) error
}

// HostAllocator serves every request from host memory. Unrecognized or
// unsupported preferred locations are silently coerced to CPU; this is the
// default-safe policy, not an error.
type HostAllocator struct{}

func (HostAllocator) Allocate(tensorName string, byteSize uint64, preferred MemoryType, preferredDeviceID int64) (*Buffer, error) {
	return &Buffer{
		Data:       make([]byte, byteSize),
		ByteSize:   byteSize,
		MemoryType: MemoryCPU,
		DeviceID:   0,
	}, nil
}

func (HostAllocator) Release(buf *Buffer) error {
	if buf.MemoryType != MemoryCPU {
		return fmt.Errorf("host allocator cannot release %s buffer", buf.MemoryType)
	}
	buf.Data = nil
	return nil
}

// DeviceAllocator serves pinned and device requests through the CUDA
// runtime and everything else from host memory. Without the cuda build tag
// the device branches fail at runtime; use NewAllocator to select a backend
// that is actually available.
type DeviceAllocator struct{}

func (DeviceAllocator) Allocate(tensorName string, byteSize uint64, preferred MemoryType, preferredDeviceID int64) (*Buffer, error) {
	switch preferred {
	case MemoryCPUPinned:
		if err := cuda.SetDevice(preferredDeviceID); err != nil {
			return nil, fmt.Errorf("unable to recover current CUDA device: %w", err)
		}
		ptr, err := cuda.MallocHost(byteSize)
		if err != nil {
			return nil, fmt.Errorf("cudaHostAlloc failed: %w", err)
		}
		return &Buffer{Ptr: ptr, ByteSize: byteSize, MemoryType: MemoryCPUPinned, DeviceID: preferredDeviceID}, nil

	case MemoryGPU:
		if err := cuda.SetDevice(preferredDeviceID); err != nil {
			return nil, fmt.Errorf("unable to recover current CUDA device: %w", err)
		}
		ptr, err := cuda.MallocDevice(byteSize)
		if err != nil {
			return nil, fmt.Errorf("cudaMalloc failed: %w", err)
		}
		return &Buffer{Ptr: ptr, ByteSize: byteSize, MemoryType: MemoryGPU, DeviceID: preferredDeviceID}, nil
	}

	// CPU, and anything unrecognized, goes to host memory.
	return HostAllocator{}.Allocate(tensorName, byteSize, MemoryCPU, 0)
}

func (DeviceAllocator) Release(buf *Buffer) error {
	switch buf.MemoryType {
	case MemoryCPU:
		buf.Data = nil
		return nil
	case MemoryCPUPinned:
		if err := cuda.SetDevice(buf.DeviceID); err != nil {
			return err
		}
		return cuda.FreeHost(buf.Ptr)
	case MemoryGPU:
		if err := cuda.SetDevice(buf.DeviceID); err != nil {
			return err
		}
		return cuda.FreeDevice(buf.Ptr)
	}
	return fmt.Errorf("cannot release buffer in %s memory", buf.MemoryType)
}

// NewAllocator selects an allocator implementation for the configured
// backend. "auto" prefers CUDA when compiled in and available, "cuda"
// requires it, "host" forces host memory.
func NewAllocator(backend string, log *zap.Logger) (Allocator, error) {
	switch backend {
	case "auto", "":
		if cuda.Available() {
			log.Info("using CUDA allocator backend")
			return DeviceAllocator{}, nil
		}
		log.Info("using host allocator backend (no CUDA support)")
		return HostAllocator{}, nil
	case "cuda":
		if !cuda.Available() {
			return nil, fmt.Errorf("allocator backend %q requested but CUDA support is not built in", backend)
		}
		log.Info("using CUDA allocator backend")
		return DeviceAllocator{}, nil
	case "host":
		log.Info("using host allocator backend")
		return HostAllocator{}, nil
	}
	return nil, fmt.Errorf("unknown allocator backend %q", backend)
}
