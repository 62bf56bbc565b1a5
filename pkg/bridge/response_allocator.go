package bridge

import (
	"sync/atomic"

	"github.com/vertexml/inferbridge/internal/metrics"
	"github.com/vertexml/inferbridge/pkg/native"
	"go.uber.org/zap"
)

// Tag is the diagnostic label attached to an allocated buffer. It travels
// to the engine opaquely and comes back unchanged at release time, where it
// is consumed. A tag must be consumed exactly once.
type Tag struct {
	tensorName string
	consumed   atomic.Bool
}

// TensorName returns the name of the result tensor the tag was minted for.
func (t *Tag) TensorName() string {
	return t.tensorName
}

// consume marks the tag released. Reports false if it was already consumed.
func (t *Tag) consume() bool {
	return t.consumed.CompareAndSwap(false, true)
}

// ResponseAllocator bridges the engine's output-buffer callbacks onto an
// Allocator. Alloc and BufferQuery are registered as the engine's
// allocation and capability-query callbacks; Release as the release
// callback. All three are safe for concurrent use.
type ResponseAllocator struct {
	alloc Allocator
	log   *zap.Logger
}

// NewResponseAllocator wraps alloc with the engine callback contract.
func NewResponseAllocator(alloc Allocator, log *zap.Logger) *ResponseAllocator {
	return &ResponseAllocator{alloc: alloc, log: log}
}

// Alloc satisfies one output buffer request. A zero byte size yields a nil
// buffer and nil tag without touching the allocator; this is success, not an
// error. The returned memory type and device id report the location actually
// used, which may differ from the preferred one. On failure nothing is
// allocated and an engine Internal error is returned.
func (ra *ResponseAllocator) Alloc(tensorName string, byteSize uint64, preferredType MemoryType, preferredDeviceID int64) (*Buffer, *Tag, MemoryType, int64, *native.Error) {
	if byteSize == 0 {
		ra.log.Debug("allocated 0 bytes for result tensor",
			zap.String("tensor", tensorName))
		return nil, nil, preferredType, preferredDeviceID, nil
	}

	buf, err := ra.alloc.Allocate(tensorName, byteSize, preferredType, preferredDeviceID)
	if err != nil {
		metrics.AllocationFailures.Inc()
		return nil, nil, preferredType, preferredDeviceID, native.NewError(native.CodeInternal, err.Error())
	}

	tag := &Tag{tensorName: tensorName}
	metrics.AllocatedBytes.WithLabelValues(buf.MemoryType.String()).Add(float64(byteSize))
	metrics.ActiveBuffers.WithLabelValues(buf.MemoryType.String()).Inc()
	ra.log.Debug("allocated bytes for result tensor",
		zap.Uint64("bytes", byteSize),
		zap.Stringer("memory_type", buf.MemoryType),
		zap.String("tensor", tensorName))

	return buf, tag, buf.MemoryType, buf.DeviceID, nil
}

// Release returns a buffer obtained from Alloc. Release runs on the
// engine's cleanup path, so nothing here fails: anomalies are logged and
// counted but never propagated. The tag is consumed unconditionally; a nil
// tag gets a "<unknown>" placeholder, and a nil buffer releases nothing.
func (ra *ResponseAllocator) Release(buf *Buffer, tag *Tag, byteSize uint64, memoryType MemoryType, deviceID int64) {
	if tag == nil {
		tag = &Tag{tensorName: "<unknown>"}
	}
	if !tag.consume() {
		metrics.ReleaseAnomalies.Inc()
		ra.log.Error("buffer released more than once",
			zap.String("tensor", tag.tensorName))
		return
	}
	if buf == nil {
		// Zero-byte allocations hand the engine no buffer; there is
		// nothing to free.
		ra.log.Debug("releasing nil buffer for result tensor",
			zap.String("tensor", tag.tensorName))
		return
	}

	ra.log.Debug("releasing buffer for result tensor",
		zap.Uint64("bytes", byteSize),
		zap.Stringer("memory_type", memoryType),
		zap.String("tensor", tag.tensorName))

	switch memoryType {
	case MemoryCPU, MemoryCPUPinned, MemoryGPU:
		if err := ra.alloc.Release(buf); err != nil {
			metrics.ReleaseAnomalies.Inc()
			ra.log.Error("failed to free buffer",
				zap.Stringer("memory_type", memoryType),
				zap.String("tensor", tag.tensorName),
				zap.Error(err))
			return
		}
		metrics.ActiveBuffers.WithLabelValues(buf.MemoryType.String()).Dec()
	default:
		// The allocate/release pairing was inconsistent: we never hand out
		// buffers in a location we cannot name.
		metrics.ReleaseAnomalies.Inc()
		ra.log.Error("unexpected buffer memory type at release",
			zap.Stringer("memory_type", memoryType),
			zap.String("tensor", tag.tensorName))
	}
}

// BufferQuery is the engine's capability probe for an upcoming allocation.
// It always acquiesces to whatever location and device were requested, with
// no side effects.
func (ra *ResponseAllocator) BufferQuery(tensorName string, byteSize uint64, memoryType MemoryType, deviceID int64) *native.Error {
	return nil
}
