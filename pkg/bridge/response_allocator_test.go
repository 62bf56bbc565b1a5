package bridge

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertexml/inferbridge/internal/metrics"
	"go.uber.org/zap"
)

// countingAllocator records calls so tests can assert the delegation
// contract of ResponseAllocator.
type countingAllocator struct {
	allocCalls   int
	releaseCalls int
	failAlloc    bool
	lastRelease  *Buffer
}

func (c *countingAllocator) Allocate(tensorName string, byteSize uint64, preferred MemoryType, preferredDeviceID int64) (*Buffer, error) {
	c.allocCalls++
	if c.failAlloc {
		return nil, errors.New("out of memory")
	}
	return &Buffer{
		Data:       make([]byte, byteSize),
		ByteSize:   byteSize,
		MemoryType: MemoryCPU,
		DeviceID:   0,
	}, nil
}

func (c *countingAllocator) Release(buf *Buffer) error {
	c.releaseCalls++
	c.lastRelease = buf
	return nil
}

func TestResponseAllocatorAlloc(t *testing.T) {
	t.Run("zero byte size never reaches the allocator", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, tag, actualType, actualID, nerr := ra.Alloc("output0", 0, MemoryGPU, 2)
		assert.Nil(t, nerr)
		assert.Nil(t, buf)
		assert.Nil(t, tag)
		assert.Equal(t, MemoryGPU, actualType)
		assert.Equal(t, int64(2), actualID)
		assert.Equal(t, 0, underlying.allocCalls)
	})

	t.Run("non-zero request yields buffer and tag", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, tag, actualType, actualID, nerr := ra.Alloc("output0", 256, MemoryGPU, 1)
		require.Nil(t, nerr)
		require.NotNil(t, buf)
		require.NotNil(t, tag)
		assert.Equal(t, "output0", tag.TensorName())
		assert.Equal(t, uint64(256), buf.ByteSize)
		// The counting allocator serves everything from CPU; the reported
		// location must reflect that, not the preference.
		assert.Equal(t, MemoryCPU, actualType)
		assert.Equal(t, int64(0), actualID)
		assert.Equal(t, 1, underlying.allocCalls)
	})

	t.Run("allocation failure returns a native error", func(t *testing.T) {
		underlying := &countingAllocator{failAlloc: true}
		ra := NewResponseAllocator(underlying, zap.NewNop())
		failures := testutil.ToFloat64(metrics.AllocationFailures)

		buf, tag, _, _, nerr := ra.Alloc("output0", 256, MemoryCPU, 0)
		require.NotNil(t, nerr)
		assert.Contains(t, nerr.Error(), "out of memory")
		assert.Nil(t, buf)
		assert.Nil(t, tag)
		assert.Equal(t, failures+1, testutil.ToFloat64(metrics.AllocationFailures))
	})
}

func TestResponseAllocatorRelease(t *testing.T) {
	t.Run("paired release frees through the allocator", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, tag, actualType, actualID, nerr := ra.Alloc("output0", 128, MemoryCPU, 0)
		require.Nil(t, nerr)

		ra.Release(buf, tag, buf.ByteSize, actualType, actualID)
		assert.Equal(t, 1, underlying.releaseCalls)
		assert.Same(t, buf, underlying.lastRelease)
	})

	t.Run("double release is a counted anomaly, not a second free", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, tag, actualType, actualID, nerr := ra.Alloc("output0", 128, MemoryCPU, 0)
		require.Nil(t, nerr)

		ra.Release(buf, tag, buf.ByteSize, actualType, actualID)
		anomalies := testutil.ToFloat64(metrics.ReleaseAnomalies)
		ra.Release(buf, tag, buf.ByteSize, actualType, actualID)
		assert.Equal(t, 1, underlying.releaseCalls)
		assert.Equal(t, anomalies+1, testutil.ToFloat64(metrics.ReleaseAnomalies))
	})

	t.Run("nil buffer releases nothing", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		// A zero-byte allocation hands the engine neither buffer nor tag,
		// but the release callback still fires with both nil.
		assert.NotPanics(t, func() {
			ra.Release(nil, nil, 0, MemoryCPU, 0)
		})
		assert.Equal(t, 0, underlying.releaseCalls)
	})

	t.Run("gauge tracks the allocated location, not the reported one", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		active := testutil.ToFloat64(metrics.ActiveBuffers.WithLabelValues("CPU"))
		buf, tag, _, _, nerr := ra.Alloc("output0", 128, MemoryCPU, 0)
		require.Nil(t, nerr)
		assert.Equal(t, active+1, testutil.ToFloat64(metrics.ActiveBuffers.WithLabelValues("CPU")))

		// A mismatched but supported reported location must not skew the
		// per-location gauge.
		ra.Release(buf, tag, buf.ByteSize, MemoryCPUPinned, 0)
		assert.Equal(t, active, testutil.ToFloat64(metrics.ActiveBuffers.WithLabelValues("CPU")))
	})

	t.Run("nil tag gets the unknown placeholder and still frees", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, _, actualType, actualID, nerr := ra.Alloc("output0", 128, MemoryCPU, 0)
		require.Nil(t, nerr)

		ra.Release(buf, nil, buf.ByteSize, actualType, actualID)
		assert.Equal(t, 1, underlying.releaseCalls)
	})

	t.Run("unexpected memory type is logged and skipped", func(t *testing.T) {
		underlying := &countingAllocator{}
		ra := NewResponseAllocator(underlying, zap.NewNop())

		buf, tag, _, _, nerr := ra.Alloc("output0", 128, MemoryCPU, 0)
		require.Nil(t, nerr)

		anomalies := testutil.ToFloat64(metrics.ReleaseAnomalies)
		ra.Release(buf, tag, buf.ByteSize, MemoryType(42), 0)
		assert.Equal(t, 0, underlying.releaseCalls)
		assert.Equal(t, anomalies+1, testutil.ToFloat64(metrics.ReleaseAnomalies))
	})
}

func TestResponseAllocatorBufferQuery(t *testing.T) {
	ra := NewResponseAllocator(&countingAllocator{}, zap.NewNop())

	// The query acquiesces to any requested location, with no side effects.
	assert.Nil(t, ra.BufferQuery("output0", 1024, MemoryGPU, 3))
	assert.Nil(t, ra.BufferQuery("output0", 0, MemoryType(42), -1))
}
