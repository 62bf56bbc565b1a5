package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAllocatorMetrics(t *testing.T) {
	t.Run("AllocatedBytes", func(t *testing.T) {
		before := testutil.ToFloat64(AllocatedBytes.WithLabelValues("CPU"))
		AllocatedBytes.WithLabelValues("CPU").Add(4096)
		assert.Equal(t, before+4096, testutil.ToFloat64(AllocatedBytes.WithLabelValues("CPU")))
	})

	t.Run("ActiveBuffers", func(t *testing.T) {
		ActiveBuffers.WithLabelValues("GPU").Set(0)
		ActiveBuffers.WithLabelValues("GPU").Inc()
		ActiveBuffers.WithLabelValues("GPU").Inc()
		ActiveBuffers.WithLabelValues("GPU").Dec()
		assert.Equal(t, float64(1), testutil.ToFloat64(ActiveBuffers.WithLabelValues("GPU")))
	})

	t.Run("AllocationFailures", func(t *testing.T) {
		before := testutil.ToFloat64(AllocationFailures)
		AllocationFailures.Inc()
		assert.Equal(t, before+1, testutil.ToFloat64(AllocationFailures))
	})

	t.Run("ReleaseAnomalies", func(t *testing.T) {
		before := testutil.ToFloat64(ReleaseAnomalies)
		ReleaseAnomalies.Inc()
		assert.Equal(t, before+1, testutil.ToFloat64(ReleaseAnomalies))
	})
}

func TestMetricsRegistration(t *testing.T) {
	metrics := []prometheus.Collector{
		AllocatedBytes,
		ActiveBuffers,
		AllocationFailures,
		ReleaseAnomalies,
	}

	for _, metric := range metrics {
		assert.NotPanics(t, func() {
			_ = prometheus.Register(metric)
			prometheus.Unregister(metric)
		})
	}
}
