package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EndpointResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "endpoint_responses_total",
		Help: "The total number of endpoint responses",
	}, []string{"endpoint", "status_code"})

	// Output buffer allocation metrics
	AllocatedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "allocator_allocated_bytes_total",
		Help: "Total bytes handed out for result tensors, by memory type",
	}, []string{"memory_type"})

	ActiveBuffers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "allocator_active_buffers",
		Help: "Result tensor buffers currently outstanding, by memory type",
	}, []string{"memory_type"})

	AllocationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "allocator_allocation_failures_total",
		Help: "The total number of failed output buffer allocations",
	})

	// Release-path anomalies: unexpected memory type at release time,
	// failed native frees, or a tag consumed more than once.
	ReleaseAnomalies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "allocator_release_anomalies_total",
		Help: "The total number of diagnostics raised on the buffer release path",
	})
)
