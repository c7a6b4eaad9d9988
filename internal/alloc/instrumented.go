package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instrumented exports allocator activity as prometheus metrics.
type Instrumented[T any] struct {
	inner Allocator[T]

	allocations   prometheus.Counter
	deallocations prometheus.Counter
	slots         prometheus.Counter
	failures      prometheus.Counter
	liveBytes     prometheus.Gauge
}

// NewInstrumented registers its metrics with reg. A nil reg leaves them
// unregistered.
func NewInstrumented[T any](inner Allocator[T], reg prometheus.Registerer) *Instrumented[T] {
	return &Instrumented[T]{
		inner: inner,
		allocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "veclib_allocations_total",
			Help: "Total number of blocks allocated.",
		}),
		deallocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "veclib_deallocations_total",
			Help: "Total number of blocks returned to the allocator.",
		}),
		slots: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "veclib_allocated_slots_total",
			Help: "Total number of element slots allocated.",
		}),
		failures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "veclib_allocation_failures_total",
			Help: "Total number of allocation requests that failed.",
		}),
		liveBytes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "veclib_live_bytes",
			Help: "Estimated bytes held in outstanding blocks.",
		}),
	}
}

func (i *Instrumented[T]) Allocate(n int) ([]T, error) {
	block, err := i.inner.Allocate(n)
	if err != nil {
		i.failures.Inc()
		return nil, err
	}
	i.allocations.Inc()
	i.slots.Add(float64(len(block)))
	i.liveBytes.Add(float64(uint64(len(block)) * SlotSize[T]()))
	return block, nil
}

func (i *Instrumented[T]) Deallocate(block []T) {
	i.deallocations.Inc()
	i.liveBytes.Sub(float64(uint64(len(block)) * SlotSize[T]()))
	i.inner.Deallocate(block)
}
