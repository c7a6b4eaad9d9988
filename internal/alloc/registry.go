package alloc

import (
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameHeap    = "heap"
	NamePool    = "pool"
	NameLimited = "limited"
)

// Names lists the allocators Build understands.
func Names() []string {
	return []string{NameHeap, NamePool, NameLimited}
}

// Options selects and decorates an allocator chain.
type Options struct {
	// Name is one of Names().
	Name string
	// LimitBytes is the budget for the limited allocator.
	LimitBytes uint64
	// Registerer, when set, wraps the chain with Instrumented.
	Registerer prometheus.Registerer
	// Logger, when set, wraps the chain with Logging.
	Logger log.Logger
}

// Build assembles the allocator chain described by opts. The returned
// Counting sits outermost so callers can always inspect live blocks.
func Build[T any](opts Options) (*Counting[T], error) {
	var a Allocator[T]
	switch opts.Name {
	case "", NameHeap:
		a = Heap[T]{}
	case NamePool:
		a = NewPool[T]()
	case NameLimited:
		if opts.LimitBytes == 0 {
			return nil, errors.Errorf("allocator %q requires a byte limit", NameLimited)
		}
		var rejection prometheus.Counter
		if opts.Registerer != nil {
			rejection = promauto.With(opts.Registerer).NewCounter(prometheus.CounterOpts{
				Name: "veclib_limit_rejections_total",
				Help: "Total number of allocations rejected by the byte limit.",
			})
		}
		a = NewLimited[T](Heap[T]{}, opts.LimitBytes, rejection)
	default:
		return nil, errors.Errorf("unknown allocator: %s", opts.Name)
	}

	if opts.Registerer != nil {
		a = NewInstrumented[T](a, opts.Registerer)
	}
	if opts.Logger != nil {
		a = NewLogging[T](a, opts.Logger)
	}
	return NewCounting[T](a), nil
}
