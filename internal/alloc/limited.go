package alloc

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Limited applies a byte budget to an inner allocator.
//
// Usage is estimated as slots times SlotSize; slice headers and allocator
// overhead are ignored.
type Limited[T any] struct {
	inner    Allocator[T]
	maxBytes uint64

	mtx       sync.Mutex
	current   uint64
	peak      uint64
	rejected  int
	rejection prometheus.Counter
}

// NewLimited wraps inner with a budget of maxBytes. A zero budget disables
// the limit. rejection may be nil.
func NewLimited[T any](inner Allocator[T], maxBytes uint64, rejection prometheus.Counter) *Limited[T] {
	return &Limited[T]{
		inner:     inner,
		maxBytes:  maxBytes,
		rejection: rejection,
	}
}

func (l *Limited[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	b := uint64(n) * SlotSize[T]()

	l.mtx.Lock()
	if l.maxBytes > 0 && l.current+b > l.maxBytes {
		l.rejected++
		inUse := l.current
		l.mtx.Unlock()
		if l.rejection != nil {
			l.rejection.Inc()
		}
		return nil, errors.Wrapf(ErrAllocation, "%d bytes would exceed the limit of %d bytes (%d in use)", b, l.maxBytes, inUse)
	}
	l.current += b
	l.peak = max(l.peak, l.current)
	l.mtx.Unlock()

	block, err := l.inner.Allocate(n)
	if err != nil {
		l.release(b)
		return nil, err
	}
	return block, nil
}

func (l *Limited[T]) Deallocate(block []T) {
	l.release(uint64(len(block)) * SlotSize[T]())
	l.inner.Deallocate(block)
}

func (l *Limited[T]) release(b uint64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if b > l.current {
		panic("alloc: limited allocator usage went negative; a block was released twice")
	}
	l.current -= b
}

// Current returns the bytes currently handed out.
func (l *Limited[T]) Current() uint64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.current
}

// Peak returns the highest value Current has reached.
func (l *Limited[T]) Peak() uint64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.peak
}

// Rejected returns the number of requests refused for exceeding the budget.
func (l *Limited[T]) Rejected() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.rejected
}
