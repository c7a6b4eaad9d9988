package alloc

import "go.uber.org/atomic"

// Counting tracks how many blocks and slots are outstanding.
type Counting[T any] struct {
	inner Allocator[T]

	allocations   *atomic.Int64
	deallocations *atomic.Int64
	liveSlots     *atomic.Int64
	failures      *atomic.Int64
}

func NewCounting[T any](inner Allocator[T]) *Counting[T] {
	return &Counting[T]{
		inner:         inner,
		allocations:   atomic.NewInt64(0),
		deallocations: atomic.NewInt64(0),
		liveSlots:     atomic.NewInt64(0),
		failures:      atomic.NewInt64(0),
	}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	block, err := c.inner.Allocate(n)
	if err != nil {
		c.failures.Inc()
		return nil, err
	}
	c.allocations.Inc()
	c.liveSlots.Add(int64(len(block)))
	return block, nil
}

func (c *Counting[T]) Deallocate(block []T) {
	c.deallocations.Inc()
	c.liveSlots.Sub(int64(len(block)))
	c.inner.Deallocate(block)
}

func (c *Counting[T]) Allocations() int64   { return c.allocations.Load() }
func (c *Counting[T]) Deallocations() int64 { return c.deallocations.Load() }
func (c *Counting[T]) Failures() int64      { return c.failures.Load() }

// LiveBlocks returns blocks allocated but not yet deallocated.
func (c *Counting[T]) LiveBlocks() int64 {
	return c.allocations.Load() - c.deallocations.Load()
}

// LiveSlots returns the number of slots in outstanding blocks.
func (c *Counting[T]) LiveSlots() int64 { return c.liveSlots.Load() }
