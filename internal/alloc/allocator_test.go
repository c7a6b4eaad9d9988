package alloc

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_Allocate(t *testing.T) {
	var h Heap[int]

	block, err := h.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, block, 4)

	for _, n := range []int{0, -1} {
		_, err := h.Allocate(n)
		assert.True(t, errors.Is(err, ErrAllocation), "n=%d", n)
	}
}

func TestHeap_MaxSlots(t *testing.T) {
	h := Heap[int]{MaxSlots: 8}

	_, err := h.Allocate(8)
	require.NoError(t, err)

	_, err = h.Allocate(9)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestHeap_BlockLimit(t *testing.T) {
	var h Heap[int64]
	_, err := h.Allocate(math.MaxInt)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestSlotSize(t *testing.T) {
	assert.Equal(t, uint64(8), SlotSize[int64]())
	assert.Equal(t, uint64(1), SlotSize[byte]())
	assert.Equal(t, uint64(0), SlotSize[struct{}]())
}

func TestSizeClass(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1024, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sizeClass(tt.n), "sizeClass(%d)", tt.n)
	}
}

func TestPool_RoundTrip(t *testing.T) {
	p := NewPool[int]()

	block, err := p.Allocate(3)
	require.NoError(t, err)
	assert.Len(t, block, 3)
	assert.Equal(t, 4, cap(block))

	block[0], block[1], block[2] = 7, 8, 9
	p.Deallocate(block)

	again, err := p.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, again, 4)
	for i, v := range again {
		assert.Zero(t, v, "slot %d not cleared", i)
	}
}

func TestPool_Oversized(t *testing.T) {
	p := NewPool[byte]()
	n := 1<<maxPooledClass + 1

	block, err := p.Allocate(n)
	require.NoError(t, err)
	assert.Len(t, block, n)
	p.Deallocate(block)
}

func TestLimited(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	rejections := prometheus.NewCounter(prometheus.CounterOpts{Name: "rejections_total", Help: "test"})
	reg.MustRegister(rejections)

	l := NewLimited[int64](Heap[int64]{}, 64, rejections)

	a, err := l.Allocate(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(32), l.Current())

	b, err := l.Allocate(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(64), l.Current())

	_, err = l.Allocate(1)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 1, l.Rejected())
	assert.Equal(t, float64(1), testutil.ToFloat64(rejections))

	l.Deallocate(a)
	l.Deallocate(b)
	assert.Zero(t, l.Current())
	assert.Equal(t, uint64(64), l.Peak())
}

func TestLimited_NoLimit(t *testing.T) {
	l := NewLimited[int](Heap[int]{}, 0, nil)
	block, err := l.Allocate(1 << 16)
	require.NoError(t, err)
	l.Deallocate(block)
}

func TestLimited_InnerFailureReleasesBudget(t *testing.T) {
	l := NewLimited[int](Heap[int]{MaxSlots: 2}, 1024, nil)

	_, err := l.Allocate(4)
	require.ErrorIs(t, err, ErrAllocation)
	assert.Zero(t, l.Current())
}

func TestLimited_DoubleRelease(t *testing.T) {
	l := NewLimited[int](Heap[int]{}, 1024, nil)
	block, err := l.Allocate(2)
	require.NoError(t, err)

	l.Deallocate(block)
	assert.Panics(t, func() { l.Deallocate(block) })
}

func TestCounting(t *testing.T) {
	c := NewCounting[int](Heap[int]{MaxSlots: 16})

	a, err := c.Allocate(4)
	require.NoError(t, err)
	b, err := c.Allocate(8)
	require.NoError(t, err)
	_, err = c.Allocate(32)
	require.Error(t, err)

	assert.Equal(t, int64(2), c.Allocations())
	assert.Equal(t, int64(2), c.LiveBlocks())
	assert.Equal(t, int64(12), c.LiveSlots())
	assert.Equal(t, int64(1), c.Failures())

	c.Deallocate(a)
	c.Deallocate(b)
	assert.Zero(t, c.LiveBlocks())
	assert.Zero(t, c.LiveSlots())
}

func TestCounting_Concurrent(t *testing.T) {
	c := NewCounting[int](NewPool[int]())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 1; j <= 100; j++ {
				block, err := c.Allocate(j)
				if err != nil {
					t.Error(err)
					return
				}
				c.Deallocate(block)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), c.Allocations())
	assert.Zero(t, c.LiveSlots())
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	i := NewInstrumented[int64](Heap[int64]{MaxSlots: 4}, reg)

	block, err := i.Allocate(4)
	require.NoError(t, err)
	_, err = i.Allocate(5)
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(i.allocations))
	assert.Equal(t, float64(4), testutil.ToFloat64(i.slots))
	assert.Equal(t, float64(1), testutil.ToFloat64(i.failures))
	assert.Equal(t, float64(32), testutil.ToFloat64(i.liveBytes))

	i.Deallocate(block)
	assert.Equal(t, float64(1), testutil.ToFloat64(i.deallocations))
	assert.Zero(t, testutil.ToFloat64(i.liveBytes))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogging[int](Heap[int]{MaxSlots: 2}, log.NewLogfmtLogger(&buf))

	block, err := l.Allocate(2)
	require.NoError(t, err)
	l.Deallocate(block)
	_, err = l.Allocate(3)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="allocated block" slots=2 bytes=16`)
	assert.Contains(t, out, `msg="released block" slots=2`)
	assert.Contains(t, out, `msg="allocation failed" slots=3`)
}

func TestBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			a, err := Build[int](Options{Name: name, LimitBytes: 1 << 10})
			require.NoError(t, err)

			block, err := a.Allocate(8)
			require.NoError(t, err)
			a.Deallocate(block)
			assert.Zero(t, a.LiveBlocks())
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build[int](Options{Name: "mmap"})
	assert.EqualError(t, err, "unknown allocator: mmap")

	_, err = Build[int](Options{Name: NameLimited})
	assert.Error(t, err)
}

func TestBuild_Instrumented(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	a, err := Build[int64](Options{Name: NameLimited, LimitBytes: 16, Registerer: reg, Logger: log.NewNopLogger()})
	require.NoError(t, err)

	_, err = a.Allocate(4)
	require.ErrorIs(t, err, ErrAllocation)

	assert.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(`
# HELP veclib_limit_rejections_total Total number of allocations rejected by the byte limit.
# TYPE veclib_limit_rejections_total counter
veclib_limit_rejections_total 1
`), "veclib_limit_rejections_total"))
}
