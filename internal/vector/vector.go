package vector

import (
	"iter"
	"math"
	"reflect"

	"github.com/pkg/errors"

	"github.com/san-kum/veclib/internal/alloc"
)

// Constructor is implemented by elements that need in-place initialization
// once stored in a slot. A non-nil error means the element was not inserted.
type Constructor interface {
	Construct() error
}

// Destroyer is implemented by elements that hold resources to release when
// the vector is torn down.
type Destroyer interface {
	Destroy()
}

// Vector is a contiguous, growable sequence of T.
//
// The zero value is an empty vector with no storage that allocates from the
// heap on first append. Use New to start with the initial slot.
type Vector[T any] struct {
	data  []T
	size  int
	alloc alloc.Allocator[T]
	// gen changes whenever size changes or storage is replaced.
	gen uint64
}

type Option[T any] func(*Vector[T])

// WithAllocator makes the vector draw its storage from a.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(v *Vector[T]) {
		v.alloc = a
	}
}

// New returns an empty vector with capacity 1.
func New[T any](opts ...Option[T]) (*Vector[T], error) {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.Reserve(1); err != nil {
		return nil, err
	}
	return v, nil
}

// FromSlice returns a vector holding values in order.
func FromSlice[T any](values []T, opts ...Option[T]) (*Vector[T], error) {
	v, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := v.AppendAll(values...); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// Of returns a heap-backed vector holding first followed by rest.
func Of[T any](first T, rest ...T) (*Vector[T], error) {
	v, err := New[T]()
	if err != nil {
		return nil, err
	}
	if err := v.Append(first); err != nil {
		v.Release()
		return nil, err
	}
	if err := v.AppendAll(rest...); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

func (v *Vector[T]) Len() int { return v.size }
func (v *Vector[T]) Cap() int { return len(v.data) }

// Append stores value at index Len(), doubling the storage first when the
// vector is full. On error the vector is left as it was.
func (v *Vector[T]) Append(value T) error {
	if v.size == len(v.data) {
		if err := v.grow(); err != nil {
			return err
		}
	}

	slot := &v.data[v.size]
	*slot = value
	if c, ok := constructor(slot); ok {
		if err := c.Construct(); err != nil {
			var zero T
			*slot = zero
			return errors.Wrapf(err, "vector: construct element %d", v.size)
		}
	}
	v.size++
	v.gen++
	return nil
}

// AppendAll appends each value in order. It stops at the first failure;
// values appended before it stay in the vector.
func (v *Vector[T]) AppendAll(values ...T) error {
	for _, value := range values {
		if err := v.Append(value); err != nil {
			return err
		}
	}
	return nil
}

// AppendSeq appends every value produced by seq, with the same partial
// semantics as AppendAll.
func (v *Vector[T]) AppendSeq(seq iter.Seq[T]) error {
	for value := range seq {
		if err := v.Append(value); err != nil {
			return err
		}
	}
	return nil
}

// Reserve guarantees room for n elements. It never shrinks the vector; when
// n exceeds Cap it allocates exactly n slots, moves the live elements across
// and releases the old block. If allocation fails nothing is changed.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.data) {
		return nil
	}

	block, err := v.allocator().Allocate(n)
	if err != nil {
		return errors.Wrapf(err, "vector: reserve %d slots", n)
	}
	if len(block) < n {
		v.allocator().Deallocate(block)
		return errors.Wrapf(ErrAllocation, "vector: allocator returned %d of %d slots", len(block), n)
	}

	copy(block, v.data[:v.size])
	clear(v.data[:v.size])
	if v.data != nil {
		v.allocator().Deallocate(v.data)
	}

	v.data = block[:n]
	v.gen++
	return nil
}

func (v *Vector[T]) grow() error {
	c := len(v.data)
	if c == 0 {
		return v.Reserve(1)
	}
	if c > math.MaxInt/2 {
		return errors.Wrapf(ErrAllocation, "vector: cannot double capacity %d", c)
	}
	return v.Reserve(c * 2)
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	if err := v.check(i); err != nil {
		var zero T
		return zero, err
	}
	return v.data[i], nil
}

// Ref returns a pointer to the element at index i for in-place mutation.
// The pointer is only valid until the vector next reallocates.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if err := v.check(i); err != nil {
		return nil, err
	}
	return &v.data[i], nil
}

// Set overwrites the element at index i.
func (v *Vector[T]) Set(i int, value T) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.data[i] = value
	return nil
}

func (v *Vector[T]) check(i int) error {
	if i < 0 || i >= v.size {
		return &IndexError{Index: i, Size: v.size}
	}
	return nil
}

// Slice returns the live elements. The slice aliases the vector's storage
// and is capped at Len, so appending to it never writes into the slack.
func (v *Vector[T]) Slice() []T {
	return v.data[:v.size:v.size]
}

// Release destroys the live elements in index order, returns the storage to
// the allocator and leaves v as an empty vector without storage.
func (v *Vector[T]) Release() {
	for i := 0; i < v.size; i++ {
		if d, ok := destroyer(&v.data[i]); ok {
			d.Destroy()
		}
	}
	clear(v.data[:v.size])
	if v.data != nil {
		v.allocator().Deallocate(v.data)
	}
	v.data = nil
	v.size = 0
	v.gen++
}

func (v *Vector[T]) allocator() alloc.Allocator[T] {
	if v.alloc == nil {
		v.alloc = alloc.Heap[T]{}
	}
	return v.alloc
}

// Hooks are looked up on the slot and, unless T is a pointer, on the value
// in it. A pointer element is stored as is; its pointee is never touched.
func constructor[T any](slot *T) (Constructor, bool) {
	if c, ok := any(slot).(Constructor); ok {
		return c, true
	}
	if isPointer[T]() {
		return nil, false
	}
	c, ok := any(*slot).(Constructor)
	return c, ok
}

func destroyer[T any](slot *T) (Destroyer, bool) {
	if d, ok := any(slot).(Destroyer); ok {
		return d, true
	}
	if isPointer[T]() {
		return nil, false
	}
	d, ok := any(*slot).(Destroyer)
	return d, ok
}

func isPointer[T any]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Pointer
}
