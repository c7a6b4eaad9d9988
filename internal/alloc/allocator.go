package alloc

import (
	"unsafe"

	"github.com/pkg/errors"
)

// MaxBlockBytes bounds a single block so absurd requests fail with
// ErrAllocation instead of panicking inside make.
const MaxBlockBytes = 1 << 40

// ErrAllocation indicates a request for storage could not be satisfied.
var ErrAllocation = errors.New("alloc: allocation failed")

// Allocator is the storage capability consumed by a vector.
//
// Allocate returns a block of exactly n slots. The contents of the block are
// unspecified; callers must not read a slot before writing it. Deallocate
// takes back a block previously returned by Allocate on the same allocator.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(block []T)
}

// SlotSize returns the size in bytes of one slot of T.
func SlotSize[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

// Heap allocates blocks from the Go heap. The zero value is ready to use.
type Heap[T any] struct {
	// MaxSlots rejects requests above this many slots when positive.
	MaxSlots int
}

func (h Heap[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	if h.MaxSlots > 0 && n > h.MaxSlots {
		return nil, errors.Wrapf(ErrAllocation, "%d slots exceeds heap limit of %d", n, h.MaxSlots)
	}
	return make([]T, n), nil
}

// Deallocate is a no-op; the garbage collector reclaims the block.
func (Heap[T]) Deallocate([]T) {}

func checkRequest[T any](n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrAllocation, "invalid request for %d slots", n)
	}
	if size := SlotSize[T](); size > 0 && uint64(n) > MaxBlockBytes/size {
		return errors.Wrapf(ErrAllocation, "%d slots of %d bytes exceeds block limit", n, size)
	}
	return nil
}
