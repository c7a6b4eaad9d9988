package vector

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/san-kum/veclib/internal/alloc"
)

var (
	// ErrOutOfRange indicates an index outside [0, Len()).
	ErrOutOfRange = errors.New("vector: index out of range")

	// ErrAllocation indicates storage for the vector could not be obtained.
	// It is the allocator's error, surfaced unchanged in kind.
	ErrAllocation = alloc.ErrAllocation
)

// IndexError reports a failed indexed access.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vector: index %d out of range [0, %d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

const invalidated = "vector: cursor used after the vector was modified"
