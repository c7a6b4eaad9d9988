package alloc

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logging logs every request at debug level and failures at warn.
type Logging[T any] struct {
	inner  Allocator[T]
	logger log.Logger
}

func NewLogging[T any](inner Allocator[T], logger log.Logger) *Logging[T] {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Logging[T]{inner: inner, logger: logger}
}

func (l *Logging[T]) Allocate(n int) ([]T, error) {
	block, err := l.inner.Allocate(n)
	if err != nil {
		level.Warn(l.logger).Log("msg", "allocation failed", "slots", n, "err", err)
		return nil, err
	}
	level.Debug(l.logger).Log("msg", "allocated block", "slots", n, "bytes", uint64(n)*SlotSize[T]())
	return block, nil
}

func (l *Logging[T]) Deallocate(block []T) {
	level.Debug(l.logger).Log("msg", "released block", "slots", len(block))
	l.inner.Deallocate(block)
}
