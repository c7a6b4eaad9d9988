// Package alloc provides the storage capability consumed by vector.Vector.
//
// An [Allocator] hands out blocks of element slots and takes them back:
//
//   - [Heap]: blocks from the Go heap, optionally capped at MaxSlots
//   - [Pool]: power-of-two size classes recycled through sync.Pool
//   - [Limited]: enforces a byte budget on an inner allocator
//   - [Counting]: tracks live blocks and slots
//   - [Instrumented]: exports prometheus metrics
//   - [Logging]: logs every request through go-kit/log
//
// The decorators compose, so a chain such as
//
//	a := alloc.NewLogging[int](alloc.NewLimited[int](alloc.NewPool[int](), 1<<20, nil), logger)
//
// is itself an Allocator. [Build] assembles the chains selectable by name.
//
// # Thread Safety
//
// All allocators in this package are safe for concurrent use, since several
// vectors may share one allocator. The vectors themselves are not.
package alloc
