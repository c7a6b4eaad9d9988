package alloc

import (
	"math/bits"
	"sync"
)

// maxPooledClass is the largest size class (1<<20 slots) kept in the pool.
// Larger blocks go straight to the heap and are dropped on release.
const maxPooledClass = 20

// Pool recycles blocks through one sync.Pool per power-of-two size class.
// Vectors grow by doubling, so a released block is usually the exact size
// another vector asks for next.
type Pool[T any] struct {
	classes [maxPooledClass + 1]sync.Pool
}

func NewPool[T any]() *Pool[T] {
	p := &Pool[T]{}
	for c := range p.classes {
		size := 1 << c
		p.classes[c].New = func() any {
			return make([]T, size)
		}
	}
	return p
}

func (p *Pool[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	c := sizeClass(n)
	if c > maxPooledClass {
		return make([]T, n), nil
	}
	block := p.classes[c].Get().([]T)
	return block[:n], nil
}

// Deallocate clears the block and returns it to its size class. Blocks that
// did not come from a size class are left to the garbage collector.
func (p *Pool[T]) Deallocate(block []T) {
	block = block[:cap(block)]
	n := len(block)
	if n == 0 || n&(n-1) != 0 {
		return
	}
	c := sizeClass(n)
	if c > maxPooledClass {
		return
	}
	clear(block)
	p.classes[c].Put(block)
}

// sizeClass returns the smallest c with 1<<c >= n.
func sizeClass(n int) int {
	return bits.Len(uint(n - 1))
}
