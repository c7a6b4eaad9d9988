package vector

import "iter"

// Cursor is a position in a vector, in the style of a begin/end pair:
//
//	for c := v.Begin(); !c.Equal(v.End()); c = c.Next() {
//		use(c.Value())
//	}
type Cursor[T any] struct {
	v   *Vector[T]
	pos int
	gen uint64
}

// Begin returns a cursor at the first element.
func (v *Vector[T]) Begin() Cursor[T] {
	return Cursor[T]{v: v, pos: 0, gen: v.gen}
}

// End returns a cursor one past the last element.
func (v *Vector[T]) End() Cursor[T] {
	return Cursor[T]{v: v, pos: v.size, gen: v.gen}
}

func (c Cursor[T]) Index() int { return c.pos }

func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.v == o.v && c.pos == o.pos
}

func (c Cursor[T]) Next() Cursor[T] {
	c.valid()
	c.pos++
	return c
}

func (c Cursor[T]) Value() T {
	return *c.Ptr()
}

// Ptr returns the element under the cursor for in-place mutation.
func (c Cursor[T]) Ptr() *T {
	c.valid()
	if c.pos < 0 || c.pos >= c.v.size {
		panic(&IndexError{Index: c.pos, Size: c.v.size})
	}
	return &c.v.data[c.pos]
}

func (c Cursor[T]) valid() {
	if c.gen != c.v.gen {
		panic(invalidated)
	}
}

// Iterator walks the live elements front to back.
type Iterator[T any] struct {
	v   *Vector[T]
	pos int
	gen uint64
}

// Iter returns a fresh iterator. Call Iter again to restart.
func (v *Vector[T]) Iter() *Iterator[T] {
	return &Iterator[T]{v: v, gen: v.gen}
}

func (it *Iterator[T]) More() bool {
	if it.gen != it.v.gen {
		panic(invalidated)
	}
	return it.pos < it.v.size
}

func (it *Iterator[T]) Next() T {
	if !it.More() {
		panic(&IndexError{Index: it.pos, Size: it.v.size})
	}
	x := it.v.data[it.pos]
	it.pos++
	return x
}

// All yields index/element pairs. The loop body must not append to or
// reserve on the vector.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		gen := v.gen
		for i := 0; i < v.size; i++ {
			if v.gen != gen {
				panic(invalidated)
			}
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// Values yields the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.All() {
			if !yield(x) {
				return
			}
		}
	}
}
