// Package vector provides Vector, a generic resizable array.
//
// A Vector owns one contiguous block of capacity slots obtained from an
// [alloc.Allocator]. The first Len() slots hold live elements; the rest is
// slack that is never read. Appending at capacity doubles the block
// (1, 2, 4, 8, ...), moving every live element into the new block before the
// old one is released.
//
// # Example
//
//	v, _ := vector.Of(1, 2, 3)
//	_ = v.Append(4)
//	x, err := v.At(10) // err wraps ErrOutOfRange
//	fmt.Println(v)     // [1, 2, 3, 4]
//
// # Element lifecycle
//
// Elements whose type (or pointer to it) implements [Constructor] are
// initialized in place after being stored; a failing Construct leaves the
// vector unchanged. Elements implementing [Destroyer] are destroyed in index
// order by Release. Moving an element during growth is a plain assignment
// followed by zeroing the old slot; no hook runs for it. When the element
// type is itself a pointer the vector stores the pointer only, so hooks on
// the pointee never run and nil elements are fine.
//
// # Thread Safety
//
// Vector is NOT safe for concurrent use. Cursors and iterators are
// invalidated by any operation that changes Len or reallocates, and panic
// when used afterwards.
package vector
