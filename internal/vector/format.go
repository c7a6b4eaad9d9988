package vector

import (
	"fmt"
	"io"
	"strings"
)

// String renders the live elements as [e0, e1, ...]; an empty vector is [].
func (v *Vector[T]) String() string {
	var b strings.Builder
	v.render(&b, "%v")
	return b.String()
}

// WriteTo writes the String form to w.
func (v *Vector[T]) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}

// Format implements fmt.Formatter. %v and %s render each element with %v
// (flags kept, so %+v reaches the elements); other verbs apply per element.
func (v *Vector[T]) Format(f fmt.State, verb rune) {
	if verb == 's' {
		verb = 'v'
	}
	v.render(f, fmt.FormatString(f, verb))
}

func (v *Vector[T]) render(w io.Writer, format string) {
	io.WriteString(w, "[")
	if v != nil {
		for i := 0; i < v.size; i++ {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			fmt.Fprintf(w, format, v.data[i])
		}
	}
	io.WriteString(w, "]")
}
