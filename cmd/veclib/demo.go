package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/veclib/internal/vector"
)

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Basic types
	numbers, err := vector.Of(1, 2, 3)
	if err != nil {
		return err
	}
	defer numbers.Release()
	if err := numbers.AppendAll(4, 5); err != nil {
		return err
	}
	fmt.Fprintf(out, "numbers: %v\n", numbers)

	// Reserving up front means the appends never reallocate
	preallocated, err := vector.New[int]()
	if err != nil {
		return err
	}
	defer preallocated.Release()
	if err := preallocated.Reserve(10); err != nil {
		return err
	}
	for i := 0; i < 10; i++ {
		if err := preallocated.Append(i); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "preallocated: %v (len %d, cap %d)\n", preallocated, preallocated.Len(), preallocated.Cap())

	// Callables
	funcs, err := vector.Of(func() { fmt.Fprintln(out, "foo") })
	if err != nil {
		return err
	}
	defer funcs.Release()
	if err := funcs.Append(func() { fmt.Fprintln(out, "lambda") }); err != nil {
		return err
	}
	for f := range funcs.Values() {
		f()
	}

	// Values of another type, converted once on the way in
	words, err := vector.FromSlice([]string{"hello"})
	if err != nil {
		return err
	}
	defer words.Release()
	if err := vector.AppendConverted(words, func(b []byte) string { return string(b) }, []byte("world")); err != nil {
		return err
	}
	fmt.Fprintln(out, words)

	// Cursor walk
	for c := numbers.Begin(); !c.Equal(numbers.End()); c = c.Next() {
		fmt.Fprint(out, c.Value(), " ")
	}
	fmt.Fprintln(out)

	if _, err := numbers.At(numbers.Len()); err != nil {
		fmt.Fprintf(out, "at(%d): %v\n", numbers.Len(), err)
	}
	return nil
}
