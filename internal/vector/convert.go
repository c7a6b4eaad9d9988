package vector

// AppendConverted appends values of another type, converting each one once
// with conv before it is stored. It stops at the first failure.
func AppendConverted[T, U any](v *Vector[T], conv func(U) T, values ...U) error {
	for _, u := range values {
		if err := v.Append(conv(u)); err != nil {
			return err
		}
	}
	return nil
}

// OfConverted is Of for values that need converting to T.
func OfConverted[T, U any](conv func(U) T, first U, rest ...U) (*Vector[T], error) {
	v, err := Of(conv(first))
	if err != nil {
		return nil, err
	}
	if err := AppendConverted(v, conv, rest...); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}
