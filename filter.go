package fusez

// Filter creates a Gate that forwards only the elements for which pred
// returns true.
//
// The predicate observes the element; it must not retain or modify it.
// Filter does not adjust the capacity hint, so downstream preallocation may
// overestimate.
//
// Example:
//
//	evens := fusez.Filter(func(n int) bool { return n%2 == 0 })
//	fusez.Run(fusez.Via(fusez.FromSlice(numbers), evens), fusez.ToSlice[int]())
func Filter[T any](pred func(T) bool) Gate[T, T, Nothing] {
	return &filterGate[T]{pred: pred}
}

// FilterZero drops elements equal to the zero value of T: nil pointers,
// nil interfaces, empty strings and so on.
func FilterZero[T comparable]() Gate[T, T, Nothing] {
	var zero T
	return Filter(func(v T) bool { return v != zero })
}

// FilterZeroBy drops elements whose selected component is the zero value,
// for instance pairs without a key or structs with a nil field.
func FilterZeroBy[T any, K comparable](sel func(T) K) Gate[T, T, Nothing] {
	var zero K
	return Filter(func(v T) bool { return sel(v) != zero })
}

type filterGate[T any] struct {
	pred func(T) bool
}

func (*filterGate[T]) Info(info SourceInfo[T]) SourceInfo[T] {
	return info
}

func (*filterGate[T]) OnConnect(SourceInfo[T]) Nothing {
	return Nothing{}
}

func (g *filterGate[T]) OnNext(_ *Nothing, v T, next func(T)) {
	if g.pred(v) {
		next(v)
	}
}
