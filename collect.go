package fusez

// MaxReserve bounds the capacity handed to a collecting drain at connect.
// Larger hints are treated as MaxReserve; the container still grows past it.
const MaxReserve = 1 << 16

// ToSlice creates a Drain collecting every element, in push order, into a
// new slice. The slice is allocated at connect with the upstream hint as
// capacity (length zero, at most MaxReserve) and handed to the caller at
// completion.
func ToSlice[T any]() Drain[T, []T, []T] {
	return ToContainer(
		func(capacity int) []T { return make([]T, 0, capacity) },
		func(s []T, v T) []T { return append(s, v) },
	)
}

// ToSliceFunc maps every element through fn and collects the results. It is
// shorthand for Into(Transform(fn), ToSlice[O]()).
func ToSliceFunc[T, O any](fn func(T) O) Drain[T, Pair[Nothing, []O], []O] {
	return Into(Transform(fn), ToSlice[O]())
}

// ToContainer creates a Drain building an arbitrary growable container.
// alloc receives the capacity hint clamped to [0, MaxReserve] once per run; add
// appends one element and returns the updated container.
func ToContainer[T, C any](alloc func(capacity int) C, add func(C, T) C) Drain[T, C, C] {
	return &containerDrain[T, C]{alloc: alloc, add: add}
}

// ForEach creates a Drain calling fn for every element. Its result is the
// number of elements seen.
func ForEach[T any](fn func(T)) Drain[T, int, int] {
	return AccumulateInto(0, func(n *int, v T) {
		fn(v)
		*n++
	})
}

type containerDrain[T, C any] struct {
	alloc func(int) C
	add   func(C, T) C
}

func (d *containerDrain[T, C]) OnConnect(info SourceInfo[T]) C {
	return d.alloc(min(max(info.Capacity, 0), MaxReserve))
}

func (d *containerDrain[T, C]) OnNext(ctx *C, v T) {
	*ctx = d.add(*ctx, v)
}

func (*containerDrain[T, C]) OnComplete(ctx C) C {
	return ctx
}
