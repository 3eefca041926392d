package fusez

// Tap creates a Gate that performs a side effect for each element and then
// forwards it unchanged. Use it for logging, counting or auditing in the
// middle of a chain.
//
// The function observes the element and must not modify it. Tap preserves
// the capacity hint.
//
// Example:
//
//	logged := fusez.Tap(func(o Order) { log.Printf("order %s", o.ID) })
func Tap[T any](fn func(T)) Gate[T, T, Nothing] {
	return &tapGate[T]{fn: fn}
}

// Clone creates a Gate that forwards a deep copy of every element. Insert it
// in front of a Mux branch that modifies its input so that sibling branches
// keep seeing the original:
//
//	fusez.Mux2(
//	    fusez.Into(fusez.Clone[Order](), normalizeAndCollect),
//	    fusez.ToSlice[Order](),
//	)
func Clone[T Cloner[T]]() Gate[T, T, Nothing] {
	return Transform(func(v T) T { return v.Clone() })
}

type tapGate[T any] struct {
	fn func(T)
}

func (*tapGate[T]) Info(info SourceInfo[T]) SourceInfo[T] {
	return info
}

func (*tapGate[T]) OnConnect(SourceInfo[T]) Nothing {
	return Nothing{}
}

func (g *tapGate[T]) OnNext(_ *Nothing, v T, next func(T)) {
	g.fn(v)
	next(v)
}
