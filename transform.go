package fusez

// Transform creates a Gate applying fn to every element. The hint is
// preserved; only the element type changes. fn is called exactly once per
// element and its result is always forwarded.
//
// Example:
//
//	lengths := fusez.Transform(func(s string) int { return len(s) })
func Transform[I, O any](fn func(I) O) Gate[I, O, Nothing] {
	return &transformGate[I, O]{fn: fn}
}

// PairTransform pairs every element with a key computed from it. The key
// selector borrows the element: it receives a pointer to the value that is
// forwarded afterwards and must neither modify it nor keep the pointer.
//
// Example:
//
//	byName := fusez.PairTransform(func(u *User) string { return u.Name })
//	// emits Pair[string, User]{First: u.Name, Second: u}
func PairTransform[T, K any](key func(*T) K) Gate[T, Pair[K, T], Nothing] {
	return Transform(func(v T) Pair[K, T] {
		k := key(&v)
		return Pair[K, T]{First: k, Second: v}
	})
}

// PairTransform2 replaces every element with a key and a value, both
// selected from it. The same borrowing rules as PairTransform apply to both
// selectors; key runs before value.
func PairTransform2[T, K, V any](key func(*T) K, value func(*T) V) Gate[T, Pair[K, V], Nothing] {
	return Transform(func(v T) Pair[K, V] {
		k := key(&v)
		return Pair[K, V]{First: k, Second: value(&v)}
	})
}

// TupleTransform1 emits (element, f1(element)).
func TupleTransform1[T, A any](f1 func(*T) A) Gate[T, Pair[T, A], Nothing] {
	return Transform(func(v T) Pair[T, A] {
		a := f1(&v)
		return Pair[T, A]{First: v, Second: a}
	})
}

// TupleTransform2 emits (element, f1(element), f2(element)). Selectors run
// left to right and borrow the element.
func TupleTransform2[T, A, B any](f1 func(*T) A, f2 func(*T) B) Gate[T, Triple[T, A, B], Nothing] {
	return Transform(func(v T) Triple[T, A, B] {
		a := f1(&v)
		b := f2(&v)
		return Triple[T, A, B]{First: v, Second: a, Third: b}
	})
}

// TupleTransform3 emits (element, f1(element), f2(element), f3(element)).
func TupleTransform3[T, A, B, C any](f1 func(*T) A, f2 func(*T) B, f3 func(*T) C) Gate[T, Quad[T, A, B, C], Nothing] {
	return Transform(func(v T) Quad[T, A, B, C] {
		a := f1(&v)
		b := f2(&v)
		c := f3(&v)
		return Quad[T, A, B, C]{First: v, Second: a, Third: b, Fourth: c}
	})
}

// TupleTransformN applies any number of selectors sharing a result type and
// emits the element with all derived values, in selector order.
func TupleTransformN[T, R any](fns ...func(*T) R) Gate[T, Tuple[T, R], Nothing] {
	return Transform(func(v T) Tuple[T, R] {
		derived := make([]R, len(fns))
		for i, fn := range fns {
			derived[i] = fn(&v)
		}
		return Tuple[T, R]{Original: v, Derived: derived}
	})
}

type transformGate[I, O any] struct {
	fn func(I) O
}

func (*transformGate[I, O]) Info(info SourceInfo[I]) SourceInfo[O] {
	return SourceInfo[O]{Capacity: info.Capacity}
}

func (*transformGate[I, O]) OnConnect(SourceInfo[I]) Nothing {
	return Nothing{}
}

func (g *transformGate[I, O]) OnNext(_ *Nothing, v I, next func(O)) {
	next(g.fn(v))
}
