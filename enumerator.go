package fusez

import "iter"

// FromEnumerator creates a Source from a push-style enumerator: a function
// that calls yield once per element it produces. Control is inverted; the
// enumerator drives the loop and the pipeline runs inside yield.
//
// The element type is inferred from the enumerator's signature. An
// enumerator cannot be asked for its size, so the hint is Unknown; wrap the
// source with WithCapacity when a size is known.
//
// Example:
//
//	walk := func(yield func(string)) {
//	    for _, dir := range dirs {
//	        yield(dir)
//	    }
//	}
//	upper := fusez.Run(fusez.FromEnumerator(walk), fusez.ToSliceFunc(strings.ToUpper))
func FromEnumerator[T any](enumerate func(yield func(T))) Source[T] {
	return &enumeratorSource[T]{enumerate: enumerate}
}

// FromSeq creates a Source from a standard library iterator. The pipeline
// offers no early termination, so yield always reports true and the
// sequence is consumed to the end.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return FromEnumerator(func(yield func(T)) {
		for v := range seq {
			yield(v)
		}
	})
}

// Bind pre-binds the leading argument of an enumerator, typically the
// receiver of a method expression, producing the shape FromEnumerator
// expects.
//
// Example:
//
//	src := fusez.FromEnumerator(fusez.Bind((*Tree).Walk, tree))
func Bind[A, T any](fn func(A, func(T)), a A) func(func(T)) {
	return func(yield func(T)) {
		fn(a, yield)
	}
}

// Bind2 pre-binds the two leading arguments of an enumerator.
func Bind2[A, B, T any](fn func(A, B, func(T)), a A, b B) func(func(T)) {
	return func(yield func(T)) {
		fn(a, b, yield)
	}
}

type enumeratorSource[T any] struct {
	enumerate func(func(T))
}

func (*enumeratorSource[T]) Info() SourceInfo[T] {
	return SourceInfo[T]{Capacity: Unknown}
}

func (s *enumeratorSource[T]) Emit(r Receiver[T]) {
	r.Connect(s.Info())
	s.enumerate(r.Push)
}
