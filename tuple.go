package fusez

import "fmt"

// Pair holds two values. Composed stages use it to nest their run contexts
// left to right, and PairTransform and Mux2 use it for elements and results.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair builds a Pair.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// String renders the pair as (a, b).
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Triple holds three values.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// String renders the triple as (a, b, c).
func (t Triple[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.First, t.Second, t.Third)
}

// Quad holds four values.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// String renders the quad as (a, b, c, d).
func (q Quad[A, B, C, D]) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", q.First, q.Second, q.Third, q.Fourth)
}

// Tuple is an element followed by any number of derived values of one type.
// It is produced by TupleTransformN.
type Tuple[T, R any] struct {
	Original T
	Derived  []R
}
