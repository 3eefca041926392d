package fusez

// FlatMap creates a Gate that expands every element into the elements of a
// nested Source. The nested traversal runs inline, inside the outer OnNext,
// and each nested element is handed straight to the downstream stage; no
// intermediate collection is built.
//
// The fan-out per element is unpredictable, so the hint is reset to
// Unknown.
//
// Example:
//
//	twice := fusez.FlatMap(func(n int) fusez.Source[int] {
//	    return fusez.FromSlice([]int{n, n})
//	})
//	// [1, 2] -> [1, 1, 2, 2]
func FlatMap[I, O any](fn func(I) Source[O]) Gate[I, O, Nothing] {
	return &flatMapGate[I, O]{fn: fn}
}

type flatMapGate[I, O any] struct {
	fn func(I) Source[O]
}

func (*flatMapGate[I, O]) Info(SourceInfo[I]) SourceInfo[O] {
	return SourceInfo[O]{Capacity: Unknown}
}

func (*flatMapGate[I, O]) OnConnect(SourceInfo[I]) Nothing {
	return Nothing{}
}

func (g *flatMapGate[I, O]) OnNext(_ *Nothing, v I, next func(O)) {
	g.fn(v).Emit(forward[O](next))
}

// forward is the receiver a nested traversal pushes into: it has no context
// of its own and hands every element to the outer continuation.
type forward[T any] func(T)

func (forward[T]) Connect(SourceInfo[T]) {}

func (f forward[T]) Push(v T) {
	f(v)
}
