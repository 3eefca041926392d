package fusez

// Unknown is the capacity hint reported when a stage cannot predict how many
// elements it will produce.
const Unknown = 0

// SourceInfo describes what a Source is about to push. The element type is
// carried by the type parameter; Capacity is a best-effort element count used
// only for preallocation. Correctness must never depend on it.
type SourceInfo[T any] struct {
	Capacity int
}

// Nothing is the per-run context of stages that keep no state.
type Nothing struct{}

// Source produces zero or more elements of type T.
//
// Emit drives one complete traversal: it must call Connect on the receiver
// exactly once, then Push once per element, in order. Emit returns when the
// source is exhausted. Sources are immutable values and may be emitted any
// number of times, each emission being an independent run.
//
// Most callers never call Emit directly; use Run or the package-level Emit.
type Source[T any] interface {
	Info() SourceInfo[T]
	Emit(Receiver[T])
}

// Receiver is the run-bound end of a pipeline, as seen by a Source. It owns
// the context of the run it was created for and is discarded once the run
// ends.
type Receiver[T any] interface {
	Connect(SourceInfo[T])
	Push(T)
}

// Junction is anything able to receive pushed elements of type T while
// threading a per-run context of type C: a bare Drain, or a Gate chain
// ending in a Drain.
type Junction[T, C any] interface {
	// OnConnect is called once per run and returns the initial context.
	OnConnect(SourceInfo[T]) C
	// OnNext consumes one element, mutating the run context in place.
	OnNext(ctx *C, v T)
}

// Gate is a mid-chain stage turning each pushed I into zero or more O.
//
// OnNext may call next zero times (drop), once (map) or many times (expand).
// A Gate must not retain next beyond the OnNext call.
type Gate[I, O, C any] interface {
	// Info maps the upstream description to the downstream one. It is pure.
	Info(SourceInfo[I]) SourceInfo[O]
	OnConnect(SourceInfo[I]) C
	OnNext(ctx *C, v I, next func(O))
}

// Drain is a terminal stage. It accumulates every pushed element into its
// context and turns the context into the externally visible result when the
// run completes.
type Drain[T, C, R any] interface {
	Junction[T, C]
	// OnComplete is called once at the end of the run with ownership of the
	// context.
	OnComplete(ctx C) R
}

// Cloner is implemented by types that can produce deep copies of themselves.
// The Clone gate uses it to give every Mux branch an unshared value.
//
// The returned copy must not share pointers, slices or maps with the
// receiver, otherwise mutations in one branch remain visible in another.
type Cloner[T any] interface {
	Clone() T
}
