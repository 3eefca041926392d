package fusez

// The composition algebra is closed over exactly four pairings:
//
//	Via(source, gate)   -> Source
//	Then(gate, gate)    -> Gate
//	Into(gate, drain)   -> Drain
//	Run(source, drain)  -> result of the drain
//
// Any other pairing (a Drain in first position, two Sources, a Source after
// a Gate) is not expressible and fails to compile.

// Via extends a Source with a Gate. The resulting Source reports the hint
// produced by the gate's Info and pushes every upstream element through the
// gate before handing it on.
//
// Example:
//
//	evens := fusez.Via(fusez.FromSlice(numbers), fusez.Filter(isEven))
func Via[I, O, C any](src Source[I], gate Gate[I, O, C]) Source[O] {
	return &gatedSource[I, O, C]{src: src, gate: gate}
}

// Then fuses two Gates into one. The compound context is the pair of both
// stage contexts, first stage first.
func Then[A, B, D, C1, C2 any](first Gate[A, B, C1], second Gate[B, D, C2]) Gate[A, D, Pair[C1, C2]] {
	return &chainedGate[A, B, D, C1, C2]{first: first, second: second}
}

// Into prepends a Gate to a Drain. The result is a Drain whose context is
// Pair[gate context, drain context] and whose result is the drain's result.
func Into[I, O, GC, DC, R any](gate Gate[I, O, GC], drain Drain[O, DC, R]) Drain[I, Pair[GC, DC], R] {
	return &gatedDrain[I, O, GC, DC, R]{gate: gate, drain: drain}
}

// Run executes a pipeline: it connects the drain, pushes every element of
// src through it, completes it and returns the completion result.
//
// Run is synchronous and always exhausts the source. Panics raised by
// caller-supplied callables propagate unchanged and abandon the run; see
// TryRun for a recovering variant.
//
// Example:
//
//	total := fusez.Run(fusez.FromSlice([]int{1, 2, 3, 4}),
//	    fusez.Accumulate(0, func(acc, n int) int { return acc + n }))
//	// total == 10
func Run[T, C, R any](src Source[T], drain Drain[T, C, R]) R {
	return drain.OnComplete(Emit[T, C](src, drain))
}

// Emit performs one traversal of src into j and returns the run context
// without completing it. It is the single entry point that runs a fused
// traversal; Run is Emit followed by OnComplete.
func Emit[T, C any](src Source[T], j Junction[T, C]) C {
	r := &run[T, C]{junction: j}
	src.Emit(r)
	if !r.connected {
		panic(&ProtocolError{Op: "emit", Err: ErrNotConnected})
	}
	return r.ctx
}

// run binds a Junction to a single traversal and owns that traversal's
// context.
type run[T, C any] struct {
	junction  Junction[T, C]
	ctx       C
	connected bool
}

func (r *run[T, C]) Connect(info SourceInfo[T]) {
	if r.connected {
		panic(&ProtocolError{Op: "connect", Err: ErrAlreadyConnected})
	}
	r.ctx = r.junction.OnConnect(info)
	r.connected = true
}

func (r *run[T, C]) Push(v T) {
	if !r.connected {
		panic(&ProtocolError{Op: "push", Err: ErrNotConnected})
	}
	r.junction.OnNext(&r.ctx, v)
}

type gatedSource[I, O, C any] struct {
	src  Source[I]
	gate Gate[I, O, C]
}

func (s *gatedSource[I, O, C]) Info() SourceInfo[O] {
	return s.gate.Info(s.src.Info())
}

func (s *gatedSource[I, O, C]) Emit(down Receiver[O]) {
	s.src.Emit(&gateReceiver[I, O, C]{gate: s.gate, down: down})
}

// gateReceiver holds a gate's context for the duration of one run of a
// gate-extended source.
type gateReceiver[I, O, C any] struct {
	gate Gate[I, O, C]
	down Receiver[O]
	next func(O)
	ctx  C
}

func (g *gateReceiver[I, O, C]) Connect(info SourceInfo[I]) {
	g.ctx = g.gate.OnConnect(info)
	g.next = g.down.Push
	g.down.Connect(g.gate.Info(info))
}

func (g *gateReceiver[I, O, C]) Push(v I) {
	if g.next == nil {
		panic(&ProtocolError{Op: "push", Err: ErrNotConnected})
	}
	g.gate.OnNext(&g.ctx, v, g.next)
}

type chainedGate[A, B, D, C1, C2 any] struct {
	first  Gate[A, B, C1]
	second Gate[B, D, C2]
}

func (g *chainedGate[A, B, D, C1, C2]) Info(info SourceInfo[A]) SourceInfo[D] {
	return g.second.Info(g.first.Info(info))
}

func (g *chainedGate[A, B, D, C1, C2]) OnConnect(info SourceInfo[A]) Pair[C1, C2] {
	return Pair[C1, C2]{
		First:  g.first.OnConnect(info),
		Second: g.second.OnConnect(g.first.Info(info)),
	}
}

func (g *chainedGate[A, B, D, C1, C2]) OnNext(ctx *Pair[C1, C2], v A, next func(D)) {
	g.first.OnNext(&ctx.First, v, func(b B) {
		g.second.OnNext(&ctx.Second, b, next)
	})
}

type gatedDrain[I, O, GC, DC, R any] struct {
	gate  Gate[I, O, GC]
	drain Drain[O, DC, R]
}

func (d *gatedDrain[I, O, GC, DC, R]) OnConnect(info SourceInfo[I]) Pair[GC, DC] {
	return Pair[GC, DC]{
		First:  d.gate.OnConnect(info),
		Second: d.drain.OnConnect(d.gate.Info(info)),
	}
}

func (d *gatedDrain[I, O, GC, DC, R]) OnNext(ctx *Pair[GC, DC], v I) {
	d.gate.OnNext(&ctx.First, v, func(o O) {
		d.drain.OnNext(&ctx.Second, o)
	})
}

func (d *gatedDrain[I, O, GC, DC, R]) OnComplete(ctx Pair[GC, DC]) R {
	return d.drain.OnComplete(ctx.Second)
}
