package fusez

// ResultTransform wraps a Drain and maps its completion result through fn.
// Connect and push are passed through unchanged.
//
// Example:
//
//	mean := fusez.ResultTransform(
//	    fusez.Mux2(sumDrain, countDrain),
//	    func(r fusez.Pair[float64, int]) float64 { return r.First / float64(r.Second) },
//	)
func ResultTransform[T, C, R, S any](drain Drain[T, C, R], fn func(R) S) Drain[T, C, S] {
	return &resultTransform[T, C, R, S]{drain: drain, fn: fn}
}

type resultTransform[T, C, R, S any] struct {
	drain Drain[T, C, R]
	fn    func(R) S
}

func (d *resultTransform[T, C, R, S]) OnConnect(info SourceInfo[T]) C {
	return d.drain.OnConnect(info)
}

func (d *resultTransform[T, C, R, S]) OnNext(ctx *C, v T) {
	d.drain.OnNext(ctx, v)
}

func (d *resultTransform[T, C, R, S]) OnComplete(ctx C) S {
	return d.fn(d.drain.OnComplete(ctx))
}
