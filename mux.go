package fusez

// Mux2 fans every element out to two Drains within the same traversal. The
// context and result are pairs of the sub-drain contexts and results, in
// declared order.
//
// Both drains receive the same value, d1 first. Go copies the element for
// each call, but pointers, slices and maps inside it stay shared: if d1 (or
// a gate in front of it) modifies what they reference, d2 observes the
// modified value. Put Clone in front of any branch that modifies its input.
//
// Example:
//
//	stats := fusez.Mux2(fusez.ToSlice[int](), fusez.CountIf(isEven))
//	res := fusez.Run(fusez.FromSlice([]int{1, 2, 3}), stats)
//	// res.First == []int{1, 2, 3}, res.Second == 1
func Mux2[T, C1, R1, C2, R2 any](d1 Drain[T, C1, R1], d2 Drain[T, C2, R2]) Drain[T, Pair[C1, C2], Pair[R1, R2]] {
	return &mux2[T, C1, R1, C2, R2]{d1: d1, d2: d2}
}

// Mux3 fans every element out to three Drains; see Mux2 for the sharing
// rules.
func Mux3[T, C1, R1, C2, R2, C3, R3 any](d1 Drain[T, C1, R1], d2 Drain[T, C2, R2], d3 Drain[T, C3, R3]) Drain[T, Triple[C1, C2, C3], Triple[R1, R2, R3]] {
	return &mux3[T, C1, R1, C2, R2, C3, R3]{d1: d1, d2: d2, d3: d3}
}

// MuxN fans every element out to any number of Drains of the same shape.
// Contexts and results are slices indexed like drains.
func MuxN[T, C, R any](drains ...Drain[T, C, R]) Drain[T, []C, []R] {
	return &muxN[T, C, R]{drains: drains}
}

type mux2[T, C1, R1, C2, R2 any] struct {
	d1 Drain[T, C1, R1]
	d2 Drain[T, C2, R2]
}

func (m *mux2[T, C1, R1, C2, R2]) OnConnect(info SourceInfo[T]) Pair[C1, C2] {
	return Pair[C1, C2]{First: m.d1.OnConnect(info), Second: m.d2.OnConnect(info)}
}

func (m *mux2[T, C1, R1, C2, R2]) OnNext(ctx *Pair[C1, C2], v T) {
	m.d1.OnNext(&ctx.First, v)
	m.d2.OnNext(&ctx.Second, v)
}

func (m *mux2[T, C1, R1, C2, R2]) OnComplete(ctx Pair[C1, C2]) Pair[R1, R2] {
	return Pair[R1, R2]{First: m.d1.OnComplete(ctx.First), Second: m.d2.OnComplete(ctx.Second)}
}

type mux3[T, C1, R1, C2, R2, C3, R3 any] struct {
	d1 Drain[T, C1, R1]
	d2 Drain[T, C2, R2]
	d3 Drain[T, C3, R3]
}

func (m *mux3[T, C1, R1, C2, R2, C3, R3]) OnConnect(info SourceInfo[T]) Triple[C1, C2, C3] {
	return Triple[C1, C2, C3]{
		First:  m.d1.OnConnect(info),
		Second: m.d2.OnConnect(info),
		Third:  m.d3.OnConnect(info),
	}
}

func (m *mux3[T, C1, R1, C2, R2, C3, R3]) OnNext(ctx *Triple[C1, C2, C3], v T) {
	m.d1.OnNext(&ctx.First, v)
	m.d2.OnNext(&ctx.Second, v)
	m.d3.OnNext(&ctx.Third, v)
}

func (m *mux3[T, C1, R1, C2, R2, C3, R3]) OnComplete(ctx Triple[C1, C2, C3]) Triple[R1, R2, R3] {
	return Triple[R1, R2, R3]{
		First:  m.d1.OnComplete(ctx.First),
		Second: m.d2.OnComplete(ctx.Second),
		Third:  m.d3.OnComplete(ctx.Third),
	}
}

type muxN[T, C, R any] struct {
	drains []Drain[T, C, R]
}

func (m *muxN[T, C, R]) OnConnect(info SourceInfo[T]) []C {
	ctxs := make([]C, len(m.drains))
	for i, d := range m.drains {
		ctxs[i] = d.OnConnect(info)
	}
	return ctxs
}

func (m *muxN[T, C, R]) OnNext(ctxs *[]C, v T) {
	for i, d := range m.drains {
		d.OnNext(&(*ctxs)[i], v)
	}
}

func (m *muxN[T, C, R]) OnComplete(ctxs []C) []R {
	results := make([]R, len(m.drains))
	for i, d := range m.drains {
		results[i] = d.OnComplete(ctxs[i])
	}
	return results
}
