package fusez

import "golang.org/x/exp/constraints"

// Accumulate creates a Drain folding every element into an accumulator with
// a pure combine operation. Each run starts from a copy of init; the result
// is the final accumulator.
//
// Example:
//
//	sum := fusez.Accumulate(0, func(acc, n int) int { return acc + n })
//	fusez.Run(fusez.FromSlice([]int{1, 2, 3, 4}), sum) // 10
func Accumulate[T, R any](init R, op func(R, T) R) Drain[T, R, R] {
	return &accumulateDrain[T, R]{
		seed: func() R { return init },
		step: func(acc *R, v T) { *acc = op(*acc, v) },
	}
}

// AccumulateInto creates a Drain folding elements with an operation that
// mutates the accumulator in place.
//
// init is copied at the start of each run. When R is a map, a slice or a
// pointer the copy shares its backing storage, so state would leak between
// runs; use AccumulateWith for those.
func AccumulateInto[T, R any](init R, op func(*R, T)) Drain[T, R, R] {
	return &accumulateDrain[T, R]{
		seed: func() R { return init },
		step: op,
	}
}

// AccumulateWith is AccumulateInto with a seed function called once per run,
// for accumulators that must not be shared across runs.
//
// Example:
//
//	histogram := fusez.AccumulateWith(
//	    func() map[string]int { return map[string]int{} },
//	    func(m *map[string]int, word string) { (*m)[word]++ },
//	)
func AccumulateWith[T, R any](seed func() R, op func(*R, T)) Drain[T, R, R] {
	return &accumulateDrain[T, R]{seed: seed, step: op}
}

// AccumulateSelect folds like Accumulate and maps the final accumulator
// through sel.
func AccumulateSelect[T, R, S any](init R, op func(R, T) R, sel func(R) S) Drain[T, R, S] {
	return ResultTransform(Accumulate(init, op), sel)
}

// CountIf counts the elements satisfying pred.
func CountIf[T any](pred func(T) bool) Drain[T, int, int] {
	return CountIfFrom[T, int](0, pred)
}

// CountIfFrom counts the elements satisfying pred, starting from init, in
// an integer type of the caller's choosing.
func CountIfFrom[T any, N constraints.Integer](init N, pred func(T) bool) Drain[T, N, N] {
	return AccumulateInto(init, func(count *N, v T) {
		if pred(v) {
			*count++
		}
	})
}

type accumulateDrain[T, R any] struct {
	seed func() R
	step func(*R, T)
}

func (d *accumulateDrain[T, R]) OnConnect(SourceInfo[T]) R {
	return d.seed()
}

func (d *accumulateDrain[T, R]) OnNext(acc *R, v T) {
	d.step(acc, v)
}

func (*accumulateDrain[T, R]) OnComplete(acc R) R {
	return acc
}
