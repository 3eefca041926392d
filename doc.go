// Package fusez provides statically typed, push-based pipelines in which
// every stage is fused into one nested call per element.
//
// # Overview
//
// A pipeline reads like source | gate | gate | ... | drain. Running it
// performs a single synchronous traversal: the source pushes one element,
// the element travels through every gate down to the drain by direct calls,
// and only then does the source advance. Nothing is buffered between stages
// and no intermediate collection is ever materialized.
//
// # Roles
//
// Every stage plays exactly one role:
//
//   - Source[T]: produces elements and a capacity hint (FromSlice, FromContainer, FromEnumerator, FromSeq)
//   - Gate[I, O, C]: filters, maps or expands elements mid-chain (Filter, Transform, FlatMap, Tap, Clone)
//   - Drain[T, C, R]: consumes every element and produces one result (Accumulate, CountIf, AllOf, Mux2, ToSlice)
//   - Junction[T, C]: anything that can receive a pushed element; every Drain is one
//
// C is the per-run context: state created when a run connects, threaded by
// pointer through every push and consumed by completion. Stages themselves
// are immutable and can be reused for any number of runs.
//
// # Composition
//
// Go has no pipe operator, so each of the four legal pairings has its own
// function:
//
//	Via(source, gate)   // Source
//	Then(gate, gate)    // Gate
//	Into(gate, drain)   // Drain
//	Run(source, drain)  // runs the pipeline and returns the drain's result
//
// Every other pairing is rejected by the compiler. A composed Drain's
// context is the left-to-right nesting of its stages' contexts, for example
// Into(Filter(p), ToSlice[int]()) has context Pair[Nothing, []int].
//
// # Usage Example
//
//	numbers := fusez.FromSlice([]int{1, 2, 3, 4, 5, 6})
//
//	squaresOfEvens := fusez.Via(
//	    fusez.Via(numbers, fusez.Filter(func(n int) bool { return n%2 == 0 })),
//	    fusez.Transform(func(n int) int { return n * n }),
//	)
//
//	squares := fusez.Run(squaresOfEvens, fusez.ToSlice[int]()) // [4 16 36]
//
//	stats := fusez.Run(numbers, fusez.Mux3(
//	    fusez.Accumulate(0, func(acc, n int) int { return acc + n }),
//	    fusez.CountIf(func(n int) bool { return n > 3 }),
//	    fusez.AllOf(func(n int) bool { return n > 0 }),
//	))
//	// stats.First == 21, stats.Second == 3, stats.Third == true
//
// # Capacity Hints
//
// Sources report how many elements they expect to push. Filter passes the
// hint on unchanged, Transform keeps the count, FlatMap resets it to
// Unknown. ToSlice uses it to reserve capacity. Hints are advisory and
// never affect results.
//
// # Values and Sharing
//
// Elements travel by value, so every stage receives its own copy. Pointers,
// slices and maps inside an element are still shared. This matters for
// Mux2, Mux3 and MuxN, which push the same value to every sub-drain in
// declared order: a branch that modifies referenced data is seen by later
// branches. Insert Clone in front of such a branch.
//
// # Errors
//
// Stages cannot fail on their own. Panics from caller-supplied functions
// propagate out of Run unchanged and abandon the run. TryRun converts them
// into a *PanicError instead. A custom Source that pushes before connecting,
// or connects twice, panics with a *ProtocolError.
//
// # Observability
//
// Observe wraps any Drain and reports its runs to an Observer: metricz
// counters and gauges, a tracez span per run, hookz completion events and
// capitan lifecycle signals. Instrumentation happens once per run and once
// per element and never changes results.
//
// # Scope
//
// Runs are single-threaded and always exhaust their source. There is no
// cancellation, no early exit, no back-pressure and no state carried from
// one run to the next.
package fusez
