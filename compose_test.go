package fusez

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComposition(t *testing.T) {
	t.Run("Source Via Gate Is A Source", func(t *testing.T) {
		var src Source[string] = Via(
			Via(FromSlice([]int{1, 2, 3, 4}), Filter(isEven)),
			Transform(strconv.Itoa),
		)

		got := Run(src, ToSlice[string]())
		if diff := cmp.Diff([]string{"2", "4"}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Gate Then Gate Is A Gate", func(t *testing.T) {
		var gate Gate[int, int, Pair[Nothing, Nothing]] = Then(
			Filter(isEven),
			Transform(func(n int) int { return n * 10 }),
		)

		got := Run(Via(FromSlice([]int{1, 2, 3, 4}), gate), ToSlice[int]())
		if diff := cmp.Diff([]int{20, 40}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Gate Into Drain Is A Drain", func(t *testing.T) {
		var drain Drain[int, Pair[Nothing, int], int] = Into(
			Filter(isEven),
			CountIf(func(int) bool { return true }),
		)

		if got := Run(FromSlice([]int{1, 2, 3, 4, 5, 6}), drain); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
	})

	t.Run("Long Chains Stay Closed", func(t *testing.T) {
		gates := Then(Then(Filter(isEven), Transform(func(n int) int { return n + 1 })), Tap(func(int) {}))
		src := Via(Via(FromSlice([]int{1, 2, 3, 4, 5, 6}), gates), Transform(strconv.Itoa))
		drain := Into(Filter(func(s string) bool { return s != "5" }), ToSlice[string]())

		got := Run(src, drain)
		if diff := cmp.Diff([]string{"3", "7"}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Drain Context Mirrors Chain Order", func(t *testing.T) {
		drain := Into(Then(Filter(isEven), Transform(func(n int) int { return -n })), ToSlice[int]())

		ctx := Emit[int, Pair[Pair[Nothing, Nothing], []int]](FromSlice([]int{1, 2, 3, 4}), drain)
		if diff := cmp.Diff([]int{-2, -4}, ctx.Second); diff != "" {
			t.Errorf("unexpected drain context (-want +got):\n%s", diff)
		}
		if got := drain.OnComplete(ctx); !reflect.DeepEqual(got, []int{-2, -4}) {
			t.Errorf("expected completion to return drain context, got %v", got)
		}
	})

	t.Run("Gate Contexts Are Per Run", func(t *testing.T) {
		gate := newProbeGate[int]("gate", nil)
		drain := Into(gate, ToSlice[int]())
		src := FromSlice([]int{7, 8, 9})

		first := Emit[int, Pair[int, []int]](src, drain)
		second := Emit[int, Pair[int, []int]](src, drain)

		if first.First != 3 || second.First != 3 {
			t.Errorf("expected each run to count 3 elements, got %d and %d", first.First, second.First)
		}
		if gate.connects != 2 {
			t.Errorf("expected 2 connects, got %d", gate.connects)
		}
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("One Connect Per Element Next One Complete", func(t *testing.T) {
		drain := newProbeDrain[int]("drain", nil)
		got := Run(FromSlice([]int{1, 2, 3}), drain)

		if drain.connects != 1 || drain.nexts != 3 || drain.completes != 1 {
			t.Errorf("expected 1/3/1 calls, got %d/%d/%d", drain.connects, drain.nexts, drain.completes)
		}
		if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Gate Connects Before Downstream", func(t *testing.T) {
		var log []string
		drain := Into(newProbeGate[int]("gate", &log), newProbeDrain[int]("drain", &log))

		Run(FromSlice([]int{1}), drain)

		want := []string{"gate.connect", "drain.connect", "gate.next", "drain.next", "drain.complete"}
		if diff := cmp.Diff(want, log); diff != "" {
			t.Errorf("unexpected call order (-want +got):\n%s", diff)
		}
	})

	t.Run("Depth First Per Element", func(t *testing.T) {
		var log []string
		src := Via(FromSlice([]int{1, 2}), newProbeGate[int]("outer", &log))
		drain := Into(newProbeGate[int]("inner", &log), newProbeDrain[int]("drain", &log))

		Run(src, drain)

		want := []string{
			"outer.connect", "inner.connect", "drain.connect",
			"outer.next", "inner.next", "drain.next",
			"outer.next", "inner.next", "drain.next",
			"drain.complete",
		}
		if diff := cmp.Diff(want, log); diff != "" {
			t.Errorf("unexpected call order (-want +got):\n%s", diff)
		}
	})

	t.Run("Single Traversal For Any Drain", func(t *testing.T) {
		src := &countingSource[int]{items: []int{1, 2, 3, 4}}
		drain := Mux3(ToSlice[int](), CountIf(isEven), Accumulate(0, func(acc, n int) int { return acc + n }))

		got := Run(Via(src, Filter(func(int) bool { return true })), drain)

		if src.emits != 1 {
			t.Errorf("expected one traversal, got %d", src.emits)
		}
		if got.Second != 2 || got.Third != 10 || len(got.First) != 4 {
			t.Errorf("unexpected results %v", got)
		}
	})

	t.Run("Pipelines Are Reusable", func(t *testing.T) {
		src := FromSlice([]int{1, 2, 3})
		drain := ToSlice[int]()

		first := Run(src, drain)
		first[0] = 100
		second := Run(src, drain)

		if diff := cmp.Diff([]int{1, 2, 3}, second); diff != "" {
			t.Errorf("second run shares state with first (-want +got):\n%s", diff)
		}
	})

	t.Run("Empty Source Still Connects And Completes", func(t *testing.T) {
		drain := newProbeDrain[int]("drain", nil)
		Run(FromSlice[int](nil), drain)

		if drain.connects != 1 || drain.nexts != 0 || drain.completes != 1 {
			t.Errorf("expected 1/0/1 calls, got %d/%d/%d", drain.connects, drain.nexts, drain.completes)
		}
	})
}

func TestHintPropagation(t *testing.T) {
	numbers := FromSlice([]int{1, 2, 3, 4, 5})

	t.Run("Transform Preserves Count", func(t *testing.T) {
		src := Via(numbers, Transform(strconv.Itoa))
		if got := src.Info().Capacity; got != 5 {
			t.Errorf("expected hint 5, got %d", got)
		}
	})

	t.Run("Filter Passes Through", func(t *testing.T) {
		src := Via(numbers, Filter(isEven))
		if got := src.Info().Capacity; got != 5 {
			t.Errorf("expected hint 5, got %d", got)
		}
	})

	t.Run("FlatMap Resets To Unknown", func(t *testing.T) {
		src := Via(numbers, FlatMap(func(n int) Source[int] { return FromSlice([]int{n, n}) }))
		if got := src.Info().Capacity; got != Unknown {
			t.Errorf("expected hint %d, got %d", Unknown, got)
		}
	})

	t.Run("Drain Sees Propagated Hint", func(t *testing.T) {
		probe := newProbeDrain[string]("drain", nil)
		Run(Via(numbers, Transform(strconv.Itoa)), probe)
		if probe.info.Capacity != 5 {
			t.Errorf("expected drain to connect with hint 5, got %d", probe.info.Capacity)
		}
	})

	t.Run("Gate Chain Propagates Before Drain", func(t *testing.T) {
		probe := newProbeDrain[int]("drain", nil)
		drain := Into(Then(Transform(func(n int) int { return n }), FlatMap(func(n int) Source[int] {
			return FromSlice([]int{n})
		})), probe)

		Run(numbers, drain)
		if probe.info.Capacity != Unknown {
			t.Errorf("expected drain to connect with unknown hint, got %d", probe.info.Capacity)
		}
	})
}

// Illegal pairings cannot be written: no composition function accepts them.
// These checks pin down the role separation that makes that true.
func TestRolesAreDisjoint(t *testing.T) {
	sourceRole := reflect.TypeOf((*Source[int])(nil)).Elem()
	gateRole := reflect.TypeOf((*Gate[int, int, Nothing])(nil)).Elem()
	junctionRole := reflect.TypeOf((*Junction[int, []int])(nil)).Elem()

	t.Run("Drain Is Neither Source Nor Gate", func(t *testing.T) {
		drain := reflect.TypeOf(ToSlice[int]())
		if drain.Implements(sourceRole) {
			t.Error("drain must not satisfy Source")
		}
		if drain.Implements(gateRole) {
			t.Error("drain must not satisfy Gate, so Drain | Gate cannot be built")
		}
	})

	t.Run("Source Is Neither Gate Nor Junction", func(t *testing.T) {
		src := reflect.TypeOf(FromSlice([]int{1}))
		if src.Implements(gateRole) {
			t.Error("source must not satisfy Gate, so Source | Source cannot be built")
		}
		if src.Implements(junctionRole) {
			t.Error("source must not satisfy Junction")
		}
	})

	t.Run("Gate Is Neither Source Nor Junction", func(t *testing.T) {
		gate := reflect.TypeOf(Filter(isEven))
		if gate.Implements(sourceRole) {
			t.Error("gate must not satisfy Source")
		}
		if gate.Implements(reflect.TypeOf((*Junction[int, Nothing])(nil)).Elem()) {
			t.Error("gate must not satisfy Junction")
		}
	})
}

type pushFirstSource struct{}

func (pushFirstSource) Info() SourceInfo[int] { return SourceInfo[int]{} }

func (pushFirstSource) Emit(r Receiver[int]) { r.Push(1) }

type doubleConnectSource struct{}

func (doubleConnectSource) Info() SourceInfo[int] { return SourceInfo[int]{} }

func (s doubleConnectSource) Emit(r Receiver[int]) {
	r.Connect(s.Info())
	r.Connect(s.Info())
}

type silentSource struct{}

func (silentSource) Info() SourceInfo[int] { return SourceInfo[int]{} }

func (silentSource) Emit(Receiver[int]) {}

func TestProtocolViolations(t *testing.T) {
	t.Run("Push Before Connect", func(t *testing.T) {
		v := mustPanic(t, func() { Run[int](pushFirstSource{}, ToSlice[int]()) })
		if pe := protocolError(t, v, ErrNotConnected); pe.Op != "push" {
			t.Errorf("expected op push, got %q", pe.Op)
		}
	})

	t.Run("Push Before Connect Through Gate", func(t *testing.T) {
		v := mustPanic(t, func() { Run(Via[int](pushFirstSource{}, Filter(isEven)), ToSlice[int]()) })
		protocolError(t, v, ErrNotConnected)
	})

	t.Run("Connect Twice", func(t *testing.T) {
		v := mustPanic(t, func() { Run[int](doubleConnectSource{}, ToSlice[int]()) })
		protocolError(t, v, ErrAlreadyConnected)
	})

	t.Run("Never Connected", func(t *testing.T) {
		v := mustPanic(t, func() { Run[int](silentSource{}, ToSlice[int]()) })
		if pe := protocolError(t, v, ErrNotConnected); pe.Op != "emit" {
			t.Errorf("expected op emit, got %q", pe.Op)
		}
	})
}
