package fusez

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToSlice(t *testing.T) {
	t.Run("Collects In Push Order", func(t *testing.T) {
		got := Run(FromSlice([]string{"c", "a", "b"}), ToSlice[string]())
		if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Reserves Hinted Capacity", func(t *testing.T) {
		got := Run(FromSlice([]int{1, 2, 3, 4, 5}), Into(Filter(isEven), ToSlice[int]()))
		if len(got) != 2 {
			t.Errorf("expected length 2, got %d", len(got))
		}
		if cap(got) != 5 {
			t.Errorf("expected capacity 5, got %d", cap(got))
		}
	})

	t.Run("Unknown Hint Still Collects", func(t *testing.T) {
		src := FromEnumerator(func(yield func(int)) {
			for i := range 3 {
				yield(i)
			}
		})
		got := Run(src, ToSlice[int]())
		if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Oversized Hint Is Bounded", func(t *testing.T) {
		got := Run(WithCapacity(FromSlice([]int{1, 2, 3}), 1<<62), ToSlice[int]())
		if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
		if cap(got) != MaxReserve {
			t.Errorf("expected capacity %d, got %d", MaxReserve, cap(got))
		}
	})

	t.Run("Negative Hint Is Clamped", func(t *testing.T) {
		got := Run(WithCapacity(FromSlice([]int{1, 2}), -5), ToSlice[int]())
		if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("Empty Input Gives Empty Slice", func(t *testing.T) {
		got := Run(FromSlice[int](nil), ToSlice[int]())
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestToSliceFunc(t *testing.T) {
	t.Run("Maps Then Collects", func(t *testing.T) {
		got := Run(FromSlice([]string{"a", "bc"}), ToSliceFunc(strings.ToUpper))
		if diff := cmp.Diff([]string{"A", "BC"}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})
}

func TestToContainer(t *testing.T) {
	t.Run("Builds Custom Container", func(t *testing.T) {
		var hint int
		drain := ToContainer(
			func(capacity int) *strings.Builder {
				hint = capacity
				b := &strings.Builder{}
				b.Grow(capacity)
				return b
			},
			func(b *strings.Builder, s string) *strings.Builder {
				b.WriteString(s)
				return b
			},
		)

		got := Run(FromSlice([]string{"fu", "se"}), drain)
		if got.String() != "fuse" {
			t.Errorf("expected fuse, got %q", got.String())
		}
		if hint != 2 {
			t.Errorf("expected hint 2, got %d", hint)
		}
	})

	t.Run("Negative Hint Is Clamped", func(t *testing.T) {
		hint := -1
		drain := ToContainer(
			func(capacity int) []int { hint = capacity; return nil },
			func(s []int, v int) []int { return append(s, v) },
		)
		Run(WithCapacity(FromSlice([]int{1}), -7), drain)
		if hint != 0 {
			t.Errorf("expected clamped hint 0, got %d", hint)
		}
	})

	t.Run("Huge Hint Is Capped", func(t *testing.T) {
		hint := -1
		drain := ToContainer(
			func(capacity int) []int { hint = capacity; return nil },
			func(s []int, v int) []int { return append(s, v) },
		)
		Run(WithCapacity(FromSlice([]int{1}), 1<<40), drain)
		if hint != MaxReserve {
			t.Errorf("expected capped hint %d, got %d", MaxReserve, hint)
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("Calls Fn And Counts", func(t *testing.T) {
		var seen []int
		n := Run(FromSlice([]int{3, 1, 2}), ForEach(func(v int) { seen = append(seen, v) }))
		if n != 3 {
			t.Errorf("expected 3, got %d", n)
		}
		if diff := cmp.Diff([]int{3, 1, 2}, seen); diff != "" {
			t.Errorf("unexpected elements (-want +got):\n%s", diff)
		}
	})
}
