package integration

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/zoobzio/fusez"
	fztest "github.com/zoobzio/fusez/testing"
)

func TestPanicCascade(t *testing.T) {
	t.Run("Panic In Nested Traversal Abandons Outer Run", func(t *testing.T) {
		sink := fztest.NewMockDrain[int](t, "sink")
		expand := fusez.FlatMap(func(n int) fusez.Source[int] {
			return fusez.FromEnumerator(func(yield func(int)) {
				yield(n)
				if n == 2 {
					panic("nested failure")
				}
				yield(-n)
			})
		})

		_, err := fusez.TryRun(fusez.FromSlice([]int{1, 2, 3}), fusez.Into(expand, sink))

		var pe *fusez.PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *fusez.PanicError, got %v", err)
		}
		fztest.AssertReceived(t, sink, []int{1, -1, 2})
		if sink.CompleteCount() != 0 {
			t.Errorf("expected abandoned run, got %d completions", sink.CompleteCount())
		}
	})

	t.Run("Run Propagates Panics Unchanged", func(t *testing.T) {
		type custom struct{ code int }

		defer func() {
			r := recover()
			c, ok := r.(custom)
			if !ok || c.code != 7 {
				t.Errorf("expected custom panic value, got %v", r)
			}
		}()

		fusez.Run(fusez.FromSlice([]int{1}), fusez.ForEach(func(int) { panic(custom{code: 7}) }))
	})

	t.Run("Pipeline Usable After Abandoned Run", func(t *testing.T) {
		fail := true
		drain := fusez.Into(fusez.Tap(func(int) {
			if fail {
				panic("first run fails")
			}
		}), fusez.ToSlice[int]())
		src := fusez.FromSlice([]int{1, 2})

		if _, err := fusez.TryRun(src, drain); err == nil {
			t.Fatal("expected first run to fail")
		}
		fail = false
		got, err := fusez.TryRun(src, drain)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected fresh run with 2 elements, got %v", got)
		}
	})
}

func TestSanitization(t *testing.T) {
	t.Run("Addresses Are Masked", func(t *testing.T) {
		n := 1
		_, err := fusez.TryRun(fusez.FromSlice([]int{1}), fusez.ForEach(func(int) {
			panic(fmt.Sprintf("leaked address: %p", &n))
		}))
		if err == nil {
			t.Fatal("expected error")
		}
		if strings.Contains(err.Error(), fmt.Sprintf("%p", &n)) {
			t.Errorf("address leaked into error: %s", err)
		}
		if !strings.Contains(err.Error(), "0x***") {
			t.Errorf("expected masked address, got %s", err)
		}
	})

	t.Run("Paths Are Removed", func(t *testing.T) {
		_, err := fusez.TryRun(fusez.FromSlice([]int{1}), fusez.ForEach(func(int) {
			panic("open /srv/app/internal/secret.go:12 failed")
		}))
		if err == nil || strings.Contains(err.Error(), "/srv/app") {
			t.Errorf("expected sanitized path, got %v", err)
		}
	})

	t.Run("Raw Value Stays Available", func(t *testing.T) {
		cause := errors.New("decode failed at offset 0x10")
		_, err := fusez.TryRun(fusez.FromSlice([]int{1}), fusez.ForEach(func(int) { panic(cause) }))

		if !errors.Is(err, cause) {
			t.Errorf("expected errors.Is to reach the cause, got %v", err)
		}
		if strings.Contains(err.Error(), "0x10") {
			t.Errorf("expected sanitized message, got %s", err)
		}
	})
}
