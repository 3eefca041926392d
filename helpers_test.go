package fusez

import (
	"errors"
	"testing"
)

// probeDrain collects pushed elements and records every protocol call.
type probeDrain[T any] struct {
	log       *[]string
	label     string
	info      SourceInfo[T]
	connects  int
	nexts     int
	completes int
}

func newProbeDrain[T any](label string, log *[]string) *probeDrain[T] {
	return &probeDrain[T]{label: label, log: log}
}

func (p *probeDrain[T]) record(event string) {
	if p.log != nil {
		*p.log = append(*p.log, p.label+"."+event)
	}
}

func (p *probeDrain[T]) OnConnect(info SourceInfo[T]) []T {
	p.connects++
	p.info = info
	p.record("connect")
	return nil
}

func (p *probeDrain[T]) OnNext(ctx *[]T, v T) {
	p.nexts++
	p.record("next")
	*ctx = append(*ctx, v)
}

func (p *probeDrain[T]) OnComplete(ctx []T) []T {
	p.completes++
	p.record("complete")
	return ctx
}

// probeGate forwards elements unchanged and records every protocol call.
// Its context counts the elements seen in the current run.
type probeGate[T any] struct {
	log      *[]string
	label    string
	info     SourceInfo[T]
	connects int
}

func newProbeGate[T any](label string, log *[]string) *probeGate[T] {
	return &probeGate[T]{label: label, log: log}
}

func (g *probeGate[T]) Info(info SourceInfo[T]) SourceInfo[T] {
	return info
}

func (g *probeGate[T]) OnConnect(info SourceInfo[T]) int {
	g.connects++
	g.info = info
	if g.log != nil {
		*g.log = append(*g.log, g.label+".connect")
	}
	return 0
}

func (g *probeGate[T]) OnNext(seen *int, v T, next func(T)) {
	*seen++
	if g.log != nil {
		*g.log = append(*g.log, g.label+".next")
	}
	next(v)
}

// countingSource wraps a slice and counts how often it is emitted.
type countingSource[T any] struct {
	items []T
	emits int
}

func (s *countingSource[T]) Info() SourceInfo[T] {
	return SourceInfo[T]{Capacity: len(s.items)}
}

func (s *countingSource[T]) Emit(r Receiver[T]) {
	s.emits++
	r.Connect(s.Info())
	for _, v := range s.items {
		r.Push(v)
	}
}

// mustPanic runs fn and returns the recovered value, failing the test if fn
// returns normally.
func mustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// protocolError asserts that v is a *ProtocolError wrapping target.
func protocolError(t *testing.T, v any, target error) *ProtocolError {
	t.Helper()
	err, ok := v.(error)
	if !ok {
		t.Fatalf("expected error panic value, got %T", v)
	}
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProtocolError, got %T", err)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
	return pe
}

func isEven(n int) bool { return n%2 == 0 }
