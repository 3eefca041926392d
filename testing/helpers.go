// Package testing provides test utilities and helpers for fusez-based applications.
//
// This package includes mock drains and gates, recording and misbehaving
// sources, assertion helpers, and chaos testing tools to make testing fused
// pipelines easier and more comprehensive.
//
// Example usage:
//
//	func TestMyPipeline(t *testing.T) {
//		mock := fztest.NewMockDrain[string](t, "sink")
//
//		src := fusez.Via(fusez.FromSlice(lines), fusez.Filter(notBlank))
//		fusez.Run(src, mock)
//
//		fztest.AssertRuns(t, mock, 1)
//		fztest.AssertReceived(t, mock, []string{"a", "b"})
//	}
package testing

import (
	"crypto/rand"
	"fmt"
	mathrand "math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/fusez"
)

// MockDrain provides a recording implementation of fusez.Drain[T, []T, []T].
// It collects every pushed element, tracks lifecycle calls, and can be
// configured to panic on a chosen element.
type MockDrain[T any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	connects    int64
	nexts       int64
	completes   int64
	lastInfo    fusez.SourceInfo[T]
	received    []T
	panicOn     func(T) bool
	panicMsg    string
	mu          sync.RWMutex
	runHistory  []MockRun[T]
	maxHistory  int
	currentInfo fusez.SourceInfo[T]
}

// MockRun represents a single completed run through the mock drain.
type MockRun[T any] struct {
	Info      fusez.SourceInfo[T]
	Elements  []T
	Timestamp time.Time
}

// NewMockDrain creates a new mock drain for testing.
// The drain tracks all runs and returns the collected elements on completion.
func NewMockDrain[T any](t *testing.T, name string) *MockDrain[T] {
	return &MockDrain[T]{
		t:          t,
		name:       name,
		maxHistory: 100, // Keep last 100 runs by default
	}
}

// WithPanicOn configures the mock to panic with msg when pred matches an
// element. This is useful for testing TryRun and abandoned runs.
func (m *MockDrain[T]) WithPanicOn(pred func(T) bool, msg string) *MockDrain[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicOn = pred
	m.panicMsg = msg
	return m
}

// WithHistorySize configures how many runs to keep in history.
// Set to 0 to disable history tracking.
func (m *MockDrain[T]) WithHistorySize(size int) *MockDrain[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.runHistory = nil
	} else if len(m.runHistory) > size {
		m.runHistory = m.runHistory[len(m.runHistory)-size:]
	}
	return m
}

// Name returns the name of the mock drain.
func (m *MockDrain[T]) Name() string {
	return m.name
}

// OnConnect implements fusez.Junction. It records the hint and starts an
// empty run context.
func (m *MockDrain[T]) OnConnect(info fusez.SourceInfo[T]) []T {
	atomic.AddInt64(&m.connects, 1)

	m.mu.Lock()
	m.lastInfo = info
	m.currentInfo = info
	m.mu.Unlock()

	return make([]T, 0, max(info.Capacity, 0))
}

// OnNext implements fusez.Junction. It records the element, panicking first
// if the configured predicate matches.
func (m *MockDrain[T]) OnNext(ctx *[]T, v T) {
	atomic.AddInt64(&m.nexts, 1)

	m.mu.Lock()
	m.received = append(m.received, v)
	panicOn, panicMsg := m.panicOn, m.panicMsg
	m.mu.Unlock()

	if panicOn != nil && panicOn(v) {
		panic(panicMsg)
	}
	*ctx = append(*ctx, v)
}

// OnComplete implements fusez.Drain. It returns the elements of the run.
func (m *MockDrain[T]) OnComplete(ctx []T) []T {
	atomic.AddInt64(&m.completes, 1)

	m.mu.Lock()
	if m.maxHistory > 0 {
		m.runHistory = append(m.runHistory, MockRun[T]{
			Info:      m.currentInfo,
			Elements:  append([]T(nil), ctx...),
			Timestamp: time.Now(),
		})
		if len(m.runHistory) > m.maxHistory {
			m.runHistory = m.runHistory[1:] // Remove oldest
		}
	}
	m.mu.Unlock()

	return ctx
}

// ConnectCount returns the number of runs started.
func (m *MockDrain[T]) ConnectCount() int {
	return int(atomic.LoadInt64(&m.connects))
}

// NextCount returns the number of elements pushed, across runs.
func (m *MockDrain[T]) NextCount() int {
	return int(atomic.LoadInt64(&m.nexts))
}

// CompleteCount returns the number of runs completed.
func (m *MockDrain[T]) CompleteCount() int {
	return int(atomic.LoadInt64(&m.completes))
}

// LastInfo returns the hint received by the most recent connect.
func (m *MockDrain[T]) LastInfo() fusez.SourceInfo[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInfo
}

// Received returns a copy of every element pushed, across runs, in push
// order.
func (m *MockDrain[T]) Received() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.received...)
}

// RunHistory returns a copy of all recorded runs.
// Returns nil if history tracking is disabled.
func (m *MockDrain[T]) RunHistory() []MockRun[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockRun[T], len(m.runHistory))
	copy(history, m.runHistory)
	return history
}

// Reset clears all call tracking and resets the mock to initial state.
func (m *MockDrain[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.connects, 0)
	atomic.StoreInt64(&m.nexts, 0)
	atomic.StoreInt64(&m.completes, 0)
	m.lastInfo = fusez.SourceInfo[T]{}
	m.received = nil
	m.runHistory = nil
}

// MockGate forwards elements unchanged and records what it saw. Its run
// context counts the elements of the current run.
type MockGate[T any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	name     string
	connects int64
	seen     int64
	drop     func(T) bool
	hint     *int
	mu       sync.RWMutex
	lastInfo fusez.SourceInfo[T]
}

// NewMockGate creates a pass-through mock gate.
func NewMockGate[T any](name string) *MockGate[T] {
	return &MockGate[T]{name: name}
}

// WithDrop configures the gate to drop elements matching pred.
func (g *MockGate[T]) WithDrop(pred func(T) bool) *MockGate[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drop = pred
	return g
}

// WithHint makes the gate report capacity downstream instead of passing the
// upstream hint through.
func (g *MockGate[T]) WithHint(capacity int) *MockGate[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hint = &capacity
	return g
}

// Name returns the name of the mock gate.
func (g *MockGate[T]) Name() string {
	return g.name
}

// Info implements fusez.Gate.
func (g *MockGate[T]) Info(info fusez.SourceInfo[T]) fusez.SourceInfo[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.hint != nil {
		return fusez.SourceInfo[T]{Capacity: *g.hint}
	}
	return info
}

// OnConnect implements fusez.Gate.
func (g *MockGate[T]) OnConnect(info fusez.SourceInfo[T]) int {
	atomic.AddInt64(&g.connects, 1)
	g.mu.Lock()
	g.lastInfo = info
	g.mu.Unlock()
	return 0
}

// OnNext implements fusez.Gate.
func (g *MockGate[T]) OnNext(ctx *int, v T, next func(T)) {
	atomic.AddInt64(&g.seen, 1)
	*ctx++

	g.mu.RLock()
	drop := g.drop
	g.mu.RUnlock()

	if drop != nil && drop(v) {
		return
	}
	next(v)
}

// ConnectCount returns the number of runs the gate took part in.
func (g *MockGate[T]) ConnectCount() int {
	return int(atomic.LoadInt64(&g.connects))
}

// SeenCount returns the number of elements offered to the gate, across runs.
func (g *MockGate[T]) SeenCount() int {
	return int(atomic.LoadInt64(&g.seen))
}

// LastInfo returns the hint received by the most recent connect.
func (g *MockGate[T]) LastInfo() fusez.SourceInfo[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lastInfo
}

// RecordingSource pushes a fixed list of elements and counts traversals.
type RecordingSource[T any] struct {
	items []T
	hint  int
	emits int64
}

// NewRecordingSource creates a source over items reporting their exact
// length as hint.
func NewRecordingSource[T any](items ...T) *RecordingSource[T] {
	return &RecordingSource[T]{items: items, hint: len(items)}
}

// WithHint overrides the reported hint.
func (s *RecordingSource[T]) WithHint(capacity int) *RecordingSource[T] {
	s.hint = capacity
	return s
}

// Info implements fusez.Source.
func (s *RecordingSource[T]) Info() fusez.SourceInfo[T] {
	return fusez.SourceInfo[T]{Capacity: s.hint}
}

// Emit implements fusez.Source.
func (s *RecordingSource[T]) Emit(r fusez.Receiver[T]) {
	atomic.AddInt64(&s.emits, 1)
	r.Connect(s.Info())
	for _, v := range s.items {
		r.Push(v)
	}
}

// EmitCount returns how many traversals the source performed.
func (s *RecordingSource[T]) EmitCount() int {
	return int(atomic.LoadInt64(&s.emits))
}

// Fault selects how a FaultySource breaks the push protocol.
type Fault int

const (
	// PushBeforeConnect pushes an element without connecting first.
	PushBeforeConnect Fault = iota
	// ConnectTwice connects twice in one traversal.
	ConnectTwice
	// NeverConnect returns from Emit without connecting.
	NeverConnect
)

// FaultySource is a source that violates the push protocol in a chosen
// way. Running it panics with a *fusez.ProtocolError.
type FaultySource[T any] struct {
	fault Fault
	value T
}

// NewFaultySource creates a source misbehaving according to fault. value is
// the element it pushes where the fault involves a push.
func NewFaultySource[T any](fault Fault, value T) *FaultySource[T] {
	return &FaultySource[T]{fault: fault, value: value}
}

// Info implements fusez.Source.
func (*FaultySource[T]) Info() fusez.SourceInfo[T] {
	return fusez.SourceInfo[T]{Capacity: fusez.Unknown}
}

// Emit implements fusez.Source.
func (s *FaultySource[T]) Emit(r fusez.Receiver[T]) {
	switch s.fault {
	case PushBeforeConnect:
		r.Push(s.value)
	case ConnectTwice:
		r.Connect(s.Info())
		r.Connect(s.Info())
	case NeverConnect:
	}
}

// Assertion Helpers

// AssertRuns verifies that a mock drain was connected and completed exactly
// n times.
func AssertRuns[T any](t *testing.T, mock *MockDrain[T], expectedRuns int) {
	t.Helper()
	if got := mock.ConnectCount(); got != expectedRuns {
		t.Errorf("expected mock drain %s to be connected %d times, but was connected %d times",
			mock.name, expectedRuns, got)
	}
	if got := mock.CompleteCount(); got != expectedRuns {
		t.Errorf("expected mock drain %s to be completed %d times, but was completed %d times",
			mock.name, expectedRuns, got)
	}
}

// AssertNotRun verifies that a mock drain was never connected.
func AssertNotRun[T any](t *testing.T, mock *MockDrain[T]) {
	t.Helper()
	AssertRuns(t, mock, 0)
}

// AssertReceived verifies every element pushed into a mock drain, in order.
func AssertReceived[T any](t *testing.T, mock *MockDrain[T], expected []T) {
	t.Helper()
	if diff := cmp.Diff(expected, mock.Received()); diff != "" {
		t.Errorf("mock drain %s received unexpected elements (-want +got):\n%s", mock.name, diff)
	}
}

// AssertHint verifies the hint of the most recent connect.
func AssertHint[T any](t *testing.T, mock *MockDrain[T], expected int) {
	t.Helper()
	if got := mock.LastInfo().Capacity; got != expected {
		t.Errorf("expected mock drain %s to connect with hint %d, got %d", mock.name, expected, got)
	}
}

// AssertSingleTraversal verifies that a recording source was emitted
// exactly once.
func AssertSingleTraversal[T any](t *testing.T, src *RecordingSource[T]) {
	t.Helper()
	if got := src.EmitCount(); got != 1 {
		t.Errorf("expected a single traversal, got %d", got)
	}
}

// ChaosGate introduces controlled drops and panics for chaos testing.
// It forwards every element that is neither dropped nor panicked on.
type ChaosGate[T any] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	name       string
	dropRate   float64
	panicRate  float64
	rng        *mathrand.Rand
	mu         sync.Mutex
	totalCalls int64
	dropCalls  int64
	panicCalls int64
}

// ChaosConfig holds configuration for chaos testing.
type ChaosConfig struct {
	DropRate  float64 // Probability of dropping an element (0.0 to 1.0)
	PanicRate float64 // Probability of panicking (0.0 to 1.0)
	Seed      int64   // Random seed for reproducible chaos (0 for random seed)
}

// NewChaosGate creates a chaos gate.
func NewChaosGate[T any](name string, config ChaosConfig) *ChaosGate[T] {
	seed := config.Seed
	if seed == 0 {
		// Use crypto/rand for better randomness
		var seedBytes [8]byte
		if _, err := rand.Read(seedBytes[:]); err != nil {
			// Fallback to time-based seed if crypto/rand fails
			seed = time.Now().UnixNano()
		} else {
			seed = int64(seedBytes[0])<<56 | int64(seedBytes[1])<<48 | int64(seedBytes[2])<<40 | int64(seedBytes[3])<<32 |
				int64(seedBytes[4])<<24 | int64(seedBytes[5])<<16 | int64(seedBytes[6])<<8 | int64(seedBytes[7])
		}
	}

	return &ChaosGate[T]{
		name:      name,
		dropRate:  config.DropRate,
		panicRate: config.PanicRate,
		rng:       mathrand.New(mathrand.NewSource(seed)), //nolint:gosec // G404: Test utility uses weak RNG for deterministic chaos scenarios
	}
}

// Name returns the name of the chaos gate.
func (c *ChaosGate[T]) Name() string {
	return c.name
}

// Info implements fusez.Gate. Drops make the upstream hint an upper bound.
func (*ChaosGate[T]) Info(info fusez.SourceInfo[T]) fusez.SourceInfo[T] {
	return info
}

// OnConnect implements fusez.Gate.
func (*ChaosGate[T]) OnConnect(fusez.SourceInfo[T]) fusez.Nothing {
	return fusez.Nothing{}
}

// OnNext implements fusez.Gate with chaos injection.
func (c *ChaosGate[T]) OnNext(_ *fusez.Nothing, v T, next func(T)) {
	atomic.AddInt64(&c.totalCalls, 1)

	c.mu.Lock()
	doPanic := c.rng.Float64() < c.panicRate
	doDrop := c.rng.Float64() < c.dropRate
	c.mu.Unlock()

	if doPanic {
		atomic.AddInt64(&c.panicCalls, 1)
		panic("chaos gate induced panic")
	}
	if doDrop {
		atomic.AddInt64(&c.dropCalls, 1)
		return
	}
	next(v)
}

// Stats returns statistics about chaos injection.
func (c *ChaosGate[T]) Stats() ChaosStats {
	return ChaosStats{
		TotalCalls: atomic.LoadInt64(&c.totalCalls),
		DropCalls:  atomic.LoadInt64(&c.dropCalls),
		PanicCalls: atomic.LoadInt64(&c.panicCalls),
	}
}

// ChaosStats holds statistics about chaos injection.
type ChaosStats struct {
	TotalCalls int64
	DropCalls  int64
	PanicCalls int64
}

// DropRate returns the actual drop rate observed.
func (s ChaosStats) DropRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.DropCalls) / float64(s.TotalCalls)
}

// PanicRate returns the actual panic rate observed.
func (s ChaosStats) PanicRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.PanicCalls) / float64(s.TotalCalls)
}

// String returns a human-readable representation of the stats.
func (s ChaosStats) String() string {
	return fmt.Sprintf("ChaosStats{Total: %d, Dropped: %d (%.1f%%), Panics: %d (%.1f%%)}",
		s.TotalCalls, s.DropCalls, s.DropRate()*100,
		s.PanicCalls, s.PanicRate()*100)
}

// Helper Functions

// WaitFor polls cond until it holds or timeout elapses. Returns true if cond
// held. Use it for hook handlers and signal listeners, which run
// asynchronously.
func WaitFor(cond func() bool, timeout time.Duration) bool {
	start := time.Now()
	for time.Since(start) < timeout {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// ParallelTest runs a test function in parallel with multiple goroutines.
// Useful for checking that stages can be shared by concurrent runs.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}

	wg.Wait()
}
