package fusez

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for observed runs.
const (
	ObserveRunsTotal      = metricz.Key("observe.runs.total")
	ObserveCompletedTotal = metricz.Key("observe.completed.total")
	ObserveElementsTotal  = metricz.Key("observe.elements.total")
	ObserveElementsLast   = metricz.Key("observe.elements.last")
	ObserveDurationMs     = metricz.Key("observe.duration.ms")
)

// Span names for observed runs.
const (
	ObserveRunSpan = tracez.Key("observe.run")
)

// Span tags for observed runs.
const (
	ObserveTagName     = tracez.Tag("observe.name")
	ObserveTagCapacity = tracez.Tag("observe.capacity")
	ObserveTagElements = tracez.Tag("observe.elements")

	// Hook event keys.
	ObserveEventCompleted = hookz.Key("observe.completed")
)

// RunEvent describes one completed observed run. It is delivered to
// OnComplete handlers asynchronously, after the run has returned.
type RunEvent struct {
	Name      string        // Observer name
	Capacity  int           // Hint received at connect
	Elements  int           // Elements pushed into the observed drain
	Duration  time.Duration // Connect to completion
	Timestamp time.Time     // When the run completed
}

// Observer collects metrics, spans and completion events for the drains it
// observes. One Observer may watch several drains; their runs are reported
// under the observer's name.
//
// # Observability
//
// Metrics:
//   - observe.runs.total: Counter of connected runs
//   - observe.completed.total: Counter of completed runs
//   - observe.elements.total: Counter of elements pushed, across runs
//   - observe.elements.last: Gauge of elements pushed in the last completed run
//   - observe.duration.ms: Gauge of the last completed run's duration
//
// Traces:
//   - observe.run: Span from connect to completion of each run
//
// Events (via hooks):
//   - observe.completed: Fired after every completed run
//
// Signals (via capitan):
//   - observe.run-started, observe.run-completed
//
// A run abandoned by a panic leaves its span unfinished and fires no
// completion event.
type Observer struct {
	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[RunEvent]
	name    string
	mu      sync.RWMutex
}

// NewObserver creates an Observer with its own metrics registry, tracer and
// hooks.
func NewObserver(name string) *Observer {
	registry := metricz.New()
	registry.Counter(ObserveRunsTotal)
	registry.Counter(ObserveCompletedTotal)
	registry.Counter(ObserveElementsTotal)
	registry.Gauge(ObserveElementsLast)
	registry.Gauge(ObserveDurationMs)

	return &Observer{
		name:    name,
		metrics: registry,
		tracer:  tracez.New(),
		hooks:   hookz.New[RunEvent](),
	}
}

// Observe wraps drain so that every run through it is reported to o. The
// wrapped drain's context is Observed[C]; results are unchanged.
//
// Example:
//
//	obs := fusez.NewObserver("ingest")
//	defer obs.Close()
//	rows := fusez.Run(src, fusez.Observe(obs, fusez.ToSlice[Row]()))
//	fmt.Println(obs.Metrics().Counter(fusez.ObserveElementsTotal).Value())
func Observe[T, C, R any](o *Observer, drain Drain[T, C, R]) Drain[T, Observed[C], R] {
	return &observedDrain[T, C, R]{observer: o, drain: drain}
}

// Observed is the run context of an observed drain: the inner drain's
// context plus the bookkeeping of the run.
type Observed[C any] struct {
	Inner    C
	start    time.Time
	finish   func(elements int)
	elements int
	capacity int
}

// Elements returns how many elements were pushed so far in this run.
func (o Observed[C]) Elements() int {
	return o.elements
}

// Name returns the observer name.
func (o *Observer) Name() string {
	return o.name
}

// Metrics returns the metrics registry for this observer.
func (o *Observer) Metrics() *metricz.Registry {
	return o.metrics
}

// Tracer returns the tracer for this observer.
func (o *Observer) Tracer() *tracez.Tracer {
	return o.tracer
}

// WithClock sets a custom clock for testing.
func (o *Observer) WithClock(clock clockz.Clock) *Observer {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clock = clock
	return o
}

// OnComplete registers a handler called after every completed run.
// The handler is called asynchronously.
func (o *Observer) OnComplete(handler func(context.Context, RunEvent) error) error {
	_, err := o.hooks.Hook(ObserveEventCompleted, handler)
	return err
}

// Close gracefully shuts down observability components.
func (o *Observer) Close() error {
	if o.tracer != nil {
		o.tracer.Close()
	}
	o.hooks.Close()
	return nil
}

// getClock returns the clock to use.
func (o *Observer) getClock() clockz.Clock {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.clock == nil {
		return clockz.RealClock
	}
	return o.clock
}

type observedDrain[T, C, R any] struct {
	observer *Observer
	drain    Drain[T, C, R]
}

func (d *observedDrain[T, C, R]) OnConnect(info SourceInfo[T]) Observed[C] {
	o := d.observer
	o.metrics.Counter(ObserveRunsTotal).Inc()

	_, span := o.tracer.StartSpan(context.Background(), ObserveRunSpan)
	span.SetTag(ObserveTagName, o.name)
	span.SetTag(ObserveTagCapacity, strconv.Itoa(info.Capacity))

	capitan.Info(context.Background(), SignalRunStarted,
		FieldName.Field(o.name),
		FieldCapacity.Field(info.Capacity),
	)

	start := o.getClock().Now()
	return Observed[C]{
		Inner:    d.drain.OnConnect(info),
		start:    start,
		capacity: info.Capacity,
		finish: func(elements int) {
			span.SetTag(ObserveTagElements, strconv.Itoa(elements))
			span.Finish()
		},
	}
}

func (d *observedDrain[T, C, R]) OnNext(ctx *Observed[C], v T) {
	d.drain.OnNext(&ctx.Inner, v)
	ctx.elements++
	d.observer.metrics.Counter(ObserveElementsTotal).Inc()
}

func (d *observedDrain[T, C, R]) OnComplete(ctx Observed[C]) R {
	result := d.drain.OnComplete(ctx.Inner)

	o := d.observer
	clock := o.getClock()
	elapsed := clock.Since(ctx.start)

	o.metrics.Counter(ObserveCompletedTotal).Inc()
	o.metrics.Gauge(ObserveElementsLast).Set(float64(ctx.elements))
	o.metrics.Gauge(ObserveDurationMs).Set(float64(elapsed.Milliseconds()))
	ctx.finish(ctx.elements)

	capitan.Info(context.Background(), SignalRunCompleted,
		FieldName.Field(o.name),
		FieldCapacity.Field(ctx.capacity),
		FieldElements.Field(ctx.elements),
		FieldDuration.Field(elapsed.Seconds()),
	)

	_ = o.hooks.Emit(context.Background(), ObserveEventCompleted, RunEvent{ //nolint:errcheck
		Name:      o.name,
		Capacity:  ctx.capacity,
		Elements:  ctx.elements,
		Duration:  elapsed,
		Timestamp: clock.Now(),
	})

	return result
}
