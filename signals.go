package fusez

import "github.com/zoobzio/capitan"

// Signal definitions for run lifecycle events.
// Signals follow the pattern: <component>.<event>.
var (
	SignalRunStarted = capitan.NewSignal(
		"observe.run-started",
		"An observed drain was connected and a run began",
	)
	SignalRunCompleted = capitan.NewSignal(
		"observe.run-completed",
		"An observed drain completed a run and produced its result",
	)
	SignalRunPanicked = capitan.NewSignal(
		"run.panicked",
		"TryRun recovered a panic raised during a run; the run was abandoned",
	)
)

// Field keys using capitan primitive types.
var (
	FieldName     = capitan.NewStringKey("name")      // Observer name
	FieldError    = capitan.NewStringKey("error")     // Sanitized error message
	FieldCapacity = capitan.NewIntKey("capacity")     // Capacity hint at connect
	FieldElements = capitan.NewIntKey("elements")     // Elements pushed during the run
	FieldDuration = capitan.NewFloat64Key("duration") // Run duration in seconds
)
