package fusez

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors describing push protocol violations. A Source that breaks
// the connect-then-push contract panics with a *ProtocolError wrapping one
// of these.
var (
	ErrNotConnected     = errors.New("push before connect")
	ErrAlreadyConnected = errors.New("connect called twice in one run")
)

// ProtocolError reports a Source that did not follow the push protocol.
// Protocol errors are programming errors and are raised as panics, never
// returned from a run.
type ProtocolError struct {
	Err error
	Op  string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("fusez: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// PanicError is returned by TryRun when a caller-supplied callable panicked
// during the run. The run is abandoned; no partial result is available.
type PanicError struct {
	// Value is the value passed to panic. It is kept as-is so callers can
	// inspect it; Error only ever shows the sanitized form.
	Value     any
	sanitized string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "panic during run: " + e.sanitized
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

var (
	addressPattern  = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	filePathPattern = regexp.MustCompile(`(/[^\s:]+)+\.go(:\d+)?`)
)

const maxPanicMessage = 200

// sanitizePanicMessage renders a recovered value without leaking memory
// addresses or source paths into error strings.
func sanitizePanicMessage(v any) string {
	if v == nil {
		return "unknown panic (nil value)"
	}

	var msg string
	switch val := v.(type) {
	case error:
		msg = val.Error()
	case string:
		msg = val
	default:
		msg = fmt.Sprintf("%v", val)
	}

	if filePathPattern.MatchString(msg) {
		return "panic occurred (file path sanitized)"
	}
	msg = addressPattern.ReplaceAllString(msg, "0x***")
	if strings.Contains(msg, "goroutine ") {
		return "panic occurred (stack trace sanitized)"
	}
	if len(msg) > maxPanicMessage {
		msg = msg[:maxPanicMessage] + "..."
	}
	return "panic occurred: " + msg
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, sanitized: sanitizePanicMessage(v)}
}
