package fusez

import (
	"context"
	"errors"

	"github.com/zoobzio/capitan"
)

// TryRun is Run for callers that prefer an error to a panic. If a
// caller-supplied callable panics, the run is abandoned and TryRun returns
// the zero result with a *PanicError. Push protocol violations come back as
// the *ProtocolError itself.
//
// Nothing is retried and no partial result is recovered.
//
// Example:
//
//	parsed, err := fusez.TryRun(fusez.FromSlice(lines), fusez.ToSliceFunc(mustParse))
//	var pe *fusez.PanicError
//	if errors.As(err, &pe) {
//	    log.Printf("bad input: %v", pe)
//	}
func TryRun[T, C, R any](src Source[T], drain Drain[T, C, R]) (result R, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		var zero R
		result = zero

		if perr, ok := v.(error); ok {
			var protocol *ProtocolError
			if errors.As(perr, &protocol) {
				err = protocol
				return
			}
		}

		pe := newPanicError(v)
		capitan.Error(context.Background(), SignalRunPanicked,
			FieldError.Field(pe.sanitized),
		)
		err = pe
	}()
	return Run(src, drain), nil
}
