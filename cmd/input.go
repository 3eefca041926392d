package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/fusez"
)

// openInput returns the file named by path, or the command's stdin when
// path is empty.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// lineScanner enumerates the lines of a reader. Scan errors are kept for
// the caller to check once the run has finished.
type lineScanner struct {
	scanner *bufio.Scanner
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{scanner: bufio.NewScanner(r)}
}

func (l *lineScanner) each(yield func(string)) {
	for l.scanner.Scan() {
		yield(l.scanner.Text())
	}
}

func (l *lineScanner) source() fusez.Source[string] {
	return fusez.FromEnumerator(l.each)
}

func (l *lineScanner) err() error {
	return l.scanner.Err()
}

// newObserver returns an observer when --observe is set, nil otherwise.
func newObserver(name string) *fusez.Observer {
	if !observe {
		return nil
	}
	return fusez.NewObserver(name)
}

// printMetrics writes the observer's counters and closes it.
func printMetrics(w io.Writer, obs *fusez.Observer) {
	if obs == nil {
		return
	}
	defer obs.Close()

	m := obs.Metrics()
	fmt.Fprintf(w, "\n[%s] runs=%.0f elements=%.0f duration=%.0fms\n",
		obs.Name(),
		m.Counter(fusez.ObserveCompletedTotal).Value(),
		m.Gauge(fusez.ObserveElementsLast).Value(),
		m.Gauge(fusez.ObserveDurationMs).Value(),
	)
}
