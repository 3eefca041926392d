package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/fusez"
)

var (
	statsFile string

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Summarize a column of numbers in one pass",
		Long: `Read one number per line from stdin or --file and print count, sum,
mean, min, max and whether every value is positive.

Blank lines are skipped. Lines that are not numbers are counted and
reported, not fatal. All statistics come from a single fused traversal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := openInput(cmd, statsFile)
			if err != nil {
				return err
			}
			defer in.Close()

			lines := newLineScanner(in)
			obs := newObserver("stats")

			result := runStats(lines.source(), obs)
			if err := lines.err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, result)
			printMetrics(out, obs)
			return nil
		},
	}
)

func init() {
	statsCmd.Flags().StringVarP(&statsFile, "file", "f", "", "read numbers from file instead of stdin")
}

// reading is one parsed input line.
type reading struct {
	value float64
	valid bool
}

func parseReading(line string) reading {
	v, err := strconv.ParseFloat(line, 64)
	return reading{value: v, valid: err == nil}
}

type bounds struct {
	min, max float64
	count    int
}

func widen(b *bounds, v float64) {
	if b.count == 0 || v < b.min {
		b.min = v
	}
	if b.count == 0 || v > b.max {
		b.max = v
	}
	b.count++
}

// summary is the result of the stats pipeline.
type summary struct {
	Count       int
	Sum         float64
	Min         float64
	Max         float64
	AllPositive bool
	Invalid     int
}

// Mean returns the arithmetic mean, or NaN without values.
func (s summary) Mean() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

func (s summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "count:        %d\n", s.Count)
	fmt.Fprintf(&b, "sum:          %g\n", s.Sum)
	if s.Count > 0 {
		fmt.Fprintf(&b, "mean:         %g\n", s.Mean())
		fmt.Fprintf(&b, "min:          %g\n", s.Min)
		fmt.Fprintf(&b, "max:          %g\n", s.Max)
	}
	fmt.Fprintf(&b, "all positive: %t\n", s.AllPositive)
	if s.Invalid > 0 {
		fmt.Fprintf(&b, "invalid:      %d\n", s.Invalid)
	}
	return b.String()
}

// statsContext is the run context of statsDrain: gate contexts and the
// three value drains on the left, the invalid counter on the right.
type statsContext = fusez.Pair[fusez.Pair[fusez.Pair[fusez.Nothing, fusez.Nothing], fusez.Triple[float64, bounds, fusez.Tribool]], int]

// statsDrain builds the drain behind the stats command. Valid readings feed
// sum, bounds and positivity; invalid ones are only counted.
func statsDrain() fusez.Drain[reading, statsContext, summary] {
	values := fusez.Into(
		fusez.Then(
			fusez.Filter(func(r reading) bool { return r.valid }),
			fusez.Transform(func(r reading) float64 { return r.value }),
		),
		fusez.Mux3(
			fusez.Accumulate(0.0, func(acc, v float64) float64 { return acc + v }),
			fusez.AccumulateInto(bounds{}, widen),
			fusez.AllOf(func(v float64) bool { return v > 0 }),
		),
	)

	return fusez.ResultTransform(
		fusez.Mux2(values, fusez.CountIf(func(r reading) bool { return !r.valid })),
		func(r fusez.Pair[fusez.Triple[float64, bounds, bool], int]) summary {
			return summary{
				Count:       r.First.Second.count,
				Sum:         r.First.First,
				Min:         r.First.Second.min,
				Max:         r.First.Second.max,
				AllPositive: r.First.Third,
				Invalid:     r.Second,
			}
		},
	)
}

// runStats runs lines through the stats pipeline, observed when obs is set.
func runStats(lines fusez.Source[string], obs *fusez.Observer) summary {
	readings := fusez.Via(
		fusez.Via(lines, fusez.Transform(strings.TrimSpace)),
		fusez.Then(fusez.FilterZero[string](), fusez.Transform(parseReading)),
	)

	if obs != nil {
		return fusez.Run(readings, fusez.Observe(obs, statsDrain()))
	}
	return fusez.Run(readings, statsDrain())
}
