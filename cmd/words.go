package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/zoobzio/fusez"
)

var (
	wordsFile string
	wordsTop  int

	wordsCmd = &cobra.Command{
		Use:   "words",
		Short: "Count word frequencies",
		Long: `Read text from stdin or --file and print the most frequent words.

Lines are split into lowercase words by a FlatMap stage, so no list of
words is ever built; each word goes straight into the frequency table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := openInput(cmd, wordsFile)
			if err != nil {
				return err
			}
			defer in.Close()

			lines := newLineScanner(in)
			obs := newObserver("words")

			counts := runWords(lines.source(), obs)
			if err := lines.err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, wc := range topWords(counts, wordsTop) {
				fmt.Fprintf(out, "%7d %s\n", wc.Second, wc.First)
			}
			printMetrics(out, obs)
			return nil
		},
	}
)

func init() {
	wordsCmd.Flags().StringVarP(&wordsFile, "file", "f", "", "read text from file instead of stdin")
	wordsCmd.Flags().IntVarP(&wordsTop, "top", "n", 10, "number of words to print (0 for all)")
}

func splitWords(line string) fusez.Source[string] {
	return fusez.FromSlice(strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}))
}

// runWords counts words across all lines, observed when obs is set.
func runWords(lines fusez.Source[string], obs *fusez.Observer) map[string]int {
	words := fusez.Via(lines, fusez.FlatMap(splitWords))
	histogram := fusez.AccumulateWith(
		func() map[string]int { return map[string]int{} },
		func(m *map[string]int, w string) { (*m)[w]++ },
	)

	if obs != nil {
		return fusez.Run(words, fusez.Observe(obs, histogram))
	}
	return fusez.Run(words, histogram)
}

// topWords orders counts by frequency, then alphabetically, keeping at most
// n entries when n is positive.
func topWords(counts map[string]int, n int) []fusez.Pair[string, int] {
	pairs := make([]fusez.Pair[string, int], 0, len(counts))
	for w, c := range counts {
		pairs = append(pairs, fusez.MakePair(w, c))
	}
	slices.SortFunc(pairs, func(a, b fusez.Pair[string, int]) int {
		if c := cmp.Compare(b.Second, a.Second); c != 0 {
			return c
		}
		return cmp.Compare(a.First, b.First)
	})
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
