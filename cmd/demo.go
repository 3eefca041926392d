package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/spf13/cobra"
	"github.com/zoobzio/fusez"
)

var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Run a pipeline demo",
	Long: `Run one of the built-in pipeline demos, or all of them when no name is
given. Use "fusez list" to see what is available.`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, d := range getAllDemos() {
			if strings.HasPrefix(d.Name(), toComplete) {
				completions = append(completions, d.Name())
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, d := range getAllDemos() {
				if err := runDemo(out, d); err != nil {
					return err
				}
			}
			return nil
		}

		d, ok := getDemoByName(args[0])
		if !ok {
			return fmt.Errorf("unknown demo %q", args[0])
		}
		return runDemo(out, d)
	},
}

func runDemo(w io.Writer, d Demo) error {
	fmt.Fprintf(w, "== %s: %s\n", d.Name(), d.Description())
	if err := d.Run(w); err != nil {
		return fmt.Errorf("demo %s: %w", d.Name(), err)
	}
	fmt.Fprintln(w)
	return nil
}

type basicsDemo struct{}

func (*basicsDemo) Name() string { return "basics" }

func (*basicsDemo) Description() string {
	return "filter, transform and collect in one traversal"
}

func (*basicsDemo) Run(w io.Writer) error {
	numbers := fusez.FromSlice([]int{1, 2, 3, 4, 5, 6})
	squaresOfEvens := fusez.Via(
		fusez.Via(numbers, fusez.Filter(func(n int) bool { return n%2 == 0 })),
		fusez.Transform(func(n int) int { return n * n }),
	)

	fmt.Fprintf(w, "squares of evens: %v\n", fusez.Run(squaresOfEvens, fusez.ToSlice[int]()))

	stats := fusez.Run(numbers, fusez.Mux3(
		fusez.Accumulate(0, func(acc, n int) int { return acc + n }),
		fusez.CountIf(func(n int) bool { return n > 3 }),
		fusez.AllOf(func(n int) bool { return n > 0 }),
	))
	fmt.Fprintf(w, "sum, count > 3, all positive: %v\n", stats)
	return nil
}

type flattenDemo struct{}

func (*flattenDemo) Name() string { return "flatten" }

func (*flattenDemo) Description() string {
	return "expand elements with FlatMap over a gods list"
}

func (*flattenDemo) Run(w io.Writer) error {
	list := arraylist.New(1, 2, 3)
	repeat := fusez.FlatMap(func(n int) fusez.Source[int] {
		return fusez.FromEnumerator(func(yield func(int)) {
			for i := 0; i < n; i++ {
				yield(n)
			}
		})
	})

	src := fusez.Via(fusez.FromContainer[int](list), repeat)
	fmt.Fprintf(w, "hint after FlatMap: %d\n", src.Info().Capacity)
	fmt.Fprintf(w, "repeated: %v\n", fusez.Run(src, fusez.ToSlice[int]()))
	return nil
}

type tagged struct {
	Name string
	Tags []string
}

func (t tagged) Clone() tagged {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}

type sharingDemo struct{}

func (*sharingDemo) Name() string { return "sharing" }

func (*sharingDemo) Description() string {
	return "mux branches share referenced data unless Clone is used"
}

func (*sharingDemo) Run(w io.Writer) error {
	upper := fusez.Tap(func(t tagged) {
		for i := range t.Tags {
			t.Tags[i] = strings.ToUpper(t.Tags[i])
		}
	})
	tags := fusez.ToSliceFunc(func(t tagged) string { return strings.Join(t.Tags, ",") })

	shared := fusez.Run(fusez.FromSlice([]tagged{{Name: "a", Tags: []string{"new"}}}),
		fusez.Mux2(fusez.Into(upper, tags), tags))
	fmt.Fprintf(w, "without Clone: first=%v second=%v\n", shared.First, shared.Second)

	isolated := fusez.Run(fusez.FromSlice([]tagged{{Name: "a", Tags: []string{"new"}}}),
		fusez.Mux2(fusez.Into(fusez.Then(fusez.Clone[tagged](), upper), tags), tags))
	fmt.Fprintf(w, "with Clone:    first=%v second=%v\n", isolated.First, isolated.Second)
	return nil
}

type node struct {
	value       string
	left, right *node
}

func (n *node) walk(yield func(string)) {
	if n == nil {
		return
	}
	n.left.walk(yield)
	yield(n.value)
	n.right.walk(yield)
}

type enumeratorDemo struct{}

func (*enumeratorDemo) Name() string { return "enumerator" }

func (*enumeratorDemo) Description() string {
	return "drive a pipeline from a method expression with Bind"
}

func (*enumeratorDemo) Run(w io.Writer) error {
	root := &node{value: "m", left: &node{value: "c"}, right: &node{value: "x", left: &node{value: "p"}}}
	src := fusez.FromEnumerator(fusez.Bind((*node).walk, root))

	fmt.Fprintf(w, "in order: %v\n", fusez.Run(src, fusez.ToSliceFunc(strings.ToUpper)))
	return nil
}

type recoverDemo struct{}

func (*recoverDemo) Name() string { return "recover" }

func (*recoverDemo) Description() string {
	return "turn a panicking callable into an error with TryRun"
}

func (*recoverDemo) Run(w io.Writer) error {
	divide := fusez.ToSliceFunc(func(n int) int { return 100 / n })

	_, err := fusez.TryRun(fusez.FromSlice([]int{5, 0, 2}), divide)
	var pe *fusez.PanicError
	if !errors.As(err, &pe) {
		return fmt.Errorf("expected a panic error, got %v", err)
	}
	fmt.Fprintf(w, "recovered: %v\n", pe)
	return nil
}
