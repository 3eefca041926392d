package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	observe bool
	rootCmd = &cobra.Command{
		Use:   "fusez",
		Short: "Fused push pipeline demos",
		Long: `fusez is a CLI tool for exploring fused, push-based pipelines.

Every command runs its input through a single traversal: one source, a chain
of gates and one drain, with no intermediate collections.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&observe, "observe", false, "print run metrics after each pipeline")

	// Add commands
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available demos",
	Long:  "Display a list of all available pipeline demos with descriptions.",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demos:")
		fmt.Fprintln(out)
		for _, d := range getAllDemos() {
			fmt.Fprintf(out, "  %-12s %s\n", d.Name(), d.Description())
		}
	},
}
