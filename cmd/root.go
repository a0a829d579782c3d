// Package cmd is the Cobra command tree that drives and benchmarks the
// loop dispatchers in internal/workshare: it lowers a described loop
// into Init/Next calls instead of implementing any scheduling itself.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gompsched",
	Short: "gompsched drives and benchmarks an OpenMP-style loop scheduler",
	Long: `gompsched exercises the static, dynamic, guided, and adaptive loop
dispatchers in internal/workshare against a synthetic iteration range,
reporting per-worker load distribution and, for adaptive runs, steal
behavior.`,
}

// Execute runs the root command; it is the sole entry point cmd/ exposes to main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
