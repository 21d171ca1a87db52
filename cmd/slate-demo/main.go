// Slate-demo exercises the slate terminal toolkit end to end.
//
// It renders the virtual console (title row, pinned progress bars, scrolling
// output), walks through the interactive prompts, and demonstrates failure
// guarding, so the toolkit can be eyeballed on a real terminal without
// writing a host program first.
//
// Usage:
//
//	slate-demo [command] [flags]
//
// Running without arguments runs the full showcase.
// See 'slate-demo --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slateterm/slate/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slate-demo",
	Short: "Slate terminal toolkit demonstration",
	Long: `A demonstration harness for the slate terminal toolkit.

Renders the virtual console, pinned progress bars, interactive prompts,
and failure guarding against a live terminal.

If no command is specified, the full showcase runs.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowcase(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slate-demo %s\n", version.Full())
	},
}
