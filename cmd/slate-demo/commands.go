package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slateterm/slate"
)

// Demo command flags
var (
	simpleMode bool
	logName    string
	logLevel   int
	restartLog bool
	syslogAddr string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&simpleMode, "simple", false, "Force plain sequential output (no cursor addressing)")
	rootCmd.PersistentFlags().StringVar(&logName, "log-name", "", "Log file name (default: derived from the binary name)")
	rootCmd.PersistentFlags().IntVar(&logLevel, "log-level", -1, "Log threshold 0-7 (syslog severities, default 4)")
	rootCmd.PersistentFlags().BoolVar(&restartLog, "restart-log", false, "Truncate the log file instead of appending")
	rootCmd.PersistentFlags().StringVar(&syslogAddr, "syslog", "", "UDP syslog address to tee log entries to (host:port)")

	rootCmd.AddCommand(showcaseCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(crashCmd)
	rootCmd.AddCommand(configCmd)
}

// newSession builds a session from the stored demo preferences overlaid with
// command-line flags.
func newSession() (*slate.Session, error) {
	prefs, err := LoadPreferences()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	opts := slate.DefaultOptions()
	opts.LogName = prefs.LogName
	opts.LogLevel = prefs.LogLevel
	opts.SyslogAddr = prefs.SyslogAddr
	opts.Simple = prefs.Simple

	// Flags win over stored preferences.
	if logName != "" {
		opts.LogName = logName
	}
	if logLevel >= 0 {
		opts.LogLevel = logLevel
	}
	if syslogAddr != "" {
		opts.SyslogAddr = syslogAddr
	}
	if restartLog {
		opts.RestartLog = true
	}
	if simpleMode {
		opts.Simple = true
	}

	return slate.New(opts)
}

// showcaseCmd runs the full rendering demonstration
var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Render the full console demonstration",
	Long: `Run the full rendering demonstration.

Sets a main title, streams scrolling console output at every severity,
drives two pinned progress bars to completion, and finishes with centered
banners. All output is mirrored to the session log file.`,
	Example: `  # Full showcase on the current terminal
  slate-demo showcase

  # Plain sequential output, suitable for piping
  slate-demo showcase --simple

  # Keep everything down to debug in the log
  slate-demo showcase --log-level 7`,
	RunE: runShowcase,
}

func runShowcase(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetMainTitle("slate showcase")
	s.Console("Console lines scroll beneath the reserved rows.")
	s.Notice("Notices are stamped and tinted.")
	s.Warn("Warnings stand out without stopping the flow.")
	s.Debug("Debug lines only reach the log at threshold 7.")

	for i := 0; i <= 40; i++ {
		s.LoadBar("download", i, 40)
		if i%2 == 0 {
			s.LoadBar("verify", i/2, 20)
		}
		if i%10 == 0 {
			s.Console(fmt.Sprintf("chunk %d of 4 done", i/10))
		}
		time.Sleep(40 * time.Millisecond)
	}
	s.LoadBar("verify", 20, 20)

	s.PrintCenter(s.Bold("All transfers complete."))
	s.WarnCenter("Centered warnings wrap the text in markers.")
	s.Console("Log written to " + s.LogPath())

	return nil
}

// promptsCmd walks through the interactive prompt helpers
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Walk through the interactive prompts",
	Long: `Exercise each interactive prompt in turn.

Asks for free text, a yes/no confirmation, a numbered list selection, and
a masked secret, then echoes the collected answers back to the console.`,
	Example: `  slate-demo prompts

  # Scripted run over a pipe
  printf 'muurk\ny\n2\nhunter2\n' | slate-demo prompts --simple`,
	RunE: runPrompts,
}

func runPrompts(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetMainTitle("slate prompts")

	name, err := s.Input("What should we call you?")
	if err != nil {
		return err
	}

	ok, err := s.AskYN("Show the list prompt as well?")
	if err != nil {
		return err
	}

	flavor := "none"
	if ok {
		flavor, err = s.AskList("Pick a flavor", []string{"vanilla", "chocolate", "pistachio"})
		if err != nil {
			return err
		}
	}

	secret, err := s.Secret("Token (not echoed)")
	if err != nil {
		return err
	}

	s.Console(fmt.Sprintf("Hello %s, flavor=%s, token length=%d", name, flavor, len(secret)))
	return nil
}

// crashCmd demonstrates failure guarding
var crashCmd = &cobra.Command{
	Use:   "crash",
	Short: "Demonstrate failure guarding",
	Long: `Run deliberately failing work inside the failure guard.

Each failure is reduced to a single console line naming its kind, message,
and origin frame, with the full trace flattened into one log entry. The
demo then carries on, showing that guarded failures do not tear the
program down.`,
	Example: `  slate-demo crash

  # Inspect the flattened traces afterwards
  slate-demo crash --log-level 7 && cat slate-demo.log`,
	RunE: runCrash,
}

func runCrash(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetMainTitle("slate failure guard")
	s.Console("Running work that returns an error...")

	fetch := slate.Guard(s, func() (int, error) {
		return 0, errors.New("upstream returned 503")
	})
	if _, err := fetch(); err != nil {
		s.Console("fetch failed, continuing")
	}

	s.Console("Running work that panics...")
	step := s.Protect(func() error {
		panic("index out of range in chunk table")
	})
	if err := step(); err != nil {
		s.Console("step failed, continuing")
	}

	s.Console("Both failures were reported once each; see " + s.LogPath())
	return nil
}

// configCmd writes the stored demo preferences
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write demo preferences from the current flags",
	Long: `Persist the current flag values as stored demo preferences.

Later runs pick these up as defaults; flags still override per invocation.`,
	Example: `  # Make plain output and a verbose log the default
  slate-demo config --simple --log-level 7`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	prefs, err := LoadPreferences()
	if err != nil {
		return err
	}

	if logName != "" {
		prefs.LogName = logName
	}
	if logLevel >= 0 {
		prefs.LogLevel = logLevel
	}
	if syslogAddr != "" {
		prefs.SyslogAddr = syslogAddr
	}
	if simpleMode {
		prefs.Simple = true
	}

	if err := prefs.Save(); err != nil {
		return err
	}

	path, err := PrefsPath()
	if err != nil {
		return err
	}
	fmt.Printf("Preferences written to %s\n", path)
	return nil
}
