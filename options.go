package slate

import "io"

// Options configures a Session. The zero value is usable: every field has a
// working default, including log level 4.
type Options struct {
	// LogName is the log file base name, alphanumeric only. Empty derives a
	// name from the executable.
	LogName string

	// RestartLog truncates an existing log file at startup instead of
	// appending.
	RestartLog bool

	// LogLevel is the syslog severity threshold, 0-7. Messages with a
	// numeric severity above it are dropped. Zero (the zero value) selects
	// the default threshold 4 (warning/notice tier); sessions never emit
	// below error severity, so levels 1 and 2 silence the log entirely.
	LogLevel int

	// SyslogAddr optionally mirrors log entries to a UDP syslog collector.
	SyslogAddr string

	// Simple forces plain sequential output with no cursor addressing or
	// styling, equivalent to setting SLATE_SIMPLE in the environment.
	Simple bool

	// Repropagate makes guarded work return the normalized *Failure instead
	// of swallowing it behind ErrReported.
	Repropagate bool

	// Output receives all rendering. Defaults to os.Stdout.
	Output io.Writer

	// Input supplies operator responses for prompts. Defaults to os.Stdin.
	Input io.Reader

	// Width and Height, when both positive, pin the terminal size instead of
	// querying the output device. Intended for tests and dumb pipes.
	Width, Height int
}

// DefaultOptions returns the baseline configuration: append to a log named
// after the executable, threshold 4, autodetected terminal.
func DefaultOptions() Options {
	return Options{LogLevel: 4}
}
