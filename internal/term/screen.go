package term

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// EnvSimple forces plain sequential output when set to any non-empty value,
// regardless of TTY detection. Useful for piping rich-mode programs through
// tools that choke on cursor addressing.
const EnvSimple = "SLATE_SIMPLE"

// Size floors and fallbacks. Anything narrower than MinWidth is treated as
// MinWidth so centering and bar math never produce negative padding.
const (
	MinWidth      = 20
	MinHeight     = 5
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Screen is a thin wrapper over one output stream that supports
// cursor-addressed writes when the stream is a capable terminal and degrades
// to sequential line writes otherwise.
//
// Rich mode requires ANSI CSI cursor addressing (CUP), erase-in-line,
// erase-in-display, and SGR styling. Plain mode requires nothing.
type Screen struct {
	w    io.Writer
	out  *termenv.Output
	fd   uintptr
	file bool
	rich bool

	// fixed size override; 0 means query the terminal
	fw, fh int
}

// Option configures a Screen.
type Option func(*Screen)

// WithSize pins the reported terminal size instead of querying the output
// device. Intended for tests and for writers that are not terminals.
func WithSize(w, h int) Option {
	return func(s *Screen) {
		s.fw, s.fh = w, h
	}
}

// WithPlain forces sequential output even on a capable terminal.
func WithPlain() Option {
	return func(s *Screen) { s.rich = false }
}

// WithRich forces cursor-addressed output without TTY detection. Intended for
// tests that assert on emitted control sequences.
func WithRich() Option {
	return func(s *Screen) { s.rich = true }
}

// NewScreen wraps w. Rich mode is enabled when w is a terminal and EnvSimple
// is unset; options may override the detection either way.
func NewScreen(w io.Writer, opts ...Option) *Screen {
	s := &Screen{w: w, out: termenv.NewOutput(w)}
	if f, ok := w.(*os.File); ok {
		s.fd = f.Fd()
		s.file = true
		s.rich = isatty.IsTerminal(s.fd) || isatty.IsCygwinTerminal(s.fd)
	}
	if os.Getenv(EnvSimple) != "" {
		s.rich = false
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rich reports whether cursor-addressed writes are in effect.
func (s *Screen) Rich() bool { return s.rich }

// Size returns the current terminal dimensions. The device is re-queried on
// every call so layout math tracks live resizes; results are clamped to
// MinWidth x MinHeight and fall back to 80x24 when the size is unknowable.
func (s *Screen) Size() (int, int) {
	if s.fw > 0 && s.fh > 0 {
		return clampSize(s.fw, s.fh)
	}
	if s.file {
		if w, h, err := xterm.GetSize(int(s.fd)); err == nil {
			return clampSize(w, h)
		}
	}
	return DefaultWidth, DefaultHeight
}

func clampSize(w, h int) (int, int) {
	if w < MinWidth {
		w = MinWidth
	}
	if h < MinHeight {
		h = MinHeight
	}
	return w, h
}

// WriteAt paints text at the given 0-based row and column and restores the
// previous cursor position before returning. Out-of-range coordinates are
// dropped; text wider than the remaining row is clipped so a positioned write
// can never wrap into the row beneath. In plain mode the coordinates are
// ignored and text is appended as a line.
func (s *Screen) WriteAt(row, col int, text string) {
	if !s.rich {
		fmt.Fprintln(s.w, text)
		return
	}
	w, h := s.Size()
	if row < 0 || row >= h || col < 0 || col >= w {
		return
	}
	text = ansi.Truncate(text, w-col, "")
	s.out.SaveCursorPosition()
	s.out.MoveCursor(row+1, col+1)
	fmt.Fprint(s.w, text)
	s.out.RestoreCursorPosition()
}

// Prompt moves the cursor to the given cell, erases the rest of the row,
// writes text, and leaves the cursor parked after it so operator input echoes
// in place. In plain mode the text is written without a trailing newline.
func (s *Screen) Prompt(row, col int, text string) {
	if !s.rich {
		fmt.Fprint(s.w, text)
		return
	}
	_, h := s.Size()
	if row < 0 {
		row = 0
	}
	if row >= h {
		row = h - 1
	}
	s.out.MoveCursor(row+1, col+1)
	s.out.ClearLineRight()
	fmt.Fprint(s.w, text)
}

// ClearRow erases the given 0-based row. No-op in plain mode.
func (s *Screen) ClearRow(row int) {
	if !s.rich {
		return
	}
	_, h := s.Size()
	if row < 0 || row >= h {
		return
	}
	s.out.SaveCursorPosition()
	s.out.MoveCursor(row+1, 1)
	s.out.ClearLine()
	s.out.RestoreCursorPosition()
}

// Clear erases the whole screen and homes the cursor. No-op in plain mode.
func (s *Screen) Clear() {
	if !s.rich {
		return
	}
	s.out.ClearScreen()
}

// MoveTo parks the cursor at the given 0-based cell. No-op in plain mode.
func (s *Screen) MoveTo(row, col int) {
	if !s.rich {
		return
	}
	s.out.MoveCursor(row+1, col+1)
}

// HideCursor hides the terminal cursor. No-op in plain mode.
func (s *Screen) HideCursor() {
	if s.rich {
		s.out.HideCursor()
	}
}

// ShowCursor restores the terminal cursor. No-op in plain mode.
func (s *Screen) ShowCursor() {
	if s.rich {
		s.out.ShowCursor()
	}
}
