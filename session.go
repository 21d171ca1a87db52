package slate

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/slateterm/slate/internal/logging"
	"github.com/slateterm/slate/internal/term"
)

// scrollbackCap bounds the in-memory line history used to repaint the
// scrolling region.
const scrollbackCap = 500

// Session is one process-wide console context: the pinned title row, one
// reserved row per live progress bar, the scrolling region beneath them, and
// the log file backing it all.
//
// A Session is not safe for concurrent use. All rendering, prompting, and
// logging happens synchronously on the caller's goroutine; hosts with
// concurrent producers must serialize access themselves.
type Session struct {
	opts Options
	scr  *term.Screen
	log  *logging.Logger
	in   *bufio.Reader

	title  string
	lines  []string
	scroll int
	bars   map[string]*barState
	order  []string
}

// New validates opts, opens the log file, and returns a ready Session.
// Configuration problems (bad log name, out-of-range level) fail here, never
// later.
func New(opts Options) (*Session, error) {
	if opts.LogLevel < 0 || opts.LogLevel > 7 {
		return nil, fmt.Errorf("log level %d out of range 0-7", opts.LogLevel)
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = int(logging.DefaultThreshold)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	var sopts []term.Option
	if opts.Simple {
		sopts = append(sopts, term.WithPlain())
	}
	if opts.Width > 0 && opts.Height > 0 {
		sopts = append(sopts, term.WithSize(opts.Width, opts.Height))
	}
	scr := term.NewScreen(opts.Output, sopts...)

	log, err := logging.New(logging.Config{
		Name:       opts.LogName,
		Restart:    opts.RestartLog,
		Threshold:  logging.Level(opts.LogLevel),
		SyslogAddr: opts.SyslogAddr,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		opts: opts,
		scr:  scr,
		log:  log,
		in:   bufio.NewReader(opts.Input),
		bars: make(map[string]*barState),
	}, nil
}

// Close flushes and releases the log file and restores the cursor. Call it on
// every exit path.
func (s *Session) Close() error {
	s.scr.ShowCursor()
	return s.log.Close()
}

// LogPath returns the path of the session's log file.
func (s *Session) LogPath() string { return s.log.Path() }

// Clear erases the terminal and resets all virtual console state: scroll
// cursor, title, and progress bar rows. The caller re-sets the title and any
// bars it still wants afterward.
func (s *Session) Clear() {
	s.scr.Clear()
	s.title = ""
	s.scroll = 0
	s.lines = nil
	s.bars = make(map[string]*barState)
	s.order = nil
}

// SetMainTitle writes or overwrites the reserved top row with text centered
// for the current width. The scroll cursor is unaffected; the first call
// reserves row 0 and repaints the region beneath it.
func (s *Session) SetMainTitle(text string) {
	s.log.InfoMsg(text)
	hadTitle := s.title != ""
	s.title = text
	w, _ := s.scr.Size()
	if !s.scr.Rich() {
		if text != "" {
			s.scr.WriteAt(0, 0, centerPad(ansi.Truncate(text, w, ""), w))
		}
		return
	}
	if text == "" || !hadTitle {
		// Row 0 gained or lost its reservation; everything shifts.
		s.repaintAll()
		return
	}
	s.scr.ClearRow(0)
	s.scr.WriteAt(0, 0, s.titleLine(w))
	s.parkCursor()
}

func (s *Session) titleRows() int {
	if s.title != "" {
		return 1
	}
	return 0
}

func (s *Session) reservedRows() int {
	return s.titleRows() + len(s.order)
}

func (s *Session) titleLine(w int) string {
	line := centerPad(ansi.Truncate(s.title, w, ""), w)
	return TitleStyle.Render(line)
}

// advanceScroll writes line at the scroll cursor row and advances the cursor.
// When the region is full, the visible tail of the scrollback is repainted and
// the cursor pins to the last row. Reserved rows are repainted after every
// write so the title and bars stay fixed no matter how far the region has
// scrolled.
func (s *Session) advanceScroll(line string) {
	w, h := s.scr.Size()
	line = fitLine(line, w)
	s.lines = append(s.lines, line)
	if len(s.lines) > scrollbackCap {
		s.lines = s.lines[len(s.lines)-scrollbackCap:]
	}
	if !s.scr.Rich() {
		s.scr.WriteAt(0, 0, line)
		return
	}

	top := s.reservedRows()
	visible := h - top
	if visible < 1 {
		// Terminal shorter than the reserved rows. Best effort: reuse the
		// last row rather than fail the write.
		s.scr.ClearRow(h - 1)
		s.scr.WriteAt(h-1, 0, line)
		s.parkCursor()
		return
	}

	if s.scroll >= visible {
		s.redrawScroll(top, visible)
	} else {
		s.scr.ClearRow(top + s.scroll)
		s.scr.WriteAt(top+s.scroll, 0, line)
		s.scroll++
	}
	s.repaintReserved(w)
	s.parkCursor()
}

// redrawScroll repaints the visible tail of the scrollback into the region
// rows and pins the cursor after the painted content.
func (s *Session) redrawScroll(top, visible int) {
	tail := s.lines
	if len(tail) > visible {
		tail = tail[len(tail)-visible:]
	}
	for i := 0; i < visible; i++ {
		row := top + i
		s.scr.ClearRow(row)
		if i < len(tail) {
			s.scr.WriteAt(row, 0, tail[i])
		}
	}
	s.scroll = len(tail)
}

func (s *Session) repaintReserved(w int) {
	if s.title != "" {
		s.scr.ClearRow(0)
		s.scr.WriteAt(0, 0, s.titleLine(w))
	}
	for i, name := range s.order {
		row := s.titleRows() + i
		s.scr.ClearRow(row)
		s.scr.WriteAt(row, 0, s.barLine(s.bars[name], w))
	}
}

// repaintAll rebuilds the whole display from state: reserved rows plus the
// scrollback tail. Used when the reserved-row count changes.
func (s *Session) repaintAll() {
	if !s.scr.Rich() {
		return
	}
	w, h := s.scr.Size()
	s.scr.Clear()
	top := s.reservedRows()
	if visible := h - top; visible >= 1 {
		s.redrawScroll(top, visible)
	}
	s.repaintReserved(w)
	s.parkCursor()
}

// parkCursor leaves the real cursor at a sane position (bottom left) so a
// failed or interrupted render never strands it mid-screen.
func (s *Session) parkCursor() {
	_, h := s.scr.Size()
	s.scr.MoveTo(h-1, 0)
}

// centerPad pads text with spaces to the given width. The left pad equals the
// right pad, or is exactly one shorter when the slack is odd. Text wider than
// width is returned unchanged.
func centerPad(text string, width int) string {
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

// fitLine truncates overlong lines with a visible ellipsis, ANSI-aware so
// styled lines are never cut mid-sequence.
func fitLine(line string, w int) string {
	if lipgloss.Width(line) <= w {
		return line
	}
	return ansi.Truncate(line, w-3, "...")
}
