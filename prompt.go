package slate

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	xterm "golang.org/x/term"
)

// ErrNoOptions is returned by AskList when called with an empty option set.
var ErrNoOptions = errors.New("ask list: no options")

// Input renders prompt and blocks for one line of operator input, which is
// returned verbatim, the empty string included. Neither the prompt nor the
// response is logged; callers log explicitly if they need a record.
func (s *Session) Input(prompt string) (string, error) {
	s.scr.Prompt(s.promptRow(), 0, prompt+" ")
	line, err := s.readLine()
	if err != nil {
		s.parkCursor()
		return "", err
	}
	s.commitPrompt(prompt + " " + line)
	return line, nil
}

// Secret renders prompt and reads one line without echo when input is a
// terminal, falling back to a plain read otherwise. The response is never
// logged or kept in the scrollback.
func (s *Session) Secret(prompt string) (string, error) {
	s.scr.Prompt(s.promptRow(), 0, prompt+" ")
	if f, ok := s.opts.Input.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		b, err := xterm.ReadPassword(int(f.Fd()))
		if err != nil {
			s.parkCursor()
			return "", err
		}
		s.commitPrompt(prompt + " ********")
		return string(b), nil
	}
	line, err := s.readLine()
	if err != nil {
		s.parkCursor()
		return "", err
	}
	s.commitPrompt(prompt + " ********")
	return line, nil
}

// AskYN renders prompt with a [y/n] hint and loops until the operator types
// one of y, yes, n, no in any case. Unrecognized input, empty lines included,
// re-prompts in place without consuming a scroll row. Only a read failure
// (EOF, closed input) returns an error.
func (s *Session) AskYN(prompt string) (bool, error) {
	hint := prompt + " " + s.styled(HintStyle, "[y/n]") + ": "
	for {
		s.scr.Prompt(s.promptRow(), 0, hint)
		line, err := s.readLine()
		if err != nil {
			s.parkCursor()
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			s.commitPrompt(prompt + " yes")
			return true, nil
		case "n", "no":
			s.commitPrompt(prompt + " no")
			return false, nil
		}
	}
}

// AskList renders prompt followed by options numbered from 1, then loops
// until the operator supplies a valid number or an exact option text. It
// returns the selected option's text. Input matching neither an in-range
// number nor an option re-prompts in place; an option whose text is itself
// a number can still be chosen by name when its value is out of range.
func (s *Session) AskList(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	s.advanceScroll(prompt)
	for i, opt := range options {
		s.advanceScroll(fmt.Sprintf("  %d) %s", i+1, opt))
	}

	sel := "Select " + s.styled(HintStyle, fmt.Sprintf("[1-%d]", len(options))) + ": "
	for {
		s.scr.Prompt(s.promptRow(), 0, sel)
		line, err := s.readLine()
		if err != nil {
			s.parkCursor()
			return "", err
		}
		choice := strings.TrimSpace(line)
		// An in-range number selects by index; anything else, out-of-range
		// numbers included, may still name an option verbatim.
		if n, nerr := strconv.Atoi(choice); nerr == nil && n >= 1 && n <= len(options) {
			s.commitPrompt(sel + options[n-1])
			return options[n-1], nil
		}
		for _, opt := range options {
			if opt == choice {
				s.commitPrompt(sel + opt)
				return opt, nil
			}
		}
	}
}

// promptRow is where prompts render in rich mode: the scroll cursor row.
func (s *Session) promptRow() int {
	_, h := s.scr.Size()
	row := s.reservedRows() + s.scroll
	if row > h-1 {
		row = h - 1
	}
	return row
}

// readLine blocks for one line, stripping only the line ending. A partial
// line terminated by EOF is still returned.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// commitPrompt records a completed exchange in the scroll region. In plain
// mode the terminal's own echo already shows it, so nothing is written.
func (s *Session) commitPrompt(line string) {
	if s.scr.Rich() {
		s.advanceScroll(line)
	}
}
