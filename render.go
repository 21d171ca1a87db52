package slate

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Console writes text to the scrolling region unmodified, mirroring ordinary
// sequential output. The text is also logged at info severity.
func (s *Session) Console(text string) {
	s.log.InfoMsg(text)
	s.advanceScroll(text)
}

// PrintCenter writes text horizontally centered for the current terminal
// width. Centering degrades to the raw text when the terminal is narrower
// than the content.
func (s *Session) PrintCenter(text string) {
	s.log.InfoMsg(text)
	w, _ := s.scr.Size()
	s.advanceScroll(centerPad(text, w))
}

// Notice writes a timestamped informational line and logs it at notice
// severity (syslog 5).
func (s *Session) Notice(text string) {
	s.log.NoticeMsg(text)
	s.advanceScroll(s.stamp() + s.styled(NoticeStyle, text))
}

// Warn writes a timestamped warning line and logs it at warning severity
// (syslog 4).
func (s *Session) Warn(text string) {
	s.log.WarningMsg(text)
	s.advanceScroll(s.stamp() + s.styled(WarnStyle, text))
}

// Error writes a timestamped error line and logs it at error severity
// (syslog 3).
func (s *Session) Error(text string) {
	s.log.ErrorMsg(text)
	s.writeErrorLine(text)
}

// writeErrorLine renders an error line without logging it. The failure guard
// uses it to keep console reporting and log reporting as separate single
// records.
func (s *Session) writeErrorLine(text string) {
	s.advanceScroll(s.stamp() + s.styled(ErrorStyle, text))
}

// Debug writes a muted timestamped line and logs it at debug severity
// (syslog 7).
func (s *Session) Debug(text string) {
	s.log.DebugMsg(text)
	s.advanceScroll(s.stamp() + s.styled(DebugStyle, text))
}

// ErrorCenter writes a centered error banner and logs it at error severity.
func (s *Session) ErrorCenter(text string) {
	s.log.ErrorMsg(text)
	w, _ := s.scr.Size()
	s.advanceScroll(centerPad(s.styled(ErrorStyle, "! "+text+" !"), w))
}

// WarnCenter writes a centered warning banner and logs it at warning
// severity.
func (s *Session) WarnCenter(text string) {
	s.log.WarningMsg(text)
	w, _ := s.scr.Size()
	s.advanceScroll(centerPad(s.styled(WarnStyle, "* "+text+" *"), w))
}

// Bold returns text styled bold, or unchanged in plain mode.
func (s *Session) Bold(text string) string {
	if !s.scr.Rich() {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// Underline returns text styled underlined, or unchanged in plain mode.
func (s *Session) Underline(text string) string {
	if !s.scr.Rich() {
		return text
	}
	return lipgloss.NewStyle().Underline(true).Render(text)
}

func (s *Session) stamp() string {
	t := time.Now().Format("15:04")
	if s.scr.Rich() {
		return StampStyle.Render("["+t+"]") + " "
	}
	return "[" + t + "] "
}

func (s *Session) styled(st lipgloss.Style, text string) string {
	if !s.scr.Rich() {
		return text
	}
	return st.Render(text)
}
