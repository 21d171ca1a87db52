package slate

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestInputReturnsLineVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "alice\n", "alice"},
		{"inner spaces kept", "  spaced  value \n", "  spaced  value "},
		{"empty line", "\n", ""},
		{"crlf stripped", "bob\r\n", "bob"},
		{"eof without newline", "carol", "carol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, tt.input, nil)
			got, err := s.Input("name?")
			if err != nil {
				t.Fatalf("Input() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Input() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputErrorOnClosedInput(t *testing.T) {
	s, _ := newTestSession(t, "", nil)
	if _, err := s.Input("name?"); !errors.Is(err, io.EOF) {
		t.Errorf("Input() on exhausted reader error = %v, want EOF", err)
	}
}

func TestAskYN(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      bool
		reprompts int // expected hint renderings beyond the first
	}{
		{"immediate no", "no\n", false, 0},
		{"immediate yes", "YES\n", true, 0},
		{"short forms", "N\n", false, 0},
		{"one reprompt", "maybe\nY\n", true, 1},
		{"empty then answer", "\n\ny\n", true, 2},
		{"whitespace tolerated", "  yes  \n", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newTestSession(t, tt.input, nil)
			got, err := s.AskYN("Continue?")
			if err != nil {
				t.Fatalf("AskYN() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AskYN() = %v, want %v", got, tt.want)
			}
			if hints := strings.Count(buf.String(), "[y/n]"); hints != tt.reprompts+1 {
				t.Errorf("hint rendered %d times, want %d", hints, tt.reprompts+1)
			}
		})
	}
}

func TestAskYNErrorOnEOF(t *testing.T) {
	s, _ := newTestSession(t, "maybe\n", nil)
	if _, err := s.AskYN("Continue?"); err == nil {
		t.Error("AskYN() should fail when input ends before a valid answer")
	}
}

func TestAskList(t *testing.T) {
	options := []string{"a", "b", "c"}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"numeric index", "2\n", "b"},
		{"exact text match", "b\n", "b"},
		{"out of range then valid", "9\n3\n", "c"},
		{"unparseable then valid", "banana\n1\n", "a"},
		{"zero rejected", "0\n2\n", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newTestSession(t, tt.input, nil)
			got, err := s.AskList("Pick one", options)
			if err != nil {
				t.Fatalf("AskList() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AskList() = %q, want %q", got, tt.want)
			}
			out := buf.String()
			for i, opt := range options {
				numbered := fmt.Sprintf("  %d) %s", i+1, opt)
				if !strings.Contains(out, numbered) {
					t.Errorf("output missing numbered option %q", numbered)
				}
			}
		})
	}
}

func TestAskListNumericOptionText(t *testing.T) {
	options := []string{"7", "9"}

	// "9" is out of range as an index but names the second option.
	s, _ := newTestSession(t, "9\n", nil)
	got, err := s.AskList("port", options)
	if err != nil {
		t.Fatalf("AskList() error = %v", err)
	}
	if got != "9" {
		t.Errorf("AskList() = %q, want option text 9", got)
	}

	// An in-range number still selects by index, not by text.
	s, _ = newTestSession(t, "2\n", nil)
	got, err = s.AskList("port", options)
	if err != nil {
		t.Fatalf("AskList() error = %v", err)
	}
	if got != "9" {
		t.Errorf("AskList() = %q, want second option by index", got)
	}
}

func TestAskListEmptyOptions(t *testing.T) {
	s, _ := newTestSession(t, "1\n", nil)
	if _, err := s.AskList("Pick", nil); !errors.Is(err, ErrNoOptions) {
		t.Errorf("AskList(nil) error = %v, want ErrNoOptions", err)
	}
}

func TestSecretFallsBackToPlainRead(t *testing.T) {
	// A strings.Reader is not a terminal, so Secret reads a plain line.
	s, buf := newTestSession(t, "hunter2\n", nil)
	got, err := s.Secret("passphrase:")
	if err != nil {
		t.Fatalf("Secret() error = %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Secret() = %q, want %q", got, "hunter2")
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Error("secret leaked into console output")
	}
}
