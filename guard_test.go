package slate

import (
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

// logLinesWith counts log entries containing needle.
func logLinesWith(t *testing.T, s *Session, needle string) int {
	t.Helper()
	count := 0
	for _, line := range strings.Split(readLogFile(t, s), "\n") {
		if strings.Contains(line, needle) {
			count++
		}
	}
	return count
}

func TestGuardSuccessPassesThrough(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	work := Guard(s, func() (int, error) {
		return 42, nil
	})

	got, err := work()
	if err != nil {
		t.Fatalf("work() error = %v", err)
	}
	if got != 42 {
		t.Errorf("work() = %d, want 42", got)
	}
	if buf.Len() != 0 {
		t.Errorf("successful work produced console output: %q", buf.String())
	}
	if n := logLinesWith(t, s, "42"); n != 0 {
		t.Error("successful work produced log output")
	}
}

func TestGuardReportsFailureOnce(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	work := Guard(s, func() (string, error) {
		return "", pkgerrors.New("boom")
	})

	got, err := work()
	if !errors.Is(err, ErrReported) {
		t.Fatalf("work() error = %v, want ErrReported sentinel", err)
	}
	if got != "" {
		t.Errorf("work() = %q, want zero value", got)
	}

	lines := bufLines(buf)
	if len(lines) != 1 {
		t.Fatalf("console received %d lines, want exactly 1: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "boom") {
		t.Errorf("console line %q missing the message", lines[0])
	}
	if !strings.Contains(lines[0], "(at ") {
		t.Errorf("console line %q missing the frame reference", lines[0])
	}

	if n := logLinesWith(t, s, "boom"); n != 1 {
		t.Errorf("log gained %d lines with the message, want 1", n)
	}
	if n := logLinesWith(t, s, " >> "); n != 1 {
		t.Error("log entry missing the flattened trace")
	}
	if n := logLinesWith(t, s, ".go:"); n != 1 {
		t.Error("log entry missing a frame reference")
	}
}

func TestGuardNestedReportsOnce(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	inner := Guard(s, func() (int, error) {
		return 0, pkgerrors.New("boom")
	})
	outer := Guard(s, func() (int, error) {
		return inner()
	})

	_, err := outer()
	if !errors.Is(err, ErrReported) {
		t.Fatalf("outer() error = %v, want ErrReported", err)
	}

	if n := logLinesWith(t, s, "boom"); n != 1 {
		t.Errorf("nested guards produced %d log entries, want 1", n)
	}
	if lines := bufLines(buf); len(lines) != 1 {
		t.Errorf("nested guards produced %d console lines, want 1: %q", len(lines), lines)
	}
}

func TestGuardNestedRepropagate(t *testing.T) {
	s, buf := newTestSession(t, "", func(o *Options) {
		o.Repropagate = true
	})

	cause := pkgerrors.New("boom")
	inner := Guard(s, func() (int, error) {
		return 0, cause
	})
	outer := Guard(s, func() (int, error) {
		return inner()
	})

	_, err := outer()
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("outer() error = %v, want *Failure", err)
	}
	if !errors.Is(err, cause) {
		t.Error("normalized failure should wrap the original error")
	}
	if n := logLinesWith(t, s, "boom"); n != 1 {
		t.Errorf("repropagating guards produced %d log entries, want 1", n)
	}
	if lines := bufLines(buf); len(lines) != 1 {
		t.Errorf("repropagating guards produced %d console lines, want 1", len(lines))
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	work := Guard(s, func() (int, error) {
		panic("kaboom")
	})

	_, err := work()
	if !errors.Is(err, ErrReported) {
		t.Fatalf("panicking work() error = %v, want ErrReported", err)
	}
	lines := bufLines(buf)
	if len(lines) != 1 {
		t.Fatalf("console received %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "panic") || !strings.Contains(lines[0], "kaboom") {
		t.Errorf("console line %q should name the panic", lines[0])
	}
	if n := logLinesWith(t, s, "kaboom"); n != 1 {
		t.Errorf("panic produced %d log entries, want 1", n)
	}
}

func TestGuardMultilineMessageFlattened(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	work := Guard(s, func() (int, error) {
		return 0, errors.New("first line\nsecond line")
	})

	_, _ = work()
	lines := bufLines(buf)
	if len(lines) != 1 {
		t.Fatalf("console received %d lines, want 1: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "first line second line") {
		t.Errorf("console line %q should flatten the message", lines[0])
	}
}

func TestProtect(t *testing.T) {
	s, _ := newTestSession(t, "", nil)

	ran := false
	ok := s.Protect(func() error {
		ran = true
		return nil
	})
	if err := ok(); err != nil {
		t.Errorf("Protect success error = %v", err)
	}
	if !ran {
		t.Error("protected work did not run")
	}

	bad := s.Protect(func() error {
		return pkgerrors.New("boom")
	})
	if err := bad(); !errors.Is(err, ErrReported) {
		t.Errorf("Protect failure error = %v, want ErrReported", err)
	}
}

func TestFailureErrorFormat(t *testing.T) {
	f := &Failure{
		Kind:    "os.PathError",
		Message: "no such file",
		Frame:   Frame{File: "/src/app/deploy.go", Line: 88, Function: "example.com/app.Deploy"},
	}
	want := "os.PathError: no such file (at deploy.go:88 in app.Deploy)"
	if got := f.Error(); got != want {
		t.Errorf("Failure.Error() = %q, want %q", got, want)
	}
}
