package slate

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrReported is the sentinel returned by guarded work after its failure has
// been rendered and logged. It is the swallow-mode caller contract: check
// errors.Is(err, ErrReported), treat the work as failed, and carry on.
var ErrReported = errors.New("failure already reported")

// libDir is this library's source directory, used to trim toolkit frames out
// of reported traces.
var libDir string

func init() {
	if _, file, _, ok := runtime.Caller(0); ok {
		libDir = filepath.Dir(file)
	}
}

// Frame is one stack frame of a normalized failure.
type Frame struct {
	File     string
	Line     int
	Function string
}

func (f Frame) String() string {
	return fmt.Sprintf("%s %s:%d", shortFunc(f.Function), filepath.Base(f.File), f.Line)
}

// Failure is a failure reduced to a deterministic single-line form: its kind,
// message, and the innermost caller-relevant frame, with the full trace kept
// for the log entry. It wraps the original error, so errors.Is and errors.As
// keep working through it.
type Failure struct {
	Kind    string
	Message string
	Frame   Frame
	Trace   []Frame

	cause error
}

// Error renders the console form: <kind>: <message> (at <file>:<line> in <function>).
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s (at %s:%d in %s)",
		f.Kind, f.Message, filepath.Base(f.Frame.File), f.Frame.Line, shortFunc(f.Frame.Function))
}

// Unwrap yields the original error, if any.
func (f *Failure) Unwrap() error { return f.cause }

// Guard wraps a unit of work with failure normalization. On success the value
// and nil error pass through untouched and nothing is rendered or logged.
//
// On failure — a returned error or a recovered panic — the guard writes
// exactly one console line and one log entry (the same line plus the full
// trace flattened with " >> " separators), then returns the zero value and
// ErrReported. With Options.Repropagate the normalized *Failure is returned
// instead so callers can rethrow.
//
// Failures already normalized by a nested guard are recognized and passed
// through without a second report. OS interrupt signals are not failures and
// are never intercepted; neither is runtime.Goexit.
//
// The reported frame is chosen deterministically: walking innermost to
// outermost, frames inside this library and frames under runtime, reflect,
// and testing are dropped, and the first survivor wins. If everything was
// dropped the innermost frame is used as-is.
func Guard[T any](s *Session, fn func() (T, error)) func() (T, error) {
	return func() (out T, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			var zero T
			out = zero
			if perr, ok := r.(error); ok {
				if alreadyNormalized(perr) {
					err = s.passThrough(perr)
					return
				}
				err = s.report(normalize(perr, callersTrace(3)))
				return
			}
			f := &Failure{
				Kind:    "panic",
				Message: singleLine(fmt.Sprint(r)),
				Trace:   callersTrace(3),
			}
			f.Frame = relevantFrame(f.Trace)
			err = s.report(f)
		}()

		v, werr := fn()
		if werr == nil {
			return v, nil
		}
		var zero T
		if alreadyNormalized(werr) {
			return zero, s.passThrough(werr)
		}
		return zero, s.report(normalize(werr, callersTrace(2)))
	}
}

// Protect is the error-only convenience form of Guard.
func (s *Session) Protect(fn func() error) func() error {
	g := Guard(s, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return func() error {
		_, err := g()
		return err
	}
}

func alreadyNormalized(err error) bool {
	var f *Failure
	return errors.As(err, &f) || errors.Is(err, ErrReported)
}

func (s *Session) passThrough(err error) error {
	if s.opts.Repropagate {
		return err
	}
	return ErrReported
}

// report renders the single console line and writes the single full-trace log
// entry, then produces the guard's return error per configuration.
func (s *Session) report(f *Failure) error {
	line := f.Error()
	s.writeErrorLine(line)
	s.log.ErrorMsg(line + flattenTrace(f.Trace))
	if s.opts.Repropagate {
		return f
	}
	return ErrReported
}

// normalize builds a Failure from err, preferring a pkg/errors stack carried
// anywhere in its chain and falling back to the guard-site trace.
func normalize(err error, fallback []Frame) *Failure {
	trace := stackOf(err)
	if len(trace) == 0 {
		trace = fallback
	}
	f := &Failure{
		Kind:    kindOf(err),
		Message: singleLine(err.Error()),
		Trace:   trace,
		cause:   err,
	}
	f.Frame = relevantFrame(trace)
	return f
}

// relevantFrame applies the documented filter rule and returns the innermost
// surviving frame.
func relevantFrame(trace []Frame) Frame {
	for _, fr := range trace {
		if internalFrame(fr) {
			continue
		}
		return fr
	}
	if len(trace) > 0 {
		return trace[0]
	}
	return Frame{File: "unknown", Function: "unknown"}
}

func internalFrame(fr Frame) bool {
	if libDir != "" && strings.HasPrefix(fr.File, libDir) {
		return true
	}
	for _, prefix := range []string{"runtime.", "reflect.", "testing."} {
		if strings.HasPrefix(fr.Function, prefix) {
			return true
		}
	}
	return false
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// stackOf extracts the deepest pkg/errors stack in the chain — the one
// closest to where the failure was born.
func stackOf(err error) []Frame {
	var deepest pkgerrors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ts, ok := e.(stackTracer); ok {
			deepest = ts.StackTrace()
		}
	}
	if deepest == nil {
		return nil
	}
	out := make([]Frame, 0, len(deepest))
	for _, pf := range deepest {
		pc := uintptr(pf) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line := fn.FileLine(pc)
		out = append(out, Frame{File: file, Line: line, Function: fn.Name()})
	}
	return out
}

// callersTrace captures the current goroutine's stack, skipping the given
// number of frames above the capture point.
func callersTrace(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{File: fr.File, Line: fr.Line, Function: fr.Function})
		}
		if !more {
			break
		}
	}
	return out
}

// kindOf names the failure by the concrete type of the innermost cause.
func kindOf(err error) string {
	inner := err
	for {
		next := errors.Unwrap(inner)
		if next == nil {
			break
		}
		inner = next
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", inner), "*")
}

// flattenTrace joins frames with a visible separator so the log entry stays
// one record.
func flattenTrace(trace []Frame) string {
	var b strings.Builder
	for _, fr := range trace {
		b.WriteString(" >> ")
		b.WriteString(fr.String())
	}
	return b.String()
}

// shortFunc trims the import path off a fully qualified function name.
func shortFunc(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		return fn[i+1:]
	}
	return fn
}

// singleLine collapses embedded line breaks so console and log records stay
// one line each.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
