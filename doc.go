// Package slate is a cross-platform terminal interaction toolkit: formatted
// text, prompts, in-place progress bars, and menus on the screen, with every
// auditable event mirrored to a structured log file and uncaught failures
// normalized to single-line reports.
//
// The centerpiece is the Session, a virtual console that mimics a
// curses-style fixed layout using only sequential writes plus cursor
// repositioning: a pinned title row, one reserved row per live progress bar,
// and a scrolling region beneath them. No alternate screen buffer is
// assumed, and terminals without ANSI cursor addressing (pipes, CI logs,
// SLATE_SIMPLE) degrade to plain sequential output.
//
// # Sessions
//
// A Session is constructed explicitly and passed around; there is no hidden
// process-wide singleton. Construction opens the log file and fails fast on
// configuration mistakes:
//
//	opts := slate.DefaultOptions()
//	opts.LogName = "deploytool"
//	ses, err := slate.New(opts)
//	if err != nil {
//	    // bad log name or level; nothing was opened
//	}
//	defer ses.Close()
//
//	ses.SetMainTitle("DEPLOY")
//	ses.Console("starting rollout")
//	ses.LoadBar("upload", 3, 10)
//	ses.Warn("mirror lagging")
//
// # Prompts
//
// Prompts block on the caller's goroutine until the operator answers.
// Invalid answers re-prompt in place, indefinitely:
//
//	if ok, err := ses.AskYN("Proceed with rollout?"); err == nil && ok {
//	    target, _ := ses.AskList("Which region?", []string{"eu", "us", "ap"})
//	    ses.Console("rolling out to " + target)
//	}
//
// # Failure Guarding
//
// Guard wraps any unit of work. On failure it renders one console line and
// one full-trace log entry, then swallows the failure behind the ErrReported
// sentinel (or repropagates the normalized *Failure when configured):
//
//	work := slate.Guard(ses, func() (int, error) {
//	    return riskyThing()
//	})
//	if n, err := work(); errors.Is(err, slate.ErrReported) {
//	    // already on screen and in the log
//	} else {
//	    use(n)
//	}
//
// Nested guards never double-report: the nearest guard reports, outer guards
// recognize the normalized failure and pass it through.
//
// # Concurrency
//
// A Session provides no internal locking. All operations execute and block
// on the caller's goroutine; hosts with concurrent producers serialize
// access themselves. Operator interrupts (SIGINT) are never masked or
// captured as failures.
package slate
