// Package term abstracts the raw terminal: sized, cursor-addressed writes
// over a single output stream, degrading to sequential line output when the
// stream is not a capable terminal (pipe, file, CI log) or when SLATE_SIMPLE
// is set.
//
// The package deliberately re-queries the terminal size on every call rather
// than caching it, so callers adapt to live resizes without signal handling.
package term
