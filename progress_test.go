package slate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		current, maximum int
		want             int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{15, 10, 100}, // clamped
		{-1, 10, 0},   // clamped
		{5, 0, 0},     // division guard
		{5, -2, 0},
	}
	for _, tt := range tests {
		if got := percentOf(tt.current, tt.maximum); got != tt.want {
			t.Errorf("percentOf(%d, %d) = %d, want %d", tt.current, tt.maximum, got, tt.want)
		}
	}
}

func TestPercentAlwaysInRange(t *testing.T) {
	for maximum := 1; maximum <= 20; maximum++ {
		for current := 0; current <= maximum; current++ {
			got := percentOf(current, maximum)
			if got < 0 || got > 100 {
				t.Fatalf("percentOf(%d, %d) = %d, out of [0,100]", current, maximum, got)
			}
		}
	}
}

func TestLoadBarPlainFormat(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	s.LoadBar("copy", 21, 50) // 42%

	lines := bufLines(buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if !strings.HasPrefix(line, "copy [") {
		t.Errorf("bar line %q should start with the title", line)
	}
	if !strings.HasSuffix(line, "] 42%") {
		t.Errorf("bar line %q should end with the percentage", line)
	}
	// Default fill width is 30: 42% fills 12 cells.
	if got := strings.Count(line, "#"); got != 12 {
		t.Errorf("bar line %q has %d fill cells, want 12", line, got)
	}
	if got := strings.Count(line, "-"); got != 18 {
		t.Errorf("bar line %q has %d empty cells, want 18", line, got)
	}
}

func TestLoadBarSameTitleKeepsOneRow(t *testing.T) {
	s, _ := newTestSession(t, "", nil)

	s.LoadBar("download", 1, 10)
	s.LoadBar("download", 5, 10)
	s.LoadBar("download", 10, 10)

	if len(s.order) != 1 || len(s.bars) != 1 {
		t.Errorf("one title allocated %d rows, want 1", len(s.order))
	}

	s.LoadBar("verify", 0, 4)
	if len(s.order) != 2 {
		t.Errorf("second title: %d rows, want 2", len(s.order))
	}

	// Rows are stable across updates.
	row := s.barRow("download")
	s.LoadBar("download", 2, 10)
	if s.barRow("download") != row {
		t.Error("bar row moved on update")
	}
}

func TestLoadBarResetAccepted(t *testing.T) {
	s, _ := newTestSession(t, "", nil)

	s.LoadBar("sync", 10, 10)
	if !s.bars["sync"].done {
		t.Error("bar at maximum should be marked done")
	}

	// No monotonicity: the caller may reset.
	s.LoadBar("sync", 2, 10)
	bs := s.bars["sync"]
	if bs.done {
		t.Error("reset bar should not stay done")
	}
	if bs.percent != 20 {
		t.Errorf("reset bar percent = %d, want 20", bs.percent)
	}
}

func TestLoadBarZeroMaximum(t *testing.T) {
	s, buf := newTestSession(t, "", nil)

	s.LoadBar("stalled", 7, 0)

	if got := s.bars["stalled"].percent; got != 0 {
		t.Errorf("zero-maximum percent = %d, want 0", got)
	}
	if !strings.Contains(buf.String(), "0%") {
		t.Errorf("output %q should render 0%%", buf.String())
	}
}

func TestLoadBarClampsToNarrowTerminal(t *testing.T) {
	s, buf := newTestSession(t, "", func(o *Options) {
		o.Width = 40
	})

	s.LoadBar("thisisaverylongjobtitle", 1, 2)

	lines := bufLines(buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	// Fill width clamps to the 10-cell floor, never negative.
	cells := strings.Count(lines[0], "#") + strings.Count(lines[0], "-")
	if cells != 10 {
		t.Errorf("bar line %q has %d cells, want clamped 10", lines[0], cells)
	}
}

func TestBarLineNeverExceedsWidth(t *testing.T) {
	// A title wider than width minus the bar leaves no room: the whole line
	// must still fit the terminal, in both modes.
	const width = 20

	s, _ := newTestSession(t, "", func(o *Options) {
		o.Width = width
	})
	bs := &barState{title: "verylongtransfername", percent: 50}
	if got := lipgloss.Width(s.barLine(bs, width)); got > width {
		t.Errorf("plain bar line is %d cells wide on a %d-cell terminal", got, width)
	}
	if !strings.HasSuffix(s.barLine(bs, width), "...") {
		t.Errorf("clipped plain bar line %q should end with an ellipsis", s.barLine(bs, width))
	}

	rich, _ := newRichSession(t, width, 10)
	rbs := &barState{title: "verylongtransfername", percent: 50}
	if got := lipgloss.Width(rich.barLine(rbs, width)); got > width {
		t.Errorf("rich bar line is %d cells wide on a %d-cell terminal", got, width)
	}
}

func TestLoadBarPercentMatchesRendering(t *testing.T) {
	for _, tt := range []struct {
		current, maximum int
	}{{1, 8}, {3, 7}, {9, 11}, {50, 50}} {
		s, buf := newTestSession(t, "", nil)
		s.LoadBar("t", tt.current, tt.maximum)
		want := fmt.Sprintf(" %d%%", percentOf(tt.current, tt.maximum))
		if !strings.Contains(buf.String(), want) {
			t.Errorf("LoadBar(%d, %d) output %q missing %q", tt.current, tt.maximum, buf.String(), want)
		}
	}
}
