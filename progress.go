package slate

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// plainBarWidth is the preferred fill width before terminal clamping.
const plainBarWidth = 30

// barState tracks one progress bar keyed by its title. A title owns exactly
// one reserved row for the life of the session; re-rendering updates in
// place.
type barState struct {
	title   string
	current int
	max     int
	percent int
	done    bool

	bar      progress.Model
	barWidth int
}

// LoadBar renders or updates the progress bar named title. The first call
// with a new title reserves the next row under the main title; later calls
// update that row in place, never scrolling. maximum <= 0 renders 0%.
// Progress is not monotonic: a lower current than previously seen simply
// resets the bar, the caller controls the semantics.
func (s *Session) LoadBar(title string, current, maximum int) {
	s.renderProgress(title, current, maximum)
}

func (s *Session) renderProgress(title string, current, maximum int) {
	s.log.DebugMsg(title)
	w, _ := s.scr.Size()

	bs, ok := s.bars[title]
	if !ok {
		bs = &barState{title: title}
		s.bars[title] = bs
		s.order = append(s.order, title)
		if s.scr.Rich() {
			// A new reserved row shifts the scroll region down.
			s.repaintAll()
		}
	}
	bs.current, bs.max = current, maximum
	bs.percent = percentOf(current, maximum)
	bs.done = maximum > 0 && current >= maximum

	if !s.scr.Rich() {
		s.scr.WriteAt(0, 0, s.barLine(bs, w))
		return
	}
	row := s.barRow(title)
	s.scr.ClearRow(row)
	s.scr.WriteAt(row, 0, s.barLine(bs, w))
	s.parkCursor()
}

// percentOf computes round(current/maximum*100) clamped to [0, 100], with
// maximum <= 0 treated as 0%.
func percentOf(current, maximum int) int {
	if maximum <= 0 {
		return 0
	}
	if current < 0 {
		current = 0
	}
	if current > maximum {
		current = maximum
	}
	return int(math.Round(float64(current) / float64(maximum) * 100))
}

func (s *Session) barRow(title string) int {
	for i, name := range s.order {
		if name == title {
			return s.titleRows() + i
		}
	}
	return s.titleRows()
}

func (s *Session) barLine(bs *barState, w int) string {
	width := plainBarWidth
	if avail := w - lipgloss.Width(bs.title) - 8; width > avail {
		width = avail
	}
	if width < 10 {
		width = 10
	}

	if s.scr.Rich() {
		if bs.barWidth != width {
			bs.bar = progress.New(
				progress.WithDefaultGradient(),
				progress.WithWidth(width),
			)
			bs.barWidth = width
		}
		label := BarLabelStyle.Render(bs.title)
		if bs.done {
			label = lipgloss.NewStyle().Foreground(SuccessColor).Render(bs.title)
		}
		return fitLine(label+" "+bs.bar.ViewAs(float64(bs.percent)/100), w)
	}

	fill := width * bs.percent / 100
	return fitLine(fmt.Sprintf("%s [%s%s] %d%%",
		bs.title,
		strings.Repeat("#", fill),
		strings.Repeat("-", width-fill),
		bs.percent,
	), w)
}
