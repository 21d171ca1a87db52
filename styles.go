package slate

import "github.com/charmbracelet/lipgloss"

// Color palette for console output
var (
	SuccessColor = lipgloss.Color("#43BF6D") // Green - completed bars
	ErrorColor   = lipgloss.Color("#FF5555") // Red - error lines
	WarningColor = lipgloss.Color("#FFA500") // Orange - warning lines
	NoticeColor  = lipgloss.Color("#5FD7D7") // Cyan - notices, timestamps
	MutedColor   = lipgloss.Color("#626262") // Gray - debug, hints
	TextColor    = lipgloss.Color("#FFFFFF") // White - plain content
)

// Shared styles for console lines
var (
	// TitleStyle is for the pinned main title row
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Reverse(true)

	// StampStyle is for the [HH:MM] prefix on leveled lines
	StampStyle = lipgloss.NewStyle().
			Foreground(NoticeColor)

	// NoticeStyle is for notice-level lines
	NoticeStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// WarnStyle is for warning-level lines
	WarnStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle is for error-level lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// DebugStyle is for debug-level lines
	DebugStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// HintStyle is for prompt hints like accepted-answer sets
	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// BarLabelStyle is for progress bar titles
	BarLabelStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)
