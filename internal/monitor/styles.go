package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ddstop/ddstop/internal/ui"
)

// Dashboard palette, built on the shared ANSI colors.
const (
	ColorAccent        = ui.ColorWarning // active tab, titles
	ColorBorder        = ui.ColorMuted
	ColorBorderActive  = ui.ColorSecondary
	ColorTextPrimary   = ui.ColorPrimary
	ColorTextSecondary = ui.ColorInfo
	ColorHealthy       = ui.ColorSuccess
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	FooterStyle = ui.MutedStyle().
			Padding(0, 1)

	// Tab strip
	TabStripStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TabDividerStyle = ui.MutedStyle()

	// Table pane
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderActive)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	// Status line
	BannerStyle = ui.ErrorStyle().
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Padding(0, 1)

	StatusWarnStyle = ui.WarningStyle().
			Padding(0, 1)

	StatusFailStyle = ui.ErrorStyle().
			Padding(0, 1)
)
