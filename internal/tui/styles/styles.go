// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across panes

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Accent    = lipgloss.Color("#8B5CF6") // Purple for highlights

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Inline error banner shown near the originating action
	ErrorBanner = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Chat roles
	ChatUser = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ChatAssistant = lipgloss.NewStyle().
			Foreground(Text)

	ChatSystem = lipgloss.NewStyle().
			Foreground(Secondary)

	ChatError = lipgloss.NewStyle().
			Foreground(Danger)

	// List rows
	SelectedRow = lipgloss.NewStyle().
			Foreground(Text).
			Background(lipgloss.Color("#374151")).
			Bold(true)

	PendingRow = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)
)
