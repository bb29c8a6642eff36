// ABOUTME: Colored badges for todo status and priority
// ABOUTME: Provides inline visual indication in list rows and chat cards

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ahermansen/todochat/internal/domain"
)

// Badge colors
var (
	badgeGreenBg   = lipgloss.Color("#10B981")
	badgeAmberBg   = lipgloss.Color("#F59E0B")
	badgeRedBg     = lipgloss.Color("#EF4444")
	badgeBlueBg    = lipgloss.Color("#3B82F6")
	badgeNeutralBg = lipgloss.Color("#6B7280")
	badgeLightFg   = lipgloss.Color("#FFFFFF")
	badgeDarkFg    = lipgloss.Color("#000000")
)

func badge(text string, bg, fg lipgloss.Color) string {
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusBadge renders a colored badge for a todo status.
func StatusBadge(status string) string {
	switch status {
	case domain.StatusCompleted:
		return badge(status, badgeGreenBg, badgeLightFg)
	case domain.StatusInProgress:
		return badge(status, badgeBlueBg, badgeLightFg)
	case domain.StatusPending:
		return badge(status, badgeAmberBg, badgeDarkFg)
	default:
		return badge(status, badgeNeutralBg, badgeLightFg)
	}
}

// PriorityBadge renders a colored badge for a todo priority.
func PriorityBadge(priority string) string {
	switch priority {
	case domain.PriorityHigh:
		return badge(priority, badgeRedBg, badgeLightFg)
	case domain.PriorityMedium:
		return badge(priority, badgeAmberBg, badgeDarkFg)
	case domain.PriorityLow:
		return badge(priority, badgeBlueBg, badgeLightFg)
	default:
		return badge(priority, badgeNeutralBg, badgeLightFg)
	}
}

// PriorityMark returns a compact colored marker for list rows.
func PriorityMark(priority string) string {
	var color lipgloss.Color
	switch priority {
	case domain.PriorityHigh:
		color = badgeRedBg
	case domain.PriorityMedium:
		color = badgeAmberBg
	default:
		color = badgeBlueBg
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}
