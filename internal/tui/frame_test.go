// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			app := New(newTestDeps(t, "http://127.0.0.1:1"))
			app.screen = ScreenLogin

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			view := app.View()
			lines := strings.Split(view, "\n")

			expectedWidth := targetWidth
			if expectedWidth < minTerminalWidth {
				expectedWidth = minTerminalWidth
			}

			headerFound := false
			footerFound := false
			for _, line := range lines {
				if strings.Contains(line, "╭") {
					headerFound = true
					idx := strings.Index(line, "╭")
					if w := lipgloss.Width(line[idx:]); w != expectedWidth {
						t.Errorf("header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
					}
				}
				if strings.Contains(line, "╰") {
					footerFound = true
					idx := strings.Index(line, "╰")
					if w := lipgloss.Width(line[idx:]); w != expectedWidth {
						t.Errorf("footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
					}
				}
			}

			if !headerFound {
				t.Error("header line not found")
			}
			if !footerFound {
				t.Error("footer line not found")
			}
		})
	}
}

func TestFooterShortcutsPerScreen(t *testing.T) {
	app := New(newTestDeps(t, "http://127.0.0.1:1"))
	app.width = 100
	app.height = 40

	app.screen = ScreenLogin
	if footer := app.renderFooter(); !strings.Contains(footer, "Switch-mode") {
		t.Error("expected login shortcuts in footer")
	}

	app.screen = ScreenDashboard
	if footer := app.renderFooter(); !strings.Contains(footer, "Logout") {
		t.Error("expected dashboard shortcuts in footer")
	}

	app.focus = focusChat
	if footer := app.renderFooter(); !strings.Contains(footer, "Send") {
		t.Error("expected chat shortcuts in footer")
	}
}
