// ABOUTME: Tests for the login screen
// ABOUTME: Covers mode toggling, error re-arming, and view states

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModeToggle(t *testing.T) {
	l := New()
	if l.Mode() != ModeLogin {
		t.Fatalf("expected login mode, got %d", l.Mode())
	}

	model, _ := l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	l = model.(*Login)
	if l.Mode() != ModeRegister {
		t.Errorf("expected register mode after ctrl+r, got %d", l.Mode())
	}

	model, _ = l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	l = model.(*Login)
	if l.Mode() != ModeLogin {
		t.Errorf("expected login mode after second toggle, got %d", l.Mode())
	}
}

func TestSetErrorReArmsForm(t *testing.T) {
	l := New()
	l.busy = true
	l.password = "secret"

	l.SetError("Incorrect username or password")

	if l.busy {
		t.Error("expected busy cleared")
	}
	if l.password != "" {
		t.Error("expected password cleared")
	}
	if !strings.Contains(l.View(), "Incorrect username or password") {
		t.Errorf("expected error in view, got:\n%s", l.View())
	}
}

func TestBusySwallowsKeys(t *testing.T) {
	l := New()
	l.busy = true

	model, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	l = model.(*Login)
	if cmd != nil {
		t.Error("expected no command while busy")
	}
	if l.username != "" {
		t.Errorf("expected input ignored, got %q", l.username)
	}
}

func TestViewPerMode(t *testing.T) {
	l := New()
	if view := l.View(); !strings.Contains(view, "Log in") {
		t.Errorf("expected login title, got:\n%s", view)
	}

	model, _ := l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	l = model.(*Login)
	view := l.View()
	if !strings.Contains(view, "Create an account") {
		t.Errorf("expected register title, got:\n%s", view)
	}
	if !strings.Contains(view, "Email") {
		t.Errorf("expected email field in register mode, got:\n%s", view)
	}
}

func TestViewBusyState(t *testing.T) {
	l := New()
	l.busy = true
	if view := l.View(); !strings.Contains(view, "Signing in") {
		t.Errorf("expected busy indicator, got:\n%s", view)
	}
}
