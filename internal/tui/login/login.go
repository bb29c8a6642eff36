// ABOUTME: Login and registration screen as a bubbletea model
// ABOUTME: Embeds a huh form; submission is performed by the root app

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahermansen/todochat/internal/tui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// SubmitMsg is sent when the user completes the form.
type SubmitMsg struct {
	Mode     Mode
	Username string
	Email    string
	Password string
}

// Login is the authentication screen.
type Login struct {
	mode    Mode
	form    *huh.Form
	errText string
	busy    bool
	width   int

	username string
	email    string
	password string
}

// New creates the login screen in login mode.
func New() *Login {
	l := &Login{mode: ModeLogin}
	l.form = l.buildForm()
	return l
}

func (l *Login) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("username").
			Title("Username").
			Value(&l.username),
	}
	if l.mode == ModeRegister {
		fields = append(fields, huh.NewInput().
			Key("email").
			Title("Email").
			Value(&l.email))
	}
	fields = append(fields, huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&l.password))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		// ctrl+r flips between login and registration.
		if msg.String() == "ctrl+r" {
			l.toggleMode()
			return l, l.form.Init()
		}
	}

	model, cmd := l.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		l.form = form
	}

	if l.form.State == huh.StateCompleted {
		l.busy = true
		l.errText = ""
		submit := SubmitMsg{
			Mode:     l.mode,
			Username: strings.TrimSpace(l.username),
			Email:    strings.TrimSpace(l.email),
			Password: l.password,
		}
		return l, tea.Batch(cmd, func() tea.Msg { return submit })
	}

	return l, cmd
}

func (l *Login) toggleMode() {
	if l.mode == ModeLogin {
		l.mode = ModeRegister
	} else {
		l.mode = ModeLogin
	}
	l.form = l.buildForm()
}

// SetError surfaces a failed submission and re-arms the form.
func (l *Login) SetError(text string) {
	l.errText = text
	l.busy = false
	l.password = ""
	l.form = l.buildForm()
}

// Mode returns the current form mode.
func (l *Login) Mode() Mode {
	return l.mode
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	title := "Log in"
	hint := "ctrl+r Register instead"
	if l.mode == ModeRegister {
		title = "Create an account"
		hint = "ctrl+r Back to login"
	}

	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")

	if l.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(l.form.View())
	}

	if l.errText != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorBanner.Render(l.errText))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(hint))

	content := sb.String()
	if l.width > 0 {
		return lipgloss.NewStyle().Width(l.width).Align(lipgloss.Center).Render(content)
	}
	return content
}
