// ABOUTME: Root bubbletea model for the todochat TUI
// ABOUTME: Gates screens on auth state and routes messages to the panes

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/auth"
	"github.com/ahermansen/todochat/internal/chat"
	"github.com/ahermansen/todochat/internal/config"
	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/session"
	"github.com/ahermansen/todochat/internal/store"
	"github.com/ahermansen/todochat/internal/todo"
	"github.com/ahermansen/todochat/internal/tui/chatpane"
	"github.com/ahermansen/todochat/internal/tui/icons"
	"github.com/ahermansen/todochat/internal/tui/login"
	"github.com/ahermansen/todochat/internal/tui/styles"
	"github.com/ahermansen/todochat/internal/tui/todopane"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenDashboard
)

// focusArea selects which dashboard pane receives keys.
type focusArea int

const (
	focusTodos focusArea = iota
	focusChat
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before clamping pane widths
	panelPadding     = 4  // Total horizontal padding from panel borders
)

// Deps carries the long-lived collaborators built at startup.
type Deps struct {
	Config  config.Config
	Logger  *zap.Logger
	Store   *store.Store
	Client  *api.Client
	Session *session.Manager
	Auth    *auth.Manager
}

// sessionRestoredMsg is sent when startup session restore terminates.
type sessionRestoredMsg struct{}

// authResultMsg is sent when a login or registration attempt finishes.
type authResultMsg struct {
	err     error
	errText string
}

// todosLoadedMsg is sent when a list fetch settles.
type todosLoadedMsg struct {
	err error
}

// crudResultMsg is sent when a create/update/delete settles.
type crudResultMsg struct {
	action string
	err    error
}

// chatResultMsg is sent when a chat turn settles.
type chatResultMsg struct {
	result chat.Result
	err    error
}

// App is the root model for the TUI
type App struct {
	deps       Deps
	controller *todo.Controller
	screen     Screen
	focus      focusArea
	width      int
	height     int
	crashed    bool

	loginScreen *login.Login
	todoPane    *todopane.Pane
	chatPane    *chatpane.Pane
}

// New creates the TUI application.
func New(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	a := &App{
		deps:        deps,
		screen:      ScreenLoading,
		loginScreen: login.New(),
		todoPane:    todopane.New(),
		chatPane:    chatpane.New(),
	}
	a.controller = todo.NewController(deps.Client, deps.Logger,
		func() int {
			if p := deps.Auth.Profile(); p != nil {
				return p.ID
			}
			return 0
		},
		deps.Auth.Logout)
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loginScreen.Init(), a.restoreSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.todoPane.SetSize(a.todoWidth(), a.contentHeight())
		a.chatPane.SetSize(a.chatWidth(), a.contentHeight())
		_, _ = a.loginScreen.Update(msg)
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		}
		return a, nil

	case sessionRestoredMsg:
		if a.deps.Auth.IsAuthenticated() {
			a.screen = ScreenDashboard
			return a, a.loadTodos()
		}
		a.screen = ScreenLogin
		return a, nil

	case login.SubmitMsg:
		return a, a.authenticate(msg)

	case authResultMsg:
		if msg.err != nil {
			a.loginScreen.SetError(msg.errText)
			return a, a.loginScreen.Init()
		}
		a.screen = ScreenDashboard
		a.focus = focusTodos
		return a, a.loadTodos()

	case todosLoadedMsg:
		return a.handleTodosLoaded(msg)

	case todopane.RefreshMsg:
		return a, a.loadTodos()

	case todopane.CreateMsg:
		return a, a.createTodo(msg.Input)

	case todopane.UpdateMsg:
		return a, a.updateTodo(msg.ID, msg.Input)

	case todopane.DeleteMsg:
		return a, a.deleteTodo(msg.ID)

	case crudResultMsg:
		return a.handleCrudResult(msg)

	case chatpane.SendMsg:
		return a, a.sendChat(msg.Text)

	case chatResultMsg:
		return a.handleChatResult(msg)

	default:
		// Forward to the active component so huh form internals and
		// spinner ticks keep working.
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenDashboard:
			var cmds []tea.Cmd
			pane, cmd := a.todoPane.Update(msg)
			a.todoPane = pane
			cmds = append(cmds, cmd)
			chatPane, chatCmd := a.chatPane.Update(msg)
			a.chatPane = chatPane
			cmds = append(cmds, chatCmd)
			return a, tea.Batch(cmds...)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*login.Login)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys reach the chat input verbatim while it is focused.
	if a.focus == focusChat && a.chatPane.Focused() {
		if msg.String() == "tab" {
			a.focus = focusTodos
			a.chatPane.Blur()
			return a, nil
		}
		pane, cmd := a.chatPane.Update(msg)
		a.chatPane = pane
		return a, cmd
	}

	// Modal form or confirmation in the todo pane takes every key.
	if a.todoPane.Capturing() {
		pane, cmd := a.todoPane.Update(msg)
		a.todoPane = pane
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		a.focus = focusChat
		return a, a.chatPane.Focus()
	case "L":
		a.deps.Auth.Logout()
		a.resetSessionUI()
		return a, a.loginScreen.Init()
	}

	pane, cmd := a.todoPane.Update(msg)
	a.todoPane = pane
	return a, cmd
}

func (a *App) handleTodosLoaded(msg todosLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if domain.IsCode(msg.err, domain.ErrCodeAuthExpired) {
			// Session is gone; the controller already tore it down.
			a.resetSessionUI()
			return a, a.loginScreen.Init()
		}
		a.todoPane.SetError(domain.UserMessage(msg.err, "Failed to load todos"))
		a.todoPane.SetTodos(a.controller.Todos(), a.controller.DeletingID())
		return a, nil
	}

	a.todoPane.SetError("")
	a.todoPane.SetTodos(a.controller.Todos(), a.controller.DeletingID())
	return a, nil
}

func (a *App) handleCrudResult(msg crudResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if domain.IsCode(msg.err, domain.ErrCodeAuthExpired) {
			a.resetSessionUI()
			return a, a.loginScreen.Init()
		}
		a.todoPane.SetError(domain.UserMessage(msg.err,
			fmt.Sprintf("Failed to %s todo", msg.action)))
		a.todoPane.SetTodos(a.controller.Todos(), a.controller.DeletingID())
		return a, nil
	}

	a.todoPane.SetError("")
	a.todoPane.SetTodos(a.controller.Todos(), a.controller.DeletingID())
	return a, nil
}

func (a *App) handleChatResult(msg chatResultMsg) (tea.Model, tea.Cmd) {
	a.chatPane.FinishSend()

	if msg.err != nil {
		text := domain.UserMessage(msg.err, "Failed to send message")
		a.chatPane.SetError(text)
		a.chatPane.Append(domain.ChatMessage{Role: domain.RoleError, Content: text})
		if domain.IsCode(msg.err, domain.ErrCodeAuthExpired) {
			a.resetSessionUI()
			return a, a.loginScreen.Init()
		}
		return a, nil
	}

	result := msg.result
	switch result.Kind {
	case chat.AnswerNone:
		// Defined no-op: nothing to display.
		return a, nil

	case chat.AnswerRead:
		a.chatPane.Append(domain.ChatMessage{Role: domain.RoleAssistant, Todos: result.Todos})
		a.controller.Replace(result.Todos)
		a.todoPane.SetTodos(a.controller.Todos(), a.controller.DeletingID())
		return a, nil

	default:
		a.chatPane.Append(domain.ChatMessage{Role: domain.RoleAssistant, Content: result.Text})
		if confirmation := result.Confirmation(); confirmation != "" {
			a.chatPane.Append(domain.ChatMessage{Role: domain.RoleSystem, Content: confirmation})
		}
		if result.Op.IsWrite() {
			// The assistant mutated the list server-side; reconcile.
			return a, a.loadTodos()
		}
		return a, nil
	}
}

func (a *App) resetSessionUI() {
	a.screen = ScreenLogin
	a.focus = focusTodos
	a.loginScreen = login.New()
	a.todoPane = todopane.New()
	a.chatPane = chatpane.New()
	a.todoPane.SetSize(a.todoWidth(), a.contentHeight())
	a.chatPane.SetSize(a.chatWidth(), a.contentHeight())
}

// restoreSession runs the startup session restore off the UI loop.
func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		a.deps.Auth.Initialize(context.Background())
		return sessionRestoredMsg{}
	}
}

func (a *App) authenticate(msg login.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.Mode == login.ModeRegister {
			err = a.deps.Auth.Register(context.Background(), msg.Username, msg.Email, msg.Password)
		} else {
			err = a.deps.Auth.Login(context.Background(), msg.Username, msg.Password)
		}
		if err != nil {
			return authResultMsg{err: err, errText: a.deps.Auth.LastError()}
		}
		return authResultMsg{}
	}
}

func (a *App) loadTodos() tea.Cmd {
	return func() tea.Msg {
		err := a.controller.FetchAll(context.Background())
		return todosLoadedMsg{err: err}
	}
}

func (a *App) createTodo(input domain.TodoInput) tea.Cmd {
	return func() tea.Msg {
		return crudResultMsg{action: "create", err: a.controller.Create(context.Background(), input)}
	}
}

func (a *App) updateTodo(id int, input domain.TodoInput) tea.Cmd {
	return func() tea.Msg {
		return crudResultMsg{action: "update", err: a.controller.Update(context.Background(), id, input)}
	}
}

func (a *App) deleteTodo(id int) tea.Cmd {
	return func() tea.Msg {
		return crudResultMsg{action: "delete", err: a.controller.Delete(context.Background(), id)}
	}
}

func (a *App) sendChat(text string) tea.Cmd {
	return func() tea.Msg {
		sessionID, err := a.deps.Session.GetOrCreate()
		if err != nil {
			return chatResultMsg{err: err}
		}

		userID := 0
		if p := a.deps.Auth.Profile(); p != nil {
			userID = p.ID
		}

		raw, err := a.deps.Client.Chat(context.Background(), userID, text, sessionID)
		if err != nil {
			return chatResultMsg{err: err}
		}

		result, err := chat.Interpret(raw)
		if err != nil {
			return chatResultMsg{err: err}
		}
		if result.SessionUUID != "" {
			if err := a.deps.Session.Update(result.SessionUUID); err != nil {
				a.deps.Logger.Warn("failed to persist session id", zap.Error(err))
			}
		}
		return chatResultMsg{result: result}
	}
}

// View implements tea.Model. A panicking render from any pane swaps in
// the fallback view instead of crashing the program.
func (a *App) View() (out string) {
	if a.crashed {
		return a.viewFallback()
	}
	defer func() {
		if r := recover(); r != nil {
			a.crashed = true
			a.deps.Logger.Error("render panic", zap.Any("panic", r))
			out = a.viewFallback()
		}
	}()

	var content string
	switch a.screen {
	case ScreenLoading:
		content = styles.Subtitle.Render("Restoring session...")
	case ScreenLogin:
		content = a.loginScreen.View()
	case ScreenDashboard:
		content = a.viewDashboard()
	default:
		content = ""
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewFallback() string {
	return styles.StatusCritical.Render("Something went wrong.") +
		"\n\nPlease restart todochat. Details were written to the log file.\n"
}

// viewDashboard joins the todo and chat panes side by side.
func (a *App) viewDashboard() string {
	todoStyle := styles.Panel
	chatStyle := styles.Panel
	if a.focus == focusTodos {
		todoStyle = styles.ActivePanel
	} else {
		chatStyle = styles.ActivePanel
	}

	left := todoStyle.Width(a.todoWidth()).Render(a.todoPane.View())
	right := chatStyle.Width(a.chatWidth()).Render(a.chatPane.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// todoWidth calculates the width for the todo pane.
func (a *App) todoWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth/2 - panelPadding
	}
	return (a.width - panelPadding) / 2
}

// chatWidth calculates the width for the chat pane.
func (a *App) chatWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth/2 - panelPadding
	}
	return a.width - a.todoWidth() - panelPadding
}

// contentHeight calculates the height available for pane content.
func (a *App) contentHeight() int {
	// Header, footer, panel borders and padding.
	return a.height - 8
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("todochat"))

	rightText := ""
	if profile := a.deps.Auth.Profile(); profile != nil && a.screen == ScreenDashboard {
		right := profile.Username
		if a.controller.Offline() {
			right = icons.Offline.String() + " offline  " + right
		}
		rightText = contextStyle.Render(right) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Submit", "ctrl+r Switch-mode", "ctrl+c Quit"}
	case ScreenDashboard:
		if a.focus == focusChat {
			shortcuts = []string{"Enter Send", "Tab Todos", "ctrl+c Quit"}
		} else {
			shortcuts = []string{"n New", "e Edit", "x Del", "r Refresh", "Tab Chat", "L Logout", "q Quit"}
		}
	default:
		shortcuts = []string{"ctrl+c Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if lastFetch := a.controller.LastFetch(); !lastFetch.IsZero() && a.screen == ScreenDashboard {
		elapsed := a.formatTimeSince(lastFetch)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(deps Deps) error {
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
