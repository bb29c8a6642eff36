// ABOUTME: Chat transcript and input pane for the todo assistant
// ABOUTME: Input is disabled while a send is outstanding; sends are serialized

package chatpane

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/tui/icons"
	"github.com/ahermansen/todochat/internal/tui/styles"
)

// SendMsg asks the app to deliver one chat turn to the backend.
type SendMsg struct {
	Text string
}

// Pane is the chat component.
type Pane struct {
	messages []domain.ChatMessage
	input    textinput.Model
	spinner  spinner.Model
	sending  bool
	errText  string
	width    int
	height   int
}

// New creates the chat pane.
func New() *Pane {
	input := textinput.New()
	input.Placeholder = "Ask me to create or manage your todos..."
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Pane{input: input, spinner: sp}
}

// SetSize sets the available drawing area.
func (p *Pane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width - 6
}

// Focus gives keyboard focus to the input field.
func (p *Pane) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes keyboard focus.
func (p *Pane) Blur() {
	p.input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (p *Pane) Focused() bool {
	return p.input.Focused()
}

// Append adds a message to the transcript.
func (p *Pane) Append(msg domain.ChatMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	p.messages = append(p.messages, msg)
}

// Messages returns the transcript.
func (p *Pane) Messages() []domain.ChatMessage {
	return p.messages
}

// Sending reports whether a send is outstanding.
func (p *Pane) Sending() bool {
	return p.sending
}

// FinishSend re-enables the input after a response or failure.
func (p *Pane) FinishSend() {
	p.sending = false
}

// SetError surfaces a send failure near the input.
func (p *Pane) SetError(text string) {
	p.errText = text
}

// Update implements the component's message handling.
func (p *Pane) Update(msg tea.Msg) (*Pane, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.sending {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if p.sending {
			return p, nil
		}
		if msg.String() == "enter" {
			text := strings.TrimSpace(p.input.Value())
			if text == "" {
				return p, nil
			}
			p.input.SetValue("")
			p.errText = ""
			p.sending = true
			p.Append(domain.ChatMessage{Role: domain.RoleUser, Content: text})
			return p, tea.Batch(
				p.spinner.Tick,
				func() tea.Msg { return SendMsg{Text: text} },
			)
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the pane.
func (p *Pane) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Chat.String() + " Assistant"))
	sb.WriteString("\n")

	transcript := p.renderTranscript()
	if transcript == "" {
		sb.WriteString(styles.Subtitle.Render("Start a conversation."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(`Try: "Create a task to review reports by tomorrow"`))
		sb.WriteString("\n")
	} else {
		sb.WriteString(transcript)
	}

	if p.sending {
		sb.WriteString("\n")
		sb.WriteString(p.spinner.View())
		sb.WriteString(styles.Subtitle.Render(" thinking..."))
	}

	if p.errText != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorBanner.Render(p.errText))
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.input.View())
	return sb.String()
}

// renderTranscript renders as many trailing messages as fit the pane.
func (p *Pane) renderTranscript() string {
	if len(p.messages) == 0 {
		return ""
	}

	var lines []string
	for _, msg := range p.messages {
		lines = append(lines, p.renderMessage(msg)...)
	}

	budget := p.height - 10
	if budget < 4 {
		budget = 4
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	return strings.Join(lines, "\n")
}

func (p *Pane) renderMessage(msg domain.ChatMessage) []string {
	stamp := styles.Subtitle.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case domain.RoleUser:
		return []string{stamp + " " + styles.ChatUser.Render("you: ") + msg.Content}
	case domain.RoleSystem:
		return []string{stamp + " " + styles.ChatSystem.Render(icons.CheckOK.String()+" "+msg.Content)}
	case domain.RoleError:
		return []string{stamp + " " + styles.ChatError.Render(msg.Content)}
	}

	// Assistant: either free text or a todo summary list.
	if msg.Todos == nil {
		return []string{stamp + " " + styles.ChatAssistant.Render("assistant: "+msg.Content)}
	}

	lines := []string{stamp + " " + styles.ChatAssistant.Render(
		fmt.Sprintf("assistant: %d todo(s)", len(msg.Todos)))}
	for _, t := range msg.Todos {
		due := "-"
		if parsed, ok := t.DueTime(); ok {
			due = parsed.Format("Jan 02")
		}
		lines = append(lines, styles.Subtitle.Render(
			fmt.Sprintf("   %s %s (%s, %s)", icons.Calendar.String()+" "+due, t.Notes, t.Priority, t.Status)))
	}
	return lines
}
