// ABOUTME: Todo list pane with filtering, editing, and delete confirmation
// ABOUTME: Emits CRUD request messages; the root app talks to the backend

package todopane

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/todo"
	"github.com/ahermansen/todochat/internal/tui/icons"
	"github.com/ahermansen/todochat/internal/tui/styles"
	"github.com/ahermansen/todochat/internal/tui/widgets"
)

// CreateMsg asks the app to create a todo.
type CreateMsg struct {
	Input domain.TodoInput
}

// UpdateMsg asks the app to update a todo.
type UpdateMsg struct {
	ID    int
	Input domain.TodoInput
}

// DeleteMsg asks the app to delete a todo after confirmation.
type DeleteMsg struct {
	ID int
}

// RefreshMsg asks the app to refetch the collection.
type RefreshMsg struct{}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

// Pane is the todo list component.
type Pane struct {
	todos      []domain.Todo
	filtered   []domain.Todo
	criteria   todo.Criteria
	deletingID int
	errText    string

	mode    mode
	cursor  int
	scrollY int
	width   int
	height  int

	// Edit form state
	form       *huh.Form
	editingID  int // 0 when creating
	formNotes  string
	formDate   string
	formStatus string
	formPrio   string

	// Delete confirmation state
	confirmID    int
	confirmNotes string

	// now anchors due-date filtering; injectable for tests
	now func() time.Time
}

// New creates the pane with all-pass filter criteria.
func New() *Pane {
	return &Pane{
		criteria: todo.DefaultCriteria(),
		now:      time.Now,
	}
}

// SetSize sets the available drawing area.
func (p *Pane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetTodos replaces the displayed collection and reapplies filters.
func (p *Pane) SetTodos(todos []domain.Todo, deletingID int) {
	p.todos = todos
	p.deletingID = deletingID
	p.applyFilter()
}

// SetError shows an inline error banner. Empty clears it.
func (p *Pane) SetError(text string) {
	p.errText = text
}

// Criteria returns the active filter criteria.
func (p *Pane) Criteria() todo.Criteria {
	return p.criteria
}

// Capturing reports whether a modal (edit form or delete confirmation)
// is open and should receive all keys.
func (p *Pane) Capturing() bool {
	return p.mode != modeList
}

func (p *Pane) applyFilter() {
	p.filtered = todo.Filter(p.todos, p.criteria, p.now())
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Update implements the component's message handling.
func (p *Pane) Update(msg tea.Msg) (*Pane, tea.Cmd) {
	switch p.mode {
	case modeForm:
		return p.updateForm(msg)
	case modeConfirm:
		return p.updateConfirm(msg)
	}
	return p.updateList(msg)
}

func (p *Pane) updateList(msg tea.Msg) (*Pane, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
	case "s":
		p.criteria.Status = cycleStatus(p.criteria.Status)
		p.applyFilter()
	case "p":
		p.criteria.Priority = cyclePriority(p.criteria.Priority)
		p.applyFilter()
	case "d":
		p.criteria.Due = cycleDue(p.criteria.Due)
		p.applyFilter()
	case "c":
		p.criteria = todo.DefaultCriteria()
		p.applyFilter()
	case "n":
		p.openForm(nil)
		return p, p.form.Init()
	case "e":
		if t, ok := p.selected(); ok {
			p.openForm(&t)
			return p, p.form.Init()
		}
	case "x":
		if t, ok := p.selected(); ok {
			p.mode = modeConfirm
			p.confirmID = t.ID
			p.confirmNotes = t.Notes
		}
	case "r":
		p.errText = ""
		return p, func() tea.Msg { return RefreshMsg{} }
	}
	return p, nil
}

func (p *Pane) updateConfirm(msg tea.Msg) (*Pane, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "y", "Y":
		id := p.confirmID
		p.mode = modeList
		p.confirmID = 0
		return p, func() tea.Msg { return DeleteMsg{ID: id} }
	case "n", "N", "esc":
		p.mode = modeList
		p.confirmID = 0
	}
	return p, nil
}

func (p *Pane) updateForm(msg tea.Msg) (*Pane, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		p.mode = modeList
		p.form = nil
		return p, nil
	}

	model, cmd := p.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		p.form = form
	}

	if p.form.State == huh.StateCompleted {
		p.mode = modeList
		input := p.formInput()
		id := p.editingID
		p.form = nil
		if id == 0 {
			return p, func() tea.Msg { return CreateMsg{Input: input} }
		}
		return p, func() tea.Msg { return UpdateMsg{ID: id, Input: input} }
	}
	return p, cmd
}

func (p *Pane) selected() (domain.Todo, bool) {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return domain.Todo{}, false
	}
	return p.filtered[p.cursor], true
}

func (p *Pane) openForm(existing *domain.Todo) {
	p.mode = modeForm
	if existing != nil {
		p.editingID = existing.ID
		p.formNotes = existing.Notes
		p.formStatus = existing.Status
		p.formPrio = existing.Priority
		if parsed, ok := existing.DueTime(); ok {
			p.formDate = parsed.Format("2006-01-02")
		} else {
			p.formDate = ""
		}
	} else {
		p.editingID = 0
		p.formNotes = ""
		p.formDate = time.Now().Format("2006-01-02")
		p.formStatus = domain.StatusPending
		p.formPrio = domain.PriorityMedium
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&p.formNotes),
			huh.NewInput().
				Key("date").
				Title("Due date (YYYY-MM-DD)").
				Value(&p.formDate),
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption(domain.StatusPending, domain.StatusPending),
					huh.NewOption(domain.StatusInProgress, domain.StatusInProgress),
					huh.NewOption(domain.StatusCompleted, domain.StatusCompleted),
				).
				Value(&p.formStatus),
			huh.NewSelect[string]().
				Key("priority").
				Title("Priority").
				Options(
					huh.NewOption(domain.PriorityLow, domain.PriorityLow),
					huh.NewOption(domain.PriorityMedium, domain.PriorityMedium),
					huh.NewOption(domain.PriorityHigh, domain.PriorityHigh),
				).
				Value(&p.formPrio),
		),
	).WithTheme(huh.ThemeBase())
}

// formInput converts form state into a request body. The date is
// normalized to an RFC3339 timestamp at local midnight.
func (p *Pane) formInput() domain.TodoInput {
	input := domain.TodoInput{
		Notes:    &p.formNotes,
		Status:   &p.formStatus,
		Priority: &p.formPrio,
	}

	date := strings.TrimSpace(p.formDate)
	if date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", date, time.Local); err == nil {
			iso := parsed.UTC().Format(time.RFC3339)
			input.Date = &iso
		} else {
			input.Date = &date
		}
	}

	notes := strings.TrimSpace(p.formNotes)
	input.Notes = &notes
	return input
}

// View renders the pane.
func (p *Pane) View() string {
	switch p.mode {
	case modeForm:
		return p.viewForm()
	case modeConfirm:
		return p.viewConfirm()
	}
	return p.viewList()
}

func (p *Pane) viewForm() string {
	title := icons.Add.String() + " New todo"
	if p.editingID != 0 {
		title = icons.Edit.String() + " Edit todo"
	}
	return styles.Title.Render(title) + "\n" + p.form.View() +
		"\n" + styles.Help.Render("Esc Cancel")
}

func (p *Pane) viewConfirm() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Delete.String() + " Delete todo"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Delete %q?\n\n", p.confirmNotes))
	sb.WriteString(styles.StatusCritical.Render("y") + " Yes  ")
	sb.WriteString(styles.Help.Render("n Cancel"))
	return sb.String()
}

func (p *Pane) viewList() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Todos"))
	sb.WriteString("\n")
	sb.WriteString(p.renderFilterLine())
	sb.WriteString("\n\n")

	if p.errText != "" {
		sb.WriteString(styles.ErrorBanner.Render(p.errText))
		sb.WriteString("\n\n")
	}

	if len(p.filtered) == 0 {
		if p.criteria.Active() {
			sb.WriteString(styles.Subtitle.Render("No todos match the current filters."))
		} else {
			sb.WriteString(styles.Subtitle.Render("No todos yet. Press n to add one, or ask the assistant."))
		}
		return sb.String()
	}

	visible := p.visibleRows()
	start, end := p.scrollWindow(len(p.filtered), visible)
	for i := start; i < end; i++ {
		sb.WriteString(p.renderRow(p.filtered[i], i == p.cursor))
		sb.WriteString("\n")
	}

	if len(p.filtered) > visible {
		sb.WriteString(styles.Subtitle.Render(
			fmt.Sprintf("%d-%d of %d", start+1, end, len(p.filtered))))
	}
	return sb.String()
}

func (p *Pane) renderFilterLine() string {
	segment := func(label, value string, active bool) string {
		text := label + ":" + value
		if active {
			return styles.StatusOK.Render(text)
		}
		return styles.Subtitle.Render(text)
	}
	return segment("s", p.criteria.Status, p.criteria.Status != todo.FilterAll) + "  " +
		segment("p", p.criteria.Priority, p.criteria.Priority != todo.FilterAll) + "  " +
		segment("d", string(p.criteria.Due), p.criteria.Due != todo.DueAll)
}

func (p *Pane) renderRow(t domain.Todo, selected bool) string {
	due := "-"
	if parsed, ok := t.DueTime(); ok {
		due = parsed.Format("Jan 02")
	}

	line := fmt.Sprintf("%s %-7s %s %s  %s",
		widgets.PriorityMark(t.Priority),
		due,
		widgets.StatusBadge(t.Status),
		widgets.PriorityBadge(t.Priority),
		t.Notes,
	)

	if t.ID == p.deletingID {
		return styles.PendingRow.Render("deleting " + t.Notes + "...")
	}
	if selected {
		return styles.SelectedRow.Render("> " + line)
	}
	return "  " + line
}

func (p *Pane) visibleRows() int {
	rows := p.height - 8
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (p *Pane) scrollWindow(total, visible int) (int, int) {
	if p.cursor < p.scrollY {
		p.scrollY = p.cursor
	}
	if p.cursor >= p.scrollY+visible {
		p.scrollY = p.cursor - visible + 1
	}
	end := p.scrollY + visible
	if end > total {
		end = total
	}
	return p.scrollY, end
}

func cycleStatus(current string) string {
	order := []string{todo.FilterAll, domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted}
	return cycle(order, current)
}

func cyclePriority(current string) string {
	order := []string{todo.FilterAll, domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	return cycle(order, current)
}

func cycleDue(current todo.DueFilter) todo.DueFilter {
	order := []string{string(todo.DueAll), string(todo.DueToday), string(todo.DueUpcoming), string(todo.DueOverdue)}
	return todo.DueFilter(cycle(order, string(current)))
}

func cycle(order []string, current string) string {
	for i, v := range order {
		if v == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
