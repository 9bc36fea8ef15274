// Package tui provides the interactive task board.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/render"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(errorColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

const (
	modeList   = "list"
	modeDetail = "detail"
)

// filterNames cycles ALL, then each status in order.
var filterNames = []string{"ALL", "TODO", "IN PROGRESS", "DONE"}

// App is the board model.
type App struct {
	backend     Backend
	tasks       []models.Task
	selectedIdx int
	mode        string
	filterIdx   int
	message     string
	isError     bool
	loading     bool
	width       int
	height      int

	// now is swapped in tests.
	now func() time.Time
}

// New creates a board on backend.
func New(backend Backend) *App {
	return &App{
		backend: backend,
		mode:    modeList,
		loading: true,
		now:     time.Now,
	}
}

// Run starts the board in the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.fetchTasks()
}

func (a *App) fetchTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := a.backend.Tasks()
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks}
	}
}

// visible returns the tasks that pass the current filter.
func (a *App) visible() []models.Task {
	if a.filterIdx == 0 {
		return a.tasks
	}
	want := models.Statuses()[a.filterIdx-1]
	var out []models.Task
	for _, t := range a.tasks {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}

func (a *App) selected() *models.Task {
	tasks := a.visible()
	if a.selectedIdx < 0 || a.selectedIdx >= len(tasks) {
		return nil
	}
	t := tasks[a.selectedIdx]
	return &t
}

func (a *App) clampSelection() {
	n := len(a.visible())
	if a.selectedIdx >= n {
		a.selectedIdx = n - 1
	}
	if a.selectedIdx < 0 {
		a.selectedIdx = 0
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tasksLoadedMsg:
		a.loading = false
		a.tasks = msg.tasks
		a.clampSelection()

	case actionDoneMsg:
		a.message = msg.message
		a.isError = false
		return a, a.fetchTasks()

	case errMsg:
		a.loading = false
		a.message = msg.err.Error()
		a.isError = true

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "esc":
		a.mode = modeList

	case "up", "k":
		if a.mode == modeList && a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case "down", "j":
		if a.mode == modeList && a.selectedIdx < len(a.visible())-1 {
			a.selectedIdx++
		}

	case "enter":
		if a.selected() != nil {
			a.mode = modeDetail
		}

	case "tab", "f":
		a.filterIdx = (a.filterIdx + 1) % len(filterNames)
		a.selectedIdx = 0

	case "r":
		a.loading = true
		return a, a.fetchTasks()

	case "d":
		if t := a.selected(); t != nil {
			return a, a.complete(t.ID)
		}

	case "t":
		if t := a.selected(); t != nil {
			return a, a.toggleTimer(t.ID)
		}
	}
	return a, nil
}

func (a *App) complete(id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.backend.Complete(id); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("🎉 Task %d marked as done!", id)}
	}
}

func (a *App) toggleTimer(id int) tea.Cmd {
	return func() tea.Msg {
		running, err := a.backend.ToggleTimer(id)
		if err != nil {
			return errMsg{err}
		}
		if running {
			return actionDoneMsg{fmt.Sprintf("⏱️ Started tracking time for task %d", id)}
		}
		return actionDoneMsg{fmt.Sprintf("⏹️ Stopped tracking time for task %d", id)}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✨ vibetasks") + "\n\n")

	switch {
	case a.loading:
		b.WriteString("Loading tasks...\n")
	case a.mode == modeDetail && a.selected() != nil:
		b.WriteString(panelStyle.Render(strings.TrimRight(render.Task(a.selected(), a.now()), "\n")) + "\n")
	default:
		b.WriteString(a.listView())
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render(fmt.Sprintf("Filter: %s • %d tasks", filterNames[a.filterIdx], len(a.visible()))) + "\n")
	if a.message != "" {
		if a.isError {
			b.WriteString(errorStyle.Render(a.message) + "\n")
		} else {
			b.WriteString(a.message + "\n")
		}
	}
	b.WriteString(helpStyle.Render("↑/↓ move • enter details • d done • t timer • f filter • r refresh • q quit") + "\n")
	return b.String()
}

func (a *App) listView() string {
	tasks := a.visible()
	if len(tasks) == 0 {
		return "No tasks found. Add some tasks to get started! ✨\n"
	}

	var b strings.Builder
	for i, t := range tasks {
		timer := ""
		if t.Tracking() {
			timer = " 🔄"
		}
		line := fmt.Sprintf("#%-3d %-40s %s %s%s", t.ID, truncate(t.Title, 40), t.Status.Label(), t.Priority, timer)
		if i == a.selectedIdx {
			b.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(taskItemStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
