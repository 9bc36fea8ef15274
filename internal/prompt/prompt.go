// Package prompt collects interactive input with small Bubble Tea programs.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Prompter runs prompts against the given streams.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Stdio returns a Prompter on the process terminal.
func Stdio() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// Input asks for a line of text.
func (p *Prompter) Input(label string, allowEmpty bool) (string, error) {
	final, err := p.run(newInputModel(label, allowEmpty))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}

// Select asks for one of options and returns its index.
func (p *Prompter) Select(label string, options []string, def int) (int, error) {
	final, err := p.run(newSelectModel(label, options, def))
	if err != nil {
		return 0, err
	}
	m := final.(*selectModel)
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.cursor, nil
}

// MultiSelect asks for any subset of options and returns the chosen
// indexes in option order.
func (p *Prompter) MultiSelect(label string, options []string, preselected []int) ([]int, error) {
	final, err := p.run(newMultiSelectModel(label, options, preselected))
	if err != nil {
		return nil, err
	}
	m := final.(*multiSelectModel)
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.chosen(), nil
}

// --- Text input ---

type inputModel struct {
	label      string
	input      textinput.Model
	allowEmpty bool
	value      string
	warning    string
	cancelled  bool
	done       bool
}

func newInputModel(label string, allowEmpty bool) *inputModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Focus()
	return &inputModel{label: label, input: ti, allowEmpty: allowEmpty}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.input.Value())
			if v == "" && !m.allowEmpty {
				m.warning = "a value is required"
				return m, nil
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	if m.done {
		return ""
	}
	s := promptStyle.Render(m.label+": ") + m.input.View() + "\n"
	if m.warning != "" {
		s += hintStyle.Render(m.warning) + "\n"
	}
	return s
}

// --- Single select ---

type selectModel struct {
	label     string
	options   []string
	cursor    int
	cancelled bool
	done      bool
}

func newSelectModel(label string, options []string, def int) *selectModel {
	if def < 0 || def >= len(options) {
		def = 0
	}
	return &selectModel{label: label, options: options, cursor: def}
}

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *selectModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.label) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+opt) + "\n")
		} else {
			b.WriteString("  " + opt + "\n")
		}
	}
	b.WriteString(hintStyle.Render("↑/↓ move • enter select • esc cancel") + "\n")
	return b.String()
}

// --- Multi select ---

type multiSelectModel struct {
	label     string
	options   []string
	cursor    int
	selected  map[int]bool
	cancelled bool
	done      bool
}

func newMultiSelectModel(label string, options []string, preselected []int) *multiSelectModel {
	m := &multiSelectModel{label: label, options: options, selected: make(map[int]bool)}
	for _, i := range preselected {
		if i >= 0 && i < len(options) {
			m.selected[i] = true
		}
	}
	return m
}

func (m *multiSelectModel) Init() tea.Cmd { return nil }

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case " ", "x":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *multiSelectModel) chosen() []int {
	var out []int
	for i := range m.options {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m *multiSelectModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.label) + "\n")
	for i, opt := range m.options {
		box := "[ ]"
		if m.selected[i] {
			box = "[x]"
		}
		line := box + " " + opt
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(hintStyle.Render("↑/↓ move • space toggle • enter confirm • esc cancel") + "\n")
	return b.String()
}
