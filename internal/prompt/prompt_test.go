package prompt

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestSelectModel(t *testing.T) {
	m := newSelectModel("Select priority", []string{"Low", "Medium", "High", "Urgent"}, 0)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyUp))
	_, cmd := m.Update(key(tea.KeyEnter))

	if m.cursor != 1 {
		t.Errorf("Expected cursor on Medium, got %d", m.cursor)
	}
	if cmd == nil || m.cancelled {
		t.Error("Enter should quit without cancelling")
	}
}

func TestSelectModelBounds(t *testing.T) {
	m := newSelectModel("Status", []string{"Todo", "In Progress", "Done"}, 9)
	if m.cursor != 0 {
		t.Errorf("Out-of-range default should reset to 0, got %d", m.cursor)
	}

	m.Update(key(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("Cursor moved above first option: %d", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m.Update(key(tea.KeyDown))
	}
	if m.cursor != 2 {
		t.Errorf("Cursor moved past last option: %d", m.cursor)
	}
}

func TestSelectModelCancel(t *testing.T) {
	m := newSelectModel("Status", []string{"Todo"}, 0)
	m.Update(key(tea.KeyEsc))
	if !m.cancelled {
		t.Error("Esc should cancel")
	}
}

func TestMultiSelectModel(t *testing.T) {
	m := newMultiSelectModel("Categories", []string{"Work", "Personal", "Study"}, []int{2, 7})

	m.Update(runes(" ")) // toggle Work on
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	m.Update(runes("x")) // toggle Study off
	m.Update(key(tea.KeyEnter))

	if got := m.chosen(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Expected [0], got %v", got)
	}
}

func TestMultiSelectView(t *testing.T) {
	m := newMultiSelectModel("Categories", []string{"Work", "Personal"}, []int{1})
	view := m.View()
	if !strings.Contains(view, "[x] Personal") || !strings.Contains(view, "[ ] Work") {
		t.Errorf("Unexpected view:\n%s", view)
	}
}

func TestInputModelRequiresValue(t *testing.T) {
	m := newInputModel("Task title", false)

	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil || m.done {
		t.Fatal("Empty input should not be accepted")
	}
	if m.warning == "" {
		t.Error("Expected a warning for empty input")
	}

	m.Update(runes("Buy milk"))
	m.Update(key(tea.KeyEnter))
	if !m.done || m.value != "Buy milk" {
		t.Errorf("Expected value 'Buy milk', got %q (done=%v)", m.value, m.done)
	}
}

func TestInputModelAllowEmpty(t *testing.T) {
	m := newInputModel("Description (optional)", true)
	m.Update(key(tea.KeyEnter))
	if !m.done || m.value != "" {
		t.Errorf("Expected empty accepted value, got %q", m.value)
	}
}
