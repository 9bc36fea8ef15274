// Package models defines the core domain types for vibetasks.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a task. Values are ordered: Low < Medium < High < Urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = [...]string{"Low", "Medium", "High", "Urgent"}

// Priorities lists every priority in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

func (p Priority) String() string {
	if p < PriorityLow || p > PriorityUrgent {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Rank returns the sort weight of the priority.
func (p Priority) Rank() int { return int(p) }

// ParsePriority matches a priority label case-insensitively.
func ParsePriority(s string) (Priority, error) {
	for i, name := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Priority(i), nil
		}
	}
	return PriorityLow, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
}

func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityLow || p > PriorityUrgent {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Status is the progress state of a task. Any status may be set from any other.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusDone
)

var statusNames = [...]string{"Todo", "InProgress", "Done"}

// Statuses lists every status in declaration order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

func (s Status) String() string {
	if s < StatusTodo || s > StatusDone {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Label is the human-readable form used in prompts and listings.
func (s Status) Label() string {
	if s == StatusInProgress {
		return "In Progress"
	}
	return s.String()
}

// ParseStatus matches a status label case-insensitively. "in-progress",
// "in_progress" and "in progress" are accepted for StatusInProgress.
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	for i, name := range statusNames {
		if strings.EqualFold(norm, name) {
			return Status(i), nil
		}
	}
	return StatusTodo, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

func (s Status) MarshalText() ([]byte, error) {
	if s < StatusTodo || s > StatusDone {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Category is a label from the fixed palette.
type Category int

const (
	CategoryWork Category = iota
	CategoryPersonal
	CategoryStudy
	CategoryHealth
	CategoryShopping
)

var categoryNames = [...]string{"Work", "Personal", "Study", "Health", "Shopping"}

// Palette returns every category in palette order.
func Palette() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryStudy, CategoryHealth, CategoryShopping}
}

func (c Category) String() string {
	if c < CategoryWork || c > CategoryShopping {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c belongs to the palette.
func (c Category) Valid() bool {
	return c >= CategoryWork && c <= CategoryShopping
}

// ParseCategory matches a palette label case-insensitively.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Category(i), nil
		}
	}
	return 0, &InvalidCategoryError{Label: s}
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &InvalidCategoryError{Label: c.String()}
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TimeSession is one closed interval of tracked work.
type TimeSession struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start, never negative.
func (s TimeSession) Duration() time.Duration {
	d := s.End.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Task is a single user-tracked to-do item.
type Task struct {
	ID                 int           `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	Priority           Priority      `json:"priority"`
	Status             Status        `json:"status"`
	DueDate            *time.Time    `json:"due_date,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	Categories         []Category    `json:"categories,omitempty"`
	TimeSessions       []TimeSession `json:"time_sessions,omitempty"`
	ActiveSessionStart *time.Time    `json:"active_session_start,omitempty"`
	LastNotifiedAt     *time.Time    `json:"last_notified_at,omitempty"`
}

// Tracking reports whether a time session is currently open.
func (t *Task) Tracking() bool {
	return t.ActiveSessionStart != nil
}

// HasCategory reports whether c is assigned to the task.
func (t *Task) HasCategory(c Category) bool {
	for _, have := range t.Categories {
		if have == c {
			return true
		}
	}
	return false
}
