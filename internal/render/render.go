// Package render formats tasks, time reports and journal entries for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fentz26/vibetasks/internal/audit"
	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/tracker"
)

const (
	dateTimeLayout = "2006-01-02 15:04"
	secondsLayout  = "2006-01-02 15:04:05"
)

var (
	ruleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan

	titleStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // Magenta

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	statusTodo       = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	statusDone       = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green

	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	priorityUrgent = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Presentation is the display metadata for a category. It is never stored
// on the task.
type Presentation struct {
	Color lipgloss.Color
	Emoji string
}

var categoryPresentation = map[models.Category]Presentation{
	models.CategoryWork:     {Color: lipgloss.Color("4"), Emoji: "💼"}, // Blue
	models.CategoryPersonal: {Color: lipgloss.Color("2"), Emoji: "🏠"}, // Green
	models.CategoryStudy:    {Color: lipgloss.Color("3"), Emoji: "📚"}, // Yellow
	models.CategoryHealth:   {Color: lipgloss.Color("1"), Emoji: "💪"}, // Red
	models.CategoryShopping: {Color: lipgloss.Color("6"), Emoji: "🛒"}, // Cyan
}

// CategoryPresentation returns the color and emoji for c.
func CategoryPresentation(c models.Category) Presentation {
	if p, ok := categoryPresentation[c]; ok {
		return p
	}
	return Presentation{Color: lipgloss.Color("7"), Emoji: "🏷️"}
}

// Category renders "💼 Work" in the category color.
func Category(c models.Category) string {
	p := CategoryPresentation(c)
	return lipgloss.NewStyle().Foreground(p.Color).Render(p.Emoji + " " + c.String())
}

// Status renders a status badge.
func Status(s models.Status) string {
	switch s {
	case models.StatusTodo:
		return statusTodo.Render("TODO")
	case models.StatusInProgress:
		return statusInProgress.Render("IN PROGRESS")
	case models.StatusDone:
		return statusDone.Render("DONE")
	default:
		return s.String()
	}
}

// Priority renders a priority badge.
func Priority(p models.Priority) string {
	switch p {
	case models.PriorityLow:
		return priorityLow.Render("LOW")
	case models.PriorityMedium:
		return priorityMedium.Render("MEDIUM")
	case models.PriorityHigh:
		return priorityHigh.Render("HIGH")
	case models.PriorityUrgent:
		return priorityUrgent.Render("URGENT")
	default:
		return p.String()
	}
}

// Hours formats d as fractional hours, e.g. "0.75 hours".
func Hours(d time.Duration) string {
	return fmt.Sprintf("%.2f hours", d.Hours())
}

func rule() string {
	return ruleStyle.Render(strings.Repeat("=", 50))
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value + "\n"
}

// Due renders a due date with its distance from now.
func Due(due, now time.Time) string {
	text := fmt.Sprintf("%s (%s)", due.Format(dateTimeLayout), humanize.RelTime(due, now, "ago", "from now"))
	if due.Before(now) {
		return overdueStyle.Render(text)
	}
	return dueStyle.Render(text)
}

// Task renders the full block for one task.
func Task(t *models.Task, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Task #%d: %s\n", t.ID, titleStyle.Render(t.Title)))
	if t.Description != "" {
		b.WriteString(field("Description", t.Description))
	}
	b.WriteString(field("Priority", Priority(t.Priority)))
	b.WriteString(field("Status", Status(t.Status)))

	if len(t.Categories) > 0 {
		names := make([]string, 0, len(t.Categories))
		for _, c := range t.Categories {
			names = append(names, Category(c))
		}
		b.WriteString(field("Categories", strings.Join(names, ", ")))
	}

	if t.ActiveSessionStart != nil {
		b.WriteString(fmt.Sprintf("🔄 Currently tracking time (started: %s)\n", t.ActiveSessionStart.Format("15:04:05")))
	}
	if len(t.TimeSessions) > 0 {
		b.WriteString(fmt.Sprintf("⏱️ Total time: %s\n", Hours(tracker.Total(t))))
	}

	if t.DueDate != nil {
		b.WriteString(field("Due", Due(*t.DueDate, now)))
	}
	b.WriteString(field("Created", t.CreatedAt.Format(dateTimeLayout)))
	return b.String()
}

// TaskList writes every task separated by rules.
func TaskList(w io.Writer, tasks []*models.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Add some tasks to get started! ✨")
		return
	}

	for _, t := range tasks {
		fmt.Fprintf(w, "\n%s\n", rule())
		fmt.Fprint(w, Task(t, now))
	}
	fmt.Fprintln(w, rule())
}

// TimeReport writes the session breakdown for one task.
func TimeReport(w io.Writer, r tracker.Report) {
	fmt.Fprintf(w, "\n%s\n", rule())
	fmt.Fprintf(w, "Time Report for Task #%d: %s\n", r.TaskID, titleStyle.Render(r.Title))

	if len(r.Sessions) == 0 && !r.Running {
		fmt.Fprintln(w, "No time entries recorded for this task.")
		fmt.Fprintln(w, rule())
		return
	}

	for i, s := range r.Sessions {
		fmt.Fprintf(w, "\nSession %d:\n", i+1)
		fmt.Fprintf(w, "Start: %s\n", s.Start.Format(secondsLayout))
		fmt.Fprintf(w, "End: %s\n", s.End.Format(secondsLayout))
		fmt.Fprintf(w, "Duration: %s\n", Hours(s.Duration))
	}

	if r.Running {
		fmt.Fprintln(w, "\nCurrent session:")
		fmt.Fprintf(w, "Started: %s\n", r.RunningSince.Format(secondsLayout))
		fmt.Fprintf(w, "Running for: %s\n", Hours(r.Elapsed))
	}

	fmt.Fprintf(w, "\nTotal time spent: %s\n", Hours(r.Total))
	fmt.Fprintln(w, rule())
}

// Journal writes audit entries as a table.
func Journal(w io.Writer, entries []audit.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tTASK\tOUTCOME\tDETAILS")
	for _, e := range entries {
		task := ""
		if e.TaskID > 0 {
			task = fmt.Sprintf("#%d", e.TaskID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(secondsLayout), e.Action, task, e.Outcome, truncate(e.Details, 50))
	}
	tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
