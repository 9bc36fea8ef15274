// Package notify decides when due-soon alerts fire and dispatches them.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fentz26/vibetasks/internal/models"
)

// Policy holds the due-soon alert thresholds.
type Policy struct {
	// Window is how far ahead of the due date alerts start.
	Window time.Duration
	// Cooldown is the minimum time between two alerts for one task.
	Cooldown time.Duration
	// Grace is how long after the due date alerts continue. Zero stops
	// alerting as soon as the due date passes.
	Grace time.Duration
}

// DefaultPolicy returns a 24h window, a 6h cooldown and no overdue grace.
func DefaultPolicy() Policy {
	return Policy{
		Window:   24 * time.Hour,
		Cooldown: 6 * time.Hour,
		Grace:    0,
	}
}

// Reason explains a decision.
type Reason string

const (
	ReasonDue       Reason = "due soon"
	ReasonNoDueDate Reason = "no due date"
	ReasonDone      Reason = "done"
	ReasonNotYet    Reason = "outside window"
	ReasonOverdue   Reason = "overdue past grace"
	ReasonCooldown  Reason = "cooldown"
)

// Decision is the outcome of evaluating one task.
type Decision struct {
	Fire      bool
	Reason    Reason
	Remaining time.Duration
}

// Decide evaluates task at now. It has no side effects.
func Decide(task *models.Task, now time.Time, p Policy) Decision {
	if task.DueDate == nil {
		return Decision{Reason: ReasonNoDueDate}
	}
	if task.Status == models.StatusDone {
		return Decision{Reason: ReasonDone}
	}

	remaining := task.DueDate.Sub(now)
	if remaining > p.Window {
		return Decision{Reason: ReasonNotYet, Remaining: remaining}
	}
	if remaining < -p.Grace {
		return Decision{Reason: ReasonOverdue, Remaining: remaining}
	}
	if task.LastNotifiedAt != nil && now.Sub(*task.LastNotifiedAt) < p.Cooldown {
		return Decision{Reason: ReasonCooldown, Remaining: remaining}
	}
	return Decision{Fire: true, Reason: ReasonDue, Remaining: remaining}
}

// Event is one due-soon alert.
type Event struct {
	TaskID    int
	Title     string
	Remaining time.Duration
}

// Summary is the notification title.
func (e Event) Summary() string {
	return "Task Due Soon!"
}

// Body is the notification text.
func (e Event) Body() string {
	return fmt.Sprintf("Task '%s' is due %s!", e.Title, DueIn(e.Remaining))
}

// DueIn phrases a remaining duration: "now", "in 45 minutes", "in 3 hours".
func DueIn(remaining time.Duration) string {
	if remaining <= 0 {
		return "now"
	}
	hours := int(remaining.Hours())
	switch {
	case hours == 0:
		mins := int(remaining.Minutes())
		if mins <= 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", mins)
	case hours == 1:
		return "in 1 hour"
	default:
		return fmt.Sprintf("in %d hours", hours)
	}
}

// Notifier delivers an alert.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// TaskLister is the part of the task store the gate scans.
type TaskLister interface {
	List() []*models.Task
}

// Result lists what a Check dispatched.
type Result struct {
	Fired  []Event
	Failed []Event
}

// Check scans every task, dispatches one alert per firing decision and
// stamps LastNotifiedAt on successful delivery. A failed delivery leaves the
// task untouched so the next check retries it.
func Check(ctx context.Context, tasks TaskLister, now time.Time, p Policy, n Notifier) Result {
	var res Result
	for _, task := range tasks.List() {
		d := Decide(task, now, p)
		if !d.Fire {
			log.Debug("notification suppressed", "task", task.ID, "reason", d.Reason)
			continue
		}

		ev := Event{TaskID: task.ID, Title: task.Title, Remaining: d.Remaining}
		if err := n.Notify(ctx, ev); err != nil {
			log.Warn("failed to send notification", "task", task.ID, "err", err)
			res.Failed = append(res.Failed, ev)
			continue
		}

		stamp := now
		task.LastNotifiedAt = &stamp
		res.Fired = append(res.Fired, ev)
	}
	return res
}
