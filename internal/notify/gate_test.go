package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/vibetasks/internal/models"
)

var base = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func dueTask(id int, due time.Time) *models.Task {
	return &models.Task{ID: id, Title: "task", DueDate: &due}
}

type taskList []*models.Task

func (l taskList) List() []*models.Task { return l }

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Notify(ctx context.Context, e Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func TestDecide(t *testing.T) {
	p := DefaultPolicy()
	recent := base.Add(-time.Hour)
	stale := base.Add(-7 * time.Hour)

	tests := []struct {
		name   string
		task   *models.Task
		fire   bool
		reason Reason
	}{
		{"no due date", &models.Task{ID: 1}, false, ReasonNoDueDate},
		{"due in 2h", dueTask(1, base.Add(2*time.Hour)), true, ReasonDue},
		{"due in exactly 24h", dueTask(1, base.Add(24*time.Hour)), true, ReasonDue},
		{"due in 25h", dueTask(1, base.Add(25*time.Hour)), false, ReasonNotYet},
		{"overdue", dueTask(1, base.Add(-time.Minute)), false, ReasonOverdue},
		{"due right now", dueTask(1, base), true, ReasonDue},
		{"done", func() *models.Task {
			task := dueTask(1, base.Add(time.Hour))
			task.Status = models.StatusDone
			return task
		}(), false, ReasonDone},
		{"notified recently", func() *models.Task {
			task := dueTask(1, base.Add(time.Hour))
			task.LastNotifiedAt = &recent
			return task
		}(), false, ReasonCooldown},
		{"cooldown elapsed", func() *models.Task {
			task := dueTask(1, base.Add(time.Hour))
			task.LastNotifiedAt = &stale
			return task
		}(), true, ReasonDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.task, base, p)
			assert.Equal(t, tt.fire, d.Fire)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecideGraceWindow(t *testing.T) {
	p := DefaultPolicy()
	p.Grace = time.Hour

	assert.True(t, Decide(dueTask(1, base.Add(-30*time.Minute)), base, p).Fire)
	assert.False(t, Decide(dueTask(1, base.Add(-2*time.Hour)), base, p).Fire)
}

func TestCheckSuppressesWithinCooldown(t *testing.T) {
	p := DefaultPolicy()
	task := dueTask(1, base.Add(20*time.Hour))
	tasks := taskList{task}
	rec := &recorder{}

	// First check fires
	res := Check(context.Background(), tasks, base, p, rec)
	require.Len(t, res.Fired, 1)
	require.NotNil(t, task.LastNotifiedAt)
	assert.Equal(t, base, *task.LastNotifiedAt)

	// Re-check inside the cooldown does not fire
	res = Check(context.Background(), tasks, base.Add(time.Minute), p, rec)
	assert.Empty(t, res.Fired)

	// After the cooldown, still inside 24h, it fires again
	later := base.Add(p.Cooldown)
	res = Check(context.Background(), tasks, later, p, rec)
	require.Len(t, res.Fired, 1)
	assert.Equal(t, later, *task.LastNotifiedAt)
	assert.Len(t, rec.events, 2)
}

func TestCheckFailedDeliveryRetries(t *testing.T) {
	task := dueTask(3, base.Add(2*time.Hour))
	rec := &recorder{err: errors.New("no display")}

	res := Check(context.Background(), taskList{task}, base, DefaultPolicy(), rec)

	assert.Empty(t, res.Fired)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].TaskID)
	assert.Nil(t, task.LastNotifiedAt, "failed delivery must not start the cooldown")
}

func TestCheckScansAllTasks(t *testing.T) {
	tasks := taskList{
		dueTask(1, base.Add(2*time.Hour)),
		{ID: 2, Title: "no date"},
		dueTask(3, base.Add(48*time.Hour)),
		dueTask(4, base.Add(30*time.Minute)),
	}
	rec := &recorder{}

	res := Check(context.Background(), tasks, base, DefaultPolicy(), rec)

	require.Len(t, res.Fired, 2)
	assert.Equal(t, 1, res.Fired[0].TaskID)
	assert.Equal(t, 4, res.Fired[1].TaskID)
}

func TestEventBody(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{2*time.Hour + 10*time.Minute, "Task 'Pay rent' is due in 2 hours!"},
		{time.Hour, "Task 'Pay rent' is due in 1 hour!"},
		{45 * time.Minute, "Task 'Pay rent' is due in 45 minutes!"},
		{20 * time.Second, "Task 'Pay rent' is due in 1 minute!"},
		{0, "Task 'Pay rent' is due now!"},
		{-5 * time.Minute, "Task 'Pay rent' is due now!"},
	}
	for _, tt := range tests {
		e := Event{TaskID: 1, Title: "Pay rent", Remaining: tt.remaining}
		assert.Equal(t, tt.want, e.Body())
	}
	assert.Equal(t, "Task Due Soon!", Event{}.Summary())
}
