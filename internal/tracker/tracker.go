// Package tracker implements start/stop time tracking on a single task.
package tracker

import (
	"time"

	"github.com/fentz26/vibetasks/internal/models"
)

// Start opens a session at now. It fails if one is already open.
func Start(task *models.Task, now time.Time) error {
	if task.ActiveSessionStart != nil {
		return &models.TrackingError{ID: task.ID, Err: models.ErrAlreadyTracking}
	}
	start := now
	task.ActiveSessionStart = &start
	return nil
}

// Stop closes the open session at now and appends it to the task's sessions.
// If the clock moved backwards, the session ends at its start.
func Stop(task *models.Task, now time.Time) (models.TimeSession, error) {
	if task.ActiveSessionStart == nil {
		return models.TimeSession{}, &models.TrackingError{ID: task.ID, Err: models.ErrNotTracking}
	}

	start := *task.ActiveSessionStart
	end := now
	if end.Before(start) {
		end = start
	}

	session := models.TimeSession{Start: start, End: end}
	task.TimeSessions = append(task.TimeSessions, session)
	task.ActiveSessionStart = nil
	return session, nil
}

// SessionLine is one closed session in a report.
type SessionLine struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Report summarizes the time tracked on a task.
type Report struct {
	TaskID   int
	Title    string
	Sessions []SessionLine
	// Total is the sum of closed sessions only.
	Total time.Duration
	// Running is set when a session is open; Elapsed is its duration so far.
	Running      bool
	RunningSince time.Time
	Elapsed      time.Duration
}

// Build produces the report for task as of now.
func Build(task *models.Task, now time.Time) Report {
	r := Report{
		TaskID:   task.ID,
		Title:    task.Title,
		Sessions: make([]SessionLine, 0, len(task.TimeSessions)),
	}

	for _, s := range task.TimeSessions {
		d := s.Duration()
		r.Sessions = append(r.Sessions, SessionLine{Start: s.Start, End: s.End, Duration: d})
		r.Total += d
	}

	if task.ActiveSessionStart != nil {
		r.Running = true
		r.RunningSince = *task.ActiveSessionStart
		if elapsed := now.Sub(r.RunningSince); elapsed > 0 {
			r.Elapsed = elapsed
		}
	}
	return r
}

// Total returns the closed-session total for task.
func Total(task *models.Task) time.Duration {
	var total time.Duration
	for _, s := range task.TimeSessions {
		total += s.Duration()
	}
	return total
}
