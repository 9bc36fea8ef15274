package tui

import (
	"github.com/fentz26/vibetasks/internal/models"
)

// Backend performs the board's reads and writes. Each call loads and saves
// the task file on its own, so no lock is held between key presses.
type Backend interface {
	// Tasks returns a snapshot of every task in id order.
	Tasks() ([]models.Task, error)
	// Complete marks the task Done.
	Complete(id int) error
	// ToggleTimer starts the timer if it is stopped and stops it otherwise.
	// It reports whether the timer is now running.
	ToggleTimer(id int) (bool, error)
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type actionDoneMsg struct {
	message string
}

type errMsg struct {
	err error
}
