package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fentz26/vibetasks/internal/models"
	"github.com/fentz26/vibetasks/internal/prompt"
	"github.com/fentz26/vibetasks/internal/tracker"
	"github.com/fentz26/vibetasks/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse tasks interactively",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !prompt.IsInteractive(os.Stdin) {
		return fmt.Errorf("board needs a terminal; use list instead")
	}

	app := tui.New(storeBackend{})
	if err := app.Run(); err != nil {
		return fmt.Errorf("board error: %w", err)
	}
	return nil
}

// storeBackend serves the board from the task file.
type storeBackend struct{}

func (storeBackend) Tasks() ([]models.Task, error) {
	var out []models.Task
	err := view(func(s *session) error {
		for _, t := range s.store.List() {
			out = append(out, *t)
		}
		return nil
	})
	return out, err
}

func (storeBackend) Complete(id int) error {
	return mutate("task.complete", map[string]int{"id": id}, func(s *session) (outcome, error) {
		return outcome{taskID: id}, s.store.SetStatus(id, models.StatusDone)
	})
}

func (storeBackend) ToggleTimer(id int) (bool, error) {
	var running bool
	err := mutate("time.toggle", map[string]int{"id": id}, func(s *session) (outcome, error) {
		task, err := s.store.Get(id)
		if err != nil {
			return outcome{taskID: id}, err
		}
		if task.Tracking() {
			_, err = tracker.Stop(task, s.now)
		} else {
			err = tracker.Start(task, s.now)
			running = err == nil
		}
		return outcome{taskID: id}, err
	})
	return running, err
}
