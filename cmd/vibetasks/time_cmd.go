package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fentz26/vibetasks/internal/render"
	"github.com/fentz26/vibetasks/internal/tracker"
)

var startTimeCmd = &cobra.Command{
	Use:   "start-time [task-id]",
	Short: "Start tracking time for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runStartTime,
}

var stopTimeCmd = &cobra.Command{
	Use:   "stop-time [task-id]",
	Short: "Stop tracking time for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runStopTime,
}

var timeReportCmd = &cobra.Command{
	Use:   "time-report [task-id]",
	Short: "Show time tracking report for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimeReport,
}

func runStartTime(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return mutate("time.start", map[string]int{"id": id}, func(s *session) (outcome, error) {
		task, err := s.store.Get(id)
		if err != nil {
			return outcome{taskID: id}, err
		}
		if err := tracker.Start(task, s.now); err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("⏱️ Started tracking time for task %d\n", id)
		return outcome{taskID: id}, nil
	})
}

func runStopTime(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return mutate("time.stop", map[string]int{"id": id}, func(s *session) (outcome, error) {
		task, err := s.store.Get(id)
		if err != nil {
			return outcome{taskID: id}, err
		}
		closed, err := tracker.Stop(task, s.now)
		if err != nil {
			return outcome{taskID: id}, err
		}
		fmt.Printf("⏹️ Stopped tracking time for task %d (%s)\n", id, render.Hours(closed.Duration()))
		return outcome{taskID: id, details: closed.Duration().String()}, nil
	})
}

func runTimeReport(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return view(func(s *session) error {
		task, err := s.store.Get(id)
		if err != nil {
			return err
		}
		render.TimeReport(os.Stdout, tracker.Build(task, s.now))
		return nil
	})
}
