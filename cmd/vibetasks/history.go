package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fentz26/vibetasks/internal/audit"
	"github.com/fentz26/vibetasks/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history [task-id]",
	Short: "Show recent changes from the audit journal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	taskID := 0
	if len(args) == 1 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		taskID = id
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Audit.Enabled {
		return fmt.Errorf("audit journal is disabled (audit.enabled: false)")
	}

	path, err := cfg.AuditPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		render.Journal(os.Stdout, nil)
		return nil
	}

	j, err := audit.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()
	if err := j.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("audit journal unavailable: %w", err)
	}

	entries, err := j.Recent(historyLimit, taskID)
	if err != nil {
		return err
	}
	render.Journal(os.Stdout, entries)
	return nil
}
