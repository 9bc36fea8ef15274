package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "vibetasks",
	Short:   "A vibey task manager for good vibes only ✨",
	Long:    `vibetasks tracks personal tasks with priorities, due dates, categories and time tracking in a single local JSON file.`,
	Version: "1.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "vibetasks",
			Level:  log.WarnLevel,
		})
		if verbose {
			logger.SetLevel(log.DebugLevel)
			logger.SetReportTimestamp(true)
		}
		log.SetDefault(logger)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	storeFile  string
	configFile string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFile, "file", "", "Task file (default from config, $VIBETASKS_FILE or ~/.vibe_tasks.json)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.vibetasks/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(addCmd, listCmd, showCmd, completeCmd, statusCmd, deleteCmd)
	rootCmd.AddCommand(addCategoriesCmd)
	rootCmd.AddCommand(startTimeCmd, stopTimeCmd, timeReportCmd)
	rootCmd.AddCommand(checkNotificationsCmd)
	rootCmd.AddCommand(historyCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
