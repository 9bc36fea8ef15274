package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fentz26/vibetasks/internal/notify"
	"github.com/fentz26/vibetasks/internal/scheduler"
)

var checkNotificationsCmd = &cobra.Command{
	Use:   "check-notifications",
	Short: "Send alerts for tasks that are due soon",
	Long: `Check every task and send a desktop notification for those due within the
notification window. A task is not notified again until the cooldown has passed.`,
	Args: cobra.NoArgs,
	RunE: runCheckNotifications,
}

var (
	notifyDryRun bool
	notifyWatch  time.Duration
)

// newNotifier builds the delivery backend from notifications.command.
var newNotifier = notify.New

func init() {
	checkNotificationsCmd.Flags().BoolVar(&notifyDryRun, "dry-run", false, "Print alerts instead of sending them and do not record them")
	checkNotificationsCmd.Flags().DurationVar(&notifyWatch, "watch", 0, "Repeat the check at this interval until interrupted (e.g. 15m)")
}

func runCheckNotifications(cmd *cobra.Command, args []string) error {
	if notifyWatch == 0 {
		return checkOnce(cmd.Context())
	}

	cfg := &scheduler.Config{Interval: notifyWatch, RunImmediately: true}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid --watch: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sch := scheduler.New(ctx, checkOnce, cfg)
	sch.Start()
	fmt.Printf("👀 Watching for due tasks every %s (Ctrl+C to stop)\n", notifyWatch)

	<-sch.Done()
	sch.Stop()

	stats := sch.GetStats()
	log.Debug("watch finished", "runs", stats.Runs, "failures", stats.Failures)
	return nil
}

// checkOnce runs one load, scan and save. The store is written only when a
// notification was delivered.
func checkOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	var n notify.Notifier = &notify.WriterNotifier{W: os.Stdout}
	if !notifyDryRun {
		n, err = newNotifier(s.cfg.Notifications.Command, os.Stdout)
		if err != nil {
			return err
		}
	}

	res := notify.Check(ctx, s.store, s.now, s.cfg.Policy(), n)
	log.Debug("notification check", "fired", len(res.Fired), "failed", len(res.Failed))

	if notifyDryRun {
		if len(res.Fired) == 0 {
			fmt.Println("No tasks due soon")
		}
		return nil
	}

	if len(res.Fired) > 0 {
		if err := s.store.Save(); err != nil {
			return err
		}
	}

	if len(res.Fired) > 0 || len(res.Failed) > 0 {
		s.openJournal()
		ids := make([]int, 0, len(res.Fired))
		for _, ev := range res.Fired {
			ids = append(ids, ev.TaskID)
		}
		result := "success"
		if len(res.Failed) > 0 {
			result = "partial"
			if len(res.Fired) == 0 {
				result = "failed"
			}
		}
		s.record("notify.check", map[string]interface{}{"notified": ids},
			result, outcome{details: fmt.Sprintf("fired=%d failed=%d", len(res.Fired), len(res.Failed))})
	}

	if len(res.Failed) > 0 {
		return fmt.Errorf("%d notification(s) could not be delivered", len(res.Failed))
	}
	return nil
}
