package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bnema/quota-sentinel/internal/application"
)

func newWatchCmd(app *app) *cobra.Command {
	var once bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll quota usage on an interval and send budget notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, app, once, quiet)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single poll cycle and exit")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress the rendered status view, log only")

	return cmd
}

func runWatch(cmd *cobra.Command, app *app, once, quiet bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.log.Info("watch started")

	interval, err := app.watchCycle(ctx, cmd, quiet)
	if err != nil {
		return err
	}
	if once {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.log.Info("watch stopped")
			return nil
		case <-ticker.C:
			next, err := app.watchCycle(ctx, cmd, quiet)
			if err != nil {
				return err
			}
			if next != interval {
				app.log.WithField("interval", next).Info("refresh interval changed")
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// watchCycle reloads settings, runs one poll cycle, and returns the refresh
// interval currently configured. Settings edits apply on the next cycle
// without restarting the watcher; the notification dedup log lives on the app
// and survives the per-cycle monitor rebuild.
func (a *app) watchCycle(ctx context.Context, cmd *cobra.Command, quiet bool) (time.Duration, error) {
	cfg, err := a.store.Load()
	if err != nil {
		return 0, err
	}

	monitor, err := a.monitor(cfg, "")
	if err != nil {
		return 0, err
	}

	if err := a.runCycle(ctx, cmd, monitor, cfg.NotificationsEnabled, quiet); err != nil {
		return 0, err
	}
	return time.Duration(cfg.RefreshIntervalMinutes) * time.Minute, nil
}

func (a *app) runCycle(ctx context.Context, cmd *cobra.Command, monitor *application.Monitor, notify, quiet bool) error {
	report := monitor.Refresh(ctx)
	if err := ctx.Err(); err != nil {
		return nil
	}

	for _, tool := range report.Tools {
		if tool.Err != nil {
			a.log.WithError(tool.Err).WithField("tool", tool.Tool).Warn("fetch failed this cycle")
		}
	}
	a.log.WithField("status", report.WorstStatus()).Info("poll cycle complete")

	if notify {
		a.deliverNotifications(ctx, monitor, report)
	}

	if quiet {
		return nil
	}

	rendered, err := a.statusRenderer(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// deliverNotifications sends each pending event and records only successful
// deliveries, so a failed send retries on the next cycle.
func (a *app) deliverNotifications(ctx context.Context, monitor *application.Monitor, report application.Report) {
	for _, event := range report.PendingNotifications() {
		if err := a.notifier.Send(ctx, event); err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"tool":  event.Tool,
				"quota": event.Kind,
			}).Warn("notification delivery failed")
			continue
		}
		monitor.MarkNotified(event)
	}
}
