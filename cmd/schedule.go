package cmd

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the backup on a cron schedule",
	Long:  "Runs the configured action every time the --cron expression fires, until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		s := gocron.NewScheduler(time.UTC)
		s.SingletonModeAll()

		_, err = s.Cron(cfg.Backup.Cron).Do(func() {
			slog.InfoContext(ctx, "Scheduled run starting", "cron", cfg.Backup.Cron)
			if _, rErr := doRun(ctx, cfg); rErr != nil {
				slog.ErrorContext(ctx, "Scheduled run failed", "error", rErr)
			}
		})
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		slog.InfoContext(ctx, "Scheduler started", "cron", cfg.Backup.Cron, "action", cfg.Backup.Action)
		s.StartAsync()
		<-ctx.Done()
		s.Stop()
		slog.InfoContext(ctx, "Scheduler stopped")
		return nil
	},
}
