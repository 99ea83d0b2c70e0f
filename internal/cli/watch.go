package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javoxirone/coffee-sales-management/internal/scheduler"
	"github.com/javoxirone/coffee-sales-management/pkg/logger"
)

func (a *App) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Emit the configured periodic summary until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched := scheduler.NewScheduler(a.cfg.Reporting, a.sales, a.reports, a.out, logger.Named(a.logger, "scheduler"))
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(a.out, "Watching sales on schedule %q (%s summaries). Press Ctrl+C to stop.\n",
				a.cfg.Reporting.CronSchedule, a.cfg.Reporting.DefaultPeriod)
			<-ctx.Done()
			return nil
		},
	}
}
