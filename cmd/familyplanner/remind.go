package main

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"family-planner/internal/service"
)

func newRemindCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Печатать ежедневный отчёт по расписанию (report_time из конфига)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			scheduler := service.NewSchedulerService(time.Local)
			if _, err := scheduler.ScheduleDaily(a.cfg.ReportTime, func() {
				now := time.Now()
				for _, user := range a.cfg.ModelUsers() {
					u := user
					fmt.Fprintln(cmd.OutOrStdout(), a.reminder.DailySummary(&u, now))
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}); err != nil {
				return fmt.Errorf("schedule report: %w", err)
			}

			scheduler.Start()
			defer scheduler.Stop()

			log.Printf("[info] reminder scheduled daily at %s", a.cfg.ReportTime)
			<-ctx.Done()
			log.Println("Shutdown complete.")
			return nil
		},
	}
}
