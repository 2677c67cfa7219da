package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Напечатать ежедневный отчёт по каждому пользователю",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			now := time.Now()
			for i, user := range a.cfg.ModelUsers() {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				u := user
				fmt.Fprintln(cmd.OutOrStdout(), a.reminder.DailySummary(&u, now))
			}
			return nil
		},
	}
}
