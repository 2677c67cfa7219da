package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"family-planner/internal/config"
	"family-planner/internal/repository"
	"family-planner/internal/service"
	"family-planner/internal/ui"
)

// app bundles the wired services behind every command.
type app struct {
	cfg      config.Config
	auth     *service.AuthService
	access   *service.AccessPolicy
	tasks    *service.TaskService
	reminder *service.ReminderService
	close    func()
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "familyplanner",
		Short: "Семейный планировщик задач в терминале",
		Long: "Локальный планировщик для одной семьи: вход по имени и пин-коду,\n" +
			"задачи по категориям, группы «сегодня/завтра/неделя/месяц» и календарь.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer a.close()
			return ui.Run(cmd.Context(), a.auth, a.tasks, a.access)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.ResolveConfigPath(), "путь к файлу конфигурации")

	root.AddCommand(newReportCmd(&configPath))
	root.AddCommand(newRemindCmd(&configPath))
	return root
}

// buildApp loads the config, opens the snapshot store and wires services,
// mirroring the app's single composition root.
func buildApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repository.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	snapshots := repository.NewSnapshotRepository(db)
	taskRepo := repository.NewTaskRepository(snapshots)
	sessionRepo := repository.NewSessionRepository(snapshots)

	access, err := service.NewAccessPolicy(cfg.Access)
	if err != nil {
		closeDB()
		return nil, err
	}

	tasks, err := service.NewTaskService(ctx, taskRepo, access)
	if err != nil {
		closeDB()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		auth:     service.NewAuthService(cfg.ModelUsers(), sessionRepo),
		access:   access,
		tasks:    tasks,
		reminder: service.NewReminderService(tasks, access),
		close:    closeDB,
	}, nil
}
