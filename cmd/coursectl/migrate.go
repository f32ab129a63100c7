package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yigit/psychcourse/internal/app/migrations"
	"github.com/yigit/psychcourse/internal/bootstrap"
	"github.com/yigit/psychcourse/internal/config"
	"github.com/yigit/psychcourse/internal/db"
)

func newMigrateCmd() *cobra.Command {
	var (
		configPath string
		dir        string
		listOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			bootstrap.SetupLogger(cfg)
			if dir == "" {
				dir = cfg.Server.MigrationsDir
			}

			if listOnly {
				files, err := migrations.SQLFiles(dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(f))
				}
				return nil
			}

			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return bootstrap.RunMigrations(cmd.Context(), cfg, pool)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", bootstrap.ConfigPath(), "path to config.yaml")
	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to server.migrations_dir)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "print the migration files in apply order and exit")
	return cmd
}
