package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobtracker/jobtracker-go/internal/config"
	"github.com/jobtracker/jobtracker-go/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations to the SQL store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		switch cfg.StoreDriver {
		case repository.DriverMySQL, repository.DriverSQLite:
		default:
			return fmt.Errorf("store driver %q has no migrations", cfg.StoreDriver)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		db, err := repository.NewDB(ctx, cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.Migrate(db, cfg.StoreDriver); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}
