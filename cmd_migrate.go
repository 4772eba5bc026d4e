package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trendmindAPI/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres tables used by the postgres store",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.Store.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), 30*time.Second)
	defer cancel()

	pool, err := db.Open(ctx, db.PoolConfig{URL: cfg.Store.DatabaseURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	logger.Info("migrations applied")
	return nil
}
