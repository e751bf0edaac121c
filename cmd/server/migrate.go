package main

import (
	"context"
	"time"

	"placement-prep/internal/database/migration"
	dbpostgres "placement-prep/internal/database/postgres"
	"placement-prep/internal/database/seeder"

	"github.com/spf13/cobra"
)

const dbCommandTimeout = 2 * time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(log)

		ctx, cancel := context.WithTimeout(commandContext(cmd), dbCommandTimeout)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return migration.Runner{FS: migration.Embedded(), Logger: log}.Run(ctx, db.SQLDB())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample problems and companies (idempotent)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(log)

		ctx, cancel := context.WithTimeout(commandContext(cmd), dbCommandTimeout)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return seeder.Runner{Seeders: seeder.Defaults(), Logger: log}.Run(ctx, db)
	},
}
