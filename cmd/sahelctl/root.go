package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/amirphl/Sahel-Estates/config"
	"github.com/amirphl/Sahel-Estates/logging"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// env is the state shared by subcommands once the root command has loaded configuration
type env struct {
	cfg    *config.ProductionConfig
	logger *slog.Logger
	db     *gorm.DB
}

func newRootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "sahelctl",
		Short:         "Operator tooling for the Sahel Estates CMS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadProductionConfig()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logging.New(config.LoggingConfig{Level: cfg.Logging.Level, Format: "text"}).Logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}

	cmd.AddCommand(newMigrateCmd(e))
	cmd.AddCommand(newAdminCmd(e))

	return cmd
}

// open connects to the database on first use
func (e *env) open(ctx context.Context) (*gorm.DB, *sql.DB, error) {
	if e.db == nil {
		db, err := gorm.Open(postgres.Open(e.cfg.Database.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Discard,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		e.db = db
	}

	sqlDB, err := e.db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return e.db, sqlDB, nil
}

func (e *env) close() {
	if e.db == nil {
		return
	}
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
