package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/fleetdepot/depot/internal/config"
	"github.com/fleetdepot/depot/internal/db"
	"github.com/fleetdepot/depot/internal/logger"
)

const defaultConfigPath = "./cmd/app/config.yml"

// Execute runs the depot command line. Without a subcommand it serves the API.
func Execute() error {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "depot",
		Short:         "warehouse and fleet sales API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(
		serveCommand(&configPath),
		migrateCommand(&configPath),
		etlCommand(&configPath),
		seedCommand(&configPath),
	)

	return rootCmd.ExecuteContext(context.Background())
}

// loadConfig reads the config and installs the global logger.
func loadConfig(path string) (*config.AppConfig, error) {
	conf, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to set log level -> %w", err)
	}

	return conf, nil
}

// databaseURL prefers DATABASE_URL over the postgres section.
func databaseURL(conf *config.AppConfig) string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}

	return conf.Postgres.URL()
}

func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return postgresDB, nil
}
