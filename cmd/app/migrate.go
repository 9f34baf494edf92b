package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/db"
)

func migrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply or roll back schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "migrate all the way up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				conf, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				if err = db.MigrateUp(databaseURL(conf)); err != nil {
					return fmt.Errorf("failed to migrate up -> %w", err)
				}
				zap.L().Info("migrated up")

				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				conf, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				if err = db.MigrateDown(databaseURL(conf)); err != nil {
					return fmt.Errorf("failed to migrate down -> %w", err)
				}
				zap.L().Info("migrated down one step")

				return nil
			},
		},
	)

	return cmd
}
