package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository"
	"github.com/fleetdepot/depot/internal/repository/dao"
	"github.com/fleetdepot/depot/internal/seed"
	"github.com/fleetdepot/depot/internal/service"
)

const adminPasswordEnv = "DEPOT_ADMIN_PASSWORD"

func seedCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load reference data",
	}

	var file string
	bins := &cobra.Command{
		Use:   "bins",
		Short: "create the bins of a warehouse layout file that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := seed.LoadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read layout %s -> %w", file, err)
			}

			conf, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			postgresDB, err := openDatabase(conf)
			if err != nil {
				return err
			}

			svc := service.NewBinService(repository.NewBinRepository(dao.NewBinDAO(postgresDB)))
			created, err := svc.CreateMissingBins(cmd.Context(), layout.Bins())
			if err != nil {
				return fmt.Errorf("svc.CreateMissingBins -> %w", err)
			}
			zap.L().Info("bins seeded",
				zap.String("warehouse", layout.Warehouse),
				zap.Int("created", created),
				zap.Int("in_layout", len(layout.Bins())),
			)

			return nil
		},
	}
	bins.Flags().StringVarP(&file, "file", "f", "./cmd/app/layout.yml", "warehouse layout YAML")
	cmd.AddCommand(bins, seedAdminCommand(configPath))

	return cmd
}

// seedAdminCommand creates the first admin. Signup over HTTP cannot grant admin.
func seedAdminCommand(configPath *string) *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "create an admin account",
		Long:  "create an admin account; the password is read from DEPOT_ADMIN_PASSWORD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv(adminPasswordEnv)
			req := request.CreateUserRequest{SignupRequest: request.SignupRequest{
				Email:           email,
				Password:        password,
				ConfirmPassword: password,
				Name:            name,
				Role:            domain.RoleAdmin,
			}}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid admin account -> %w", err)
			}

			conf, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			postgresDB, err := openDatabase(conf)
			if err != nil {
				return err
			}

			svc := service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(postgresDB)))
			user, err := svc.Signup(cmd.Context(), req.ToDomain())
			if errors.Is(err, service.ErrUserEmailExists) {
				zap.L().Info("admin already exists", zap.String("email", email))
				return nil
			}
			if err != nil {
				return fmt.Errorf("svc.Signup -> %w", err)
			}
			zap.L().Info("admin created", zap.Uint("id", user.ID), zap.String("email", user.Email))

			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "Administrator", "admin display name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
