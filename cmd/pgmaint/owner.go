package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pgmaint/internal/repositories"
	"pgmaint/internal/services"
	"pgmaint/pkg/database"
)

func newOwnerCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Manage owner accounts",
	}
	cmd.AddCommand(newOwnerCreateCmd(root))
	return cmd
}

func newOwnerCreateCmd(root *rootOptions) *cobra.Command {
	var in services.OwnerInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision an owner account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			if in.Name == "" {
				in.Name = in.Username
			}

			ctx := cmd.Context()
			pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Bootstrap(ctx, pool); err != nil {
				return err
			}

			svc := services.NewOwnerService(repositories.NewOwnerRepo(pool),
				services.NewBcryptHasher(cfg.Auth.BcryptCost), clockwork.NewRealClock(), logger)
			owner, err := svc.Provision(ctx, in)
			if err != nil {
				return err
			}

			logger.Info("Owner created", zap.String("username", owner.Username), zap.String("id", owner.ID.String()))
			fmt.Fprintf(cmd.OutOrStdout(), "created owner %s (%s)\n", owner.Username, owner.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, at least 6 characters (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name (defaults to the username)")
	cmd.Flags().StringVar(&in.Email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
