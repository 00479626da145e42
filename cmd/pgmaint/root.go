package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pgmaint/internal/config"
	"pgmaint/internal/logging"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "pgmaint",
		Short:        "PG maintenance backend: owner and tenant sessions, tenants and complaints",
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")

	cmd.AddCommand(newServeCmd(opts), newOwnerCmd(opts))
	return cmd
}

// load reads configuration and builds the process logger.
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Dev: cfg.Log.Dev})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
