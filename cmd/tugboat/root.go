package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tugboat/internal/config"
	"tugboat/internal/logging"
)

// commandContext lazily loads configuration and the logger for
// subcommands.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func (ctx *commandContext) ensureConfig() (*config.Config, error) {
	if ctx.cfg != nil {
		return ctx.cfg, nil
	}
	cfg, _, _, err := config.Load(*ctx.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	ctx.cfg = cfg
	ctx.logger = logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "tugboat",
		Short:         "Tugboat tracker upload automation CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newDupecheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
