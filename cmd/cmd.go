package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/internal/config"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

var cmd = &cobra.Command{
	Use:          "challenge",
	Long:         `Wallet balance view, swap quotes and summation utilities`,
	SilenceUsage: true,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger: %v", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewMigrateCommand(),
		NewViewCommand(),
		NewImportCommand(),
		NewSwapCommand(),
		NewSumCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
