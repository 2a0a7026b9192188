package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toan5ks1/code-challenge/cmd/migrate"
	"github.com/toan5ks1/code-challenge/internal/config"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema",
	}
	defaultDatabaseURL := func() string {
		return config.Load().Modules.Wallet.Postgres.MigrateURL()
	}
	cmd.AddCommand(
		migrate.NewMigrateUpCommand(defaultDatabaseURL),
		migrate.NewMigrateDownCommand(defaultDatabaseURL),
	)
	return cmd
}
