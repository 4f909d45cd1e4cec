package main

import (
	"context"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database"
)

var gooseRunFunc = goose.RunContext // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, up-to VERSION, down, status, ...)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(cmd.Context(), args)
		},
	}
}

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := database.PrepareGoose(cli.conf.Database.Engine); err != nil {
		return err
	}
	return gooseRunFunc(ctx, args[0], cli.db.DB, database.MigrationsDir, args[1:]...)
}
