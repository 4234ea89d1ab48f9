package main

import (
	"fmt"

	"github.com/aussiebroadwan/spotter/internal/portal/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the configured store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", app.LoadConfig().StoreDriver)
		return nil
	},
}
