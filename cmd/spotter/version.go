package main

import (
	"fmt"

	"github.com/aussiebroadwan/spotter/internal/portal/app"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "spotter %s\n", app.BuildVersion)
	},
}
