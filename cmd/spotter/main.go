// Command spotter runs the portal service and its operational tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spotter",
	Short: "Spotter portal service",
	Long: `Spotter serves the owner, member, admin and booking portals.

Run without a subcommand to start the HTTP service. Configuration comes from
the environment; a .env file in the working directory is loaded when present.`,
	RunE:          runServe, // Default to serve mode.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		migrateCmd,
		inspectCmd,
		usersCmd,
		adminCmd,
		tokenCmd,
		impersonationCmd,
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
