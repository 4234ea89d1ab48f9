package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the local user directory",
}

var usersImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Upsert organizations and users from a YAML file",
	Long: `Upsert organizations and users from a YAML file. The file is validated
as a whole and imported in one transaction.

Example:
  organizations:
    - id: org-1
      name: Iron Temple
      slug: iron-temple
  users:
    - id: 7c1f0d2e-5b8a-4c3e-9f10-2a6b7c8d9e0f
      email: owner@irontemple.example
      role: owner
      organization_id: org-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := (&service.SeedService{Store: db}).Import(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d organizations, %d users\n", res.Organizations, res.Users)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersImportCmd)
}
