package main

import (
	"fmt"

	"github.com/aussiebroadwan/spotter/internal/portal/service"
	"github.com/spf13/cobra"
)

var (
	mfaIssuer string
	mfaForce  bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator account tooling",
}

var enrollMFACmd = &cobra.Command{
	Use:   "enroll-mfa <user-id>",
	Short: "Generate a TOTP secret for an administrator",
	Long: `Generate a TOTP secret for an administrator. Once enrolled, starting an
impersonation session requires a current code in the "otp" field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		enrollment, err := (&service.MFAService{Store: db, Issuer: mfaIssuer}).EnrollTOTP(ctx, args[0], mfaForce)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "account: %s\n", enrollment.Account)
		fmt.Fprintf(out, "secret:  %s\n", enrollment.Secret)
		fmt.Fprintf(out, "url:     %s\n", enrollment.URL)
		return nil
	},
}

var disableMFACmd = &cobra.Command{
	Use:   "disable-mfa <user-id>",
	Short: "Remove an administrator's TOTP secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := (&service.MFAService{Store: db}).DisableTOTP(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "totp disabled")
		return nil
	},
}

func init() {
	enrollMFACmd.Flags().StringVar(&mfaIssuer, "issuer", "Spotter", "issuer shown in authenticator apps")
	enrollMFACmd.Flags().BoolVar(&mfaForce, "force", false, "replace an existing secret")
	adminCmd.AddCommand(enrollMFACmd, disableMFACmd)
}
