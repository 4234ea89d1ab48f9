package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/spotter/pkg/portalsdk"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiToken   string
	apiTimeout time.Duration
)

var impersonationCmd = &cobra.Command{
	Use:   "impersonation",
	Short: "Inspect or end your impersonation session on a running service",
	Long: `Inspect or end your impersonation session on a running service.

The bearer token is read from --token or SPOTTER_TOKEN and must belong to an
administrator.`,
}

var impersonationStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active impersonation session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		st, err := client.ImpersonationStatus(ctx)
		if err != nil {
			return err
		}
		if st.Session == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no active impersonation session")
			return nil
		}
		return printJSON(cmd, st.Session)
	},
}

var impersonationStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the active impersonation session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		ctx, cancel := contextWithTimeout(cmd)
		defer cancel()

		ended, err := client.StopImpersonation(ctx)
		if err != nil {
			return err
		}
		if ended == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to stop")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stopped session %s (was acting as %s)\n", ended.ID, ended.TargetUserID)
		return nil
	},
}

func apiClient() (*portalsdk.Client, error) {
	token := apiToken
	if token == "" {
		token = os.Getenv("SPOTTER_TOKEN")
	}
	if token == "" {
		return nil, errors.New("a bearer token is required (--token or SPOTTER_TOKEN)")
	}
	return portalsdk.NewClient(apiURL).WithToken(token), nil
}

func contextWithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), apiTimeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	pf := impersonationCmd.PersistentFlags()
	pf.StringVar(&apiURL, "url", "http://localhost:8080", "portal service base URL")
	pf.StringVar(&apiToken, "token", "", "administrator bearer token")
	pf.DurationVar(&apiTimeout, "timeout", 10*time.Second, "request timeout")
	impersonationCmd.AddCommand(impersonationStatusCmd, impersonationStopCmd)
}
