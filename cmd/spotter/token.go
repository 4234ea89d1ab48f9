package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/spotter/pkg/jwtx"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenRole    string
	tokenOrg     string
	tokenTTL     time.Duration
	tokenIssuer  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Bearer token tooling for local development",
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a bearer token signed with SUPABASE_JWT_SECRET",
	Long: `Mint a bearer token signed with SUPABASE_JWT_SECRET. Production tokens
come from the managed auth backend; this exists for local testing.

Example:
  spotter token mint --sub a0000000-0000-4000-8000-000000000001 --role admin`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret := os.Getenv("SUPABASE_JWT_SECRET")
		if secret == "" {
			return errors.New("SUPABASE_JWT_SECRET is not set")
		}
		signer, err := jwtx.NewHS256([]byte(secret), jwtx.VerifyOptions{})
		if err != nil {
			return err
		}

		claims := jwtx.NewAccessClaims(tokenSubject, tokenEmail, tokenRole, tokenOrg, tokenTTL,
			tokenIssuer, []string{"authenticated"}, time.Now())
		tok, err := signer.Sign(claims)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	f := tokenMintCmd.Flags()
	f.StringVar(&tokenSubject, "sub", "", "user id (required)")
	f.StringVar(&tokenEmail, "email", "", "email claim")
	f.StringVar(&tokenRole, "role", jwtx.RoleMember, "app_metadata.role (admin, owner, staff, member)")
	f.StringVar(&tokenOrg, "org", "", "app_metadata.organization_id")
	f.DurationVar(&tokenTTL, "ttl", jwtx.DefaultAccessTokenTTL, "token lifetime")
	f.StringVar(&tokenIssuer, "issuer", "", "iss claim")
	_ = tokenMintCmd.MarkFlagRequired("sub")
	tokenCmd.AddCommand(tokenMintCmd)
}
