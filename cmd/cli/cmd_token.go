package main

import (
	"fmt"
	"time"

	"github.com/sguter90/sensormaestro/pkg/server"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a token for protected endpoints",
	Long:  `Sign a bearer token with JWT_SECRET that authorizes catalog refreshes.`,
	Args:  cobra.NoArgs,
	RunE:  runTokenCreate,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenCreateCmd)

	tokenCreateCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "subject recorded in the token")
	tokenCreateCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_TOKEN_TTL)")
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd.Context())
	if err := cfg.ValidateAuth(); err != nil {
		return err
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	token, expiresAt, err := server.GenerateToken([]byte(cfg.Auth.JWTSecret), tokenSubject, ttl)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Token for '%s' expires at %s\n", tokenSubject, expiresAt.Format(time.RFC3339))
	return nil
}
