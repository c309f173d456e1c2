package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate against Pileus",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with the configured credentials",
	Long: `Log in to the Pileus tokenizer with the credentials from config.ini
(or the environment) and print the resulting session, masked.

Use it to check that config.ini is filled in correctly.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationCredentials: "true"},
	RunE:        runAuthLogin,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	session, err := authService.Authenticate(cmd.Context())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	cmd.Println("Authentication successful.")
	cmd.Printf("  Token:           %s\n", maskSecret(session.AuthToken))
	cmd.Printf("  API key:         %s\n", maskSecret(session.APIKey))
	cmd.Printf("  Account API key: %s\n", maskSecret(session.AccountAPIKey))
	if !session.ExpiresAt.IsZero() {
		cmd.Printf("  Expires:         %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
