package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Read Pileus users",
}

var usersListCmd = &cobra.Command{
	Use:         "list",
	Short:       "Print the list of users",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationCredentials: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUsers(cmd, false)
	},
}

var usersRolesCmd = &cobra.Command{
	Use:         "roles",
	Short:       "Print users with their roles",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationCredentials: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUsers(cmd, true)
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRolesCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, withRoles bool) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	var (
		raw json.RawMessage
		err error
	)
	if withRoles {
		raw, err = userService.ListWithRoles(cmd.Context())
	} else {
		raw, err = userService.List(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), raw)
}

// printJSON writes raw indented by four spaces.
func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
