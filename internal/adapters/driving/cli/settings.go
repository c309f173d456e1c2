package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings.toml: API endpoints, the account onboarding is
scoped to, onboarding defaults, the log directory and the onboarding history.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save settings.toml.

Examples:
  pileus settings set account.name "Production"
  pileus settings set onboarding.default_region eu-west-1
  pileus settings set history.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settable keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		for _, key := range settingsService.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Auth URL: %s\n", settings.API.AuthURL)
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Base URL (v2): %s\n", settings.API.BaseURLV2)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout())
	cmd.Printf("  Requests per second: %g\n", settings.API.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Account]")
	switch {
	case settings.Account.Key != "":
		cmd.Printf("  Scope: %s\n", settings.Account.Scope())
	case settings.Account.Name != "":
		cmd.Printf("  Name: %s\n", settings.Account.Name)
	default:
		cmd.Println("  Scope: (user api key)")
	}
	cmd.Println()

	cmd.Println("[Onboarding]")
	cmd.Printf("  Default region: %s\n", settings.Onboarding.DefaultRegion)
	cmd.Printf("  Output directory: %s\n", settings.Onboarding.OutputDir)
	cmd.Println()

	cmd.Println("[Logging]")
	cmd.Printf("  Directory: %s\n", settings.Logging.Dir)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.History.Enabled))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.TrimSpace(args[0]), args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
