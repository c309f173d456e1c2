package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config.ini credentials file",
	Long: `Create and edit config.ini, the local file holding your Pileus credentials.

config.ini is generated from placeholder values on first use. Keep it out of
version control: the repository's .gitignore already lists it, and 'config init'
warns when the file is not ignored.

Values left empty or as placeholders fall back to the PILEUS_USERNAME and
PILEUS_PASSWORD environment variables.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config.ini with placeholder values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded credentials (masked)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write credentials to config.ini",
	Long: `Write your Pileus username and password to config.ini.

Without flags the values are prompted. The password is read without echo.

Examples:
  pileus config set
  pileus config set --username alice --password "$PILEUS_PASSWORD"`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config.ini path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if credentialsService == nil {
			return errors.New("credentials service not configured")
		}
		fmt.Fprintln(cmd.OutOrStdout(), credentialsService.Path())
		return nil
	},
}

var (
	configInitForce   bool
	configSetUsername string
	configSetPassword string
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.ini")
	configSetCmd.Flags().StringVar(&configSetUsername, "username", "", "Pileus username")
	configSetCmd.Flags().StringVar(&configSetPassword, "password", "", "Pileus password")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	created, err := credentialsService.Init(configInitForce)
	if err != nil {
		return fmt.Errorf("failed to create config.ini: %w", err)
	}

	if created {
		cmd.Printf("Created %s\n", credentialsService.Path())
		cmd.Println("Replace the placeholder values with your Pileus username and password.")
	} else {
		cmd.Printf("%s already exists (use --force to overwrite)\n", credentialsService.Path())
	}

	warnIfTracked(cmd)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	// Incomplete credentials are still shown so placeholders can be spotted.
	creds, err := credentialsService.Get()
	if err != nil && !errors.Is(err, domain.ErrMissingCredentials) {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	cmd.Println("Credentials")
	cmd.Println("===========")
	cmd.Printf("  File:     %s\n", credentialsService.Path())
	cmd.Printf("  Username: %s\n", displayValue(creds.Username, domain.PlaceholderUsername))
	cmd.Printf("  Password: %s\n", maskSecret(credentialValue(creds.Password, domain.PlaceholderPassword)))
	if creds.Source != "" {
		cmd.Printf("  Source:   %s\n", creds.Source)
	}
	cmd.Println()

	if creds.IsComplete() {
		cmd.Println("Credentials are complete.")
	} else {
		cmd.Println("Credentials are incomplete. Run 'pileus config set' or set PILEUS_USERNAME and PILEUS_PASSWORD.")
	}

	warnIfTracked(cmd)
	return nil
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	creds := domain.Credentials{Username: configSetUsername, Password: configSetPassword}
	if creds.Username == "" || creds.Password == "" {
		if !stdinIsTerminal() {
			return fmt.Errorf("--username and --password are required without a terminal: %w", domain.ErrInvalidInput)
		}

		p := newPrompter(cmd)
		var err error
		if creds.Username == "" {
			if creds.Username, err = p.line("Pileus username: "); err != nil {
				return err
			}
		}
		if creds.Password == "" {
			if creds.Password, err = p.password("Pileus password: "); err != nil {
				return err
			}
		}
	}

	if err := credentialsService.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	cmd.Printf("Saved credentials to %s\n", credentialsService.Path())
	warnIfTracked(cmd)
	return nil
}

// credentialValue hides template placeholders.
func credentialValue(v, placeholder string) string {
	if !domain.IsCredentialValue(v, placeholder) {
		return ""
	}
	return v
}

func displayValue(v, placeholder string) string {
	if v = credentialValue(v, placeholder); v == "" {
		return "(not set)"
	}
	return v
}
