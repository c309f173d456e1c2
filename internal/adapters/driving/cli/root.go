// Package cli provides the cobra command tree for pileus.
// It is a driving adapter: commands call the core services through the
// driving ports and never touch adapters directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Command annotations.
const (
	// annotationCredentials marks commands that call the Pileus API and
	// therefore need a config.ini to exist.
	annotationCredentials = "pileus/credentials"

	// annotationLongRunning marks commands that keep running (TUI, MCP) and
	// should follow config file changes.
	annotationLongRunning = "pileus/long-running"
)

// Services groups the driving ports used by the commands.
type Services struct {
	Credentials driving.CredentialsService
	Settings    driving.SettingsService
	Auth        driving.AuthService
	Users       driving.UserService
	Onboarding  driving.OnboardingService
}

// Options carries the values of the global flags.
type Options struct {
	ConfigPath  string
	SettingsDir string
	Verbose     bool

	// LongRunning is true for the TUI and the MCP server.
	LongRunning bool
}

// Bootstrapper builds the services once the global flags are parsed.
// The returned cleanup function runs after the command finishes.
type Bootstrapper func(ctx context.Context, opts Options) (*Services, func(), error)

// Package-level services, set by SetServices or the bootstrapper.
var (
	credentialsService driving.CredentialsService
	settingsService    driving.SettingsService
	authService        driving.AuthService
	userService        driving.UserService
	onboardingService  driving.OnboardingService
)

var (
	bootstrap Bootstrapper
	cleanup   func()
)

// Global flags.
var (
	configPath  string
	settingsDir string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "pileus",
	Short: "Pileus API command-line tool",
	Long: `pileus talks to the Pileus cost-management API.

It lists users, onboards AWS accounts (plain or MSP) and keeps a local history
of onboarding attempts. Credentials are read from config.ini, which is created
with placeholder values on first use and must never be committed.

Run without a command to open the interactive menu.`,
	Annotations: map[string]string{
		annotationCredentials: "true",
		annotationLongRunning: "true",
	},
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print log entries to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.ini (default $PILEUS_CONFIG or ./config.ini)")
	rootCmd.PersistentFlags().StringVar(&settingsDir, "settings-dir", "", "settings directory (default $PILEUS_HOME or ~/.pileus)")
}

// SetServices injects the services directly, bypassing the bootstrapper.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	credentialsService = s.Credentials
	settingsService = s.Settings
	authService = s.Auth
	userService = s.Users
	onboardingService = s.Onboarding
}

// SetBootstrapper registers the function that builds the services.
func SetBootstrapper(b Bootstrapper) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return err
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap != nil && cleanup == nil {
		services, done, err := bootstrap(cmd.Context(), Options{
			ConfigPath:  configPath,
			SettingsDir: settingsDir,
			Verbose:     verbose,
			LongRunning: cmd.Annotations[annotationLongRunning] == "true",
		})
		if err != nil {
			return err
		}
		SetServices(services)
		cleanup = done
		if cleanup == nil {
			cleanup = func() {}
		}
	}

	if cmd.Annotations[annotationCredentials] == "true" {
		return ensureConfig(cmd)
	}
	return nil
}

// ensureConfig generates a default config.ini if none exists yet.
func ensureConfig(cmd *cobra.Command) error {
	if credentialsService == nil {
		return errors.New("credentials service not configured")
	}

	created, err := credentialsService.Init(false)
	if err != nil {
		return fmt.Errorf("failed to create config.ini: %w", err)
	}
	if created {
		logger.Info("Generated default config file: %s", credentialsService.Path())
		cmd.PrintErrf("Created %s with placeholder credentials. Fill in your Pileus username and password.\n",
			credentialsService.Path())
		warnIfTracked(cmd)
	}
	return nil
}

// warnIfTracked warns when config.ini is not excluded from version control.
func warnIfTracked(cmd *cobra.Command) {
	ignored, err := credentialsService.IgnoredByVCS()
	if err != nil {
		logger.Warn("checking .gitignore: %v", err)
		return
	}
	if !ignored {
		cmd.PrintErrf("Warning: %s is not ignored by git. Add config.ini to .gitignore so credentials are never committed.\n",
			credentialsService.Path())
	}
}
