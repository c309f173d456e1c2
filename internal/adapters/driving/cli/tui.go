package cli

import (
	"fmt"
	"io"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive menu for Pileus.

The menu lists users, onboards AWS accounts and opens saved setup scripts.
It logs in on start with the credentials from config.ini.

Controls:
  ↑/k, ↓/j - Navigate
  1-9      - Pick a numbered entry
  Enter    - Select / Confirm
  o        - Open the script folder
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		annotationCredentials: "true",
		annotationLongRunning: "true",
	},
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer recoverTUI(cmd, &err)

	ports := tui.NewPorts(authService, userService, onboardingService, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// The alt screen owns the terminal. Entries still go to the log file.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// recoverTUI reports a panic with its stack and turns it into an error, so a
// crashed TUI still exits non-zero. It must be deferred directly.
func recoverTUI(cmd *cobra.Command, err *error) {
	r := recover()
	if r == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Panic in TUI: %v\n", r)
	fmt.Fprintf(cmd.ErrOrStderr(), "Stack trace:\n%s\n", debug.Stack())
	*err = fmt.Errorf("TUI panic: %v", r)
}
