package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// No services are needed to print the version.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("pileus version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
