package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list users,
onboard AWS accounts and read the onboarding history.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  pileus mcp serve

  # HTTP mode
  pileus mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "pileus": {
        "command": "/path/to/pileus",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		annotationCredentials: "true",
		annotationLongRunning: "true",
	},
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Users:      userService,
		Onboarding: onboardingService,
		Settings:   settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
