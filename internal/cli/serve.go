package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve [vault_path]",
	Short: "Run an MCP server exposing every analysis",
	Long: `Starts a Model Context Protocol server on stdin/stdout. Each tool call
rescans the vault, so results always reflect the files on disk.

Example client configuration:

  {
    "mcpServers": {
      "vaudit": {
        "command": "vaudit",
        "args": ["serve", "/path/to/vault"]
      }
    }
  }`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := getVaultPath()
		slog.Info("starting MCP server", "vault", root)
		if err := mcp.New(root, currentVersionInfo().Version).ServeStdio(); err != nil {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
