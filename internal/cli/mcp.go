package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/mcpclient"
	"github.com/aidanlsb/vaudit/internal/shellquote"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var mcpClientFlag string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Register the MCP server with desktop clients",
	Long: `Add, remove, or inspect the vaudit entry in the config files of supported
MCP clients (claude-desktop, cursor, windsurf).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var mcpInstallCmd = &cobra.Command{
	Use:   "install [vault_path]",
	Short: "Add vaudit to an MCP client config",
	Long: `Add vaudit to an MCP client config file. The entry runs 'vaudit serve'
pinned to the selected vault.

Examples:
  vaudit mcp install --client claude-desktop ~/notes
  vaudit mcp install --client cursor --vault work`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfgPath, err := mcpClientConfig()
		if err != nil {
			return err
		}

		entry := mcpclient.NewEntry(getVaultPath())
		action, err := mcpclient.Install(cfgPath, entry)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"result":      action.String(),
				"entry":       entry,
			}, nil)
			return nil
		}

		switch action {
		case mcpclient.Added:
			fmt.Fprintln(stdout, ui.Successf("Added vaudit to %s", client))
		case mcpclient.Updated:
			fmt.Fprintln(stdout, ui.Successf("Updated vaudit in %s", client))
		case mcpclient.Unchanged:
			fmt.Fprintln(stdout, ui.Info(fmt.Sprintf("vaudit is already configured in %s", client)))
		}
		fmt.Fprintf(stdout, "  %s\n", ui.Hint("command: "+shellquote.Join(append([]string{entry.Command}, entry.Args...)...)))
		fmt.Fprintf(stdout, "  %s\n", ui.Hint("config: "+cfgPath))
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:         "remove",
	Short:       "Remove vaudit from an MCP client config",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipVaultAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfgPath, err := mcpClientConfig()
		if err != nil {
			return err
		}

		removed, err := mcpclient.Remove(cfgPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"removed":     removed,
			}, nil)
			return nil
		}

		if removed {
			fmt.Fprintln(stdout, ui.Successf("Removed vaudit from %s", client))
		} else {
			fmt.Fprintln(stdout, ui.Info(fmt.Sprintf("vaudit is not configured in %s", client)))
		}
		return nil
	},
}

var mcpStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show which MCP clients have vaudit configured",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipVaultAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var statuses []*mcpclient.Status
		var warnings []Warning
		installed := 0

		for _, client := range mcpclient.Clients() {
			cfgPath, err := mcpclient.ConfigPath(client, "")
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			st, err := mcpclient.Check(client, cfgPath)
			if err != nil {
				warnings = append(warnings, Warning{Code: ErrConfigInvalid, Message: err.Error(), Path: cfgPath})
				continue
			}
			if st.Installed {
				installed++
			}
			statuses = append(statuses, st)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{"items": nonNilStatuses(statuses)}, warnings, &Meta{Count: installed})
			return nil
		}

		for _, st := range statuses {
			state := "not installed"
			switch {
			case st.Installed && st.Entry != nil:
				state = ui.Success(fmt.Sprintf("installed (%s)", shellquote.Join(append([]string{st.Entry.Command}, st.Entry.Args...)...)))
			case !st.Exists:
				state = ui.Hint("no config file")
			}
			fmt.Fprintf(stdout, "%-16s %s\n", st.Client, state)
		}
		for _, w := range warnings {
			fmt.Fprintln(stdout, ui.Warning(w.Message))
		}
		return nil
	},
}

func nonNilStatuses(s []*mcpclient.Status) []*mcpclient.Status {
	if s == nil {
		return []*mcpclient.Status{}
	}
	return s
}

// mcpClientConfig validates --client and returns its config path.
func mcpClientConfig() (mcpclient.Client, string, error) {
	client, err := mcpclient.ParseClient(mcpClientFlag)
	if err != nil {
		return "", "", handleError(ErrInvalidInput, err, "")
	}
	cfgPath, err := mcpclient.ConfigPath(client, "")
	if err != nil {
		return "", "", handleError(ErrInternal, err, "")
	}
	return client, cfgPath, nil
}

func init() {
	for _, c := range []*cobra.Command{mcpInstallCmd, mcpRemoveCmd} {
		c.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client: claude-desktop, cursor, windsurf")
		_ = c.MarkFlagRequired("client")
	}
	mcpCmd.AddCommand(mcpInstallCmd)
	mcpCmd.AddCommand(mcpRemoveCmd)
	mcpCmd.AddCommand(mcpStatusCmd)
	rootCmd.AddCommand(mcpCmd)
}
