package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/config"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Fprintln(stdout, path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Fprintln(stdout, ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Fprintln(stdout, ui.Info(fmt.Sprintf("Config already exists: %s", ui.FilePath(path))))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
