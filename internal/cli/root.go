// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/vaudit/internal/config"
	"github.com/aidanlsb/vaudit/internal/ui"
	"github.com/aidanlsb/vaudit/internal/vault"
)

// Command annotations.
const (
	// vaultArgAnnotation marks commands whose first positional argument is
	// the vault path.
	vaultArgAnnotation = "vault_arg"
	// skipVaultAnnotation marks commands that run without a vault.
	skipVaultAnnotation = "skip_vault"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	verbose       bool

	// Resolved values
	resolvedVaultPath  string
	resolvedConfigPath string
	cfg                *config.Config

	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vaudit",
	Short: "vaudit - structural hygiene for Markdown vaults",
	Long: `vaudit scans a vault of interlinked Markdown notes and reports broken
wikilinks, orphaned notes, bloated maps of content, stale notes, heavily
referenced topics without a hub, and incomplete frontmatter.

Every analysis exits 1 when it reports something, so it can gate scripts
and CI jobs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}

		// Skip config and vault resolution for commands that don't need them
		if skipsVault(cmd) {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the config file or pass --config with another path")
		}
		if !verbose {
			logLevel.Set(cfg.SlogLevel(slog.LevelWarn))
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		resolvedVaultPath, err = resolveVaultPath(cmd, args)
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Run 'vaudit --help' to see how a vault is selected")
		}
		if err := vault.CheckRoot(resolvedVaultPath); err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}
		slog.Debug("vault resolved", "path", resolvedVaultPath, "config", resolvedConfigPath)
		return nil
	},
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, errFindings) {
		return 1
	}
	var reported *reportedError
	if errors.As(err, &reported) {
		return 1
	}

	code := errorCode(err)
	if isUsageError(err) {
		code = ErrInvalidInput
	}
	if jsonOutput {
		outputError(code, err.Error(), nil, "")
		return 1
	}
	fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	return 1
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	logLevel.Set(slog.LevelWarn)

	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug details to stderr")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// normalizeFlagName lets --stale_days style spellings resolve to --stale-days.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func skipsVault(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipVaultAnnotation] == "true" {
			return true
		}
		switch c.Name() {
		case "completion", "help", "version", "config":
			return true
		}
	}
	return false
}

// resolveVaultPath picks the vault: positional argument > --vault-path >
// --vault > $VAUDIT_VAULT > default_vault > current directory.
func resolveVaultPath(cmd *cobra.Command, args []string) (string, error) {
	var path string
	switch {
	case cmd.Annotations[vaultArgAnnotation] == "true" && len(args) > 0:
		path = args[0]
	case vaultPathFlag != "":
		path = vaultPathFlag
	case vaultName != "":
		p, err := cfg.GetVaultPath(vaultName)
		if err != nil {
			return "", err
		}
		path = p
	case strings.TrimSpace(os.Getenv(config.EnvVault)) != "":
		path = strings.TrimSpace(os.Getenv(config.EnvVault))
	case cfg.DefaultVault != "":
		p, err := cfg.GetVaultPath(cfg.DefaultVault)
		if err != nil {
			return "", fmt.Errorf("default_vault: %w", err)
		}
		path = p
	default:
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine current directory: %w", err)
		}
		path = wd
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load(resolvedPath)
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
