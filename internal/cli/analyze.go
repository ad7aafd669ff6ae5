package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/config"
	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/paths"
	"github.com/aidanlsb/vaudit/internal/ui"
	"github.com/aidanlsb/vaudit/internal/vault"
)

// analysis is a freshly built graph with the options configured for it.
type analysis struct {
	graph    *graph.Graph
	opts     check.Options
	warnings []Warning
	start    time.Time
}

// loadAnalysis reads the vault config and builds the link graph.
func loadAnalysis() (*analysis, error) {
	start := time.Now()
	root := getVaultPath()

	vc, err := config.LoadVaultConfig(root)
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, fmt.Sprintf("Fix %s or remove it to use the defaults", config.VaultConfigFile))
	}

	batch, err := vault.Load(root, paths.LoadRules(root, vc.Exclude...), nil)
	if err != nil {
		if errors.Is(err, vault.ErrVaultNotFound) {
			return nil, handleError(ErrVaultNotFound, err, "")
		}
		return nil, handleError(ErrInternal, err, "")
	}

	g := graph.Build(batch)
	return &analysis{
		graph:    g,
		opts:     vc.Options(),
		warnings: graphWarnings(g),
		start:    start,
	}, nil
}

// graphWarnings turns soft failures and identifier collisions into warnings.
func graphWarnings(g *graph.Graph) []Warning {
	var warnings []Warning
	for _, f := range g.Failures {
		warnings = append(warnings, Warning{
			Code:    WarnReadFailed,
			Message: fmt.Sprintf("failed to read: %v", f.Err),
			Path:    f.File.RelativePath,
		})
	}

	ids := make([]string, 0, len(g.Collisions))
	for id := range g.Collisions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		warnings = append(warnings, Warning{
			Code:    WarnNameCollision,
			Message: fmt.Sprintf("'%s' is shared by %d files: %s", id, len(g.Collisions[id]), strings.Join(g.Collisions[id], ", ")),
		})
	}
	return warnings
}

// meta returns the response metadata for count results.
func (a *analysis) meta(count int) *Meta {
	return &Meta{Count: count, QueryTimeMs: time.Since(a.start).Milliseconds()}
}

// emit writes items as the command result and returns errFindings when
// there are any. render draws the non-empty text output.
func emit[T any](a *analysis, items []T, empty string, render func([]T)) error {
	if items == nil {
		items = []T{}
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{"items": items}, a.warnings, a.meta(len(items)))
	} else if len(items) == 0 {
		fmt.Fprintln(stdout, ui.Success(empty))
	} else {
		render(items)
	}

	if len(items) > 0 {
		return errFindings
	}
	return nil
}

// display returns the display context for stdout.
func display() *ui.DisplayContext {
	return ui.NewDisplayContext(os.Stdout)
}

// intFlag stores the value of an int flag in dst when it was set on the
// command line. Values below min are rejected.
func intFlag(cmd *cobra.Command, name string, min int, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	if v < min {
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("--%s must be at least %d, got %d", name, min, v), "")
	}
	*dst = v
	return nil
}

// vaultArgs is the positional argument convention of the analysis commands.
func vaultArgs() cobra.PositionalArgs {
	return cobra.MaximumNArgs(1)
}

func analysisAnnotations() map[string]string {
	return map[string]string{vaultArgAnnotation: "true"}
}
