package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/dates"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var staleAsOf string

var staleCmd = &cobra.Command{
	Use:   "stale [vault_path]",
	Short: "Suggest notes for archival",
	Long: `Scores every note for staleness from its age, outgoing links, length and
location, and lists those scoring at least the configured minimum (30 by
default). Archives and templates are skipped.

Use --as-of to score against a fixed date for reproducible runs.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}
		if err := intFlag(cmd, "days", 0, &a.opts.StaleDays); err != nil {
			return err
		}
		if staleAsOf != "" {
			now, err := dates.ParseDateArg(staleAsOf, time.Now())
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			a.opts.Now = now
		}

		candidates := check.SuggestArchival(a.graph, a.opts)
		return emit(a, candidates, "No archival candidates found", func(items []check.ArchivalCandidate) {
			t := ui.NewTable(display(), "SCORE", "NOTE", "MODIFIED", "REASONS")
			for _, c := range items {
				t.AddRow(strconv.Itoa(c.Score), c.Path, c.LastModified, strings.Join(c.Reasons, ", "))
			}
			fmt.Fprintln(stdout, t.Render())
			fmt.Fprintln(stdout, ui.Warning(fmt.Sprintf("Archival candidates %s", ui.Count(len(items), "note", "notes"))))
		})
	},
}

func init() {
	staleCmd.Flags().Int("days", check.DefaultStaleDays, "Days without modification before a note counts as stale (0 counts every note)")
	staleCmd.Flags().StringVar(&staleAsOf, "as-of", "", "Reference date (YYYY-MM-DD, today, yesterday)")
	rootCmd.AddCommand(staleCmd)
}
