package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var brokenCmd = &cobra.Command{
	Use:         "broken [vault_path]",
	Short:       "Find wikilinks whose target does not exist",
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}

		broken := check.FindBrokenLinks(a.graph)
		return emit(a, broken, "No broken links found", func(items []check.BrokenLink) {
			t := ui.NewTable(display(), "SOURCE", "TARGET", "DID YOU MEAN")
			for _, b := range items {
				t.AddRow(b.SourcePath, "[["+b.Target+"]]", b.Suggestion)
			}
			fmt.Fprintln(stdout, t.Render())
			fmt.Fprintln(stdout, ui.Error(fmt.Sprintf("Broken links %s", ui.Count(len(items), "link", "links"))))
		})
	},
}

var orphansCmd = &cobra.Command{
	Use:         "orphans [vault_path]",
	Short:       "Find notes nothing links to",
	Long:        `Lists every note with no incoming wikilinks. Root notes (Home by default, see root_notes in vaudit.yaml) are never orphans.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}

		orphans := check.FindOrphans(a.graph, a.opts.RootNotes)
		return emit(a, orphans, "No orphaned notes found", func(items []check.Orphan) {
			for _, o := range items {
				fmt.Fprintf(stdout, "  %s  %s\n", o.Name, ui.Hint(o.Path))
			}
			fmt.Fprintln(stdout, ui.Warning(fmt.Sprintf("Orphans %s", ui.Count(len(items), "note", "notes"))))
		})
	},
}

func init() {
	rootCmd.AddCommand(brokenCmd)
	rootCmd.AddCommand(orphansCmd)
}
