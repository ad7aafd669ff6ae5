package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var bloatCmd = &cobra.Command{
	Use:   "bloat [vault_path]",
	Short: "Find maps of content with too many links",
	Long: `Reports hub notes (MOCs, maps, notes in the Maps directory or filed under it)
whose body links to at least --threshold distinct notes. Hubs at 80% of the
threshold are reported as warnings.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}
		if err := intFlag(cmd, "threshold", 1, &a.opts.BloatThreshold); err != nil {
			return err
		}

		hubs := check.DetectBloat(a.graph, a.opts.Hubs, a.opts.BloatThreshold)
		return emit(a, hubs, "No bloated hubs found", func(items []check.BloatedHub) {
			t := ui.NewTable(display(), "HUB", "LINKS", "STATUS", "PATH")
			for _, h := range items {
				t.AddRow(h.Name, strconv.Itoa(h.LinkCount), h.Status, h.Path)
			}
			fmt.Fprintln(stdout, t.Render())
			fmt.Fprintln(stdout, ui.Hint(fmt.Sprintf("threshold %d, warning from %d", a.opts.BloatThreshold, check.WarningThreshold(a.opts.BloatThreshold))))
		})
	},
}

var squeezeCmd = &cobra.Command{
	Use:   "squeeze [vault_path]",
	Short: "Find heavily referenced notes without a hub",
	Long: `Reports notes referenced from at least --threshold places that have no
dedicated "<name> MOC" or "<name> Map" hub. These are candidates for a new map
of content.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}
		if err := intFlag(cmd, "threshold", 1, &a.opts.SqueezeThreshold); err != nil {
			return err
		}

		points := check.FindSqueezePoints(a.graph, a.opts.Hubs, a.opts.SqueezeThreshold)
		return emit(a, points, "No squeeze points found", func(items []check.SqueezePoint) {
			for _, p := range items {
				fmt.Fprintf(stdout, "%s %s\n", ui.Header(p.Term), ui.Count(p.ReferenceCount, "reference", "references"))
				for _, src := range p.Sources {
					fmt.Fprintf(stdout, "  %s\n", ui.FilePath(src))
				}
				if more := p.TotalSources - len(p.Sources); more > 0 {
					fmt.Fprintf(stdout, "  %s\n", ui.Hint(fmt.Sprintf("… and %d more", more)))
				}
			}
		})
	},
}

func init() {
	bloatCmd.Flags().Int("threshold", check.DefaultBloatThreshold, "Link count at which a hub is bloated")
	squeezeCmd.Flags().Int("threshold", check.DefaultSqueezeThreshold, "Minimum number of references")
	rootCmd.AddCommand(bloatCmd)
	rootCmd.AddCommand(squeezeCmd)
}
