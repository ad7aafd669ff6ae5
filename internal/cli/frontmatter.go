package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var frontmatterStrict bool

var frontmatterCmd = &cobra.Command{
	Use:   "frontmatter [vault_path]",
	Short: "Find notes with missing or incomplete frontmatter",
	Long: `Checks that every note has a frontmatter block with a 'created' date and,
unless it is a root or daily note, an 'up' link. Documentation files such as
README and CHANGELOG are exempt.

With --strict, hubs must also declare their 'in' membership.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis()
		if err != nil {
			return err
		}
		a.opts.Strict = frontmatterStrict

		issues := check.CheckFrontmatter(a.graph, a.opts)
		return emit(a, issues, "No frontmatter issues found", func(items []check.FrontmatterIssue) {
			var errs, warns int
			for _, issue := range items {
				fmt.Fprintf(stdout, "%s %s: %s\n", ui.Severity(issue.Severity.String()), ui.FilePath(issue.Path), issue.Issue)
				switch issue.Severity {
				case check.SeverityError:
					errs++
				case check.SeverityWarning:
					warns++
				}
			}
			fmt.Fprintln(stdout)
			fmt.Fprintf(stdout, "%s, %s\n", ui.Count(errs, "error", "errors"), ui.Count(warns, "warning", "warnings"))
		})
	},
}

func init() {
	frontmatterCmd.Flags().BoolVar(&frontmatterStrict, "strict", false, "Also require 'in' on hubs")
	rootCmd.AddCommand(frontmatterCmd)
}
