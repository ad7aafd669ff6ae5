package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/vaudit/internal/atomicfile"
	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/report"
	"github.com/aidanlsb/vaudit/internal/ui"
)

var (
	auditFormat string
	auditOutput string
	auditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit [vault_path]",
	Short: "Run every analysis and print a report",
	Long: `Runs every analysis over one scan of the vault and renders a single report.

Formats:
  terminal   markdown, rendered when stdout is a terminal (default)
  markdown   plain markdown
  html       standalone HTML page
  json       the raw results

With the global --json flag the results are wrapped in the standard envelope.`,
	Args:        vaultArgs(),
	Annotations: analysisAnnotations(),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(auditFormat)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if auditLimit < 0 {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("--limit must not be negative, got %d", auditLimit), "")
		}

		a, err := loadAnalysis()
		if err != nil {
			return err
		}
		s := check.Run(a.graph, a.opts)

		if isJSONOutput() && auditOutput == "" {
			outputSuccessWithWarnings(s, a.warnings, a.meta(s.Findings()))
			return findingsErr(s)
		}

		opts := report.Options{
			Title:     filepath.Base(getVaultPath()),
			Limit:     auditLimit,
			Generated: time.Now(),
			Analysis:  a.opts,
		}

		if auditOutput == "" {
			if err := report.Write(stdout, format, s, opts, display()); err != nil {
				return handleError(ErrInternal, err, "")
			}
			return findingsErr(s)
		}

		// Files never get terminal escapes.
		if format == report.FormatTerminal {
			format = report.FormatMarkdown
		}
		err = atomicfile.Write(auditOutput, 0o644, func(w io.Writer) error {
			return report.Write(w, format, s, opts, nil)
		})
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"output":   auditOutput,
				"format":   string(format),
				"findings": s.Findings(),
			}, a.warnings, a.meta(s.Findings()))
		} else {
			fmt.Fprintln(stdout, ui.Successf("Wrote %s report to %s %s", format, ui.FilePath(auditOutput), ui.Count(s.Findings(), "finding", "findings")))
		}
		return findingsErr(s)
	},
}

func findingsErr(s *check.Summary) error {
	if s.Clean() {
		return nil
	}
	return errFindings
}

func init() {
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", string(report.FormatTerminal), "Report format: terminal, markdown, html, json")
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Write the report to a file")
	auditCmd.Flags().IntVar(&auditLimit, "limit", report.DefaultLimit, "Entries listed per section")
	rootCmd.AddCommand(auditCmd)
}
