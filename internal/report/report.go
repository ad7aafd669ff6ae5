// Package report renders a check.Summary as a single audit document.
//
// The canonical form is markdown. HTML is rendered from it with goldmark and
// terminal output with glamour, so every format shows the same sections.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/ui"
)

// Format is an output format for the audit report.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the accepted formats in display order.
var Formats = []Format{FormatTerminal, FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q (expected one of: %s)", s, strings.Join(names, ", "))
}

// Write renders s in format f to w. display is consulted only for the
// terminal format; nil means a plain, non-terminal stream.
func Write(w io.Writer, f Format, s *check.Summary, opts Options, display *ui.DisplayContext) error {
	var out string
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatMarkdown:
		out = Markdown(s, opts)
	case FormatHTML:
		html, err := HTML(Markdown(s, opts), opts.title())
		if err != nil {
			return err
		}
		out = html
	case FormatTerminal:
		rendered, err := Terminal(Markdown(s, opts), display)
		if err != nil {
			return err
		}
		out = rendered
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	_, err := io.WriteString(w, out)
	return err
}

// Terminal renders markdown for a terminal when display is one, and returns
// it unchanged otherwise.
func Terminal(markdown string, display *ui.DisplayContext) (string, error) {
	if display == nil || !display.IsTTY {
		return markdown, nil
	}
	return ui.RenderMarkdown(markdown, display.AvailableWidth(ui.MarkdownRenderMargin))
}
