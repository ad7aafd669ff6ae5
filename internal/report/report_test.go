package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/ui"
)

func sampleSummary() *check.Summary {
	s := &check.Summary{
		Documents: 42,
		BrokenLinks: []check.BrokenLink{
			{SourcePath: "Notes/Y.md", Target: "zettelkasten", Suggestion: "Zettelkasten"},
		},
		BloatedHubs: []check.BloatedHub{
			{Path: "Topics MOC.md", Name: "Topics MOC", LinkCount: 55, Status: check.StatusBloated},
			{Path: "Small MOC.md", Name: "Small MOC", LinkCount: 41, Status: check.StatusWarning},
		},
		ArchivalCandidates: []check.ArchivalCandidate{
			{Path: "Old.md", Score: 90, Reasons: []string{"stale (300 days)", "no outgoing links"}},
			{Path: "Mid.md", Score: 45, Reasons: []string{"few links"}},
			{Path: "Low.md", Score: 30, Reasons: []string{"no outgoing links"}},
		},
		SqueezePoints: []check.SqueezePoint{
			{Term: "Zettelkasten", ReferenceCount: 10, TotalSources: 10},
		},
		FrontmatterIssues: []check.FrontmatterIssue{
			{Path: "b.md", Issue: "missing 'up' property", Severity: check.SeverityWarning},
			{Path: "a.md", Issue: "missing 'up' property", Severity: check.SeverityWarning},
			{Path: "c.md", Issue: "missing frontmatter", Severity: check.SeverityError},
			{Path: "d.md", Issue: "read error: invalid UTF-8", Severity: check.SeverityError},
		},
		Failures:   []check.Failure{{Path: "d.md", Error: "invalid UTF-8"}},
		Collisions: map[string][]string{"Note": {"A/Note.md", "B/Note.md"}},
	}
	for i := 0; i < 12; i++ {
		s.Orphans = append(s.Orphans, check.Orphan{Name: fmt.Sprintf("O%02d", i), Path: fmt.Sprintf("O%02d.md", i)})
	}
	return s
}

func TestMarkdown(t *testing.T) {
	opts := Options{
		Title:     "notes",
		Generated: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Analysis:  check.DefaultOptions(),
	}
	md := Markdown(sampleSummary(), opts)

	for _, want := range []string{
		"# Vault audit: notes",
		"Generated 2025-06-01 · 42 documents · 23 findings",
		"| [Broken links](#broken-links) | 1 |",
		"| [Orphans](#orphans) | 12 |",
		"- `Notes/Y.md` → `[[zettelkasten]]` (did you mean `[[Zettelkasten]]`?)",
		"- `O09.md`",
		"- … and 2 more",
		"### Bloated (50 or more links)",
		"- `Topics MOC.md`: 55 links",
		"### Warning (40 or more links)",
		"### High priority (score 60 or more)",
		"### Medium priority (score 40 to 59)",
		"### Low priority: 1 notes",
		"**Zettelkasten**: 10 references",
		"### ✗ missing frontmatter (1 file)",
		"### ✗ read error (1 file)",
		"### ⚠ missing 'up' property (2 files)",
		"## Diagnostics",
		"**Note**: `A/Note.md`, `B/Note.md`",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "`O10.md`")
	assert.True(t, strings.HasSuffix(md, "\n") && !strings.HasSuffix(md, "\n\n"))

	// Errors are listed before warnings; paths within a group are sorted.
	assert.Less(t, strings.Index(md, "missing frontmatter"), strings.Index(md, "missing 'up' property ("))
	assert.Less(t, strings.Index(md, "- `a.md`"), strings.Index(md, "- `b.md`"))
}

func TestMarkdownCleanVault(t *testing.T) {
	md := Markdown(&check.Summary{Documents: 3}, Options{})

	assert.Contains(t, md, "# Vault audit\n")
	assert.Contains(t, md, "3 documents · 0 findings")
	assert.Equal(t, 6, strings.Count(md, "_None found._"))
	assert.NotContains(t, md, "Diagnostics")
	assert.NotContains(t, md, "Generated")
}

func TestHTMLHeadingAnchors(t *testing.T) {
	out, err := HTML(Markdown(sampleSummary(), Options{Title: "a <b>"}), "Vault audit: a <b>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Vault audit: a &lt;b&gt;</title>")
	assert.Contains(t, out, `<h2 id="broken-links">Broken links</h2>`)
	assert.Contains(t, out, `<h2 id="squeeze-points">Squeeze points</h2>`)
	assert.Contains(t, out, `<a href="#broken-links">Broken links</a>`)
	assert.Contains(t, out, "<table>")
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal, markdown, html, json")
}

func TestWrite(t *testing.T) {
	s := sampleSummary()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, s, Options{}, nil))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.EqualValues(t, 42, decoded["documents"])
	})

	t.Run("terminal without tty is markdown", func(t *testing.T) {
		var buf bytes.Buffer
		display := &ui.DisplayContext{TermWidth: 80}
		require.NoError(t, Write(&buf, FormatTerminal, s, Options{}, display))
		assert.Equal(t, Markdown(s, Options{}), buf.String())
	})

	t.Run("terminal with tty renders", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatTerminal, s, Options{}, ui.NewDisplayContextWithWidth(100)))
		assert.Contains(t, buf.String(), "Zettelkasten")
		assert.NotContains(t, buf.String(), "| --- |")
	})

	t.Run("html", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatHTML, s, Options{Title: "notes"}, nil))
		assert.Contains(t, buf.String(), "<title>Vault audit: notes</title>")
	})
}
