package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/dates"
	"github.com/aidanlsb/vaudit/internal/slugs"
	"github.com/aidanlsb/vaudit/internal/ui"
)

// DefaultLimit caps the entries listed per section.
const DefaultLimit = 10

// Archival priority bands.
const (
	highPriorityScore   = 60
	mediumPriorityScore = 40
)

// Section titles.
const (
	titleBroken      = "Broken links"
	titleOrphans     = "Orphans"
	titleBloat       = "Hub bloat"
	titleArchival    = "Archival candidates"
	titleSqueeze     = "Squeeze points"
	titleFrontmatter = "Frontmatter issues"
	titleDiagnostics = "Diagnostics"
)

// Options controls report rendering.
type Options struct {
	// Title names the vault in the report heading.
	Title string
	// Limit caps the entries listed per section. Zero means DefaultLimit.
	Limit int
	// Generated is the report timestamp. Zero omits it.
	Generated time.Time
	// Analysis holds the thresholds the summary was computed with.
	Analysis check.Options
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) title() string {
	if o.Title == "" {
		return "Vault audit"
	}
	return "Vault audit: " + o.Title
}

// Markdown renders the summary as a markdown document with one section
// per analysis.
func Markdown(s *check.Summary, opts Options) string {
	b := &builder{limit: opts.limit()}

	b.line("# " + opts.title())
	b.blank()

	meta := []string{fmt.Sprintf("%d documents", s.Documents), fmt.Sprintf("%d findings", s.Findings())}
	if !opts.Generated.IsZero() {
		meta = append([]string{"Generated " + dates.Format(opts.Generated)}, meta...)
	}
	b.line(strings.Join(meta, " · "))
	b.blank()

	b.summaryTable(s)
	b.brokenLinks(s.BrokenLinks)
	b.orphans(s.Orphans)
	b.bloat(s.BloatedHubs, opts.Analysis.BloatThreshold)
	b.archival(s.ArchivalCandidates)
	b.squeeze(s.SqueezePoints)
	b.frontmatter(s.FrontmatterIssues)
	b.diagnostics(s.Failures, s.Collisions)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

type builder struct {
	strings.Builder
	limit int
}

func (b *builder) line(s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

func (b *builder) linef(format string, args ...any) {
	b.line(fmt.Sprintf(format, args...))
}

func (b *builder) blank() {
	b.WriteByte('\n')
}

func (b *builder) section(title string) {
	b.line("## " + title)
	b.blank()
}

func (b *builder) none() {
	b.line("_None found._")
	b.blank()
}

// list writes up to b.limit items followed by a count of the rest.
func (b *builder) list(items []string) {
	for i, item := range items {
		if i == b.limit {
			b.linef("- … and %d more", len(items)-b.limit)
			break
		}
		b.line("- " + item)
	}
	b.blank()
}

func (b *builder) summaryTable(s *check.Summary) {
	rows := []struct {
		title string
		count int
	}{
		{titleBroken, len(s.BrokenLinks)},
		{titleOrphans, len(s.Orphans)},
		{titleBloat, len(s.BloatedHubs)},
		{titleArchival, len(s.ArchivalCandidates)},
		{titleSqueeze, len(s.SqueezePoints)},
		{titleFrontmatter, len(s.FrontmatterIssues)},
	}

	b.line("| Check | Findings |")
	b.line("| --- | ---: |")
	for _, r := range rows {
		b.linef("| [%s](#%s) | %d |", r.title, slugs.HeadingSlug(r.title), r.count)
	}
	b.blank()
}

func code(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

func (b *builder) brokenLinks(broken []check.BrokenLink) {
	b.section(titleBroken)
	if len(broken) == 0 {
		b.none()
		return
	}

	items := make([]string, 0, len(broken))
	for _, l := range broken {
		item := fmt.Sprintf("%s → %s", code(l.SourcePath), code("[["+l.Target+"]]"))
		if l.Suggestion != "" {
			item += fmt.Sprintf(" (did you mean %s?)", code("[["+l.Suggestion+"]]"))
		}
		items = append(items, item)
	}
	b.list(items)
}

func (b *builder) orphans(orphans []check.Orphan) {
	b.section(titleOrphans)
	if len(orphans) == 0 {
		b.none()
		return
	}

	items := make([]string, 0, len(orphans))
	for _, o := range orphans {
		items = append(items, code(o.Path))
	}
	b.list(items)
}

func (b *builder) bloat(hubs []check.BloatedHub, threshold int) {
	b.section(titleBloat)
	if len(hubs) == 0 {
		b.none()
		return
	}

	var bloated, warning []string
	for _, h := range hubs {
		item := fmt.Sprintf("%s: %d links", code(h.Path), h.LinkCount)
		if h.Status == check.StatusBloated {
			bloated = append(bloated, item)
		} else {
			warning = append(warning, item)
		}
	}

	if len(bloated) > 0 {
		b.linef("### Bloated (%d or more links)", threshold)
		b.blank()
		b.list(bloated)
	}
	if len(warning) > 0 {
		b.linef("### Warning (%d or more links)", check.WarningThreshold(threshold))
		b.blank()
		b.list(warning)
	}
	if len(bloated) > 0 {
		b.line("Split bloated hubs into focused child hubs.")
		b.blank()
	}
}

func (b *builder) archival(candidates []check.ArchivalCandidate) {
	b.section(titleArchival)
	if len(candidates) == 0 {
		b.none()
		return
	}

	var high, medium []string
	low := 0
	for _, c := range candidates {
		item := fmt.Sprintf("%s · score %d · %s", code(c.Path), c.Score, strings.Join(c.Reasons, ", "))
		switch {
		case c.Score >= highPriorityScore:
			high = append(high, item)
		case c.Score >= mediumPriorityScore:
			medium = append(medium, item)
		default:
			low++
		}
	}

	if len(high) > 0 {
		b.linef("### High priority (score %d or more)", highPriorityScore)
		b.blank()
		b.list(high)
	}
	if len(medium) > 0 {
		b.linef("### Medium priority (score %d to %d)", mediumPriorityScore, highPriorityScore-1)
		b.blank()
		b.list(medium)
	}
	if low > 0 {
		b.linef("### Low priority: %d notes", low)
		b.blank()
	}
}

func (b *builder) squeeze(points []check.SqueezePoint) {
	b.section(titleSqueeze)
	if len(points) == 0 {
		b.none()
		return
	}

	items := make([]string, 0, len(points))
	for _, p := range points {
		items = append(items, fmt.Sprintf("**%s**: %d references, consider a %s hub", p.Term, p.ReferenceCount, code(p.Term+" MOC")))
	}
	b.list(items)
}

func (b *builder) frontmatter(issues []check.FrontmatterIssue) {
	b.section(titleFrontmatter)
	if len(issues) == 0 {
		b.none()
		return
	}

	type group struct {
		issue    string
		severity check.Severity
		paths    []string
	}
	byIssue := make(map[string]*group)
	var groups []*group
	for _, is := range issues {
		// Read errors carry the error text; group them together.
		key := is.Issue
		if strings.HasPrefix(key, "read error") {
			key = "read error"
		}
		g, ok := byIssue[key]
		if !ok {
			g = &group{issue: key, severity: is.Severity}
			byIssue[key] = g
			groups = append(groups, g)
		}
		g.paths = append(g.paths, is.Path)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].severity != groups[j].severity {
			return groups[i].severity < groups[j].severity
		}
		return groups[i].issue < groups[j].issue
	})

	for _, g := range groups {
		b.linef("### %s %s %s", ui.Severity(g.severity.String()), g.issue, ui.Count(len(g.paths), "file", "files"))
		b.blank()
		sort.Strings(g.paths)
		items := make([]string, len(g.paths))
		for i, p := range g.paths {
			items[i] = code(p)
		}
		b.list(items)
	}
}

func (b *builder) diagnostics(failures []check.Failure, collisions map[string][]string) {
	if len(failures) == 0 && len(collisions) == 0 {
		return
	}
	b.section(titleDiagnostics)

	if len(failures) > 0 {
		b.line("### Unreadable files")
		b.blank()
		items := make([]string, len(failures))
		for i, f := range failures {
			items[i] = fmt.Sprintf("%s: %s", code(f.Path), f.Error)
		}
		b.list(items)
	}

	if len(collisions) > 0 {
		b.line("### Shared names")
		b.blank()
		ids := make([]string, 0, len(collisions))
		for id := range collisions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		items := make([]string, len(ids))
		for i, id := range ids {
			quoted := make([]string, len(collisions[id]))
			for j, p := range collisions[id] {
				quoted[j] = code(p)
			}
			items[i] = fmt.Sprintf("**%s**: %s", id, strings.Join(quoted, ", "))
		}
		b.list(items)
	}
}
