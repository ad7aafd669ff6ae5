package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/vaudit/internal/dates"
	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/paths"
)

// Header keys every note is expected to carry.
const (
	CreatedKey = "created"
	UpKey      = "up"
)

// dailyNotesMarker marks the subtree where daily notes live.
const dailyNotesMarker = "Calendar"

// FrontmatterIssue is a missing or incomplete header.
type FrontmatterIssue struct {
	Path     string   `json:"path"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// CheckFrontmatter reports documents whose header is missing or lacks the
// expected keys. Documentation files (README, CHANGELOG, ...) are exempt.
// Files that could not be read are reported as errors. Results are sorted
// by path; issues of one file keep their check order.
func CheckFrontmatter(g *graph.Graph, opts Options) []FrontmatterIssue {
	roots := opts.rootSet()

	var issues []FrontmatterIssue
	add := func(path, issue string, sev Severity) {
		issues = append(issues, FrontmatterIssue{Path: path, Issue: issue, Severity: sev})
	}

	for _, doc := range g.Documents {
		rel := doc.RelativePath
		if !paths.ShouldCheckFrontmatterRel(rel) {
			continue
		}

		h := doc.Header
		if h == nil {
			add(rel, "missing frontmatter", SeverityError)
			continue
		}

		if !h.Has(CreatedKey) {
			add(rel, fmt.Sprintf("missing '%s' date", CreatedKey), SeverityWarning)
		}

		isDaily := strings.Contains(rel, dailyNotesMarker) && dates.HasDatePrefix(doc.ID)
		if !roots[doc.ID] && !isDaily {
			if v, ok := h.Get(UpKey); !ok || v.Empty() {
				add(rel, fmt.Sprintf("missing '%s' property", UpKey), SeverityWarning)
			}
		}

		if opts.Strict && opts.Hubs.MembershipKey != "" && opts.Hubs.IsHub(doc.ID, rel, h) {
			if v, ok := h.Get(opts.Hubs.MembershipKey); !ok || v.Empty() {
				add(rel, fmt.Sprintf("MOC missing '%s' property", opts.Hubs.MembershipKey), SeverityInfo)
			}
		}
	}

	for _, f := range g.Failures {
		if !paths.ShouldCheckFrontmatterRel(f.File.RelativePath) {
			continue
		}
		add(f.File.RelativePath, fmt.Sprintf("read error: %v", f.Err), SeverityError)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues
}
