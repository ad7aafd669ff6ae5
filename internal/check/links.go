package check

import (
	"sort"

	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/slugs"
)

// BrokenLink is a reference whose target does not exist.
type BrokenLink struct {
	SourcePath string `json:"source_path"`
	// Target is the token as written, alias removed.
	Target string `json:"target"`
	// Suggestion names an existing note that the target probably meant.
	Suggestion string `json:"suggestion,omitempty"`
}

// FindBrokenLinks reports every reference whose normalized target is not an
// existing identifier. Each distinct raw token is reported once per source
// file. Results are sorted by source path, then token.
func FindBrokenLinks(g *graph.Graph) []BrokenLink {
	type key struct{ source, raw string }
	seen := make(map[key]bool)
	idx := slugs.NewIndex(g.IDs())

	var broken []BrokenLink
	for _, e := range g.Edges {
		if g.Exists(e.Target) {
			continue
		}
		k := key{e.SourcePath, e.Raw}
		if seen[k] {
			continue
		}
		seen[k] = true

		b := BrokenLink{SourcePath: e.SourcePath, Target: e.Raw}
		if match, ok := idx.Unique(e.Target); ok {
			b.Suggestion = match
		}
		broken = append(broken, b)
	}

	sort.SliceStable(broken, func(i, j int) bool {
		if broken[i].SourcePath != broken[j].SourcePath {
			return broken[i].SourcePath < broken[j].SourcePath
		}
		return broken[i].Target < broken[j].Target
	})
	return broken
}

// Orphan is a document nothing links to.
type Orphan struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FindOrphans reports every existing identifier with no incoming references
// that is not one of roots. Results are sorted by name.
func FindOrphans(g *graph.Graph, roots []string) []Orphan {
	rootSet := Options{RootNotes: roots}.rootSet()

	var orphans []Orphan
	for _, id := range g.IDs() {
		if g.InDegree(id) > 0 || rootSet[id] {
			continue
		}
		orphans = append(orphans, Orphan{Name: id, Path: g.Paths[id]})
	}
	return orphans
}
