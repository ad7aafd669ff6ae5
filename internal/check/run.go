package check

import (
	"github.com/aidanlsb/vaudit/internal/graph"
)

// Failure is a file that could not be read.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Failures lists the graph's unreadable files.
func Failures(g *graph.Graph) []Failure {
	out := make([]Failure, 0, len(g.Failures))
	for _, f := range g.Failures {
		out = append(out, Failure{Path: f.File.RelativePath, Error: f.Err.Error()})
	}
	return out
}

// Summary holds the results of every analysis over one graph.
type Summary struct {
	Documents int `json:"documents"`

	BrokenLinks        []BrokenLink        `json:"broken_links"`
	Orphans            []Orphan            `json:"orphans"`
	BloatedHubs        []BloatedHub        `json:"bloated_hubs"`
	ArchivalCandidates []ArchivalCandidate `json:"archival_candidates"`
	SqueezePoints      []SqueezePoint      `json:"squeeze_points"`
	FrontmatterIssues  []FrontmatterIssue  `json:"frontmatter_issues"`

	// Diagnostics; they do not make a vault dirty on their own.
	Failures   []Failure           `json:"read_failures"`
	Collisions map[string][]string `json:"collisions"`
}

// Run performs every analysis over g.
func Run(g *graph.Graph, opts Options) *Summary {
	return &Summary{
		Documents:          len(g.Existing),
		BrokenLinks:        FindBrokenLinks(g),
		Orphans:            FindOrphans(g, opts.RootNotes),
		BloatedHubs:        DetectBloat(g, opts.Hubs, opts.BloatThreshold),
		ArchivalCandidates: SuggestArchival(g, opts),
		SqueezePoints:      FindSqueezePoints(g, opts.Hubs, opts.SqueezeThreshold),
		FrontmatterIssues:  CheckFrontmatter(g, opts),
		Failures:           Failures(g),
		Collisions:         g.Collisions,
	}
}

// Findings returns the total number of findings across all analyses.
func (s *Summary) Findings() int {
	return len(s.BrokenLinks) + len(s.Orphans) + len(s.BloatedHubs) +
		len(s.ArchivalCandidates) + len(s.SqueezePoints) + len(s.FrontmatterIssues)
}

// Clean reports whether no analysis found anything.
func (s *Summary) Clean() bool {
	return s.Findings() == 0
}
