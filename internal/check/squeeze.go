package check

import (
	"sort"

	"github.com/aidanlsb/vaudit/internal/graph"
)

// maxSampleSources caps SqueezePoint.Sources.
const maxSampleSources = 10

// SqueezePoint is a heavily referenced note with no hub organizing it.
type SqueezePoint struct {
	Term           string `json:"term"`
	ReferenceCount int    `json:"reference_count"`
	// Sources holds the first source paths in sorted order.
	Sources      []string `json:"sources"`
	TotalSources int      `json:"total_sources"`
}

// FindSqueezePoints reports normalized targets referenced at least threshold
// times (self-references excluded) that exist, are not hubs themselves, and
// have no dedicated hub ("X MOC" or "X Map"). Every reference occurrence
// counts. Results are sorted by reference count, largest first.
func FindSqueezePoints(g *graph.Graph, hubs HubRules, threshold int) []SqueezePoint {
	hubIDs := hubs.HubIDs(g)

	var points []SqueezePoint
	for target, edges := range g.References {
		var sources []string
		for _, e := range edges {
			if e.SelfReference() {
				continue
			}
			sources = append(sources, e.SourcePath)
		}
		if len(sources) < threshold || len(sources) == 0 {
			continue
		}
		if hubIDs[target] || hubs.IsHubName(target) {
			continue
		}
		if !g.Exists(target) {
			continue
		}
		if hasDedicatedHub(target, hubs, hubIDs) {
			continue
		}

		sort.Strings(sources)
		sample := sources
		if len(sample) > maxSampleSources {
			sample = sample[:maxSampleSources]
		}
		points = append(points, SqueezePoint{
			Term:           target,
			ReferenceCount: len(sources),
			Sources:        append([]string(nil), sample...),
			TotalSources:   len(sources),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].ReferenceCount != points[j].ReferenceCount {
			return points[i].ReferenceCount > points[j].ReferenceCount
		}
		return points[i].Term < points[j].Term
	})
	return points
}

func hasDedicatedHub(term string, hubs HubRules, hubIDs map[string]bool) bool {
	for _, name := range hubs.hubNamesFor(term) {
		if hubIDs[name] {
			return true
		}
	}
	return false
}
