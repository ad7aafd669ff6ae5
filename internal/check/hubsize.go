package check

import (
	"sort"

	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/wikilink"
)

// Bloat statuses.
const (
	StatusBloated = "bloated"
	StatusWarning = "warning"
)

// BloatedHub is a hub with too many direct links.
type BloatedHub struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	LinkCount int    `json:"link_count"`
	Status    string `json:"status"`
}

// WarningThreshold is the link count from which a hub is reported as a
// warning: 80% of threshold, rounded down.
func WarningThreshold(threshold int) int {
	return int(float64(threshold) * 0.8)
}

// DetectBloat reports hubs whose body holds at least WarningThreshold
// distinct link targets. Links in the header are not counted. Results are
// sorted by link count, largest first.
func DetectBloat(g *graph.Graph, hubs HubRules, threshold int) []BloatedHub {
	warning := WarningThreshold(threshold)

	var results []BloatedHub
	for _, doc := range g.Documents {
		if !hubs.IsHub(doc.ID, doc.RelativePath, doc.Header) {
			continue
		}
		count := len(wikilink.ExtractSet(doc.Body))
		if count < warning {
			continue
		}
		status := StatusWarning
		if count >= threshold {
			status = StatusBloated
		}
		results = append(results, BloatedHub{
			Path:      doc.RelativePath,
			Name:      doc.ID,
			LinkCount: count,
			Status:    status,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].LinkCount != results[j].LinkCount {
			return results[i].LinkCount > results[j].LinkCount
		}
		return results[i].Path < results[j].Path
	})
	return results
}
