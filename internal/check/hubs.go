package check

import (
	"strings"

	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/parser"
	"github.com/aidanlsb/vaudit/internal/paths"
	"github.com/aidanlsb/vaudit/internal/wikilink"
)

// HubRules classify documents as hubs (maps of content).
//
// A document is a hub when any of these hold:
//   - its identifier contains Marker
//   - its identifier ends with Suffix
//   - a directory component of its relative path equals Directory
//   - its header's MembershipKey value references Container
//
// Empty fields disable the corresponding rule.
type HubRules struct {
	Marker        string `json:"marker" yaml:"marker"`
	Suffix        string `json:"suffix" yaml:"suffix"`
	Directory     string `json:"directory" yaml:"directory"`
	MembershipKey string `json:"membership_key" yaml:"membership_key"`
	Container     string `json:"container" yaml:"container"`
}

// DefaultHubRules returns the conventional hub rules.
func DefaultHubRules() HubRules {
	return HubRules{
		Marker:        "MOC",
		Suffix:        " Map",
		Directory:     "Maps",
		MembershipKey: "in",
		Container:     "Maps",
	}
}

// IsHubName reports whether id is a hub by name alone.
func (r HubRules) IsHubName(id string) bool {
	if r.Marker != "" && strings.Contains(id, r.Marker) {
		return true
	}
	return r.Suffix != "" && strings.HasSuffix(id, r.Suffix)
}

// IsHub reports whether the document with the given identifier, relative
// path and header is a hub. header may be nil.
func (r HubRules) IsHub(id, relPath string, header *parser.Header) bool {
	if r.IsHubName(id) {
		return true
	}
	if r.Directory != "" {
		segs := paths.Segments(relPath)
		for _, seg := range segs[:len(segs)-1] {
			if seg == r.Directory {
				return true
			}
		}
	}
	return r.isMember(header)
}

// isMember reports whether one of the header's membership items is a
// wikilink to the container. Both "- [[Maps]]" list items and the inline
// "in: [[Maps]]" form count; a bare "in: Maps" does not.
func (r HubRules) isMember(header *parser.Header) bool {
	if r.MembershipKey == "" || r.Container == "" {
		return false
	}
	v, ok := header.Get(r.MembershipKey)
	if !ok {
		return false
	}
	for _, item := range v.Items() {
		// The inline form parses as a one-element list holding "[Maps]".
		if strings.HasPrefix(item, "[") && !strings.HasPrefix(item, "[[") {
			item = "[" + item + "]"
		}
		if target, ok := wikilink.Target(item); ok && wikilink.Normalize(target) == r.Container {
			return true
		}
	}
	return false
}

// HubIDs returns the identifiers of every hub in the graph. Files that could
// not be read are classified by name and path only.
func (r HubRules) HubIDs(g *graph.Graph) map[string]bool {
	hubs := make(map[string]bool)
	for _, doc := range g.Documents {
		if r.IsHub(doc.ID, doc.RelativePath, doc.Header) {
			hubs[doc.ID] = true
		}
	}
	for _, f := range g.Failures {
		if r.IsHub(f.File.ID, f.File.RelativePath, nil) {
			hubs[f.File.ID] = true
		}
	}
	return hubs
}

// hubNamesFor returns the names a dedicated hub for term would have.
func (r HubRules) hubNamesFor(term string) []string {
	var names []string
	if r.Marker != "" {
		names = append(names, term+" "+r.Marker)
	}
	if r.Suffix != "" {
		names = append(names, term+r.Suffix)
	}
	return names
}
