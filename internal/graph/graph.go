// Package graph builds the link graph of a vault from a batch of documents.
package graph

import (
	"log/slog"
	"sort"

	"github.com/aidanlsb/vaudit/internal/vault"
	"github.com/aidanlsb/vaudit/internal/wikilink"
)

// Edge is one reference occurrence.
type Edge struct {
	SourceID   string
	SourcePath string
	// Raw is the target as written, trimmed, alias removed.
	Raw string
	// Target is the normalized identifier Raw refers to.
	Target string
}

// SelfReference reports whether the edge points back at its own source.
func (e Edge) SelfReference() bool {
	return e.Target == e.SourceID
}

// Graph is an in-memory representation of the vault's link structure.
type Graph struct {
	Root string

	// Existing holds the identifier of every content file, whether or not
	// it could be read.
	Existing map[string]bool
	// Paths maps an identifier to its relative path. On collision the last
	// path in relative-path order wins.
	Paths map[string]string
	// Incoming maps an existing identifier to the identifiers referencing it.
	Incoming map[string]map[string]bool
	// References maps every normalized target, resolved or not, to the edges
	// pointing at it in scan order.
	References map[string][]Edge
	// Edges holds every reference in scan order.
	Edges []Edge
	// Collisions maps identifiers shared by several files to their sorted paths.
	Collisions map[string][]string

	// Documents are the successfully read documents, in relative-path order.
	Documents []*vault.Document
	// Failures are the files that could not be read.
	Failures []vault.Result

	byID map[string]*vault.Document
}

// Build constructs the link graph from a batch in two passes: first every
// content file is registered, then every readable document's references
// are recorded.
func Build(batch *vault.Batch) *Graph {
	g := &Graph{
		Root:       batch.Root,
		Existing:   make(map[string]bool),
		Paths:      make(map[string]string),
		Incoming:   make(map[string]map[string]bool),
		References: make(map[string][]Edge),
		Collisions: make(map[string][]string),
		byID:       make(map[string]*vault.Document),
	}

	seen := make(map[string][]string)
	for _, r := range batch.Results {
		id := r.File.ID
		g.Existing[id] = true
		g.Paths[id] = r.File.RelativePath
		if g.Incoming[id] == nil {
			g.Incoming[id] = make(map[string]bool)
		}
		seen[id] = append(seen[id], r.File.RelativePath)

		if r.OK() {
			g.Documents = append(g.Documents, r.Document)
			g.byID[id] = r.Document
		} else {
			g.Failures = append(g.Failures, r)
		}
	}

	for id, ps := range seen {
		if len(ps) < 2 {
			continue
		}
		sorted := append([]string(nil), ps...)
		sort.Strings(sorted)
		g.Collisions[id] = sorted
		slog.Warn("identifier shared by several files", "id", id, "paths", sorted)
	}

	for _, doc := range g.Documents {
		for _, raw := range wikilink.Extract(doc.Content) {
			target := wikilink.Normalize(raw)
			if target == "" {
				continue
			}
			e := Edge{SourceID: doc.ID, SourcePath: doc.RelativePath, Raw: raw, Target: target}
			g.Edges = append(g.Edges, e)
			g.References[target] = append(g.References[target], e)
			if incoming, ok := g.Incoming[target]; ok {
				incoming[doc.ID] = true
			}
		}
	}

	return g
}

// Exists reports whether id names a content file.
func (g *Graph) Exists(id string) bool {
	return g.Existing[id]
}

// Document returns the readable document for id. On collision it is the
// last one in relative-path order.
func (g *Graph) Document(id string) (*vault.Document, bool) {
	d, ok := g.byID[id]
	return d, ok
}

// InDegree returns the number of distinct documents referencing id.
func (g *Graph) InDegree(id string) int {
	return len(g.Incoming[id])
}

// IDs returns every existing identifier, sorted.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.Existing))
	for id := range g.Existing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
