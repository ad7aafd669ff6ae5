// Package slugs provides canonical slugification helpers.
//
// There are two slugging strategies:
//   - Heading slugs: anchors for report sections, a conservative transformation
//     that keeps non-ASCII letters.
//   - Component slugs: loose identity for note names, built on gosimple/slug.
//     Two names with the same component slug are "probably the same note"
//     (case, punctuation and accents aside).
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// HeadingSlug converts a heading text to a URL-friendly slug.
func HeadingSlug(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == ':':
			// Convert separators (including colon) to dashes
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	s := result.String()
	// Trim trailing dash
	return strings.TrimSuffix(s, "-")
}

// ComponentSlug converts a note name to a URL-safe slug.
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// Index maps component slugs to the names that produce them.
type Index map[string][]string

// NewIndex indexes names by component slug. Names are kept in input order.
func NewIndex(names []string) Index {
	idx := make(Index, len(names))
	for _, n := range names {
		key := ComponentSlug(n)
		idx[key] = append(idx[key], n)
	}
	return idx
}

// Unique returns the only indexed name sharing name's slug.
// ok is false when there is no such name or more than one.
func (idx Index) Unique(name string) (match string, ok bool) {
	candidates := idx[ComponentSlug(name)]
	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0], true
}
