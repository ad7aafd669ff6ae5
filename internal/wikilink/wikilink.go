// Package wikilink provides canonical parsing/scanning of wikilinks.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//
// Notes:
//   - The target is trimmed of surrounding whitespace; an empty target is not a link.
//   - The display text is discarded for graph purposes.
//   - This package does NOT understand markdown code fences. Links inside
//     code blocks are links like any other.
package wikilink

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/vaudit/internal/paths"
)

// re matches [[target]] or [[target|display]].
var re = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)

var (
	aliasedLink = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	plainLink   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
)

// Target returns the trimmed target of s when s, ignoring surrounding
// whitespace, is a single wikilink and nothing else.
func Target(s string) (string, bool) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "[[")
	if !ok {
		return "", false
	}
	if inner, ok = strings.CutSuffix(inner, "]]"); !ok || strings.Contains(inner, "]]") {
		return "", false
	}
	target, _, _ := strings.Cut(inner, "|")
	target = strings.TrimSpace(target)
	return target, target != ""
}

// Extract returns the trimmed raw target of every wikilink in text.
// Order and duplicates are preserved.
func Extract(text string) []string {
	var targets []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if target := strings.TrimSpace(m[1]); target != "" {
			targets = append(targets, target)
		}
	}
	return targets
}

// ExtractSet returns the distinct raw targets in text.
func ExtractSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, target := range Extract(text) {
		set[target] = struct{}{}
	}
	return set
}

// Normalize reduces a raw target to the identifier it refers to.
//
// A target containing '/' is reduced to its final path component without
// extension, then anything from the first '#' on is dropped:
//
//	"Folder/Note.md"  -> "Note"
//	"Note#Heading"    -> "Note"
//	"Dir/Note#Sec"    -> "Note"
//	"#Heading"        -> ""
//
// An empty result means the reference should be discarded. Normalize is
// idempotent.
func Normalize(target string) string {
	if strings.Contains(target, "/") {
		target = paths.Stem(target)
	}
	if i := strings.Index(target, "#"); i >= 0 {
		target = target[:i]
	}
	return target
}

// NormalizeAll normalizes each target and drops empty results.
func NormalizeAll(targets []string) []string {
	var out []string
	for _, t := range targets {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// StripLinks replaces each wikilink with its visible text: the display
// text when present, the raw target otherwise.
func StripLinks(text string) string {
	text = aliasedLink.ReplaceAllString(text, "$2")
	return plainLink.ReplaceAllString(text, "$1")
}
