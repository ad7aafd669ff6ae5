// Package paths provides canonical helpers for vault-relative paths and for
// deciding which files in a vault count as content.
//
// Vault-relative paths are always slash-separated, regardless of platform,
// so that ignore patterns and report output are stable across systems.
package paths

import (
	"path"
	"path/filepath"
	"strings"
)

// normalizeRelPath normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func normalizeRelPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// Rel returns p relative to vaultRoot as a slash-separated path.
//
// The computation is lexical. ok is false when the relative path cannot be
// computed (e.g. one path is absolute and the other is not) or when p lies
// outside vaultRoot.
func Rel(vaultRoot, p string) (rel string, ok bool) {
	r, err := filepath.Rel(vaultRoot, p)
	if err != nil {
		return "", false
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", false
	}
	return normalizeRelPath(r), true
}

// Segments splits a slash-separated relative path into its components.
func Segments(rel string) []string {
	return strings.Split(normalizeRelPath(rel), "/")
}

// IsHiddenSegment reports whether a path component names a hidden entry.
// The special components "." and ".." are not hidden.
func IsHiddenSegment(seg string) bool {
	return strings.HasPrefix(seg, ".") && seg != "." && seg != ".."
}

// Stem returns the final component of a slash-separated path without its
// extension: "Folder/Note.md" -> "Note", "a.b.md" -> "a.b".
//
// A leading or trailing dot does not delimit an extension (".hidden" and
// "Note." are kept whole), and trailing slashes are ignored.
func Stem(p string) string {
	p = strings.TrimRight(filepath.ToSlash(p), "/")
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		return base[:i]
	}
	return base
}
