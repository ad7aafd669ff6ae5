package paths

import (
	"bufio"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// IgnoreFile is the vault-root file whose glob patterns exclude content.
	IgnoreFile = ".gitignore"

	// SubmoduleManifest is the vault-root file declaring external sub-repositories.
	SubmoduleManifest = ".gitmodules"
)

// builtinPatterns are always applied, even when no ignore file exists.
var builtinPatterns = []string{
	// Hidden directories and files at any level
	".*/**",
	".*",

	// Package managers
	"**/node_modules",
	"**/node_modules/**",
	"*.egg-info",
	"__pycache__",
	".venv",
	"venv",
	".pnpm-store",
	".yarn",

	// Build outputs
	"dist/**",
	"build/**",
	"out/**",

	// OS and editor artifacts
	".DS_Store",
	"Thumbs.db",
	"*.swp",
	"*.swo",
	"*~",
}

// Rules is an ordered set of exclusion patterns.
//
// Independently of the patterns, any path with a hidden component is
// excluded; no pattern can bring such a path back.
type Rules struct {
	patterns []string
}

// NewRules creates a rule set from the given patterns, in order.
// It does not add the built-in patterns.
func NewRules(patterns ...string) *Rules {
	r := &Rules{}
	r.add(patterns...)
	return r
}

func (r *Rules) add(patterns ...string) {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		r.patterns = append(r.patterns, p)
	}
}

// LoadRules builds the exclusion rule set for a vault:
// built-in patterns, then submodule paths from .gitmodules, then patterns
// from .gitignore, then extra (typically from the vault config).
//
// LoadRules never fails. Missing or unreadable config files are skipped and
// the rules accumulated so far are used.
func LoadRules(vaultRoot string, extra ...string) *Rules {
	r := NewRules(builtinPatterns...)

	submodules, err := readSubmodulePatterns(filepath.Join(vaultRoot, SubmoduleManifest))
	if err != nil {
		slog.Debug("skipping submodule manifest", "path", SubmoduleManifest, "error", err)
	}
	r.add(submodules...)

	ignored, err := readIgnorePatterns(filepath.Join(vaultRoot, IgnoreFile))
	if err != nil {
		slog.Debug("skipping ignore file", "path", IgnoreFile, "error", err)
	}
	r.add(ignored...)

	r.add(extra...)
	return r
}

// readIgnorePatterns parses a .gitignore-style file. On a read error the
// patterns parsed before the failure are returned along with the error.
func readIgnorePatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimRight(line, "/")
		if line != "" {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}

// readSubmodulePatterns parses a .gitmodules file. Each declared path p
// contributes "p/**" and "p". Malformed lines are skipped.
func readSubmodulePatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		if !strings.HasPrefix(line, "path = ") && !strings.HasPrefix(line, "path=") {
			continue
		}
		_, value, _ := strings.Cut(line, "=")
		value = strings.TrimSpace(value)
		if value != "" {
			patterns = append(patterns, value+"/**", value)
		}
	}
	if err := scanner.Err(); err != nil {
		// A partially read manifest is discarded.
		return nil, err
	}
	return patterns, nil
}

// Excludes reports whether the vault-relative path rel is excluded.
func (r *Rules) Excludes(rel string) bool {
	rel = normalizeRelPath(rel)
	segments := strings.Split(rel, "/")
	for _, seg := range segments {
		if IsHiddenSegment(seg) {
			return true
		}
	}
	if r == nil {
		return false
	}

	last := len(segments) - 1
	for _, pattern := range r.patterns {
		if Match(pattern, rel) {
			return true
		}

		bare := barePattern(pattern)
		spansDir := strings.Contains(pattern, "/**")
		for i, seg := range segments {
			if Match(bare, seg) && (i < last || spansDir) {
				return true
			}
		}
	}
	return false
}

// ExcludesDir reports whether every file beneath the vault-relative
// directory relDir is excluded. It is used to prune directory walks; a false
// result says nothing about individual files.
func (r *Rules) ExcludesDir(relDir string) bool {
	relDir = normalizeRelPath(relDir)
	if relDir == "" || relDir == "." {
		return false
	}
	segments := strings.Split(relDir, "/")
	for _, seg := range segments {
		if IsHiddenSegment(seg) {
			return true
		}
	}
	if r == nil {
		return false
	}
	for _, pattern := range r.patterns {
		bare := barePattern(pattern)
		for _, seg := range segments {
			if Match(bare, seg) {
				return true
			}
		}
	}
	return false
}

// barePattern strips surrounding '*' and then surrounding '/' so that a
// pattern like "**/node_modules/**" can be tested against one path component.
func barePattern(pattern string) string {
	return strings.Trim(strings.Trim(pattern, "*"), "/")
}

// IsContent reports whether the file at path is vault content under rules.
// Paths outside vaultRoot are never content.
func IsContent(path, vaultRoot string, rules *Rules) bool {
	rel, ok := Rel(vaultRoot, path)
	if !ok {
		return false
	}
	return !rules.Excludes(rel)
}

// frontmatterExempt lists documentation and generated files that are not
// expected to carry frontmatter.
var frontmatterExempt = []string{
	"**/readme*",
	"**/changelog*",
	"**/license*",
	"**/code_of_conduct*",
	"**/contributing*",
	"**/history*",
	"**/releases*",
	"**/api.md",
	"**/contributing/**",
	"*.html",
	"*.css",
}

// ShouldCheckFrontmatter reports whether the file at path is expected to
// carry frontmatter. It is independent of the content filter.
func ShouldCheckFrontmatter(path, vaultRoot string) bool {
	rel, ok := Rel(vaultRoot, path)
	if !ok {
		return false
	}
	return ShouldCheckFrontmatterRel(rel)
}

// ShouldCheckFrontmatterRel is ShouldCheckFrontmatter for a path already
// relative to the vault root.
func ShouldCheckFrontmatterRel(rel string) bool {
	rel = strings.ToLower(normalizeRelPath(rel))
	name := path.Base(rel)

	for _, pattern := range frontmatterExempt {
		if Match(pattern, rel) || Match(pattern, name) {
			return false
		}
		// "**/readme*" should also exempt a root-level README.
		if bare, ok := strings.CutPrefix(pattern, "**/"); ok && !strings.Contains(bare, "/") {
			if Match(bare, name) {
				return false
			}
		}
	}
	return true
}
