// Package testutil provides reusable test utilities for vaudit tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// TestVault represents a temporary vault for testing.
type TestVault struct {
	Path     string
	t        *testing.T
	files    map[string][]byte
	modTimes map[string]time.Time
	dirs     []string
}

// NewTestVault creates a new test vault builder.
// Call Build() to create the actual vault directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:        t,
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
	}
}

// WithFile adds a file to the vault.
// The path is relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = []byte(content)
	return v
}

// WithBytes adds a file with raw (possibly non-UTF-8) content.
func (v *TestVault) WithBytes(path string, content []byte) *TestVault {
	v.files[path] = content
	return v
}

// WithDir adds an empty directory to the vault.
func (v *TestVault) WithDir(path string) *TestVault {
	v.dirs = append(v.dirs, path)
	return v
}

// WithModTime sets the modification time of a file added with WithFile.
func (v *TestVault) WithModTime(path string, mt time.Time) *TestVault {
	v.modTimes[path] = mt
	return v
}

// WithVaultYAML sets the vaudit.yaml content for the vault.
func (v *TestVault) WithVaultYAML(yaml string) *TestVault {
	v.files["vaudit.yaml"] = []byte(yaml)
	return v
}

// Build creates the vault directory and all configured files.
// Returns the TestVault for method chaining.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()

	// Create temp directory
	v.Path = v.t.TempDir()

	for _, dir := range v.dirs {
		if err := os.MkdirAll(filepath.Join(v.Path, filepath.FromSlash(dir)), 0755); err != nil {
			v.t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	// Write in a stable order so failures are reproducible.
	names := make([]string, 0, len(v.files))
	for path := range v.files {
		names = append(names, path)
	}
	sort.Strings(names)
	for _, path := range names {
		v.writeFile(path, v.files[path])
	}

	for path, mt := range v.modTimes {
		full := filepath.Join(v.Path, filepath.FromSlash(path))
		if err := os.Chtimes(full, mt, mt); err != nil {
			v.t.Fatalf("failed to set mtime on %s: %v", path, err)
		}
	}

	return v
}

// writeFile writes a file to the vault, creating directories as needed.
func (v *TestVault) writeFile(relPath string, content []byte) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	// Write file
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// File returns the absolute path of a vault-relative file.
func (v *TestVault) File(relPath string) string {
	return filepath.Join(v.Path, filepath.FromSlash(relPath))
}

// ReadFile reads a file from the vault.
// Returns the content as a string.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	content, err := os.ReadFile(v.File(relPath))
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the vault.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(v.File(relPath))
	return err == nil
}

// Daily returns daily-note content with the conventional frontmatter.
func Daily(date string) string {
	return "---\ncreated: " + date + "\n---\n\n# " + date + "\n"
}

// Note returns note content with created/up frontmatter and the given body.
func Note(up, body string) string {
	return "---\ncreated: 2024-01-01\nup:\n  - \"[[" + up + "]]\"\n---\n\n" + body + "\n"
}
