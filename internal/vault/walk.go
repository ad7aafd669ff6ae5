package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/vaudit/internal/paths"
)

// ErrVaultNotFound is returned when the vault root does not exist or is not
// a directory.
var ErrVaultNotFound = errors.New("vault not found")

// MarkdownExt is the extension of content files.
const MarkdownExt = ".md"

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: path does not exist: %s", ErrVaultNotFound, root)
		}
		return fmt.Errorf("%w: %v", ErrVaultNotFound, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: not a directory: %s", ErrVaultNotFound, root)
	}
	return nil
}

// ListFiles returns every content file in the vault, sorted by relative path.
//
// It automatically:
//   - Only lists .md files
//   - Passes every file through paths.IsContent
//   - Prunes directories whose every file the rules would exclude
//
// Unreadable subdirectories are logged and skipped. Only a missing or
// unreadable root is an error.
func ListFiles(root string, rules *paths.Rules) ([]File, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	// WalkDir does not descend into a symlinked root.
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if rel, ok := paths.Rel(root, path); ok && rules.ExcludesDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), MarkdownExt) {
			return nil
		}
		if !paths.IsContent(path, root, rules) {
			return nil
		}

		rel, _ := paths.Rel(root, path)
		f := File{
			Path:         path,
			RelativePath: rel,
			ID:           paths.Stem(rel),
		}
		if info, err := d.Info(); err == nil {
			f.ModTime = info.ModTime()
			f.Size = info.Size()
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultNotFound, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
	return files, nil
}

// Load lists the vault's content files and reads each one.
//
// A file that cannot be read or decoded becomes a Result with Err set and
// is logged; it never aborts the scan. reader may be nil.
func Load(root string, rules *paths.Rules, reader *Reader) (*Batch, error) {
	files, err := ListFiles(root, rules)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		reader = NewReader(0)
	}

	batch := &Batch{Root: root, Results: make([]Result, 0, len(files))}
	for _, f := range files {
		content, err := reader.Read(f)
		if err != nil {
			slog.Warn("failed to read document", "path", f.RelativePath, "error", err)
			batch.Results = append(batch.Results, Result{File: f, Err: err})
			continue
		}
		batch.Results = append(batch.Results, Result{File: f, Document: NewDocument(f, content)})
	}
	return batch, nil
}
