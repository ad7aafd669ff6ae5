// Package vault enumerates and reads the content files of a vault.
package vault

import (
	"time"

	"github.com/aidanlsb/vaudit/internal/parser"
	"github.com/aidanlsb/vaudit/internal/paths"
)

// File is a content file found by the walk.
type File struct {
	// Path is the file path as walked (vault root joined with the relative path).
	Path string

	// RelativePath is slash-separated and relative to the vault root.
	RelativePath string

	// ID is the filename without its extension. It is the join key for
	// references and is not unique across directories.
	ID string

	ModTime time.Time
	Size    int64
}

// Document is a successfully read content file.
type Document struct {
	ID           string
	Path         string
	RelativePath string

	// Header is nil when the document has no header block.
	Header *parser.Header

	// Body is the text after the header, or the whole text when there is none.
	Body string

	// Content is the full text.
	Content string

	ModTime time.Time
}

// NewDocument parses content read from f.
func NewDocument(f File, content string) *Document {
	return &Document{
		ID:           f.ID,
		Path:         f.Path,
		RelativePath: f.RelativePath,
		Header:       parser.ParseHeader(content),
		Body:         parser.Body(content),
		Content:      content,
		ModTime:      f.ModTime,
	}
}

// Dir returns the slash-separated directory components of the document's
// relative path, excluding the filename.
func (d *Document) Dir() []string {
	segs := paths.Segments(d.RelativePath)
	return segs[:len(segs)-1]
}

// Result is the outcome of reading one content file: either a Document or
// the error that prevented reading it.
type Result struct {
	File     File
	Document *Document
	Err      error
}

// OK reports whether the file was read successfully.
func (r Result) OK() bool {
	return r.Err == nil && r.Document != nil
}

// Batch holds the per-file results of one scan, in relative-path order.
type Batch struct {
	Root    string
	Results []Result
}

// Documents returns the successfully read documents.
func (b *Batch) Documents() []*Document {
	var docs []*Document
	for _, r := range b.Results {
		if r.OK() {
			docs = append(docs, r.Document)
		}
	}
	return docs
}

// Failures returns the results whose read failed.
func (b *Batch) Failures() []Result {
	var failed []Result
	for _, r := range b.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
