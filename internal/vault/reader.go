package vault

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidUTF8 is returned for content that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// DefaultCacheSize is the number of files a long-lived Reader keeps.
const DefaultCacheSize = 4096

type cachedContent struct {
	modTime time.Time
	size    int64
	content string
}

// Reader reads and decodes content files.
//
// A Reader created with a positive cache size keeps decoded content keyed by
// path, and serves it again only while the file's modification time and size
// are unchanged. A one-shot scan uses NewReader(0), which never caches.
type Reader struct {
	cache *lru.Cache[string, cachedContent]
}

// NewReader creates a Reader caching up to size files.
func NewReader(size int) *Reader {
	if size <= 0 {
		return &Reader{}
	}
	cache, err := lru.New[string, cachedContent](size)
	if err != nil {
		return &Reader{}
	}
	return &Reader{cache: cache}
}

// Read returns the decoded content of f. Line endings are normalized to "\n".
func (r *Reader) Read(f File) (string, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", f.RelativePath, err)
	}

	if r.cache != nil {
		if c, ok := r.cache.Get(f.Path); ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
			return c.content, nil
		}
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.RelativePath, err)
	}
	content, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", f.RelativePath, err)
	}

	if r.cache != nil {
		r.cache.Add(f.Path, cachedContent{modTime: info.ModTime(), size: info.Size(), content: content})
	}
	return content, nil
}

// Len returns the number of cached files.
func (r *Reader) Len() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

func decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	s := string(data)
	if strings.Contains(s, "\r") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return s, nil
}
