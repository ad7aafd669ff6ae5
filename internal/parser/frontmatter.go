// Package parser handles parsing the header block of markdown documents.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Delimiter opens and closes a header block.
const Delimiter = "---"

// listItemPrefix marks a line that appends to the currently open list.
const listItemPrefix = "  - "

// keyLine matches "key: value" where key is one or more word characters.
var keyLine = regexp.MustCompile(`^([\p{L}\p{N}_]+):\s*(.*)`)

// Value is a header value: either a scalar string or an ordered list.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List returns a list value. A nil items slice is an empty list.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{list: items, isList: true}
}

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.isList }

// Scalar returns the scalar string, or "" for a list.
func (v Value) Scalar() string { return v.scalar }

// List returns the list items, or nil for a scalar.
func (v Value) List() []string { return v.list }

// Items returns the value as a list of strings: a list's items, or a
// one-element slice holding a non-empty scalar.
func (v Value) Items() []string {
	if v.isList {
		return v.list
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

// Empty reports whether the value carries nothing: an empty list or an
// empty scalar.
func (v Value) Empty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.scalar == ""
}

// Header is the parsed key/value block at the top of a document.
//
// A nil *Header means the document has no header. A non-nil header with no
// keys means the header block is present but empty.
type Header struct {
	keys   []string
	values map[string]Value
}

// NewHeader returns an empty, present header.
func NewHeader() *Header {
	return &Header{values: make(map[string]Value)}
}

// Set assigns a value. A new key is appended to the key order; an existing
// key keeps its position.
func (h *Header) Set(key string, v Value) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = v
}

// Get returns the value for key.
func (h *Header) Get(key string) (Value, bool) {
	if h == nil {
		return Value{}, false
	}
	v, ok := h.values[key]
	return v, ok
}

// Has reports whether key is present.
func (h *Header) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Len returns the number of keys.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// IsEmpty reports whether the header is present but holds no keys.
func (h *Header) IsEmpty() bool {
	return h != nil && len(h.keys) == 0
}

// SplitHeader separates the header region from the body.
//
// The text must start with the delimiter and contain a second one; the
// region is whatever lies between the first two delimiter occurrences and
// the body is everything after the second. When there is no header, ok is
// false and body is the whole text.
func SplitHeader(text string) (region, body string, ok bool) {
	if !strings.HasPrefix(text, Delimiter) {
		return "", text, false
	}
	parts := strings.SplitN(text, Delimiter, 3)
	if len(parts) < 3 {
		return "", text, false
	}
	return parts[1], parts[2], true
}

// Body returns the text after the header, or the whole text when there is
// no header.
func Body(text string) string {
	_, body, _ := SplitHeader(text)
	return body
}

// ParseHeader parses the header block of a document.
// It returns nil when the text has no header.
//
// The grammar is a deliberately small subset of YAML:
//
//	key: scalar            scalar value, surrounding '"' removed
//	key: [a, "b"]          inline list
//	key:                   opens an empty list ("key: []" does too)
//	  - item               appends to the open list
//
// Any other line is ignored.
func ParseHeader(text string) *Header {
	region, _, ok := SplitHeader(text)
	if !ok {
		return nil
	}

	h := NewHeader()
	region = strings.TrimSpace(region)
	if region == "" {
		return h
	}

	var (
		openKey  string
		openList []string
		listOpen bool
	)
	closeList := func() {
		if listOpen {
			h.Set(openKey, List(openList...))
		}
		listOpen = false
		openList = nil
	}

	for _, line := range strings.Split(region, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, listItemPrefix) {
			if listOpen {
				openList = append(openList, unquote(line[len(listItemPrefix):]))
			}
			continue
		}

		m := keyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		closeList()

		key := m[1]
		value := strings.TrimSpace(m[2])
		switch {
		case value == "" || value == "[]":
			openKey = key
			listOpen = true
			// Record the key now so its position is first-seen order.
			h.Set(key, List())
		case len(value) >= 2 && strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
			h.Set(key, List(splitInline(value[1:len(value)-1])...))
		default:
			h.Set(key, Scalar(strings.Trim(value, `"`)))
		}
	}
	closeList()

	return h
}

func splitInline(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		items = append(items, unquote(part))
	}
	return items
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
