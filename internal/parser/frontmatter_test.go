package parser

import (
	"reflect"
	"testing"
)

func TestParseHeader(t *testing.T) {
	t.Run("no header", func(t *testing.T) {
		for _, content := range []string{
			"# Just a heading\n\nSome content",
			"",
			" ---\ntitle: x\n---\n",
			"---\ntitle: unclosed\n",
		} {
			if h := ParseHeader(content); h != nil {
				t.Fatalf("ParseHeader(%q) = %v, want nil", content, h.keys)
			}
		}
	})

	t.Run("empty header is present", func(t *testing.T) {
		h := ParseHeader("---\n---\n\n# Title\nContent")
		if h == nil {
			t.Fatal("expected non-nil header")
		}
		if !h.IsEmpty() || h.Len() != 0 {
			t.Fatalf("expected empty header, got keys %v", h.keys)
		}
		if h.Has("created") {
			t.Fatal("empty header should not have keys")
		}
	})

	t.Run("scalars and lists", func(t *testing.T) {
		content := `---
created: 2024-01-15
title: "Quoted Title"
up:
  - "[[Home]]"
  - [[Atlas]]
tags: [a, "b", , c ]
related: []
rank:
---

Body with [[Link]]`
		h := ParseHeader(content)
		if h == nil {
			t.Fatal("expected header")
		}

		wantKeys := []string{"created", "title", "up", "tags", "related", "rank"}
		if got := h.keys; !reflect.DeepEqual(got, wantKeys) {
			t.Fatalf("keys = %v, want %v", got, wantKeys)
		}

		if v, _ := h.Get("created"); v.IsList() || v.Scalar() != "2024-01-15" {
			t.Fatalf("created = %+v", v)
		}
		if v, _ := h.Get("title"); v.Scalar() != "Quoted Title" {
			t.Fatalf("title = %q, want %q", v.Scalar(), "Quoted Title")
		}
		if v, _ := h.Get("up"); !v.IsList() || !reflect.DeepEqual(v.List(), []string{"[[Home]]", "[[Atlas]]"}) {
			t.Fatalf("up = %+v", v)
		}
		if v, _ := h.Get("tags"); !reflect.DeepEqual(v.List(), []string{"a", "b", "c"}) {
			t.Fatalf("tags = %v", v.List())
		}
		if v, _ := h.Get("related"); !v.IsList() || !v.Empty() {
			t.Fatalf("related = %+v, want empty list", v)
		}
		if v, _ := h.Get("rank"); !v.IsList() || !v.Empty() {
			t.Fatalf("rank = %+v, want empty list", v)
		}
	})

	t.Run("list items without an open list are ignored", func(t *testing.T) {
		h := ParseHeader("---\ntitle: x\n  - stray\n---\n")
		if v, _ := h.Get("title"); v.IsList() || v.Scalar() != "x" {
			t.Fatalf("title = %+v", v)
		}
		if h.Len() != 1 {
			t.Fatalf("keys = %v", h.keys)
		}
	})

	t.Run("scalar closes the open list", func(t *testing.T) {
		h := ParseHeader("---\nup:\n  - a\ncreated: now\n  - b\n---\n")
		if v, _ := h.Get("up"); !reflect.DeepEqual(v.List(), []string{"a"}) {
			t.Fatalf("up = %v", v.List())
		}
	})

	t.Run("duplicate key keeps first position", func(t *testing.T) {
		h := ParseHeader("---\na: 1\nb: 2\na: 3\n---\n")
		if got := h.keys; !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("keys = %v", got)
		}
		if v, _ := h.Get("a"); v.Scalar() != "3" {
			t.Fatalf("a = %q, want 3", v.Scalar())
		}
	})

	t.Run("unicode keys and ignored lines", func(t *testing.T) {
		h := ParseHeader("---\ntítulo: Olá\nnot a key line\nkey-with-dash: x\n# comment\n---\n")
		if v, ok := h.Get("título"); !ok || v.Scalar() != "Olá" {
			t.Fatalf("título = %+v, %v", v, ok)
		}
		if h.Len() != 1 {
			t.Fatalf("keys = %v", h.keys)
		}
	})

	t.Run("crlf line endings", func(t *testing.T) {
		h := ParseHeader("---\r\ncreated: 2024-01-01\r\nup:\r\n  - x\r\n---\r\n")
		if v, _ := h.Get("created"); v.Scalar() != "2024-01-01" {
			t.Fatalf("created = %q", v.Scalar())
		}
		if v, _ := h.Get("up"); !reflect.DeepEqual(v.List(), []string{"x"}) {
			t.Fatalf("up = %v", v.List())
		}
	})
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantRegion string
		wantBody   string
		wantOK     bool
	}{
		{"header", "---\na: 1\n---\nbody", "\na: 1\n", "\nbody", true},
		{"no header", "body only", "", "body only", false},
		{"unclosed", "---\na: 1", "", "---\na: 1", false},
		{"delimiter in body", "---\na: 1\n---\nx --- y", "\na: 1\n", "\nx --- y", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			region, body, ok := SplitHeader(tc.text)
			if region != tc.wantRegion || body != tc.wantBody || ok != tc.wantOK {
				t.Fatalf("SplitHeader(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.text, region, body, ok, tc.wantRegion, tc.wantBody, tc.wantOK)
			}
		})
	}
	if got := Body("no header"); got != "no header" {
		t.Fatalf("Body() = %q", got)
	}
}

func TestValueItems(t *testing.T) {
	if got := Scalar("x").Items(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("Scalar.Items() = %v", got)
	}
	if got := Scalar("").Items(); got != nil {
		t.Fatalf("empty Scalar.Items() = %v", got)
	}
	if got := List("a", "b").Items(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List.Items() = %v", got)
	}
	if !List().Empty() || !Scalar("").Empty() || Scalar("x").Empty() {
		t.Fatal("Empty() mismatch")
	}
}
