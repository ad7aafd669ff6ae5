package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/vaudit/internal/slugs"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border-bottom: 1px solid #ddd; padding: 0.25rem 0.75rem; text-align: left; }
code { background: #f4f4f5; padding: 0 0.2rem; border-radius: 3px; }
</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

// HTML renders a markdown report as a standalone HTML page. Headings get
// ids matching the anchors used by the summary table.
func HTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			if id := slugs.HeadingSlug(headingText(heading, source)); id != "" {
				heading.SetAttributeString("id", []byte(id))
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, source, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	var out strings.Builder
	fmt.Fprintf(&out, htmlHead, html.EscapeString(title))
	out.Write(body.Bytes())
	out.WriteString(htmlFoot)
	return out.String(), nil
}

// headingText concatenates the text nodes beneath a heading.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
