// Package docs contains long-form Markdown docs bundled with the vaudit binary.
package docs

import "embed"

// FS contains the bundled docs.
//
//go:embed guide.md
var FS embed.FS

// Guide returns the guide to the checks served to MCP clients.
func Guide() string {
	data, err := FS.ReadFile("guide.md")
	if err != nil {
		return ""
	}
	return string(data)
}
