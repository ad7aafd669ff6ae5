// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the vault analyses as tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aidanlsb/vaudit/docs"
	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/config"
	"github.com/aidanlsb/vaudit/internal/graph"
	"github.com/aidanlsb/vaudit/internal/paths"
	"github.com/aidanlsb/vaudit/internal/report"
	"github.com/aidanlsb/vaudit/internal/vault"
)

// Resource URIs.
const (
	GuideURI  = "vaudit://guide"
	ReportURI = "vaudit://report"
)

// Server wraps the MCP server with vaudit tools for one vault.
type Server struct {
	mcp    *server.MCPServer
	root   string
	reader *vault.Reader
}

// New creates a new MCP server for the vault at root with all tools
// registered. The vault is re-read on every call; unchanged files are served
// from the reader cache.
func New(root, version string) *Server {
	s := &Server{root: root, reader: vault.NewReader(vault.DefaultCacheSize)}

	s.mcp = server.NewMCPServer(
		"vaudit",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("find_broken_links",
		mcp.WithDescription("List wikilinks whose target note does not exist, with a suggested fix when one is obvious."),
	), s.findBrokenLinks)

	s.mcp.AddTool(mcp.NewTool("find_orphans",
		mcp.WithDescription("List notes that no other note links to. Root notes are exempt."),
	), s.findOrphans)

	s.mcp.AddTool(mcp.NewTool("detect_hub_bloat",
		mcp.WithDescription("List hub notes (MOCs) whose body links to too many distinct notes."),
		mcp.WithNumber("threshold", mcp.Description("Link count at which a hub is bloated (default from vault config, else 50)")),
	), s.detectHubBloat)

	s.mcp.AddTool(mcp.NewTool("suggest_archival",
		mcp.WithDescription("Score notes for staleness and list archival candidates, highest score first."),
		mcp.WithNumber("days", mcp.Description("Days without modification before a note counts as stale (default 180)")),
	), s.suggestArchival)

	s.mcp.AddTool(mcp.NewTool("find_squeeze_points",
		mcp.WithDescription("List heavily referenced notes that have no hub organizing them."),
		mcp.WithNumber("threshold", mcp.Description("Minimum reference count (default 10)")),
	), s.findSqueezePoints)

	s.mcp.AddTool(mcp.NewTool("check_frontmatter",
		mcp.WithDescription("List notes with missing or incomplete frontmatter."),
		mcp.WithBoolean("strict", mcp.Description("Also require hubs to declare their 'in' property")),
	), s.checkFrontmatter)

	s.mcp.AddTool(mcp.NewTool("audit_vault",
		mcp.WithDescription("Run every check and return the combined summary."),
	), s.auditVault)

	s.mcp.AddResource(
		mcp.NewResource(GuideURI, "Vault audit guide",
			mcp.WithResourceDescription("What each check reports and how to act on it."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	s.mcp.AddResource(
		mcp.NewResource(ReportURI, "Vault audit report",
			mcp.WithResourceDescription("The full audit report for the vault, as markdown."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readReportResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// load reads the vault configuration and builds a fresh graph.
func (s *Server) load() (*graph.Graph, check.Options, error) {
	vc, err := config.LoadVaultConfig(s.root)
	if err != nil {
		return nil, check.Options{}, err
	}
	batch, err := vault.Load(s.root, paths.LoadRules(s.root, vc.Exclude...), s.reader)
	if err != nil {
		return nil, check.Options{}, err
	}
	slog.Debug("vault loaded", "root", s.root, "files", len(batch.Results), "cached", s.reader.Len())
	return graph.Build(batch), vc.Options(), nil
}

// analyze loads the vault and returns the result of fn as indented JSON.
func (s *Server) analyze(fn func(g *graph.Graph, opts check.Options) any) (*mcp.CallToolResult, error) {
	g, opts, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(fn(g, opts))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GuideURI,
			MIMEType: "text/markdown",
			Text:     docs.Guide(),
		},
	}, nil
}

func (s *Server) readReportResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	g, opts, err := s.load()
	if err != nil {
		return nil, err
	}
	md := report.Markdown(check.Run(g, opts), report.Options{
		Title:    filepath.Base(s.root),
		Analysis: opts,
	})
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ReportURI,
			MIMEType: "text/markdown",
			Text:     md,
		},
	}, nil
}
