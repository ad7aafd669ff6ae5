package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aidanlsb/vaudit/internal/check"
	"github.com/aidanlsb/vaudit/internal/graph"
)

// intArg reads an optional integer argument of at least min.
func intArg(req mcp.CallToolRequest, key string, min, fallback int) (int, error) {
	n := req.GetInt(key, fallback)
	if n < min {
		return 0, fmt.Errorf("%s must be at least %d, got %d", key, min, n)
	}
	return n, nil
}

func (s *Server) findBrokenLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.analyze(func(g *graph.Graph, _ check.Options) any {
		return nonNil(check.FindBrokenLinks(g))
	})
}

func (s *Server) findOrphans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.analyze(func(g *graph.Graph, opts check.Options) any {
		return nonNil(check.FindOrphans(g, opts.RootNotes))
	})
}

func (s *Server) detectHubBloat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, opts, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	threshold, err := intArg(req, "threshold", 1, opts.BloatThreshold)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(nonNil(check.DetectBloat(g, opts.Hubs, threshold)))
}

func (s *Server) suggestArchival(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, opts, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if opts.StaleDays, err = intArg(req, "days", 0, opts.StaleDays); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(nonNil(check.SuggestArchival(g, opts)))
}

func (s *Server) findSqueezePoints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, opts, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	threshold, err := intArg(req, "threshold", 1, opts.SqueezeThreshold)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(nonNil(check.FindSqueezePoints(g, opts.Hubs, threshold)))
}

func (s *Server) checkFrontmatter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	strict := req.GetBool("strict", false)
	return s.analyze(func(g *graph.Graph, opts check.Options) any {
		opts.Strict = strict
		return nonNil(check.CheckFrontmatter(g, opts))
	})
}

func (s *Server) auditVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.analyze(func(g *graph.Graph, opts check.Options) any {
		return check.Run(g, opts)
	})
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
