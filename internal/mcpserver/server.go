// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes facet tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/lint"
)

const contractURI = "gigtags://facet-format"

// Server wraps the MCP server with facet tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *facetservice.Service
	linter *lint.Linter
}

// New creates a new MCP server with all facet tools registered.
func New(svc *facetservice.Service, linter *lint.Linter, version string) *Server {
	s := &Server{svc: svc, linter: linter}

	s.mcp = server.NewMCPServer(
		"gigtags",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("inspect_facet",
		mcp.WithDescription("Inspect a facet: validity, date-like suffix, prefix/suffix split and parsed date."),
		mcp.WithString("facet", mcp.Required(), mcp.Description("Facet to inspect, e.g. meeting~20220625")),
	), s.inspectFacet)

	s.mcp.AddTool(mcp.NewTool("build_facet",
		mcp.WithDescription("Build a facet by appending a ~YYYYMMDD date suffix to a prefix. "+
			"The prefix must not end with whitespace."),
		mcp.WithString("prefix", mcp.Description("Facet prefix (may be empty)")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
	), s.buildFacet)

	s.mcp.AddTool(mcp.NewTool("lint_note",
		mcp.WithDescription("Lint the facets (frontmatter tags and inline #tags) of Markdown content."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown note content")),
		mcp.WithString("name", mcp.Description("Optional name reported as the note path")),
	), s.lintNote)

	s.mcp.AddTool(mcp.NewTool("lint_vault",
		mcp.WithDescription("Lint the facets of every note in the configured vault."),
	), s.lintVault)

	s.mcp.AddTool(mcp.NewTool("get_facet_contract",
		mcp.WithDescription("Returns the facet format contract. "+
			"Call this before writing tags to ensure correct structure."),
	), s.getFacetContract)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Facet Format Contract",
			mcp.WithResourceDescription("Format rules for facets and their date suffix."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFacetFormatResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) inspectFacet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("facet")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Inspect(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) buildFacet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prefix := ""
	if p, err := req.RequireString("prefix"); err == nil {
		prefix = p
	}
	f, err := s.svc.Build(ctx, facetservice.BuildRequest{Prefix: prefix, Date: date})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(f), nil
}

func (s *Server) lintNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := ""
	if n, err := req.RequireString("name"); err == nil {
		name = n
	}
	report, err := s.linter.CheckContent(name, []byte(content))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

func (s *Server) lintVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.linter.LintVault(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

func (s *Server) getFacetContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FacetFormatContract), nil
}

func (s *Server) readFacetFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     FacetFormatContract,
		},
	}, nil
}
