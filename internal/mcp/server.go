// Package mcp exposes the view controller as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wesm/browsestate/internal/service"
)

// Tool name constants.
const (
	ToolListViews      = "list_views"
	ToolParseQuery     = "parse_query"
	ToolApplyActions   = "apply_actions"
	ToolBuildActionURL = "build_action_url"
)

// Common argument helpers for recurring tool option definitions.

func withView() mcp.ToolOption {
	return mcp.WithString("view",
		mcp.Required(),
		mcp.Description("View name from list_views"),
	)
}

func withQuery() mcp.ToolOption {
	return mcp.WithString("query",
		mcp.Description("Current query string or full URL (e.g. 'search_by=lamp&sort_by=-price')"),
	)
}

// NewServer builds the MCP server with every tool registered.
func NewServer(svc *service.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"browsestate",
		version,
		server.WithToolCapabilities(false),
	)

	h := &handlers{svc: svc}

	s.AddTool(listViewsTool(), h.listViews)
	s.AddTool(parseQueryTool(), h.parseQuery)
	s.AddTool(applyActionsTool(), h.applyActions)
	s.AddTool(buildActionURLTool(), h.buildActionURL)
	return s
}

// Serve serves the tools over stdio. It blocks until stdin is closed or the
// context is cancelled.
func Serve(ctx context.Context, svc *service.Service, version string) error {
	stdio := server.NewStdioServer(NewServer(svc, version))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func listViewsTool() mcp.Tool {
	return mcp.NewTool(ToolListViews,
		mcp.WithDescription("List the configured list views with their sortable columns, filter controls and page sizes."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func parseQueryTool() mcp.Tool {
	return mcp.NewTool(ToolParseQuery,
		mcp.WithDescription("Decode a list view query into its search terms, filters, sort order and pagination, with hidden filters and button states."),
		mcp.WithReadOnlyHintAnnotation(true),
		withView(),
		withQuery(),
	)
}

func applyActionsTool() mcp.Tool {
	return mcp.NewTool(ToolApplyActions,
		mcp.WithDescription("Replay user actions (toggle_filter, set_range, apply_filters, search, toggle_sort, set_page_size, goto_page, clear_search, clear_filters, clear_sorts, clear_all) on a view and return the resulting URL."),
		mcp.WithReadOnlyHintAnnotation(true),
		withView(),
		withQuery(),
		mcp.WithArray("actions",
			mcp.Required(),
			mcp.Description("Ordered actions, each {type, name?, value?, column?}"),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)
}

func buildActionURLTool() mcp.Tool {
	return mcp.NewTool(ToolBuildActionURL,
		mcp.WithDescription("Derive the URL for a bulk action (such as delete) from the rows on the page and which are selected."),
		mcp.WithReadOnlyHintAnnotation(true),
		withView(),
		withQuery(),
		mcp.WithString("base_url",
			mcp.Required(),
			mcp.Description("Path of the bulk action endpoint (e.g. '/products/delete')"),
		),
		mcp.WithArray("rows",
			mcp.Description("Row identifiers on the current page, in display order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("selected",
			mcp.Description("Checked row identifiers"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("all_pages",
			mcp.Description("Select every row matching the query, on all pages"),
		),
	)
}
