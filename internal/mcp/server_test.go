package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/catalog"
	"github.com/wesm/browsestate/internal/catalog/catalogtest"
	"github.com/wesm/browsestate/internal/service"
	"github.com/wesm/browsestate/internal/testutil"
)

// toolHandler is the function signature for MCP tool handler methods.
type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// callToolDirect invokes a handler directly with the given arguments and returns the raw result.
func callToolDirect(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", r.Content[0])
	}
	return tc.Text
}

// runTool invokes a handler, asserts no error, and unmarshals the JSON result into T.
func runTool[T any](t *testing.T, name string, fn toolHandler, args map[string]any) T {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, r))
	}
	var out T
	if err := json.Unmarshal([]byte(resultText(t, r)), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return out
}

// runToolExpectError invokes a handler and asserts it returns an error result.
func runToolExpectError(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if !r.IsError {
		t.Fatal("expected error result")
	}
	return r
}

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	return &handlers{svc: service.New(catalogtest.MustCatalog(t), nil)}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(service.New(catalogtest.MustCatalog(t), nil), "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestListViews(t *testing.T) {
	h := newHandlers(t)
	views := runTool[[]catalog.View](t, ToolListViews, h.listViews, nil)
	if len(views) != 1 || views[0].Name != "products" {
		t.Fatalf("views = %+v, want [products]", views)
	}
	if len(views[0].Filters) != 4 {
		t.Errorf("filters = %d, want 4", len(views[0].Filters))
	}
}

func TestParseQuery(t *testing.T) {
	h := newHandlers(t)

	t.Run("valid query", func(t *testing.T) {
		m := runTool[browse.ViewModel](t, ToolParseQuery, h.parseQuery, map[string]any{
			"view":  "products",
			"query": "?filter_name=price__gte_number&filter_value=10&filter_name=weight&filter_value=2",
		})
		if len(m.State.Ranges) != 1 || m.State.Ranges[0].Name != "price__gte_number" {
			t.Errorf("ranges = %+v, want price__gte_number", m.State.Ranges)
		}
		testutil.AssertStrings(t, m.HiddenFilters, "weight")
	})

	t.Run("missing view", func(t *testing.T) {
		r := runToolExpectError(t, ToolParseQuery, h.parseQuery, map[string]any{})
		testutil.AssertContainsAll(t, resultText(t, r), "view parameter is required")
	})

	t.Run("unknown view", func(t *testing.T) {
		r := runToolExpectError(t, ToolParseQuery, h.parseQuery, map[string]any{"view": "nope"})
		testutil.AssertContainsAll(t, resultText(t, r), "unknown view")
	})
}

func TestApplyActions(t *testing.T) {
	h := newHandlers(t)

	t.Run("sort cycle", func(t *testing.T) {
		resp := runTool[service.ActionsResponse](t, ToolApplyActions, h.applyActions, map[string]any{
			"view":  "products",
			"query": "sort_by=price",
			"actions": []any{
				map[string]any{"type": "toggle_sort", "column": "price"},
				map[string]any{"type": "toggle_sort", "column": "price"},
			},
		})
		if resp.URL != "/products" || !resp.Navigated {
			t.Errorf("resp = %+v, want navigation to /products", resp)
		}
	})

	t.Run("unsortable column", func(t *testing.T) {
		r := runToolExpectError(t, ToolApplyActions, h.applyActions, map[string]any{
			"view":    "products",
			"actions": []any{map[string]any{"type": "toggle_sort", "column": "notes"}},
		})
		testutil.AssertContainsAll(t, resultText(t, r), "unknown column")
	})

	t.Run("missing actions", func(t *testing.T) {
		runToolExpectError(t, ToolApplyActions, h.applyActions, map[string]any{"view": "products"})
	})

	t.Run("malformed actions", func(t *testing.T) {
		runToolExpectError(t, ToolApplyActions, h.applyActions, map[string]any{
			"view":    "products",
			"actions": "toggle_sort",
		})
	})
}

func TestBuildActionURL(t *testing.T) {
	h := newHandlers(t)

	t.Run("selected rows", func(t *testing.T) {
		resp := runTool[service.SelectionResponse](t, ToolBuildActionURL, h.buildActionURL, map[string]any{
			"view":     "products",
			"query":    "search_by=lamp",
			"base_url": "/products/delete",
			"rows":     []any{float64(3), float64(5), float64(7)},
			"selected": []any{"7", "3"},
		})
		if resp.URL != "/products/delete?filter_name=id&filter_value=3,7" {
			t.Errorf("url = %q", resp.URL)
		}
	})

	t.Run("nothing selected", func(t *testing.T) {
		resp := runTool[service.SelectionResponse](t, ToolBuildActionURL, h.buildActionURL, map[string]any{
			"view":     "products",
			"query":    "search_by=lamp",
			"base_url": "/products/delete",
			"rows":     []any{"3"},
		})
		if !strings.HasSuffix(resp.URL, "search_by=lamp&__RETURN_EMPTY__=1") || resp.DeleteEnabled {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("all pages", func(t *testing.T) {
		resp := runTool[service.SelectionResponse](t, ToolBuildActionURL, h.buildActionURL, map[string]any{
			"view":      "products",
			"query":     "search_by=lamp",
			"base_url":  "/products/delete",
			"rows":      []any{"3"},
			"all_pages": true,
		})
		if resp.URL != "/products/delete?search_by=lamp" || !resp.DeleteEnabled {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("bad rows", func(t *testing.T) {
		runToolExpectError(t, ToolBuildActionURL, h.buildActionURL, map[string]any{
			"view":     "products",
			"base_url": "/d",
			"rows":     []any{true},
		})
	})

	t.Run("missing base url", func(t *testing.T) {
		runToolExpectError(t, ToolBuildActionURL, h.buildActionURL, map[string]any{"view": "products"})
	})
}
