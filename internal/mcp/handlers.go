package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/service"
)

type handlers struct {
	svc *service.Service
}

// stringArg extracts an optional string from the arguments map.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// stringsArg extracts an optional array of identifiers. JSON numbers are
// accepted and formatted without a fraction.
func stringsArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array", key)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("%s[%d] must be a string", key, i)
		}
	}
	return out, nil
}

// actionsArg converts the actions array through JSON into typed actions.
func actionsArg(args map[string]any) ([]browse.Action, error) {
	raw, ok := args["actions"]
	if !ok {
		return nil, fmt.Errorf("actions parameter is required")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid actions: %w", err)
	}
	var actions []browse.Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("invalid actions: %w", err)
	}
	return actions, nil
}

func (h *handlers) listViews(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.svc.Views())
}

func (h *handlers) parseQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	view := stringArg(args, "view")
	if view == "" {
		return mcp.NewToolResultError("view parameter is required"), nil
	}
	m, err := h.svc.State(view, stringArg(args, "query"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	return jsonResult(m)
}

func (h *handlers) applyActions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	view := stringArg(args, "view")
	if view == "" {
		return mcp.NewToolResultError("view parameter is required"), nil
	}
	actions, err := actionsArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.svc.Apply(view, service.ActionsRequest{Query: stringArg(args, "query"), Actions: actions})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("apply failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func (h *handlers) buildActionURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	view := stringArg(args, "view")
	if view == "" {
		return mcp.NewToolResultError("view parameter is required"), nil
	}
	rows, err := stringsArg(args, "rows")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	selected, err := stringsArg(args, "selected")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	allPages, _ := args["all_pages"].(bool)

	resp, err := h.svc.Selection(view, service.SelectionRequest{
		Query:    stringArg(args, "query"),
		Rows:     rows,
		Selected: selected,
		AllPages: allPages,
		BaseURL:  stringArg(args, "base_url"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build action url failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
