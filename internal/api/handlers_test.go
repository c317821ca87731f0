package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/config"
	"github.com/wesm/browsestate/internal/service"
	"github.com/wesm/browsestate/internal/testutil"
)

func decode[T any](t *testing.T, w interface{ Result() *http.Response }) T {
	t.Helper()
	var v T
	resp := w.Result()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestListViews(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	w := do(t, srv, "GET", "/api/v1/views", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decode[ViewsResponse](t, w)
	if len(resp.Views) != 1 || resp.Views[0].Name != "products" {
		t.Fatalf("views = %+v, want [products]", resp.Views)
	}
	testutil.AssertStrings(t, resp.Views[0].SortableColumns(), "name", "price")
}

func TestGetView(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	if w := do(t, srv, "GET", "/api/v1/views/products", nil); w.Code != http.StatusOK {
		t.Errorf("GET view status = %d, want 200", w.Code)
	}
	w := do(t, srv, "GET", "/api/v1/views/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing view status = %d, want 404", w.Code)
	}
	if resp := decode[ErrorResponse](t, w); resp.Error != "not_found" {
		t.Errorf("error = %q, want not_found", resp.Error)
	}
}

func TestStateEndpoint(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	w := do(t, srv, "GET", "/api/v1/views/products/state?filter_name=color&filter_value=red,blue&sort_by=-price&page=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	m := decode[browse.ViewModel](t, w)

	if want := "/products?page=3&filter_name=color&filter_value=red,blue&sort_by=-price"; m.URL != want {
		t.Errorf("url = %q, want %q", m.URL, want)
	}
	if m.FilterCounts["color"] != 2 {
		t.Errorf("filter_counts[color] = %d, want 2", m.FilterCounts["color"])
	}
	testutil.AssertEqualSlices(t, m.PageWindow, 1, 2, 3, 4, 5, 6)
	if !m.Buttons.ClearSorts || m.Buttons.ClearSearch {
		t.Errorf("buttons = %+v", m.Buttons)
	}
}

func TestActionsEndpoint(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	w := do(t, srv, "POST", "/api/v1/views/products/actions", service.ActionsRequest{
		Query: "sort_by=price",
		Actions: []browse.Action{
			{Type: browse.ActionToggleSort, Column: "price"},
			{Type: browse.ActionToggleFilter, Name: "size", Value: "M"},
			{Type: browse.ActionApplyFilters},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	resp := decode[service.ActionsResponse](t, w)
	if want := "/products?filter_name=size&filter_value=M&sort_by=-price"; resp.URL != want {
		t.Errorf("url = %q, want %q", resp.URL, want)
	}
	if !resp.Navigated {
		t.Error("navigated = false, want true")
	}
}

func TestActionsEndpointErrors(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{"unknown view", "/api/v1/views/missing/actions", service.ActionsRequest{}, http.StatusNotFound},
		{"unknown action", "/api/v1/views/products/actions",
			service.ActionsRequest{Actions: []browse.Action{{Type: "explode"}}}, http.StatusBadRequest},
		{"unsortable column", "/api/v1/views/products/actions",
			service.ActionsRequest{Actions: []browse.Action{{Type: browse.ActionToggleSort, Column: "notes"}}}, http.StatusBadRequest},
		{"unoffered page size", "/api/v1/views/products/actions",
			service.ActionsRequest{Actions: []browse.Action{{Type: browse.ActionSetPageSize, Value: "11"}}}, http.StatusBadRequest},
		{"unknown field", "/api/v1/views/products/actions", map[string]any{"actons": []any{}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, "POST", tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body)
			}
		})
	}
}

func TestActionsEndpointMalformedJSON(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	req := strings.NewReader("{not json")
	w := doRaw(srv, "POST", "/api/v1/views/products/actions", req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSelectionEndpoint(t *testing.T) {
	srv := newTestServer(t, config.ServerConfig{})

	w := do(t, srv, "POST", "/api/v1/views/products/selection", service.SelectionRequest{
		Query:    "search_by=lamp",
		Rows:     []string{"3", "5", "7"},
		Selected: []string{"3", "7"},
		BaseURL:  "/delete",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	resp := decode[service.SelectionResponse](t, w)
	if resp.URL != "/delete?filter_name=id&filter_value=3,7" || !resp.DeleteEnabled {
		t.Errorf("resp = %+v", resp)
	}

	w = do(t, srv, "POST", "/api/v1/views/products/selection", service.SelectionRequest{Rows: []string{"3"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing base_url status = %d, want 400", w.Code)
	}
}
