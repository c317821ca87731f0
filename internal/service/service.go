// Package service runs controller operations on behalf of the stateless
// adapters (HTTP, MCP, CLI): each call builds a controller from a query,
// replays commands on it and reports the outcome.
package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/catalog"
	"github.com/wesm/browsestate/internal/viewstate"
)

// ErrBadRequest is returned for a request that is missing required fields.
var ErrBadRequest = errors.New("bad request")

// Service answers view queries against a catalog. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a service. A nil logger discards output.
func New(cat *catalog.Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{catalog: cat, logger: logger}
}

// Views returns the catalog's views.
func (s *Service) Views() []*catalog.View { return s.catalog.Views() }

// View returns the named view.
func (s *Service) View(name string) (*catalog.View, error) { return s.catalog.View(name) }

// ViewURL joins the view's path with query. query may be a bare query
// string, a "?"-prefixed one, or a full URL whose query part is used.
func ViewURL(v *catalog.View, query string) string {
	_, q, ok := viewstate.SplitURL(query)
	if !ok {
		q = query
	}
	return viewstate.JoinQuery(v.Path, q)
}

// State decodes query for the named view.
func (s *Service) State(view, query string) (browse.ViewModel, error) {
	v, err := s.catalog.View(view)
	if err != nil {
		return browse.ViewModel{}, err
	}
	return v.Controller(ViewURL(v, query), nil, browse.WithLogger(s.logger)).Model(), nil
}

// ActionsRequest is a batch of commands against the page at Query.
type ActionsRequest struct {
	Query   string          `json:"query"`
	Actions []browse.Action `json:"actions"`
}

// ActionsResponse is the outcome of an action batch. URL is where the
// browser would be after the last navigation, or the canonical current URL
// if nothing navigated.
type ActionsResponse struct {
	URL       string           `json:"url"`
	Navigated bool             `json:"navigated"`
	Model     browse.ViewModel `json:"model"`
}

// Apply replays req on the named view.
func (s *Service) Apply(view string, req ActionsRequest) (*ActionsResponse, error) {
	v, err := s.catalog.View(view)
	if err != nil {
		return nil, err
	}
	c, err := v.Replay(ViewURL(v, req.Query), req.Actions, browse.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("applied actions", "view", view, "count", len(req.Actions), "url", c.URL())
	return &ActionsResponse{URL: c.URL(), Navigated: c.Navigations() > 0, Model: c.Model()}, nil
}

// SelectionRequest describes the rows on the page at Query and which are
// checked.
type SelectionRequest struct {
	Query    string   `json:"query"`
	Rows     []string `json:"rows"`
	Selected []string `json:"selected"`
	AllPages bool     `json:"all_pages"`
	BaseURL  string   `json:"base_url"`
}

// SelectionResponse is the bulk action URL for a selection.
type SelectionResponse struct {
	URL           string `json:"url"`
	DeleteEnabled bool   `json:"delete_enabled"`
}

// Selection derives the bulk action URL for req on the named view.
func (s *Service) Selection(view string, req SelectionRequest) (*SelectionResponse, error) {
	v, err := s.catalog.View(view)
	if err != nil {
		return nil, err
	}
	if req.BaseURL == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrBadRequest)
	}
	return SelectionURL(v.Controller(ViewURL(v, req.Query), nil, browse.WithRows(browse.NewRowSet(req.Rows...))), req), nil
}

// SelectionURL applies req's checks to c's selection and derives the URL.
// Selected is a set: repeated identifiers select their row once, and
// identifiers that are not rows are ignored.
func SelectionURL(c *browse.Controller, req SelectionRequest) *SelectionResponse {
	sel := c.Selection()
	if req.AllPages {
		sel.SetAllPages(true)
	} else {
		for _, id := range req.Selected {
			sel.Check(id)
		}
	}
	return &SelectionResponse{URL: sel.ActionURL(req.BaseURL), DeleteEnabled: sel.DeleteEnabled()}
}

// IsClientError reports whether err was caused by the request rather than
// the server.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrBadRequest,
		browse.ErrUnknownAction,
		browse.ErrMissingArgument,
		browse.ErrInvalidArgument,
		catalog.ErrUnknownColumn,
		catalog.ErrUnknownPageSize,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
