package browse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wesm/browsestate/internal/viewstate"
)

// Action types accepted by Apply.
const (
	ActionToggleFilter = "toggle_filter"
	ActionSetRange     = "set_range"
	ActionApplyFilters = "apply_filters"
	ActionSearch       = "search"
	ActionToggleSort   = "toggle_sort"
	ActionSetPageSize  = "set_page_size"
	ActionGotoPage     = "goto_page"
	ActionClearSearch  = "clear_search"
	ActionClearFilters = "clear_filters"
	ActionClearSorts   = "clear_sorts"
	ActionClearAll     = "clear_all"
)

// ErrUnknownAction is returned for an action type Apply does not know.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingArgument is returned when an action lacks a required field.
var ErrMissingArgument = errors.New("missing action argument")

// ErrInvalidArgument is returned when an action field cannot survive the
// round trip through the URL.
var ErrInvalidArgument = errors.New("invalid action argument")

// Action is one user command in serialized form, as replayed by the HTTP,
// MCP and CLI adapters.
type Action struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	Column string `json:"column,omitempty"`
}

// ParseAction decodes the command-line form "type[:arg]". Filter actions take
// "name=value"; toggle_sort takes a column; search, set_page_size and
// goto_page take their text verbatim.
func ParseAction(raw string) (Action, error) {
	typ, arg, _ := strings.Cut(raw, ":")
	a := Action{Type: strings.TrimSpace(typ)}
	switch a.Type {
	case ActionToggleFilter, ActionSetRange:
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return Action{}, fmt.Errorf("%w: %s needs name=value", ErrMissingArgument, a.Type)
		}
		a.Name, a.Value = name, value
	case ActionToggleSort:
		a.Column = arg
	case ActionSearch, ActionSetPageSize, ActionGotoPage:
		a.Value = arg
	case ActionApplyFilters, ActionClearSearch, ActionClearFilters, ActionClearSorts, ActionClearAll:
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return a, a.Validate()
}

// Validate checks that a has a known type and the fields that type needs.
func (a Action) Validate() error {
	switch a.Type {
	case ActionToggleFilter:
		if a.Name == "" || a.Value == "" {
			return fmt.Errorf("%w: %s needs name and value", ErrMissingArgument, a.Type)
		}
		if strings.Contains(a.Value, ",") {
			return fmt.Errorf("%w: %s value %q contains a comma", ErrInvalidArgument, a.Type, a.Value)
		}
	case ActionSetRange:
		if a.Name == "" {
			return fmt.Errorf("%w: %s needs name", ErrMissingArgument, a.Type)
		}
	case ActionToggleSort:
		if a.Column == "" {
			return fmt.Errorf("%w: %s needs column", ErrMissingArgument, a.Type)
		}
	case ActionSetPageSize:
		if a.Value == "" {
			return fmt.Errorf("%w: %s needs value", ErrMissingArgument, a.Type)
		}
	case ActionApplyFilters, ActionSearch, ActionGotoPage,
		ActionClearSearch, ActionClearFilters, ActionClearSorts, ActionClearAll:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

// Apply runs one action against c. A goto_page with a rejected page number
// is not an error; it simply does not navigate.
func (c *Controller) Apply(a Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	switch a.Type {
	case ActionToggleFilter:
		c.ToggleFilterValue(a.Name, a.Value)
	case ActionSetRange:
		c.SetRangeFilter(a.Name, a.Value)
	case ActionApplyFilters:
		c.ApplyFilters()
	case ActionSearch:
		c.Search(a.Value)
	case ActionToggleSort:
		c.ToggleSort(a.Column)
	case ActionSetPageSize:
		c.SetPageSize(a.Value)
	case ActionGotoPage:
		c.GotoPage(a.Value)
	case ActionClearSearch:
		c.ClearSearch()
	case ActionClearFilters:
		c.ClearFilters()
	case ActionClearSorts:
		c.ClearSorts()
	case ActionClearAll:
		c.ClearAll()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

// ApplyAll runs actions in order, stopping at the first error. The error
// names the failing action's position.
func (c *Controller) ApplyAll(actions []Action) error {
	for i, a := range actions {
		if err := c.Apply(a); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// Buttons holds the enabled state of the view's command buttons.
type Buttons struct {
	ClearSearch  bool `json:"clear_search"`
	ClearSorts   bool `json:"clear_sorts"`
	ClearFilters bool `json:"clear_filters"`
	ApplyFilters bool `json:"apply_filters"`
}

// ViewModel is everything a renderer needs from the controller.
type ViewModel struct {
	URL           string                 `json:"url"`
	Query         string                 `json:"query"`
	State         viewstate.Summary      `json:"state"`
	Sort          []viewstate.ColumnSort `json:"sort_indicators"`
	HiddenFilters []string               `json:"hidden_filters"`
	FilterCounts  map[string]int         `json:"filter_counts"`
	Buttons       Buttons                `json:"buttons"`
	PageWindow    []int                  `json:"page_window"`
}

// Model derives the current view model.
func (c *Controller) Model() ViewModel {
	filtersEnabled := c.FilterButtonsEnabled()
	m := ViewModel{
		URL:           c.URL(),
		Query:         c.Query(),
		State:         c.state.Summarize(),
		Sort:          c.SortIndicators(),
		HiddenFilters: append([]string{}, c.HiddenFilters()...),
		FilterCounts:  make(map[string]int, c.state.Filters.Len()),
		Buttons: Buttons{
			ClearSearch:  c.SearchActive(),
			ClearSorts:   c.SortActive(),
			ClearFilters: filtersEnabled,
			ApplyFilters: filtersEnabled,
		},
		PageWindow: c.PageWindow(),
	}
	for _, name := range c.state.Filters.Names() {
		m.FilterCounts[name] = c.FilterCount(name)
	}
	return m
}
