package browse

import (
	"log/slog"
	"strings"

	"github.com/wesm/browsestate/internal/viewstate"
)

// Controller owns the query state of one list view. Every command mutates a
// single sub-state and, if it navigates, funnels through emit: the state is
// serialized, handed to the Navigator, and the controller reloads from the
// emitted URL as a browser would.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	codec *viewstate.Codec
	page  Page
	nav   Navigator
	rows  Rows

	logger *slog.Logger

	base      string
	rawQuery  string
	state     *viewstate.ViewState
	filters   *FilterStore
	selection *Selection

	navigations int
}

// New builds a controller for the page at rawURL. A nil navigator records
// nothing.
func New(rawURL string, page Page, nav Navigator, opts ...Option) *Controller {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	c := &Controller{
		codec:  viewstate.NewCodec(page.DefaultPageSize),
		page:   page,
		nav:    nav,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(rawURL)
	return c
}

func (c *Controller) load(rawURL string) {
	base, query, _ := viewstate.SplitURL(rawURL)
	c.base = base
	c.rawQuery = query
	c.state = c.codec.Decode(query)
	c.filters = newFilterStore(c.state, c.page)
	c.selection = newSelection(c.rows, query)
}

// emit serializes the state with the given sections and navigates to it.
func (c *Controller) emit(parts viewstate.Parts) {
	c.navigate(c.codec.URL(c.base, c.state, parts))
}

func (c *Controller) navigate(url string) {
	c.logger.Debug("navigate", "url", url)
	c.navigations++
	c.nav.Navigate(url)
	c.clearRows()
	c.load(url)
}

// clearRows unchecks every row, as a reloaded page renders them.
func (c *Controller) clearRows() {
	if c.rows == nil {
		return
	}
	for _, id := range c.rows.IDs() {
		c.rows.SetChecked(id, false)
	}
}

// ToggleFilterValue selects or deselects value in a discrete filter and
// returns the filter's count badge. It does not navigate.
//
// Values are comma-joined on the wire, so a value containing a comma is
// stored as one member here but decodes as several after the next reload.
// Actions reject such values with ErrInvalidArgument.
func (c *Controller) ToggleFilterValue(name, value string) int {
	return c.filters.ToggleValue(name, value)
}

// SetRangeFilter stores the payload of a range control. Empty text removes
// it. It does not navigate.
func (c *Controller) SetRangeFilter(name, text string) {
	c.filters.SetRange(name, text)
}

// ApplyFilters navigates with the edited filters.
func (c *Controller) ApplyFilters() {
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts)
}

// Search replaces the search terms with text and navigates. Empty text
// clears the search.
func (c *Controller) Search(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.state.SearchTerms = nil
	} else {
		c.state.SearchTerms = []string{text}
	}
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts)
}

// ClearSearch navigates without the search section.
func (c *Controller) ClearSearch() {
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts &^ viewstate.PartSearch)
}

// ClearFilters navigates without the filter section.
func (c *Controller) ClearFilters() {
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts &^ viewstate.PartFilters)
}

// ClearSorts navigates without the sort section.
func (c *Controller) ClearSorts() {
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts &^ viewstate.PartSort)
}

// ClearAll navigates to the bare base URL.
func (c *Controller) ClearAll() {
	c.navigate(c.base)
}

// ToggleSort advances column through its sort cycle and navigates. It
// returns the column's new indicator.
func (c *Controller) ToggleSort(column string) viewstate.Indicator {
	if column == "" {
		c.logger.Debug("ignoring sort toggle without column")
		return viewstate.IndicatorNone
	}
	ind := c.state.Sort.Toggle(column)
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts)
	return ind
}

// State returns a deep copy of the current state.
func (c *Controller) State() *viewstate.ViewState { return c.state.Clone() }

// Query returns the canonical encoding of the current state.
func (c *Controller) Query() string { return c.codec.Encode(c.state, viewstate.AllParts) }

// URL returns the base joined with Query.
func (c *Controller) URL() string { return c.codec.URL(c.base, c.state, viewstate.AllParts) }

// Base returns the URL path the controller navigates within.
func (c *Controller) Base() string { return c.base }

// Snapshot returns the filters the page arrived with.
func (c *Controller) Snapshot() viewstate.Snapshot { return c.filters.Original() }

// Navigations returns how many times the controller has navigated.
func (c *Controller) Navigations() int { return c.navigations }

// SearchActive reports whether clear-search has anything to clear.
func (c *Controller) SearchActive() bool { return len(c.state.SearchTerms) > 0 }

// SortActive reports whether clear-sorts has anything to clear.
func (c *Controller) SortActive() bool { return c.state.Sort.Len() > 0 }

// FilterButtonsEnabled reports whether clear and apply filters are enabled.
func (c *Controller) FilterButtonsEnabled() bool { return c.filters.ButtonsEnabled() }

// HiddenFilters returns active filters with no control on the page.
func (c *Controller) HiddenFilters() []string { return c.filters.HiddenFilters() }

// HasHiddenFilters reports whether the hidden-filter warning should show.
func (c *Controller) HasHiddenFilters() bool { return c.filters.HasHiddenFilters() }

// FilterCount returns the count badge of a discrete filter.
func (c *Controller) FilterCount(name string) int { return c.filters.Count(name) }

// Filters exposes the filter store.
func (c *Controller) Filters() *FilterStore { return c.filters }

// SortIndicators returns the header indicators for every sorted column.
func (c *Controller) SortIndicators() []viewstate.ColumnSort { return c.state.Sort.Indicators() }

// Selection returns the row selection of the current page.
func (c *Controller) Selection() *Selection { return c.selection }
