package browse

import (
	"strings"

	"github.com/wesm/browsestate/internal/viewstate"
)

// idFilterName is the filter a bulk action uses to target explicit rows.
const idFilterName = "id"

// Rows is the rendering layer's row checkboxes: the identifiers on the
// current page and whether each is checked.
type Rows interface {
	IDs() []string
	Checked(id string) bool
	SetChecked(id string, checked bool)
}

// RowSet is an in-memory Rows.
type RowSet struct {
	ids     []string
	checked map[string]bool
}

// NewRowSet returns rows with the given identifiers, none checked.
func NewRowSet(ids ...string) *RowSet {
	return &RowSet{ids: ids, checked: make(map[string]bool, len(ids))}
}

// IDs returns the row identifiers in page order.
func (r *RowSet) IDs() []string { return r.ids }

// Checked reports whether id is checked.
func (r *RowSet) Checked(id string) bool { return r.checked[id] }

// SetChecked sets the checkbox of id. Unknown identifiers are ignored.
func (r *RowSet) SetChecked(id string, checked bool) {
	for _, known := range r.ids {
		if known == id {
			if checked {
				r.checked[id] = true
			} else {
				delete(r.checked, id)
			}
			return
		}
	}
}

// Selection tracks which rows a bulk action targets: explicit rows on this
// page, or every row matching the current query.
type Selection struct {
	rows     Rows
	allPages bool
	query    string
}

func newSelection(rows Rows, query string) *Selection {
	if rows == nil {
		rows = NewRowSet()
	}
	return &Selection{rows: rows, query: query}
}

// ToggleAllOnPage checks or unchecks every row on the page.
func (s *Selection) ToggleAllOnPage(checked bool) {
	if s.allPages {
		return
	}
	for _, id := range s.rows.IDs() {
		s.rows.SetChecked(id, checked)
	}
}

// Toggle flips the checkbox of one row and returns its new state. Rows are
// locked while all pages are selected.
func (s *Selection) Toggle(id string) bool {
	if s.allPages {
		return false
	}
	checked := !s.rows.Checked(id)
	s.rows.SetChecked(id, checked)
	return s.rows.Checked(id)
}

// Check marks one row as selected. Checking a row twice leaves it checked.
// Rows are locked while all pages are selected.
func (s *Selection) Check(id string) {
	if s.allPages {
		return
	}
	s.rows.SetChecked(id, true)
}

// SetAllPages switches all-pages mode. Entering or leaving it clears the
// per-row checkboxes, which stay disabled while it is on.
func (s *Selection) SetAllPages(on bool) {
	s.allPages = on
	for _, id := range s.rows.IDs() {
		s.rows.SetChecked(id, false)
	}
}

// AllPages reports whether every matching row is selected.
func (s *Selection) AllPages() bool { return s.allPages }

// RowsEnabled reports whether per-row checkboxes accept input.
func (s *Selection) RowsEnabled() bool { return !s.allPages }

// SelectedIDs returns the checked rows in page order.
func (s *Selection) SelectedIDs() []string {
	var ids []string
	for _, id := range s.rows.IDs() {
		if s.rows.Checked(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// DeleteEnabled reports whether a bulk action has a target.
func (s *Selection) DeleteEnabled() bool {
	if len(s.rows.IDs()) == 0 {
		return false
	}
	return s.allPages || len(s.SelectedIDs()) > 0
}

// ActionURL derives the URL a bulk action at base should visit.
//
// With all pages selected the current query is passed through verbatim so
// the server re-runs it. Otherwise the checked rows become an id filter. With
// nothing checked the current query is sent with the return-empty sentinel,
// so the action can never fall through to "no id filter" and hit every row.
func (s *Selection) ActionURL(base string) string {
	if s.allPages {
		return base + "?" + s.query
	}

	if ids := s.SelectedIDs(); len(ids) > 0 {
		return base + "?" + viewstate.ParamFilterName + "=" + idFilterName +
			"&" + viewstate.ParamFilterValue + "=" + escapeIDs(ids)
	}

	q := s.query
	if q != "" {
		q += "&"
	}
	return base + "?" + q + viewstate.ParamReturnEmpty + "=1"
}

func escapeIDs(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = viewstate.EscapeValue(id)
	}
	return strings.Join(escaped, ",")
}
