package browse

import (
	"testing"

	"github.com/wesm/browsestate/internal/testutil"
)

func TestActionURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		check    []string
		allPages bool
		want     string
	}{
		{
			name:  "selected rows",
			url:   "/items?search_by=x",
			check: []string{"7", "3"},
			want:  "/delete?filter_name=id&filter_value=3,7",
		},
		{
			name: "nothing selected keeps query",
			url:  "/items?search_by=x",
			want: "/delete?search_by=x&__RETURN_EMPTY__=1",
		},
		{
			name: "nothing selected without query",
			url:  "/items",
			want: "/delete?__RETURN_EMPTY__=1",
		},
		{
			name:     "all pages passes query verbatim",
			url:      "/items?search_by=a%20b&sort_by=-name",
			allPages: true,
			want:     "/delete?search_by=a%20b&sort_by=-name",
		},
		{
			name:     "all pages without query",
			url:      "/items",
			allPages: true,
			want:     "/delete?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, tt.url, WithRows(NewRowSet("3", "5", "7")))
			sel := c.Selection()
			for _, id := range tt.check {
				sel.Toggle(id)
			}
			if tt.allPages {
				sel.SetAllPages(true)
			}
			if got := sel.ActionURL("/delete"); got != tt.want {
				t.Errorf("ActionURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectionAllPagesLocksRows(t *testing.T) {
	rows := NewRowSet("1", "2")
	c, _ := newTestController(t, "/items", WithRows(rows))
	sel := c.Selection()

	sel.Toggle("1")
	sel.SetAllPages(true)
	if rows.Checked("1") {
		t.Error("row 1 still checked after SetAllPages")
	}
	if sel.Toggle("2") {
		t.Error("Toggle accepted while all pages selected")
	}
	sel.ToggleAllOnPage(true)
	if len(sel.SelectedIDs()) != 0 {
		t.Errorf("selected = %v while all pages selected", sel.SelectedIDs())
	}
	if sel.RowsEnabled() {
		t.Error("RowsEnabled = true while all pages selected")
	}

	sel.SetAllPages(false)
	sel.ToggleAllOnPage(true)
	testutil.AssertStrings(t, sel.SelectedIDs(), "1", "2")
}

func TestSelectionCheckIsIdempotent(t *testing.T) {
	rows := NewRowSet("1", "2")
	c, _ := newTestController(t, "/items", WithRows(rows))
	sel := c.Selection()

	sel.Check("1")
	sel.Check("1")
	sel.Check("missing")
	testutil.AssertStrings(t, sel.SelectedIDs(), "1")

	sel.SetAllPages(true)
	sel.Check("2")
	if rows.Checked("2") {
		t.Error("Check accepted while all pages selected")
	}
}

func TestDeleteEnabled(t *testing.T) {
	empty := New("/items", itemsPage, nil).Selection()
	if empty.DeleteEnabled() {
		t.Error("enabled with no rows")
	}

	c, _ := newTestController(t, "/items", WithRows(NewRowSet("1")))
	sel := c.Selection()
	if sel.DeleteEnabled() {
		t.Error("enabled with nothing checked")
	}
	sel.Toggle("1")
	if !sel.DeleteEnabled() {
		t.Error("disabled with a checked row")
	}
	sel.SetAllPages(true)
	if !sel.DeleteEnabled() {
		t.Error("disabled with all pages selected")
	}
}

func TestRowSetIgnoresUnknownIDs(t *testing.T) {
	rows := NewRowSet("1")
	rows.SetChecked("9", true)
	if rows.Checked("9") {
		t.Error("unknown id became checked")
	}
}
