package browse

import (
	"testing"

	"github.com/wesm/browsestate/internal/testutil"
)

func TestToggleFilterValueDoesNotNavigate(t *testing.T) {
	c, rec := newTestController(t, "/items")

	if n := c.ToggleFilterValue("color", "red"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if n := c.ToggleFilterValue("color", "blue"); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	assertNoNavigation(t, rec)

	c.ApplyFilters()
	assertNavigated(t, rec, "/items?filter_name=color&filter_value=red,blue")
}

func TestToggleFilterValueRemovesEmptyFilter(t *testing.T) {
	c, rec := newTestController(t, "/items?filter_name=color&filter_value=red")

	if n := c.ToggleFilterValue("color", "red"); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	if c.State().Filters.Has("color") {
		t.Error("color still present after removing its last value")
	}
	// The page arrived filtered, so apply stays enabled to clear it.
	if !c.FilterButtonsEnabled() {
		t.Error("FilterButtonsEnabled = false, want true before apply")
	}

	c.ApplyFilters()
	assertNavigated(t, rec, "/items")
	if c.FilterButtonsEnabled() {
		t.Error("FilterButtonsEnabled = true after reload of an unfiltered page")
	}
}

func TestToggleFilterValueIgnoresEmptyInput(t *testing.T) {
	c, _ := newTestController(t, "/items?filter_name=color&filter_value=red")

	if n := c.ToggleFilterValue("color", ""); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if n := c.ToggleFilterValue("", "red"); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	if n := c.ToggleFilterValue("size", "L"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if n := c.ToggleFilterValue("size", "L"); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	testutil.AssertStrings(t, c.Filters().Selected("color"), "red")
}

func TestRangeFiltersMigrateOnLoad(t *testing.T) {
	c, _ := newTestController(t, "/items?filter_name=price__gte_number&filter_value=10")

	s := c.State()
	if s.Filters.Len() != 0 {
		t.Errorf("discrete filters = %v, want none", s.Filters.Names())
	}
	if v, ok := s.Ranges.Get("price__gte_number"); !ok || v != "10" {
		t.Errorf("range = %q, %v; want 10", v, ok)
	}
	if v, ok := c.Snapshot().Value("price__gte_number"); !ok || v != "10" {
		t.Errorf("snapshot = %q, %v; want 10", v, ok)
	}
	if c.HasHiddenFilters() {
		t.Errorf("hidden filters = %v, want none", c.HiddenFilters())
	}
	if got, want := c.URL(), "/items?filter_name=price__gte_number&filter_value=10"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestRangeFilterKeepsRawValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"upper bound only", ",5"},
		{"equal bounds", "5,5"},
		{"empty middle part", "5,,6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/items?filter_name=price__gte_number&filter_value=" + tt.value
			c, _ := newTestController(t, url)

			if v, ok := c.Filters().Range("price__gte_number"); !ok || v != tt.value {
				t.Errorf("range = %q, %v; want %q", v, ok, tt.value)
			}
			if v, ok := c.Snapshot().Value("price__gte_number"); !ok || v != tt.value {
				t.Errorf("snapshot = %q, %v; want %q", v, ok, tt.value)
			}
			if got := c.URL(); got != url {
				t.Errorf("URL() = %q, want %q", got, url)
			}
		})
	}
}

func TestSetRangeFilter(t *testing.T) {
	c, rec := newTestController(t, "/items?filter_name=price__gte_number&filter_value=10")

	c.SetRangeFilter("price__gte_number", "20")
	assertNoNavigation(t, rec)
	if v, _ := c.Filters().Range("price__gte_number"); v != "20" {
		t.Errorf("range = %q, want 20", v)
	}

	c.SetRangeFilter("price__gte_number", "")
	c.SetRangeFilter("missing", "")
	c.ApplyFilters()
	assertNavigated(t, rec, "/items")
}

func TestRangeAndDiscreteFamiliesStayDisjoint(t *testing.T) {
	c, _ := newTestController(t, "/items")

	c.ToggleFilterValue("weight", "3")
	c.SetRangeFilter("weight", "1,5")
	s := c.State()
	if s.Filters.Has("weight") {
		t.Error("weight in both families after SetRangeFilter")
	}

	c.ToggleFilterValue("weight", "3")
	s = c.State()
	if s.Ranges.Has("weight") {
		t.Error("weight in both families after ToggleFilterValue")
	}
}

func TestHiddenFilters(t *testing.T) {
	page := Page{DefaultPageSize: 25, FilterNames: []string{"size"}}
	c := New("/items?filter_name=color&filter_value=red", page, nil)

	testutil.AssertStrings(t, c.HiddenFilters(), "color")
	if !c.HasHiddenFilters() {
		t.Error("HasHiddenFilters = false, want true")
	}

	c2 := New("/items?filter_name=size&filter_value=L", page, nil)
	if c2.HasHiddenFilters() {
		t.Errorf("hidden = %v, want none", c2.HiddenFilters())
	}
}

func TestFilterButtonsEnabled(t *testing.T) {
	c, _ := newTestController(t, "/items?search_by=x")
	if c.FilterButtonsEnabled() {
		t.Error("enabled with no filters")
	}
	c.SetRangeFilter("price__gte_number", "5")
	if !c.FilterButtonsEnabled() {
		t.Error("disabled after setting a range")
	}
}
