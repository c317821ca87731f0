package browse

import "github.com/wesm/browsestate/internal/viewstate"

// FilterStore edits the discrete and range filters of a view and derives the
// signals the filter panel needs.
type FilterStore struct {
	state    *viewstate.ViewState
	original viewstate.Snapshot
	known    map[string]bool
}

// newFilterStore snapshots the incoming filters, then moves every filter
// that belongs to a range control into the range family. The order matters:
// the snapshot must see the filters as they arrived so clear and apply stay
// enabled even after the split.
func newFilterStore(state *viewstate.ViewState, page Page) *FilterStore {
	f := &FilterStore{
		state:    state,
		original: viewstate.TakeSnapshot(state),
		known:    make(map[string]bool, len(page.FilterNames)+len(page.RangeFilterNames)),
	}
	for _, name := range page.FilterNames {
		f.known[name] = true
	}
	for _, name := range page.RangeFilterNames {
		f.known[name] = true
	}
	f.migrateRanges(page.RangeFilterNames)
	return f
}

func (f *FilterStore) migrateRanges(rangeNames []string) {
	for _, name := range rangeNames {
		v, ok := f.state.Filters.Get(name)
		if !ok {
			continue
		}
		// A range payload is opaque: ",5" and "5,5" must not pass through
		// the set, which would drop the empty bound or the repeat.
		raw, ok := f.state.RawFilterValue(name)
		if !ok {
			raw = v.String()
		}
		f.state.Ranges.Set(name, raw)
		f.state.Filters.Delete(name)
	}
}

// ToggleValue selects value in the named discrete filter, or deselects it if
// it was already selected. A filter left with no values is removed. It
// returns the number of values now selected, the filter's count badge.
func (f *FilterStore) ToggleValue(name, value string) int {
	if name == "" || value == "" {
		return f.Count(name)
	}
	set, _ := f.state.Filters.Get(name)
	if set.Has(value) {
		set.Remove(value)
	} else {
		set.Add(value)
	}
	if set.Len() == 0 {
		f.state.Filters.Delete(name)
		return 0
	}
	f.state.Ranges.Delete(name)
	f.state.Filters.Set(name, set)
	return set.Len()
}

// SetRange stores text as the payload of a range filter. Empty text removes
// the filter.
func (f *FilterStore) SetRange(name, text string) {
	if name == "" {
		return
	}
	if text == "" {
		f.state.Ranges.Delete(name)
		return
	}
	f.state.Filters.Delete(name)
	f.state.Ranges.Set(name, text)
}

// Range returns the payload of a range filter.
func (f *FilterStore) Range(name string) (string, bool) {
	return f.state.Ranges.Get(name)
}

// Selected returns the selected values of a discrete filter in display order.
func (f *FilterStore) Selected(name string) []string {
	set, _ := f.state.Filters.Get(name)
	return set.Values()
}

// Count returns how many values of a discrete filter are selected.
func (f *FilterStore) Count(name string) int {
	set, _ := f.state.Filters.Get(name)
	return set.Len()
}

// HiddenFilters returns the active filters that no rendered control shows,
// in URL order.
func (f *FilterStore) HiddenFilters() []string {
	var hidden []string
	for _, name := range f.state.Filters.Names() {
		if !f.known[name] {
			hidden = append(hidden, name)
		}
	}
	for _, name := range f.state.Ranges.Names() {
		if !f.known[name] {
			hidden = append(hidden, name)
		}
	}
	return hidden
}

// HasHiddenFilters reports whether any active filter is not on this page.
func (f *FilterStore) HasHiddenFilters() bool {
	return len(f.HiddenFilters()) > 0
}

// ButtonsEnabled reports whether clear and apply have anything to act on:
// filters the page arrived with, or filters set since.
func (f *FilterStore) ButtonsEnabled() bool {
	return !f.original.Empty() || f.state.HasFilters()
}

// Original returns the filters the page arrived with.
func (f *FilterStore) Original() viewstate.Snapshot {
	return f.original
}
