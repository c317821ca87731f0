// Package viewstate holds the typed query state of a list view and the codec
// that maps it to and from a URL query string.
package viewstate

// ViewState is the complete query of a list view: search, filters, sort and
// pagination. It is rebuilt from the URL on every page load.
type ViewState struct {
	SearchTerms []string
	Filters     FilterMap[ValueSet] // discrete (faceted) filters
	Ranges      FilterMap[string]   // range filters, payload opaque
	Sort        SortSequence
	PageSize    string
	PageNumber  int

	// raw holds each filter's filter_value exactly as decoded. Edits to
	// Filters and Ranges do not touch it.
	raw FilterMap[string]
}

// Clone returns a deep copy.
func (s *ViewState) Clone() *ViewState {
	out := &ViewState{
		Filters:    s.Filters.Clone(),
		Ranges:     s.Ranges.Clone(),
		Sort:       s.Sort.Clone(),
		PageSize:   s.PageSize,
		PageNumber: s.PageNumber,
		raw:        s.raw.Clone(),
	}
	if len(s.SearchTerms) > 0 {
		out.SearchTerms = append([]string(nil), s.SearchTerms...)
	}
	return out
}

// Equal reports field-wise equality. Filter order and value order within a
// filter are not significant; sort order and search order are.
func (s *ViewState) Equal(other *ViewState) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.PageSize != other.PageSize || s.PageNumber != other.PageNumber {
		return false
	}
	if len(s.SearchTerms) != len(other.SearchTerms) {
		return false
	}
	for i := range s.SearchTerms {
		if s.SearchTerms[i] != other.SearchTerms[i] {
			return false
		}
	}
	return s.Filters.Equal(&other.Filters, ValueSet.Equal) &&
		s.Ranges.Equal(&other.Ranges, func(a, b string) bool { return a == b }) &&
		s.Sort.Equal(other.Sort)
}

// HasFilters reports whether any discrete or range filter is set.
func (s *ViewState) HasFilters() bool {
	return s.Filters.Len() > 0 || s.Ranges.Len() > 0
}

// Snapshot is an immutable copy of the filters a page arrived with, taken
// before range filters are split out.
type Snapshot struct {
	filters FilterMap[string]
}

// RawFilterValue returns the filter_value text the named filter was decoded
// from, before it was split into a set.
func (s *ViewState) RawFilterValue(name string) (string, bool) {
	return s.raw.Get(name)
}

// TakeSnapshot captures the discrete and range filters of s. Decoded filters
// keep their wire text verbatim.
func TakeSnapshot(s *ViewState) Snapshot {
	var snap Snapshot
	for _, name := range s.Filters.Names() {
		if raw, ok := s.raw.Get(name); ok {
			snap.filters.Set(name, raw)
			continue
		}
		v, _ := s.Filters.Get(name)
		snap.filters.Set(name, v.String())
	}
	for _, name := range s.Ranges.Names() {
		v, _ := s.Ranges.Get(name)
		snap.filters.Set(name, v)
	}
	return snap
}

// Empty reports whether the page arrived with no filters.
func (s Snapshot) Empty() bool { return s.filters.Len() == 0 }

// Names returns the snapshot's filter names in arrival order.
func (s Snapshot) Names() []string { return s.filters.Names() }

// Value returns the raw wire value a filter arrived with.
func (s Snapshot) Value(name string) (string, bool) { return s.filters.Get(name) }

// Filter is the plain form of one discrete filter.
type Filter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Range is the plain form of one range filter.
type Range struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Summary is an exported, order-preserving rendering of a ViewState for
// JSON output and diffs.
type Summary struct {
	SearchTerms []string `json:"search_terms"`
	Filters     []Filter `json:"filters"`
	Ranges      []Range  `json:"ranges"`
	Sort        []string `json:"sort"`
	PageSize    string   `json:"page_size"`
	PageNumber  int      `json:"page_number"`
}

// Summarize returns the plain form of s.
func (s *ViewState) Summarize() Summary {
	sum := Summary{
		SearchTerms: append([]string{}, s.SearchTerms...),
		Filters:     []Filter{},
		Ranges:      []Range{},
		Sort:        s.Sort.Strings(),
		PageSize:    s.PageSize,
		PageNumber:  s.PageNumber,
	}
	for _, name := range s.Filters.Names() {
		v, _ := s.Filters.Get(name)
		sum.Filters = append(sum.Filters, Filter{Name: name, Values: v.Values()})
	}
	for _, name := range s.Ranges.Names() {
		v, _ := s.Ranges.Get(name)
		sum.Ranges = append(sum.Ranges, Range{Name: name, Value: v})
	}
	return sum
}
