package viewstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// assertStateEqual compares two states with ViewState.Equal and prints a
// structural diff of their summaries on mismatch.
func assertStateEqual(t *testing.T, got, want *ViewState) {
	t.Helper()
	if got.Equal(want) {
		return
	}
	diff := cmp.Diff(want.Summarize(), got.Summarize(), cmpopts.EquateEmpty())
	t.Errorf("ViewState mismatch (-want +got):\n%s", diff)
}

// stateOf builds a ViewState with the given filters; page size and number
// take codec defaults.
func stateOf(search []string, filters map[string][]string, sort ...string) *ViewState {
	s := &ViewState{SearchTerms: search, PageSize: "25", PageNumber: 1}
	for name, values := range filters {
		s.Filters.Set(name, NewValueSet(values...))
	}
	s.Sort = NewSortSequence(sort...)
	return s
}
