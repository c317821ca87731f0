package browse

import "testing"

// itemsPage renders color and size selects and one numeric range control.
var itemsPage = Page{
	DefaultPageSize:  25,
	FilterNames:      []string{"color", "size", "price__gte_number"},
	RangeFilterNames: []string{"price__gte_number"},
}

// newTestController builds a controller over itemsPage with a recording
// navigator.
func newTestController(t *testing.T, rawURL string, opts ...Option) (*Controller, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	return New(rawURL, itemsPage, rec, opts...), rec
}

func assertNavigated(t *testing.T, rec *Recorder, want string) {
	t.Helper()
	if len(rec.URLs) == 0 {
		t.Fatalf("no navigation, want %q", want)
	}
	if got := rec.Last(); got != want {
		t.Errorf("navigated to %q, want %q", got, want)
	}
}

func assertNoNavigation(t *testing.T, rec *Recorder) {
	t.Helper()
	if len(rec.URLs) != 0 {
		t.Errorf("unexpected navigation: %q", rec.URLs)
	}
}
