// Package browse implements the list-view controller: the filter store, sort
// sequencer, pagination and selection models, and the navigation emitter
// that turns every user action into the next URL.
package browse

import (
	"io"
	"log/slog"
)

// Page describes what the rendering layer put on the current page. The
// controller only needs names, never widgets.
type Page struct {
	// DefaultPageSize is the size an absent paginate_by implies.
	DefaultPageSize int

	// FilterNames lists every rendered filter control, select and range.
	// Filters in the URL with no name here are reported as hidden.
	FilterNames []string

	// RangeFilterNames lists the controls that take free-text range input.
	// Matching discrete filters are moved to the range family on load.
	RangeFilterNames []string
}

// Navigator performs a navigation to url. In a browser this would assign
// window.location; adapters record or forward it.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url string)

// Navigate calls f(url).
func (f NavigatorFunc) Navigate(url string) { f(url) }

// Recorder is a Navigator that remembers every URL it was sent.
type Recorder struct {
	URLs []string
}

// Navigate appends url.
func (r *Recorder) Navigate(url string) { r.URLs = append(r.URLs, url) }

// Last returns the most recent URL, or "" if none.
func (r *Recorder) Last() string {
	if len(r.URLs) == 0 {
		return ""
	}
	return r.URLs[len(r.URLs)-1]
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for navigations and ignored commands.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRows attaches the rendered rows the selection model reads and writes.
func WithRows(rows Rows) Option {
	return func(c *Controller) {
		c.rows = rows
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
