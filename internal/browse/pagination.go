package browse

import (
	"math"
	"strconv"
	"strings"

	"github.com/wesm/browsestate/internal/viewstate"
)

// pageWindowRadius is how many page links are shown on each side of the
// current page.
const pageWindowRadius = 3

// ParsePageNumber accepts text only if it is a whole number of at least 1.
// "3" and "3.0" pass; "3.5", "3abc", "abc", "" and "NaN" do not.
func ParsePageNumber(text string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Floor(f) || f < 1 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// PageWindow returns the page numbers to link around current, clipped so
// that no page is below 1. The upper end is left to the server, which knows
// the page count.
func PageWindow(current int) []int {
	if current < 1 {
		current = 1
	}
	start := max(current-pageWindowRadius, 1)
	end := current + pageWindowRadius
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// SetPageSize replaces the page size and navigates back to the first page
// with search, filters and sort preserved.
func (c *Controller) SetPageSize(size string) {
	size = strings.TrimSpace(size)
	if size == "" {
		c.logger.Debug("ignoring empty page size")
		return
	}
	c.state.PageSize = size
	c.state.PageNumber = 1
	c.emit(viewstate.AllParts)
}

// GotoPage navigates to the page named by text. Anything other than a whole
// number of at least 1 is ignored without feedback; the return value says
// whether navigation happened.
func (c *Controller) GotoPage(text string) bool {
	n, ok := ParsePageNumber(text)
	if !ok {
		c.logger.Debug("ignoring page navigation", "input", text)
		return false
	}
	c.state.PageNumber = n
	c.emit(viewstate.AllParts)
	return true
}

// PageWindow returns the page links to render around the current page.
func (c *Controller) PageWindow() []int {
	return PageWindow(c.state.PageNumber)
}
