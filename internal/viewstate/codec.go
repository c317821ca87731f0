package viewstate

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names. These are the stable wire format shared with the
// server-side list views.
const (
	ParamSearch      = "search_by"
	ParamFilterName  = "filter_name"
	ParamFilterValue = "filter_value"
	ParamSort        = "sort_by"
	ParamPageSize    = "paginate_by"
	ParamPage        = "page"

	// ParamReturnEmpty asks the server for an empty result. Bulk actions
	// send it when nothing is selected.
	ParamReturnEmpty = "__RETURN_EMPTY__"
)

// DefaultPageSize is used when a codec is built without one.
const DefaultPageSize = 25

// Parts selects which optional sections Encode emits. Page size and page
// number are always considered.
type Parts uint8

const (
	PartSearch Parts = 1 << iota
	PartFilters
	PartSort

	AllParts = PartSearch | PartFilters | PartSort
)

// Codec maps between URL query strings and ViewState.
type Codec struct {
	defaultPageSize string
}

// NewCodec returns a codec whose omitted page size means defaultPageSize.
// Non-positive sizes fall back to DefaultPageSize.
func NewCodec(defaultPageSize int) *Codec {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return &Codec{defaultPageSize: strconv.Itoa(defaultPageSize)}
}

// DefaultPageSize returns the page size an empty query implies.
func (c *Codec) DefaultPageSize() string { return c.defaultPageSize }

// SplitURL separates rawURL into the part before the first '?' and the query
// after it. A fragment is dropped. ok is false when there is no query.
func SplitURL(rawURL string) (base, query string, ok bool) {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	base, query, ok = strings.Cut(rawURL, "?")
	return base, query, ok
}

// Parse decodes the query component of rawURL. A URL without one yields an
// empty state.
func (c *Codec) Parse(rawURL string) *ViewState {
	_, query, ok := SplitURL(rawURL)
	if !ok {
		return c.empty()
	}
	return c.Decode(query)
}

func (c *Codec) empty() *ViewState {
	return &ViewState{PageSize: c.defaultPageSize, PageNumber: 1}
}

// Decode parses a query string (without the leading '?').
//
// Repeated keys build sequences. The n-th filter_name pairs with the n-th
// filter_value; a name without a value is dropped. Decoding never fails:
// malformed fields keep their defaults and unknown keys are ignored.
func (c *Codec) Decode(query string) *ViewState {
	s := c.empty()
	// ParseQuery keeps every pair it could unescape and reports the first
	// failure; the rest of the query is still usable.
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))

	for _, term := range values[ParamSearch] {
		if term != "" {
			s.SearchTerms = append(s.SearchTerms, term)
		}
	}

	names, vals := values[ParamFilterName], values[ParamFilterValue]
	for i, name := range names {
		if i >= len(vals) {
			break
		}
		if name == "" {
			continue
		}
		set := ParseValueSet(vals[i])
		if set.Len() == 0 {
			// Absence, not an empty value, means "no filter".
			s.Filters.Delete(name)
			s.raw.Delete(name)
			continue
		}
		s.Filters.Set(name, set)
		s.raw.Set(name, vals[i])
	}

	s.Sort = NewSortSequence(values[ParamSort]...)

	if sizes := values[ParamPageSize]; len(sizes) > 0 && sizes[len(sizes)-1] != "" {
		s.PageSize = normalizePageSize(sizes[len(sizes)-1])
	}

	if pages := values[ParamPage]; len(pages) > 0 {
		if n, err := strconv.Atoi(pages[len(pages)-1]); err == nil && n > 0 {
			s.PageNumber = n
		}
	}

	return s
}

// Encode serializes s into a canonical query string without the leading
// '?'. It returns "" when nothing needs emitting.
func (c *Codec) Encode(s *ViewState, parts Parts) string {
	var q queryBuilder

	if s.PageSize != "" && !samePageSize(s.PageSize, c.defaultPageSize) {
		q.add(ParamPageSize, s.PageSize)
	}
	if s.PageNumber > 1 {
		q.add(ParamPage, strconv.Itoa(s.PageNumber))
	}

	if parts&PartSearch != 0 {
		for _, term := range s.SearchTerms {
			q.add(ParamSearch, term)
		}
	}

	if parts&PartFilters != 0 {
		for _, name := range s.Filters.Names() {
			v, _ := s.Filters.Get(name)
			q.add(ParamFilterName, name)
			q.add(ParamFilterValue, v.String())
		}
		for _, name := range s.Ranges.Names() {
			v, _ := s.Ranges.Get(name)
			q.add(ParamFilterName, name)
			q.add(ParamFilterValue, v)
		}
	}

	if parts&PartSort != 0 {
		for _, key := range s.Sort.Strings() {
			q.add(ParamSort, key)
		}
	}

	return q.String()
}

// URL joins base with the encoding of s. The '?' is omitted when the query
// is empty.
func (c *Codec) URL(base string, s *ViewState, parts Parts) string {
	return JoinQuery(base, c.Encode(s, parts))
}

// JoinQuery appends query to base with a '?' separator, or returns base
// unchanged for an empty query.
func JoinQuery(base, query string) string {
	if query == "" {
		return base
	}
	return base + "?" + query
}

// normalizePageSize rewrites integer sizes in canonical form ("025" → "25").
// Anything else passes through; the server decides what it accepts.
func normalizePageSize(raw string) string {
	if n, err := strconv.Atoi(raw); err == nil {
		return strconv.Itoa(n)
	}
	return raw
}

// samePageSize compares page sizes numerically when both are integers, so
// "025" and "25" agree.
func samePageSize(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	return a == b
}

// queryBuilder writes key=value pairs in call order.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) add(key, value string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(EscapeValue(key))
	q.b.WriteByte('=')
	q.b.WriteString(EscapeValue(value))
}

func (q *queryBuilder) String() string { return q.b.String() }

// EscapeValue query-escapes v but leaves commas literal, keeping the
// comma-joined set encoding readable.
func EscapeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%2C", ",")
}
