package viewstate

import (
	"fmt"
	"strings"
)

// descendingMarker prefixes a column on the wire to mean descending order.
const descendingMarker = "-"

// Direction is a column's sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Indicator is the header symbol a column shows for its sort state.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorAsc
	IndicatorDesc
)

// String returns "none", "asc" or "desc".
func (i Indicator) String() string {
	switch i {
	case IndicatorAsc:
		return "asc"
	case IndicatorDesc:
		return "desc"
	default:
		return "none"
	}
}

// MarshalText encodes the indicator by name.
func (i Indicator) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText decodes "none", "asc" or "desc".
func (i *Indicator) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*i = IndicatorNone
	case "asc":
		*i = IndicatorAsc
	case "desc":
		*i = IndicatorDesc
	default:
		return fmt.Errorf("unknown sort indicator %q", text)
	}
	return nil
}

// SortKey is one (column, direction) pair.
type SortKey struct {
	Column    string
	Direction Direction
}

// ParseSortKey decodes a wire key: "-name" is descending, "name" ascending.
func ParseSortKey(raw string) SortKey {
	if col, ok := strings.CutPrefix(raw, descendingMarker); ok {
		return SortKey{Column: col, Direction: Descending}
	}
	return SortKey{Column: raw, Direction: Ascending}
}

// String returns the wire encoding.
func (k SortKey) String() string {
	if k.Direction == Descending {
		return descendingMarker + k.Column
	}
	return k.Column
}

func (k SortKey) indicator() Indicator {
	if k.Direction == Descending {
		return IndicatorDesc
	}
	return IndicatorAsc
}

// ColumnSort describes how a sorted column is drawn: its symbol and its
// 1-based position in stored order.
type ColumnSort struct {
	Column    string    `json:"column"`
	Indicator Indicator `json:"indicator"`
	Position  int       `json:"position"`
}

// SortSequence is the ordered list of sort keys for a multi-column sort.
//
// Precedence runs from the end: the last key is the primary sort, the one
// before it secondary, and so on. A column appears at most once.
type SortSequence struct {
	keys []SortKey
}

// NewSortSequence builds a sequence from wire keys. A later occurrence of a
// column replaces the earlier one, in either polarity.
func NewSortSequence(raw ...string) SortSequence {
	var s SortSequence
	for _, r := range raw {
		s.append(ParseSortKey(r))
	}
	return s
}

func (s *SortSequence) append(k SortKey) {
	if k.Column == "" {
		return
	}
	if i := s.Index(k.Column); i >= 0 {
		s.removeAt(i)
	}
	s.keys = append(s.keys[:len(s.keys):len(s.keys)], k)
}

func (s *SortSequence) removeAt(i int) {
	s.keys = append(s.keys[:i:i], s.keys[i+1:]...)
}

// Index returns the stored position of column, or -1.
func (s SortSequence) Index(column string) int {
	for i, k := range s.keys {
		if k.Column == column {
			return i
		}
	}
	return -1
}

// Len returns the number of sorted columns.
func (s SortSequence) Len() int { return len(s.keys) }

// Keys returns the keys in stored order (primary last).
func (s SortSequence) Keys() []SortKey {
	out := make([]SortKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Precedence returns the keys primary first.
func (s SortSequence) Precedence() []SortKey {
	out := make([]SortKey, len(s.keys))
	for i, k := range s.keys {
		out[len(s.keys)-1-i] = k
	}
	return out
}

// Primary returns the highest-precedence key.
func (s SortSequence) Primary() (SortKey, bool) {
	if len(s.keys) == 0 {
		return SortKey{}, false
	}
	return s.keys[len(s.keys)-1], true
}

// Strings returns the wire encoding of each key in stored order.
func (s SortSequence) Strings() []string {
	out := make([]string, len(s.keys))
	for i, k := range s.keys {
		out[i] = k.String()
	}
	return out
}

// Indicator returns the header symbol for column.
func (s SortSequence) Indicator(column string) Indicator {
	if i := s.Index(column); i >= 0 {
		return s.keys[i].indicator()
	}
	return IndicatorNone
}

// Indicators returns the drawing state of every sorted column in stored order.
func (s SortSequence) Indicators() []ColumnSort {
	out := make([]ColumnSort, len(s.keys))
	for i, k := range s.keys {
		out[i] = ColumnSort{Column: k.Column, Indicator: k.indicator(), Position: i + 1}
	}
	return out
}

// Toggle advances column through none → ascending → descending → none and
// returns its new indicator.
//
// An absent column is appended ascending. The last column flips from
// ascending to descending, then drops out. A column that is sorted but not
// last is removed outright rather than promoted, so it has to be toggled again
// to re-enter the cycle.
func (s *SortSequence) Toggle(column string) Indicator {
	if column == "" {
		return IndicatorNone
	}
	i := s.Index(column)
	switch {
	case i < 0:
		s.append(SortKey{Column: column, Direction: Ascending})
		return IndicatorAsc
	case i == len(s.keys)-1:
		if s.keys[i].Direction == Descending {
			s.removeAt(i)
			return IndicatorNone
		}
		s.keys[i].Direction = Descending
		return IndicatorDesc
	default:
		s.removeAt(i)
		return IndicatorNone
	}
}

// Clear removes every key.
func (s *SortSequence) Clear() { s.keys = nil }

// Clone returns an independent copy.
func (s SortSequence) Clone() SortSequence {
	return SortSequence{keys: s.Keys()}
}

// Equal reports whether both sequences hold the same keys in the same order.
func (s SortSequence) Equal(other SortSequence) bool {
	if len(s.keys) != len(other.keys) {
		return false
	}
	for i := range s.keys {
		if s.keys[i] != other.keys[i] {
			return false
		}
	}
	return true
}
