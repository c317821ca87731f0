package viewstate

import "strings"

// valueSeparator joins the members of a discrete filter on the wire.
const valueSeparator = ","

// ValueSet is an ordered set of filter values. Insertion order is kept for
// display; equality ignores it.
type ValueSet struct {
	values []string
}

// NewValueSet builds a set from values, dropping empties and duplicates.
func NewValueSet(values ...string) ValueSet {
	var s ValueSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// ParseValueSet splits a comma-joined wire value into a set.
func ParseValueSet(raw string) ValueSet {
	if raw == "" {
		return ValueSet{}
	}
	return NewValueSet(strings.Split(raw, valueSeparator)...)
}

// Has reports whether v is a member.
func (s ValueSet) Has(v string) bool {
	return s.index(v) >= 0
}

// Add appends v unless it is empty or already present. It reports whether
// the set changed.
func (s *ValueSet) Add(v string) bool {
	if v == "" || s.Has(v) {
		return false
	}
	// Full slice expression so copies of a set never share appended storage.
	s.values = append(s.values[:len(s.values):len(s.values)], v)
	return true
}

// Remove deletes v and reports whether it was present.
func (s *ValueSet) Remove(v string) bool {
	i := s.index(v)
	if i < 0 {
		return false
	}
	s.values = append(s.values[:i:i], s.values[i+1:]...)
	return true
}

// Len returns the number of members.
func (s ValueSet) Len() int { return len(s.values) }

// Values returns the members in insertion order.
func (s ValueSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// String returns the wire encoding.
func (s ValueSet) String() string {
	return strings.Join(s.values, valueSeparator)
}

// Equal reports set equality, ignoring order.
func (s ValueSet) Equal(other ValueSet) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for _, v := range s.values {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

func (s ValueSet) index(v string) int {
	for i, x := range s.values {
		if x == v {
			return i
		}
	}
	return -1
}

// FilterMap is a name-keyed map that remembers first-insertion order.
// Overwriting a key keeps its original position.
type FilterMap[V any] struct {
	names  []string
	values map[string]V
}

// Get returns the value stored under name.
func (m *FilterMap[V]) Get(name string) (V, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is present.
func (m *FilterMap[V]) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Set stores v under name.
func (m *FilterMap[V]) Set(name string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// Delete removes name. Deleting an absent name is a no-op.
func (m *FilterMap[V]) Delete(name string) bool {
	if _, ok := m.values[name]; !ok {
		return false
	}
	delete(m.values, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i:i], m.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the keys in insertion order.
func (m *FilterMap[V]) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of entries.
func (m *FilterMap[V]) Len() int { return len(m.names) }

// Clone returns an independent copy. Values are copied by assignment.
func (m *FilterMap[V]) Clone() FilterMap[V] {
	var out FilterMap[V]
	for _, n := range m.names {
		out.Set(n, m.values[n])
	}
	return out
}

// Equal compares entries by name with eq, ignoring insertion order.
func (m *FilterMap[V]) Equal(other *FilterMap[V], eq func(a, b V) bool) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, n := range m.names {
		ov, ok := other.values[n]
		if !ok || !eq(m.values[n], ov) {
			return false
		}
	}
	return true
}
