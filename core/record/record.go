package record

import "sort"

// Record provides read access to a generic entity with named fields.
type Record interface {
	// Get returns the value of the named field and whether the field exists.
	Get(name string) (any, bool)
	// Fields returns the names of all fields present on the record.
	Fields() []string
}

// MutableRecord extends Record with write access.
type MutableRecord interface {
	Record
	// Set stores a value under the given field name, creating the field if absent.
	Set(name string, value any)
}

// Unset marks a field that exists on a record's shape but has not been
// assigned a value. It is distinct from an explicit nil, which is a real
// value and persists as SQL NULL.
var Unset any = unsetValue{}

type unsetValue struct{}

func (unsetValue) String() string { return "<unset>" }

// Map is a map-backed record. It implements both Record and MutableRecord
// and is the concrete shape used for rows loaded from or written to a store.
type Map map[string]any

func (m Map) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m Map) Set(name string, value any) {
	m[name] = value
}

// Fields returns the field names in sorted order for deterministic iteration.
func (m Map) Fields() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the record.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CopyFields copies every source field whose name also exists on the
// destination, overwriting the destination value unconditionally.
// Fields present only on the destination are left untouched; fields present
// only on the source are not created.
func CopyFields(src Record, dst MutableRecord) {
	for _, name := range src.Fields() {
		if _, ok := dst.Get(name); !ok {
			continue
		}
		v, _ := src.Get(name)
		dst.Set(name, v)
	}
}
