package presenter

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// AttributeMap is an insertion-ordered string-to-value mapping. Setting an
// existing key replaces its value but keeps its original position, matching
// how merged presenter output retains the model's key order when a mutator
// overrides a stored attribute.
type AttributeMap struct {
	keys   []string
	values map[string]any
}

// NewAttributeMap builds an AttributeMap from ordered attribute pairs.
func NewAttributeMap(attrs ...Attr) *AttributeMap {
	m := &AttributeMap{values: make(map[string]any, len(attrs))}
	for _, attr := range attrs {
		m.Set(attr.Name, attr.Value)
	}
	return m
}

// Set stores a value under name, appending the key when it is new.
func (m *AttributeMap) Set(name string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name.
func (m *AttributeMap) Get(name string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	value, ok := m.values[name]
	return value, ok
}

// Has reports whether name is present.
func (m *AttributeMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Delete removes name and its position. Missing names are ignored.
func (m *AttributeMap) Delete(name string) {
	if m == nil || m.values == nil {
		return
	}
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, key := range m.keys {
		if key == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the key names in insertion order.
func (m *AttributeMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Pairs returns the entries in insertion order.
func (m *AttributeMap) Pairs() []Attr {
	if m == nil {
		return nil
	}
	pairs := make([]Attr, 0, len(m.keys))
	for _, key := range m.keys {
		pairs = append(pairs, Attr{Name: key, Value: m.values[key]})
	}
	return pairs
}

// Len returns the number of entries.
func (m *AttributeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy sharing no state with the receiver.
func (m *AttributeMap) Clone() *AttributeMap {
	if m == nil {
		return NewAttributeMap()
	}
	out := &AttributeMap{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]any, len(m.values)),
	}
	for key, value := range m.values {
		out.values[key] = value
	}
	return out
}

// MarshalJSON emits a JSON object with keys in insertion order. Plain
// map-based marshalling would sort them.
func (m *AttributeMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, errors.Wrapf(err, "presenter: marshal key %q", key)
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, errors.Wrapf(err, "presenter: marshal value for %q", key)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
