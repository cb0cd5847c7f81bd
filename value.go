package bracket

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// ValueKind is the JSON-shaped type tag of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is the data model templates render against: the six JSON
// types, with KindObject backed by an OrderedMap so that hash-argument
// order and "{{#each}} over an object" iteration order match whatever
// order the data was built in, not map iteration order.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *OrderedMap
}

func Null() Value             { return Value{kind: KindNull} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Number(n float64) Value  { return Value{kind: KindNumber, n: n} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Array(vs []Value) Value  { return Value{kind: KindArray, arr: vs} }
func Object(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}
	return Value{kind: KindObject, obj: m}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.b
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.n
	}
	return 0
}

func (v Value) Array() []Value {
	if v.kind == KindArray {
		return v.arr
	}
	return nil
}

func (v Value) Object() *OrderedMap {
	if v.kind == KindObject {
		return v.obj
	}
	return nil
}

// Truthy implements §6.2's truthiness rule used by if/unless/and/or/not:
// false, null, 0, "", and an empty array or object are falsy; everything
// else, including an object with only falsy values, is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return v.obj != nil && v.obj.Len() > 0
	default:
		return false
	}
}

// AsString renders a scalar the way a "{{expr}}" interpolation would
// before HTML-escaping: numbers use the shortest round-tripping
// decimal form, booleans are "true"/"false", null and composite values
// are "".
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// JSON marshals v, preserving object key order.
func (v Value) JSON() (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return v.obj.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromGo(raw)
	return nil
}

// orderedEntry is one key/value pair of an OrderedMap, in insertion
// order.
type orderedEntry struct {
	key   string
	value Value
}

// OrderedMap is a string-keyed map that remembers the order keys were
// first inserted in, so object iteration and re-marshaling are
// deterministic rather than following Go's randomized map order.
type OrderedMap struct {
	index   map[string]int
	entries []orderedEntry
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

func (m *OrderedMap) Len() int { return len(m.entries) }

func (m *OrderedMap) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].value, true
}

// Set inserts or updates key. The first Set for a given key fixes its
// position in iteration order; later Sets update the value in place.
func (m *OrderedMap) Set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.entries[i].value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, orderedEntry{key: key, value: v})
}

// Keys returns keys in insertion order.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

func (m *OrderedMap) Each(fn func(key string, v Value)) {
	for _, e := range m.entries {
		fn(e.key, e.value)
	}
}

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, e := range m.entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	keys, err := jsonObjectKeyOrder(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = *NewOrderedMap()
	for _, k := range keys {
		var v Value
		if err := json.Unmarshal(raw[k], &v); err != nil {
			return err
		}
		m.Set(k, v)
	}
	return nil
}

// jsonObjectKeyOrder recovers the textual key order of a JSON object,
// since decoding into map[string]json.RawMessage alone discards it.
func jsonObjectKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(json.Delim); !ok {
		return nil, nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
