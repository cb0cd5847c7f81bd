package bracket

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// FromGo converts an arbitrary Go value - the kind normally passed to
// RenderTemplate: maps, slices, structs, scalars, pointers - into a
// Value. Go maps have no ordering of their own, so a map[string]any's
// keys are sorted for a result that is at least deterministic across
// renders; a struct's fields keep their declaration order, the same
// order any struct tag-driven marshaler would use.
func FromGo(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case map[string]interface{}:
		return Object(orderedMapFromSortedGoMap(t))
	case []interface{}:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = FromGo(e)
		}
		return Array(arr)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return Null()
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		arr := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			arr[i] = FromGo(rv.Index(i).Interface())
		}
		return Array(arr)
	case reflect.Map:
		generic := make(map[string]interface{})
		if err := mapstructure.Decode(v, &generic); err != nil {
			return Null()
		}
		return Object(orderedMapFromSortedGoMap(generic))
	case reflect.Struct:
		generic := make(map[string]interface{})
		if err := mapstructure.Decode(v, &generic); err != nil {
			return Null()
		}
		return Object(orderedMapFromStruct(rv.Type(), generic))
	default:
		return Null()
	}
}

func orderedMapFromSortedGoMap(m map[string]interface{}) *OrderedMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	om := NewOrderedMap()
	for _, k := range keys {
		om.Set(k, FromGo(m[k]))
	}
	return om
}

// orderedMapFromStruct walks typ's fields in declaration order, mapping
// each to the key mapstructure.Decode would have produced for it, and
// appends anything left in generic (promoted fields from an embedded,
// squashed struct) afterward in sorted order.
func orderedMapFromStruct(typ reflect.Type, generic map[string]interface{}) *OrderedMap {
	om := NewOrderedMap()
	seen := make(map[string]bool, len(generic))
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		key, skip := mapstructureFieldKey(field)
		if skip {
			continue
		}
		if val, ok := generic[key]; ok {
			om.Set(key, FromGo(val))
			seen[key] = true
		}
	}
	leftover := make([]string, 0)
	for k := range generic {
		if !seen[k] {
			leftover = append(leftover, k)
		}
	}
	sort.Strings(leftover)
	for _, k := range leftover {
		om.Set(k, FromGo(generic[k]))
	}
	return om
}

// mapstructureFieldKey computes the map key mapstructure.Decode assigns
// a struct field when decoding struct -> map[string]interface{}: the
// field's own name, unless a "mapstructure" tag says otherwise. This
// must track mapstructure's actual behavior exactly, since it's used to
// look a field's value back up in the generic map Decode already
// produced - a mismatched key here would silently drop the field into
// the sorted leftover pass instead of its declared position.
func mapstructureFieldKey(field reflect.StructField) (key string, skip bool) {
	tag := field.Tag.Get("mapstructure")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	for _, opt := range parts[1:] {
		if opt == "-" {
			return "", true
		}
	}
	if name == "-" {
		return "", true
	}
	if name == "" {
		name = field.Name
	}
	return name, false
}
