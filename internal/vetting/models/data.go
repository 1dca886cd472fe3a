package models

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Data is a nominee's open-ended attribute tree. Values are strings, booleans,
// float64 numbers, nil, []any, or nested Data-shaped maps.
type Data map[string]any

// Clone returns a deep copy of d with numbers normalized to float64.
// A nil map clones to nil.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = normalizeValue(v)
	}
	return out
}

// Keys returns the attribute names in sorted order.
func (d Data) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of d with key removed.
func (d Data) Without(key string) Data {
	out := d.Clone()
	if out == nil {
		out = Data{}
	}
	delete(out, key)
	return out
}

// Merge overlays fields on top of base (top level only) and returns a new map.
func Merge(base, fields Data) Data {
	out := make(Data, len(base)+len(fields))
	for k, v := range base {
		out[k] = normalizeValue(v)
	}
	for k, v := range fields {
		out[k] = normalizeValue(v)
	}
	return out
}

// ContainsNull walks the whole tree and reports whether any value is nil.
// Data holding a null value cannot be committed.
func ContainsNull(d Data) bool {
	found := false
	walkNulls("", map[string]any(d), func(string) bool {
		found = true
		return false
	})
	return found
}

// NullPaths lists the dotted paths of null values, sorted, for error messages.
func NullPaths(d Data) []string {
	var paths []string
	walkNulls("", map[string]any(d), func(path string) bool {
		paths = append(paths, path)
		return true
	})
	sort.Strings(paths)
	return paths
}

// walkNulls calls visit with the path of every nil under v, descending into
// maps, Data and lists at any depth. It stops early once visit returns false.
func walkNulls(path string, v any, visit func(path string) bool) bool {
	switch t := v.(type) {
	case nil:
		return visit(path)
	case Data:
		return walkNulls(path, map[string]any(t), visit)
	case map[string]any:
		for k, item := range t {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if !walkNulls(child, item, visit) {
				return false
			}
		}
	case []any:
		for i, item := range t {
			if !walkNulls(path+"["+strconv.Itoa(i)+"]", item, visit) {
				return false
			}
		}
	}
	return true
}

// normalizeValue deep-copies v, folding nested Data into map[string]any and every
// numeric type into float64 so values compare the way their JSON form would.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case Data:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}
