package themejson

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Top level sections of the configuration tree the resolver reads from.
const (
	SettingsKey = "settings"
	StylesKey   = "styles"
)

// Tree is a decoded theme.json-like document. Nested objects are
// map[string]any, lists are []any. The resolver treats it as read-only.
type Tree map[string]any

// Lookup walks the tree along path and returns the value found there.
// Missing keys and non-object intermediate values yield false.
func (t Tree) Lookup(path ...string) (any, bool) {
	return lookup(map[string]any(t), path)
}

// Section returns top level object under key, nil if absent or not an object.
func (t Tree) Section(key string) map[string]any {
	m, _ := asObject(t[key])
	return m
}

// Clone returns deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	return Tree(cloneObject(t))
}

func lookup(node map[string]any, path []string) (any, bool) {
	var cur any = node
	for _, key := range path {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// asObject accepts both plain maps and Tree values.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Tree:
		return map[string]any(m), m != nil
	}
	return nil, false
}

func cloneObject(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneObject(val)
	case Tree:
		return cloneObject(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// scalarString formats scalar leaf as CSS value text. Objects, lists and
// nulls are not scalars.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

// sortedKeys returns object keys in lexical order.
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}
