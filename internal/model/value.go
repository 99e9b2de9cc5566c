package model

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is one node of an element's attribute tree. Element data arrives from
// loosely-typed sources (YAML documents, tool integrations), so instead of
// passing interface{} around, every node is tagged with its kind and accessed
// through typed getters.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a number as a Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a bool as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List wraps a slice of values as a Value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map wraps a string-keyed map as a Value.
func Map(m map[string]Value) Value {
	if m == nil {
		m = make(map[string]Value)
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload. Zero value for non-string kinds.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Zero value for non-number kinds.
func (v Value) Num() float64 { return v.num }

// BoolVal returns the bool payload. Zero value for non-bool kinds.
func (v Value) BoolVal() bool { return v.b }

// Items returns the list payload, or nil for non-list kinds.
func (v Value) Items() []Value { return v.list }

// Fields returns the map payload, or nil for non-map kinds.
func (v Value) Fields() map[string]Value { return v.m }

// StringItems returns the list payload filtered down to its string entries.
// Non-string entries are skipped, not reported.
func (v Value) StringItems() []string {
	if v.kind != KindList {
		return nil
	}
	var out []string
	for _, item := range v.list {
		if item.kind == KindString {
			out = append(out, item.str)
		}
	}
	return out
}

// FromAny converts a decoded YAML/JSON value into a tagged Value. Unsupported
// types collapse to null.
func FromAny(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, FromAny(item))
		}
		return List(items...)
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromAny(item)
		}
		return Map(fields)
	case map[interface{}]interface{}:
		// Older YAML decoders produce interface keys.
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[fmt.Sprintf("%v", k)] = FromAny(item)
		}
		return Map(fields)
	default:
		return Null()
	}
}

// ToAny converts a Value back into the plain interface{} shape used by
// encoders.
func (v Value) ToAny() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.ToAny())
		}
		return out
	case KindMap:
		out := make(map[string]interface{}, len(v.m))
		for k, item := range v.m {
			out[k] = item.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Tree is an element's root attribute map.
type Tree map[string]Value

// TreeFromAny converts a decoded document body into a Tree. Non-map input
// yields an empty tree.
func TreeFromAny(raw interface{}) Tree {
	v := FromAny(raw)
	if v.kind != KindMap {
		return Tree{}
	}
	return Tree(v.m)
}

// ToAny converts the tree into the plain map shape used by encoders.
func (t Tree) ToAny() map[string]interface{} {
	out := make(map[string]interface{}, len(t))
	for k, v := range t {
		out[k] = v.ToAny()
	}
	return out
}

// Get resolves a dotted path ("spec.api.operationsRef") against the tree.
// The second return is false when any path segment is missing or a
// non-map value is traversed.
func (t Tree) Get(path string) (Value, bool) {
	if t == nil || path == "" {
		return Null(), false
	}
	segments := strings.Split(path, ".")
	current := Map(t)
	for _, seg := range segments {
		if current.kind != KindMap {
			return Null(), false
		}
		next, ok := current.m[seg]
		if !ok {
			return Null(), false
		}
		current = next
	}
	return current, true
}

// Set writes a value at a dotted path, creating intermediate maps as needed.
// It fails when an intermediate segment already holds a non-map value.
func (t Tree) Set(path string, v Value) error {
	if t == nil {
		return fmt.Errorf("set %q: nil tree", path)
	}
	if path == "" {
		return fmt.Errorf("set: empty path")
	}
	segments := strings.Split(path, ".")
	current := map[string]Value(t)
	for i, seg := range segments[:len(segments)-1] {
		next, ok := current[seg]
		if !ok {
			next = Map(make(map[string]Value))
			current[seg] = next
		}
		if next.kind != KindMap {
			return fmt.Errorf("set %q: segment %q holds a %s, not a map",
				path, strings.Join(segments[:i+1], "."), next.kind)
		}
		current = next.m
	}
	current[segments[len(segments)-1]] = v
	return nil
}

// Visitor receives every key in the tree along with its dotted path from the
// root. Returning false prunes descent below the visited node.
type Visitor func(path string, key string, value Value) bool

// Walk visits every map entry in the tree, depth first. Map keys are visited
// in sorted order so traversal is deterministic.
func (t Tree) Walk(visit Visitor) {
	walkMap("", map[string]Value(t), visit)
}

func walkMap(prefix string, m map[string]Value, visit Visitor) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if !visit(path, k, v) {
			continue
		}
		if v.kind == KindMap {
			walkMap(path, v.m, visit)
		}
		if v.kind == KindList {
			for _, item := range v.list {
				if item.kind == KindMap {
					walkMap(path, item.m, visit)
				}
			}
		}
	}
}

// Delete removes the entry at a dotted path. It reports whether an entry was
// removed. Intermediate maps are left in place even when emptied.
func (t Tree) Delete(path string) bool {
	if t == nil || path == "" {
		return false
	}
	segments := strings.Split(path, ".")
	current := map[string]Value(t)
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg]
		if !ok || next.kind != KindMap {
			return false
		}
		current = next.m
	}
	last := segments[len(segments)-1]
	if _, ok := current[last]; !ok {
		return false
	}
	delete(current, last)
	return true
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = v.clone()
	}
	return out
}

func (v Value) clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.clone()
		}
		return Value{kind: KindList, list: items}
	case KindMap:
		m := make(map[string]Value, len(v.m))
		for k, item := range v.m {
			m[k] = item.clone()
		}
		return Value{kind: KindMap, m: m}
	default:
		return v
	}
}
