// Package filter holds the boolean expression language routing rules use to
// select events, and its evaluator.
package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind names a filter node on the wire.
type Kind string

const (
	KindExact  Kind = "exact"
	KindPrefix Kind = "prefix"
	KindSuffix Kind = "suffix"
	KindAll    Kind = "all"
	KindAny    Kind = "any"
	KindNot    Kind = "not"
)

// Filter is a node of a filter expression tree. The set of implementations is
// closed: Exact, Prefix, Suffix, All, Any and Not.
type Filter interface {
	Kind() Kind
	sealed()
}

// Exact is true iff every listed attribute equals its expected value.
type Exact map[string]any

// Prefix is true iff every listed attribute is a string starting with its value.
type Prefix map[string]string

// Suffix is true iff every listed attribute is a string ending with its value.
type Suffix map[string]string

// All is the conjunction of its children. An empty All is true.
type All []Filter

// Any is the disjunction of its children. An empty Any is false.
type Any []Filter

// Not inverts its child.
type Not struct {
	Filter Filter
}

func (Exact) Kind() Kind  { return KindExact }
func (Prefix) Kind() Kind { return KindPrefix }
func (Suffix) Kind() Kind { return KindSuffix }
func (All) Kind() Kind    { return KindAll }
func (Any) Kind() Kind    { return KindAny }
func (Not) Kind() Kind    { return KindNot }

func (Exact) sealed()  {}
func (Prefix) sealed() {}
func (Suffix) sealed() {}
func (All) sealed()    {}
func (Any) sealed()    {}
func (Not) sealed()    {}

// Marshal encodes a filter as a single-key JSON object, e.g.
// {"exact":{"type":"x"}} or {"not":{"prefix":{"source":"plugin:"}}}.
func Marshal(f Filter) ([]byte, error) {
	switch n := f.(type) {
	case Exact:
		return json.Marshal(map[string]any{string(KindExact): map[string]any(n)})
	case Prefix:
		return json.Marshal(map[string]any{string(KindPrefix): map[string]string(n)})
	case Suffix:
		return json.Marshal(map[string]any{string(KindSuffix): map[string]string(n)})
	case All:
		children, err := marshalList(n)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{string(KindAll): children})
	case Any:
		children, err := marshalList(n)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{string(KindAny): children})
	case Not:
		if n.Filter == nil {
			return nil, fmt.Errorf("not: missing child filter")
		}
		child, err := Marshal(n.Filter)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]json.RawMessage{string(KindNot): child})
	case nil:
		return nil, fmt.Errorf("nil filter")
	default:
		return nil, fmt.Errorf("unsupported filter node %T", f)
	}
}

// MarshalList encodes a rule's top-level filter list as a JSON array.
func MarshalList(filters []Filter) ([]byte, error) {
	children, err := marshalList(filters)
	if err != nil {
		return nil, err
	}
	return json.Marshal(children)
}

func marshalList(filters []Filter) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(filters))
	for i, f := range filters {
		raw, err := Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// Unmarshal decodes a single filter node. Unknown kinds, objects with zero or
// several keys and mistyped bodies are rejected here so malformed shapes never
// reach the evaluator.
func Unmarshal(data []byte) (Filter, error) {
	var node map[string]json.RawMessage
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("filter must be a JSON object: %w", err)
	}
	if len(node) != 1 {
		return nil, fmt.Errorf("filter must have exactly one key, got %d", len(node))
	}

	for key, body := range node {
		switch Kind(key) {
		case KindExact:
			var m map[string]any
			if err := decodeNumbers(body, &m); err != nil {
				return nil, fmt.Errorf("exact: %w", err)
			}
			return Exact(m), nil
		case KindPrefix:
			var m map[string]string
			if err := json.Unmarshal(body, &m); err != nil {
				return nil, fmt.Errorf("prefix: %w", err)
			}
			return Prefix(m), nil
		case KindSuffix:
			var m map[string]string
			if err := json.Unmarshal(body, &m); err != nil {
				return nil, fmt.Errorf("suffix: %w", err)
			}
			return Suffix(m), nil
		case KindAll:
			children, err := UnmarshalList(body)
			if err != nil {
				return nil, fmt.Errorf("all%w", err)
			}
			return All(children), nil
		case KindAny:
			children, err := UnmarshalList(body)
			if err != nil {
				return nil, fmt.Errorf("any%w", err)
			}
			return Any(children), nil
		case KindNot:
			child, err := Unmarshal(body)
			if err != nil {
				return nil, fmt.Errorf("not: %w", err)
			}
			return Not{Filter: child}, nil
		default:
			return nil, fmt.Errorf("unknown filter kind %q", key)
		}
	}
	return nil, fmt.Errorf("empty filter")
}

// UnmarshalList decodes a JSON array of filters. A JSON null decodes to an
// empty list.
func UnmarshalList(data []byte) ([]Filter, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(": filter list must be a JSON array: %w", err)
	}
	out := make([]Filter, 0, len(raw))
	for i, r := range raw {
		f, err := Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// decodeNumbers keeps numeric literals as json.Number so exact comparisons
// do not lose precision through float64.
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// List is a JSON-friendly wrapper for a rule's top-level filter list.
type List []Filter

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	return MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(data []byte) error {
	filters, err := UnmarshalList(data)
	if err != nil {
		return fmt.Errorf("filters%w", err)
	}
	*l = filters
	return nil
}
