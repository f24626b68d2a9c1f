package filter

import (
	"encoding/json"
	"strings"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/shopspring/decimal"
)

// Matches reports whether evt satisfies f. It never errors: malformed trees
// are rejected by Validate when a rule is written, and a nil node (including
// the child of a Not) matches nothing.
func Matches(f Filter, evt *v1.Event) bool {
	switch n := f.(type) {
	case Exact:
		for attr, want := range n {
			got, ok := evt.Attribute(attr)
			if !ok || !valuesEqual(got, want) {
				return false
			}
		}
		return true
	case Prefix:
		for attr, want := range n {
			got, ok := stringAttribute(evt, attr)
			if !ok || !strings.HasPrefix(got, want) {
				return false
			}
		}
		return true
	case Suffix:
		for attr, want := range n {
			got, ok := stringAttribute(evt, attr)
			if !ok || !strings.HasSuffix(got, want) {
				return false
			}
		}
		return true
	case All:
		for _, child := range n {
			if !Matches(child, evt) {
				return false
			}
		}
		return true
	case Any:
		for _, child := range n {
			if Matches(child, evt) {
				return true
			}
		}
		return false
	case Not:
		if n.Filter == nil {
			return false
		}
		return !Matches(n.Filter, evt)
	default:
		return false
	}
}

// MatchesAll evaluates a rule's top-level filter list as a conjunction.
// An empty list matches every event.
func MatchesAll(filters []Filter, evt *v1.Event) bool {
	for _, f := range filters {
		if !Matches(f, evt) {
			return false
		}
	}
	return true
}

func stringAttribute(evt *v1.Event, name string) (string, bool) {
	v, ok := evt.Attribute(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// valuesEqual compares an event attribute with an expected scalar. Strings
// compare byte-wise, numbers by value, booleans and null by identity.
func valuesEqual(got, want any) bool {
	switch w := want.(type) {
	case string:
		g, ok := got.(string)
		return ok && g == w
	case bool:
		g, ok := got.(bool)
		return ok && g == w
	case nil:
		return got == nil
	}

	wd, ok := toDecimal(want)
	if !ok {
		return false
	}
	gd, ok := toDecimal(got)
	if !ok {
		return false
	}
	return gd.Equal(wd)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromUint64(uint64(n)), true
	case uint32:
		return decimal.NewFromUint64(uint64(n)), true
	case uint64:
		return decimal.NewFromUint64(n), true
	default:
		return decimal.Decimal{}, false
	}
}
