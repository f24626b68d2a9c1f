package filter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error describes a malformed filter node. Path locates the node inside the
// rule, e.g. "filters[1].all[0].exact".
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateList checks every top-level filter of a rule. An empty list is
// valid and means the rule is unconditional.
func ValidateList(filters []Filter) error {
	for i, f := range filters {
		if err := validate(f, fmt.Sprintf("filters[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single filter tree.
func Validate(f Filter) error {
	return validate(f, "filter")
}

func validate(f Filter, path string) error {
	switch n := f.(type) {
	case Exact:
		p := path + "." + string(KindExact)
		if len(n) == 0 {
			return &Error{Path: p, Message: "attribute map must not be empty"}
		}
		for attr, want := range n {
			if err := checkAttributeName(p, attr); err != nil {
				return err
			}
			if !isScalar(want) {
				return &Error{Path: p + "." + attr, Message: fmt.Sprintf("expected a scalar value, got %T", want)}
			}
		}
	case Prefix:
		return validateStringMap(path+"."+string(KindPrefix), n)
	case Suffix:
		return validateStringMap(path+"."+string(KindSuffix), n)
	case All:
		for i, child := range n {
			if err := validate(child, fmt.Sprintf("%s.%s[%d]", path, KindAll, i)); err != nil {
				return err
			}
		}
	case Any:
		for i, child := range n {
			if err := validate(child, fmt.Sprintf("%s.%s[%d]", path, KindAny, i)); err != nil {
				return err
			}
		}
	case Not:
		p := path + "." + string(KindNot)
		if n.Filter == nil {
			return &Error{Path: p, Message: "child filter is required"}
		}
		return validate(n.Filter, p)
	case nil:
		return &Error{Path: path, Message: "filter is required"}
	default:
		return &Error{Path: path, Message: fmt.Sprintf("unsupported filter node %T", f)}
	}
	return nil
}

func validateStringMap(path string, m map[string]string) error {
	if len(m) == 0 {
		return &Error{Path: path, Message: "attribute map must not be empty"}
	}
	for attr := range m {
		if err := checkAttributeName(path, attr); err != nil {
			return err
		}
	}
	return nil
}

func checkAttributeName(path, attr string) error {
	if strings.TrimSpace(attr) == "" {
		return &Error{Path: path, Message: "attribute name must not be empty"}
	}
	return nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	default:
		return false
	}
}
