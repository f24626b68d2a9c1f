package action

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
)

// Placeholder grammar for args templates.
//
// A JSON string whose entire value is ${path} is replaced with the value the
// path names; every other string is copied literally. Paths:
//
//	${id} ${source} ${type} ${subject} ${time}   envelope fields
//	${attributes.NAME}                           an event attribute
//	${attributes.NAME.key.0}                     walk into object / array values
//
// When an attribute name itself contains dots the longest name present on the
// event wins. A path that resolves to nothing renders as JSON null.
var placeholderPattern = regexp.MustCompile(`^\$\{([A-Za-z0-9_.:\-]+)\}$`)

const attributesRoot = "attributes"

var envelopeRoots = map[string]bool{
	"id":      true,
	"source":  true,
	"type":    true,
	"subject": true,
	"time":    true,
}

// ValidateTemplate checks that a template is absent or a JSON object whose
// placeholders are well formed.
func ValidateTemplate(raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	doc, err := decodeTemplate(raw)
	if err != nil {
		return &FieldError{Field: "args_template", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if doc == nil {
		return nil
	}
	if _, ok := doc.(map[string]any); !ok {
		return &FieldError{Field: "args_template", Message: "must be a JSON object"}
	}
	return walkStrings(doc, "args_template", func(path, s string) error {
		if !strings.HasPrefix(s, "${") {
			return nil
		}
		expr, ok := parsePlaceholder(s)
		if !ok {
			return &FieldError{Field: path, Message: fmt.Sprintf("malformed placeholder %q", s)}
		}
		if err := checkPlaceholderPath(expr); err != nil {
			return &FieldError{Field: path, Message: err.Error()}
		}
		return nil
	})
}

// Render substitutes event values into a template. A nil or empty template
// renders as nil. Missing values become JSON null; rendering only fails when
// the template itself cannot be decoded or the result cannot be encoded.
func Render(raw json.RawMessage, evt *v1.Event) (json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	doc, err := decodeTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("decode args template: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	out, err := json.Marshal(substitute(doc, evt))
	if err != nil {
		return nil, fmt.Errorf("encode rendered args: %w", err)
	}
	return out, nil
}

func decodeTemplate(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after template")
	}
	return doc, nil
}

func substitute(node any, evt *v1.Event) any {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = substitute(v, evt)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = substitute(v, evt)
		}
		return out
	case string:
		expr, ok := parsePlaceholder(n)
		if !ok {
			return n
		}
		v, found := resolve(expr, evt)
		if !found {
			return nil
		}
		return v
	default:
		return n
	}
}

func parsePlaceholder(s string) (string, bool) {
	m := placeholderPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func checkPlaceholderPath(expr string) error {
	if envelopeRoots[expr] {
		return nil
	}
	rest, ok := strings.CutPrefix(expr, attributesRoot+".")
	if !ok {
		return fmt.Errorf("unknown placeholder %q", "${"+expr+"}")
	}
	for _, seg := range strings.Split(rest, ".") {
		if seg == "" {
			return fmt.Errorf("empty path segment in %q", "${"+expr+"}")
		}
	}
	return nil
}

func resolve(expr string, evt *v1.Event) (any, bool) {
	switch expr {
	case "id":
		return evt.ID, true
	case "source":
		return evt.Source, true
	case "type":
		return evt.Type, true
	case "subject":
		return evt.Subject, evt.Subject != ""
	case "time":
		return evt.Time.UTC().Format(time.RFC3339Nano), !evt.Time.IsZero()
	}

	rest, ok := strings.CutPrefix(expr, attributesRoot+".")
	if !ok {
		return nil, false
	}
	segs := strings.Split(rest, ".")
	for i := len(segs); i >= 1; i-- {
		v, ok := evt.Attribute(strings.Join(segs[:i], "."))
		if !ok {
			continue
		}
		return walk(v, segs[i:])
	}
	return nil, false
}

func walk(v any, path []string) (any, bool) {
	for _, seg := range path {
		switch n := v.(type) {
		case map[string]any:
			next, ok := n[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, false
			}
			v = n[idx]
		default:
			return nil, false
		}
	}
	return v, true
}

func walkStrings(node any, path string, fn func(path, s string) error) error {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if err := walkStrings(v, path+"."+k, fn); err != nil {
				return err
			}
		}
	case []any:
		for i, v := range n {
			if err := walkStrings(v, fmt.Sprintf("%s[%d]", path, i), fn); err != nil {
				return err
			}
		}
	case string:
		return fn(path, n)
	}
	return nil
}
