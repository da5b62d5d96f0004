package formula

import (
	"fmt"
	"regexp"
	"strings"
)

// Data is flattened roll data keyed by dotted path, e.g. "abilities.str.mod"
type Data map[string]any

// Merge returns a copy of d with other's keys set on top
func (d Data) Merge(other Data) Data {
	out := make(Data, len(d)+len(other))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

var refRe = regexp.MustCompile(`@([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)`)

// Replace substitutes every @path with its value from data. Missing paths
// become "0" and are returned in order of first appearance.
func Replace(formula string, data Data) (string, []string) {
	var missing []string
	seen := map[string]bool{}

	out := refRe.ReplaceAllStringFunc(formula, func(token string) string {
		key := token[1:]
		if s, ok := lookup(data, key); ok {
			return s
		}
		if !seen[key] {
			seen[key] = true
			missing = append(missing, key)
		}
		return "0"
	})

	return out, missing
}

func lookup(data Data, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return "0", true
		}
		return t, true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case float64:
		return FormatNumber(t), true
	case float32:
		return FormatNumber(float64(t)), true
	case int:
		return fmt.Sprintf("%d", t), true
	case int64:
		return fmt.Sprintf("%d", t), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}
