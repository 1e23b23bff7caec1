// Package validate checks decoded JSON request bodies for field presence.
package validate

import "math"

// MissingField returns the first required key whose value is absent or null,
// in the order given. It returns "" when every key is present.
func MissingField(body map[string]any, required ...string) string {
	for _, key := range required {
		if v, ok := body[key]; !ok || v == nil {
			return key
		}
	}
	return ""
}

// HasTruthyField reports whether at least one of fields holds a truthy value.
// Absent, null, false, 0 and "" all count as falsy, so a body that only sets
// fields to empty values is treated the same as one that omits them.
func HasTruthyField(body map[string]any, fields ...string) bool {
	for _, key := range fields {
		if truthy(body[key]) {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
