package validation

import (
	"encoding/json"
	"math"
	"sort"
)

// Values under validation arrive as decoded JSON: objects are
// map[string]any, sequences are []any. Containers are addressed by a string
// key or an integer index so resolution sites can rewrite values in place.

// valueAt reads the addressed value from its container.
func valueAt(container, key any) any {
	switch c := container.(type) {
	case map[string]any:
		if k, ok := key.(string); ok {
			return c[k]
		}
	case []any:
		if i, ok := key.(int); ok && i >= 0 && i < len(c) {
			return c[i]
		}
	}
	return nil
}

// setValue writes the addressed value back into its container.
func setValue(container, key, value any) {
	switch c := container.(type) {
	case map[string]any:
		if k, ok := key.(string); ok {
			c[k] = value
		}
	case []any:
		if i, ok := key.(int); ok && i >= 0 && i < len(c) {
			c[i] = value
		}
	}
}

// isSequence reports whether the value is a decoded JSON array.
func isSequence(value any) bool {
	_, ok := value.([]any)
	return ok
}

// asNumber coerces any numeric value to float64. Booleans and strings are
// not numbers.
func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// asInteger coerces a numeric value carrying an integral quantity. Decoded
// JSON numbers are float64, so a fractional part disqualifies.
func asInteger(value any) (float64, bool) {
	num, ok := asNumber(value)
	if !ok {
		return 0, false
	}
	if math.Trunc(num) != num || math.IsInf(num, 0) || math.IsNaN(num) {
		return 0, false
	}
	return num, true
}

// structuralKey serializes a value for structural comparison. Object keys
// are emitted in sorted order by the encoder, so equal structures yield
// equal keys.
func structuralKey(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

// sortedKeys returns the object's keys in ascending order so traversal is
// deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
