package nocode

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToBoolean implements the platform's truthiness contract: true,
// non-zero numbers, non-empty strings and non-empty lists/maps are
// true; everything else (nil, 0, "", empty containers, unknown types)
// is false.
func ToBoolean(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		// The literal "false" is false even though it is non-empty;
		// round-tripping a boolean through its textual form must be
		// stable.
		return x != "" && !strings.EqualFold(strings.TrimSpace(x), "false")
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		if f, ok := numeric(v); ok {
			return f != 0
		}
		return false
	}
}

// ToNumber coerces v to a number. Numeric values pass through, numeric
// strings parse, unparsable strings degrade to zero, and lists/maps
// yield their element count. The count fallback mirrors the "has a
// value" semantics several operators rely on.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(x, ",", ".")), 64)
		if err != nil {
			return 0
		}
		return f
	case []any:
		return float64(len(x))
	case []string:
		return float64(len(x))
	case map[string]any:
		return float64(len(x))
	default:
		if f, ok := numeric(v); ok {
			return f
		}
		return 0
	}
}

// ToString renders the canonical textual form: numbers without trailing
// zeros unless fractional, booleans as "true"/"false", lists and maps
// as compact JSON, nil as the empty string.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case []any, []string, map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		if f, ok := numeric(v); ok {
			return formatNumber(f)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ToTypeOfReference coerces candidate to the concrete type reference
// currently has. It is used when comparing an element's raw value
// against a literal configured by the author: the literal arrives as
// text and must follow the element's value type. Unparsable candidates
// degrade to the zero value of the reference's type rather than
// failing a citizen's session.
func ToTypeOfReference(reference, candidate any) any {
	switch reference.(type) {
	case nil:
		return candidate
	case bool:
		return ToBoolean(candidate)
	case string:
		return ToString(candidate)
	case []any, []string, map[string]any:
		return candidate
	default:
		if _, ok := numeric(reference); ok {
			return ToNumber(candidate)
		}
		return candidate
	}
}

// numeric unifies the numeric types a JSON/YAML decode can produce.
func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
