package nocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"non-zero number", 3.5, true},
		{"zero", float64(0), false},
		{"non-empty string", "no", true},
		{"empty string", "", false},
		{"non-empty list", []any{1}, true},
		{"empty list", []any{}, false},
		{"non-empty map", map[string]any{"a": 1}, true},
		{"empty map", map[string]any{}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBoolean(tt.in))
		})
	}
}

func TestToNumber(t *testing.T) {
	assert.Equal(t, 42.0, ToNumber(42))
	assert.Equal(t, 4.2, ToNumber("4.2"))
	assert.Equal(t, 4.2, ToNumber("4,2")) // decimal comma tolerated
	assert.Equal(t, 0.0, ToNumber("not a number"))
	assert.Equal(t, 3.0, ToNumber([]any{"a", "b", "c"}))
	assert.Equal(t, 0.0, ToNumber([]any{}))
	assert.Equal(t, 2.0, ToNumber(map[string]any{"a": 1, "b": 2}))
	assert.Equal(t, 0.0, ToNumber(nil))
	assert.Equal(t, 1.0, ToNumber(true))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "3", ToString(3.0))
	assert.Equal(t, "3.5", ToString(3.5))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "false", ToString(false))
	assert.Equal(t, `["a","b"]`, ToString([]any{"a", "b"}))
	assert.Equal(t, `{"k":1}`, ToString(map[string]any{"k": 1}))
	assert.Equal(t, "", ToString(nil))
}

func TestToTypeOfReference(t *testing.T) {
	assert.Equal(t, 18.0, ToTypeOfReference(21.0, "18"))
	assert.Equal(t, 0.0, ToTypeOfReference(21.0, "eighteen")) // degrade, never throw
	assert.Equal(t, "18", ToTypeOfReference("x", 18.0))
	assert.Equal(t, true, ToTypeOfReference(false, "yes"))
	assert.Equal(t, "raw", ToTypeOfReference(nil, "raw"))
}

// Casting to boolean, rendering that and casting back must be stable.
func TestBooleanCastIdempotence(t *testing.T) {
	inputs := []any{true, false, "true", "", float64(0), float64(1), []any{}, []any{1}}
	for _, in := range inputs {
		assert.Equal(t, ToBoolean(in), ToBoolean(ToString(ToBoolean(in))), "input %v", in)
	}
}
