package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 7, 7, true},
		{"int64", int64(-3), -3, true},
		{"uint", uint(2), 2, true},
		{"bool", true, 0, false},
		{"string", "7", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAsInteger(t *testing.T) {
	_, ok := asInteger(1.5)
	assert.False(t, ok)

	got, ok := asInteger(3.0)
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)

	got, ok = asInteger(-11)
	assert.True(t, ok)
	assert.Equal(t, -11.0, got)
}

func TestContainerAccess(t *testing.T) {
	mapping := map[string]any{"a": 1}
	assert.Equal(t, 1, valueAt(mapping, "a"))
	setValue(mapping, "a", 2)
	assert.Equal(t, 2, mapping["a"])

	sequence := []any{"x", "y"}
	assert.Equal(t, "y", valueAt(sequence, 1))
	setValue(sequence, 1, "z")
	assert.Equal(t, "z", sequence[1])

	// Out-of-range and mismatched keys are inert.
	assert.Nil(t, valueAt(sequence, 9))
	assert.Nil(t, valueAt(mapping, 0))
	setValue(sequence, 9, "w")
}

func TestStructuralKey(t *testing.T) {
	a := structuralKey(map[string]any{"x": 1, "y": 2})
	b := structuralKey(map[string]any{"y": 2, "x": 1})
	c := structuralKey(map[string]any{"x": 1, "y": 3})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]any{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
