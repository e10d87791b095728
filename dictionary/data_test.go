package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milko/data-dictionary-cache/pkg/config"
)

func TestDecodeDataSection(t *testing.T) {
	cfg := config.DefaultDictionary()

	tests := []struct {
		name  string
		raw   any
		check func(t *testing.T, section *DataSection)
	}{
		{
			name: "scalar with qualifiers",
			raw: map[string]any{
				"_scalar": map[string]any{
					"_type":        "integer",
					"_valid-range": map[string]any{"_min-range-inclusive": float64(0)},
					"_regexp":      "^[0-9]+$",
					"_kind":        []any{"TYPE_COLOR"},
				},
			},
			check: func(t *testing.T, section *DataSection) {
				dim, ok := section.Dimension()
				require.True(t, ok)
				assert.Equal(t, DimensionScalar, dim)
				assert.Equal(t, "integer", section.Scalar.Type)
				assert.Equal(t, "^[0-9]+$", section.Scalar.Regexp)
				assert.NotNil(t, section.Scalar.Range)
				assert.NotNil(t, section.Scalar.Kind)
			},
		},
		{
			name: "array with bounds and elements",
			raw: map[string]any{
				"_array": map[string]any{
					"_elements":  map[string]any{"_scalar": map[string]any{"_type": "string"}},
					"_min-items": float64(1),
					"_max-items": float64(3),
				},
			},
			check: func(t *testing.T, section *DataSection) {
				dim, ok := section.Dimension()
				require.True(t, ok)
				assert.Equal(t, DimensionArray, dim)
				require.NotNil(t, section.Array.Elements)
				assert.Equal(t, 1, *section.Array.Min)
				assert.Equal(t, 3, *section.Array.Max)
				assert.Equal(t, "string", section.Array.Elements.Scalar.Type)
			},
		},
		{
			name: "dict with key and value schemas",
			raw: map[string]any{
				"_dict": map[string]any{
					"_dict-key":   map[string]any{"_scalar": map[string]any{"_type": "string"}},
					"_dict-value": map[string]any{"_scalar": map[string]any{"_type": "number"}},
				},
			},
			check: func(t *testing.T, section *DataSection) {
				dim, ok := section.Dimension()
				require.True(t, ok)
				assert.Equal(t, DimensionDict, dim)
				require.NotNil(t, section.Dict.Key)
				require.NotNil(t, section.Dict.Value)
			},
		},
		{
			name: "no dimension tags",
			raw:  map[string]any{"unrelated": true},
			check: func(t *testing.T, section *DataSection) {
				_, ok := section.Dimension()
				assert.False(t, ok)
			},
		},
		{
			name: "multiple dimension tags",
			raw: map[string]any{
				"_scalar": map[string]any{"_type": "string"},
				"_array":  map[string]any{},
			},
			check: func(t *testing.T, section *DataSection) {
				_, ok := section.Dimension()
				assert.False(t, ok)
			},
		},
		{
			name: "section is not an object",
			raw:  "bogus",
			check: func(t *testing.T, section *DataSection) {
				_, ok := section.Dimension()
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DecodeDataSection(cfg, tt.raw))
		})
	}
}

func TestProject(t *testing.T) {
	cfg := config.DefaultDictionary()

	doc := map[string]any{
		"_key":  "color_red",
		"_data": map[string]any{"_scalar": map[string]any{"_type": "string"}},
		"_rule": map[string]any{"required": []any{"name"}},
		"_code": map[string]any{"_lid": "red"},
		"extra": 42,
	}

	term := Project(cfg, doc, []string{"TYPE_COLOR", "TYPE_COLOR", "TYPE_PAINT"})

	assert.Equal(t, "color_red", term.Key)
	assert.True(t, term.IsDescriptor())
	assert.True(t, term.IsStructure())
	assert.True(t, term.IsEnumeration())

	// Duplicate edge paths collapse, order preserved.
	assert.Equal(t, []string{"TYPE_COLOR", "TYPE_PAINT"}, term.Path)
	assert.True(t, term.InPath("TYPE_PAINT"))
	assert.False(t, term.InPath("TYPE_SOUND"))
}

func TestProjectRoles(t *testing.T) {
	cfg := config.DefaultDictionary()

	term := Project(cfg, map[string]any{"_key": "bare"}, nil)
	assert.False(t, term.IsDescriptor())
	assert.False(t, term.IsStructure())
	assert.False(t, term.IsEnumeration())

	enum := Project(cfg, map[string]any{"_key": "el"}, []string{"TYPE_X"})
	assert.True(t, enum.IsEnumeration())
	assert.False(t, enum.IsDescriptor())
}
