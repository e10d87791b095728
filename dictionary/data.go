package dictionary

import (
	"github.com/milko/data-dictionary-cache/pkg/config"
)

// Scalar type tags recognized by the validator. Any other tag reports
// UNSUPPORTED at validation time.
const (
	TypeBoolean   = "boolean"
	TypeInteger   = "integer"
	TypeNumber    = "number"
	TypeTimestamp = "timestamp"
	TypeString    = "string"
	TypeKey       = "key"
	TypeHandle    = "handle"
	TypeEnum      = "enum"
	TypeDate      = "date"
	TypeStruct    = "struct"
	TypeObject    = "object"
	TypeGeoJSON   = "geojson"
)

// Kind qualifier tokens. Tokens share the reserved "_any-" prefix; any other
// string in a kind list names an explicit enumeration type.
const (
	KindAnyTerm       = "_any-term"
	KindAnyEnum       = "_any-enum"
	KindAnyDescriptor = "_any-descriptor"
	KindAnyObject     = "_any-object"

	// KindTokenPrefix marks the reserved token namespace.
	KindTokenPrefix = "_any-"
)

// DataSection is one level of a descriptor's value schema: a tagged sum
// over the four container dimensions. Exactly one branch must be populated;
// the decoder records how many dimension tags the stored section carried so
// the interpreter can report authoring defects.
type DataSection struct {
	Scalar *ScalarSection     `json:"scalar,omitempty"`
	Array  *CollectionSection `json:"array,omitempty"`
	Set    *CollectionSection `json:"set,omitempty"`
	Dict   *DictSection       `json:"dict,omitempty"`

	tags int
}

// Dimension identifies the container branch of a data section.
type Dimension int

const (
	DimensionScalar Dimension = iota
	DimensionArray
	DimensionSet
	DimensionDict
)

// Dimension returns the single populated branch. ok is false when the
// stored section carried zero or multiple dimension tags.
func (d *DataSection) Dimension() (Dimension, bool) {
	if d == nil || d.tags != 1 {
		return 0, false
	}
	switch {
	case d.Scalar != nil:
		return DimensionScalar, true
	case d.Array != nil:
		return DimensionArray, true
	case d.Set != nil:
		return DimensionSet, true
	case d.Dict != nil:
		return DimensionDict, true
	}
	return 0, false
}

// ScalarSection is the leaf of a data section. Range and Kind stay raw:
// stored sections are authored by hand, and a malformed clause must surface
// as a validation status, not a load failure.
type ScalarSection struct {
	Type   string `json:"type,omitempty"`
	Range  any    `json:"range,omitempty"`
	Regexp string `json:"regexp,omitempty"`
	Kind   any    `json:"kind,omitempty"`
}

// CollectionSection describes an array or set dimension.
type CollectionSection struct {
	Elements *DataSection `json:"elements,omitempty"`
	Min      *int         `json:"min,omitempty"`
	Max      *int         `json:"max,omitempty"`
}

// DictSection describes a mapping dimension with schemas for keys and values.
type DictSection struct {
	Key   *DataSection `json:"key,omitempty"`
	Value *DataSection `json:"value,omitempty"`
}

// DecodeDataSection maps a stored data section onto the tagged sum using the
// configured dimension tags. A section that is not an object decodes to a
// section with no dimension, which the interpreter reports as an authoring
// defect.
func DecodeDataSection(cfg *config.Dictionary, raw any) *DataSection {
	section := &DataSection{}
	m, ok := raw.(map[string]any)
	if !ok {
		return section
	}

	if clause, ok := m[cfg.ScalarDimension]; ok {
		section.tags++
		section.Scalar = decodeScalar(cfg, clause)
	}
	if clause, ok := m[cfg.ArrayDimension]; ok {
		section.tags++
		section.Array = decodeCollection(cfg, clause)
	}
	if clause, ok := m[cfg.SetDimension]; ok {
		section.tags++
		section.Set = decodeCollection(cfg, clause)
	}
	if clause, ok := m[cfg.DictDimension]; ok {
		section.tags++
		section.Dict = decodeDict(cfg, clause)
	}

	return section
}

func decodeScalar(cfg *config.Dictionary, raw any) *ScalarSection {
	scalar := &ScalarSection{}
	m, ok := raw.(map[string]any)
	if !ok {
		return scalar
	}
	if t, ok := m[cfg.TypeTag].(string); ok {
		scalar.Type = t
	}
	if r, ok := m[cfg.RangeTag]; ok {
		scalar.Range = r
	}
	if re, ok := m[cfg.RegexpTag].(string); ok {
		scalar.Regexp = re
	}
	if k, ok := m[cfg.KindTag]; ok {
		scalar.Kind = k
	}
	return scalar
}

func decodeCollection(cfg *config.Dictionary, raw any) *CollectionSection {
	coll := &CollectionSection{}
	m, ok := raw.(map[string]any)
	if !ok {
		return coll
	}
	if elems, ok := m[cfg.ElementsTag]; ok && elems != nil {
		coll.Elements = DecodeDataSection(cfg, elems)
	}
	coll.Min = decodeCount(m[cfg.MinItemsTag])
	coll.Max = decodeCount(m[cfg.MaxItemsTag])
	return coll
}

func decodeDict(cfg *config.Dictionary, raw any) *DictSection {
	dict := &DictSection{}
	m, ok := raw.(map[string]any)
	if !ok {
		return dict
	}
	if key, ok := m[cfg.DictKeyTag]; ok && key != nil {
		dict.Key = DecodeDataSection(cfg, key)
	}
	if value, ok := m[cfg.DictValueTag]; ok && value != nil {
		dict.Value = DecodeDataSection(cfg, value)
	}
	return dict
}

// decodeCount coerces a stored cardinality bound. Store documents arrive
// through JSON decoding, so numbers are usually float64.
func decodeCount(raw any) *int {
	switch n := raw.(type) {
	case int:
		return &n
	case int64:
		v := int(n)
		return &v
	case float64:
		v := int(n)
		return &v
	}
	return nil
}
