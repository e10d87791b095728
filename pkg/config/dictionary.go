package config

import (
	"github.com/spf13/viper"
)

// Dictionary names the in-store field tags the cache and validator reference.
// The dictionary store is schema-free; every structural key it uses is
// declared here and read once at startup, never hard-coded downstream.
type Dictionary struct {
	// Term document sections
	KeyField    string `yaml:"key_field" mapstructure:"key_field" validate:"required"`
	SectionData string `yaml:"section_data" mapstructure:"section_data" validate:"required"`
	SectionRule string `yaml:"section_rule" mapstructure:"section_rule" validate:"required"`
	SectionCode string `yaml:"section_code" mapstructure:"section_code" validate:"required"`

	// Data-section dimension tags
	ScalarDimension string `yaml:"scalar_dimension" mapstructure:"scalar_dimension" validate:"required"`
	ArrayDimension  string `yaml:"array_dimension" mapstructure:"array_dimension" validate:"required"`
	SetDimension    string `yaml:"set_dimension" mapstructure:"set_dimension" validate:"required"`
	DictDimension   string `yaml:"dict_dimension" mapstructure:"dict_dimension" validate:"required"`

	// Scalar qualifier tags
	TypeTag   string `yaml:"type_tag" mapstructure:"type_tag" validate:"required"`
	RangeTag  string `yaml:"range_tag" mapstructure:"range_tag" validate:"required"`
	RegexpTag string `yaml:"regexp_tag" mapstructure:"regexp_tag" validate:"required"`
	KindTag   string `yaml:"kind_tag" mapstructure:"kind_tag" validate:"required"`

	// Range bound tags
	MinInclusiveTag string `yaml:"min_inclusive_tag" mapstructure:"min_inclusive_tag" validate:"required"`
	MinExclusiveTag string `yaml:"min_exclusive_tag" mapstructure:"min_exclusive_tag" validate:"required"`
	MaxInclusiveTag string `yaml:"max_inclusive_tag" mapstructure:"max_inclusive_tag" validate:"required"`
	MaxExclusiveTag string `yaml:"max_exclusive_tag" mapstructure:"max_exclusive_tag" validate:"required"`

	// Collection dimension tags
	ElementsTag  string `yaml:"elements_tag" mapstructure:"elements_tag" validate:"required"`
	MinItemsTag  string `yaml:"min_items_tag" mapstructure:"min_items_tag" validate:"required"`
	MaxItemsTag  string `yaml:"max_items_tag" mapstructure:"max_items_tag" validate:"required"`
	DictKeyTag   string `yaml:"dict_key_tag" mapstructure:"dict_key_tag" validate:"required"`
	DictValueTag string `yaml:"dict_value_tag" mapstructure:"dict_value_tag" validate:"required"`

	// Enumeration graph
	EnumPredicate      string `yaml:"enum_predicate" mapstructure:"enum_predicate" validate:"required"`
	EdgePredicateField string `yaml:"edge_predicate_field" mapstructure:"edge_predicate_field" validate:"required"`
	EdgePathField      string `yaml:"edge_path_field" mapstructure:"edge_path_field" validate:"required"`

	// Namespacing
	NamespaceField      string `yaml:"namespace_field" mapstructure:"namespace_field" validate:"required"`
	DefaultNamespaceKey string `yaml:"default_namespace_key" mapstructure:"default_namespace_key" validate:"required"`

	// Code-section field probed during enum resolution when no resolver is named
	LocalIdentifierField string `yaml:"local_identifier_field" mapstructure:"local_identifier_field" validate:"required"`
}

// Validate checks the tag table for duplicates that would make the
// data-section decoder ambiguous.
func (d *Dictionary) Validate() error {
	seen := map[string]string{}
	dims := map[string]string{
		"scalar_dimension": d.ScalarDimension,
		"array_dimension":  d.ArrayDimension,
		"set_dimension":    d.SetDimension,
		"dict_dimension":   d.DictDimension,
	}
	for name, tag := range dims {
		if prev, ok := seen[tag]; ok {
			return &DuplicateTagError{Tag: tag, First: prev, Second: name}
		}
		seen[tag] = name
	}
	return nil
}

// DuplicateTagError reports two dimension tags sharing one store key
type DuplicateTagError struct {
	Tag    string
	First  string
	Second string
}

func (e *DuplicateTagError) Error() string {
	return "dictionary: tag " + e.Tag + " assigned to both " + e.First + " and " + e.Second
}

// DefaultDictionary returns the tag table used by the reference store layout.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		KeyField:    "_key",
		SectionData: "_data",
		SectionRule: "_rule",
		SectionCode: "_code",

		ScalarDimension: "_scalar",
		ArrayDimension:  "_array",
		SetDimension:    "_set",
		DictDimension:   "_dict",

		TypeTag:   "_type",
		RangeTag:  "_valid-range",
		RegexpTag: "_regexp",
		KindTag:   "_kind",

		MinInclusiveTag: "_min-range-inclusive",
		MinExclusiveTag: "_min-range-exclusive",
		MaxInclusiveTag: "_max-range-inclusive",
		MaxExclusiveTag: "_max-range-exclusive",

		ElementsTag:  "_elements",
		MinItemsTag:  "_min-items",
		MaxItemsTag:  "_max-items",
		DictKeyTag:   "_dict-key",
		DictValueTag: "_dict-value",

		EnumPredicate:      "_predicate_enum-of",
		EdgePredicateField: "_predicate",
		EdgePathField:      "_path",

		NamespaceField:      "_nid",
		DefaultNamespaceKey: ":",

		LocalIdentifierField: "_lid",
	}
}

func setDictionaryDefaults(v *viper.Viper) {
	d := DefaultDictionary()
	v.SetDefault("dictionary.key_field", d.KeyField)
	v.SetDefault("dictionary.section_data", d.SectionData)
	v.SetDefault("dictionary.section_rule", d.SectionRule)
	v.SetDefault("dictionary.section_code", d.SectionCode)
	v.SetDefault("dictionary.scalar_dimension", d.ScalarDimension)
	v.SetDefault("dictionary.array_dimension", d.ArrayDimension)
	v.SetDefault("dictionary.set_dimension", d.SetDimension)
	v.SetDefault("dictionary.dict_dimension", d.DictDimension)
	v.SetDefault("dictionary.type_tag", d.TypeTag)
	v.SetDefault("dictionary.range_tag", d.RangeTag)
	v.SetDefault("dictionary.regexp_tag", d.RegexpTag)
	v.SetDefault("dictionary.kind_tag", d.KindTag)
	v.SetDefault("dictionary.min_inclusive_tag", d.MinInclusiveTag)
	v.SetDefault("dictionary.min_exclusive_tag", d.MinExclusiveTag)
	v.SetDefault("dictionary.max_inclusive_tag", d.MaxInclusiveTag)
	v.SetDefault("dictionary.max_exclusive_tag", d.MaxExclusiveTag)
	v.SetDefault("dictionary.elements_tag", d.ElementsTag)
	v.SetDefault("dictionary.min_items_tag", d.MinItemsTag)
	v.SetDefault("dictionary.max_items_tag", d.MaxItemsTag)
	v.SetDefault("dictionary.dict_key_tag", d.DictKeyTag)
	v.SetDefault("dictionary.dict_value_tag", d.DictValueTag)
	v.SetDefault("dictionary.enum_predicate", d.EnumPredicate)
	v.SetDefault("dictionary.edge_predicate_field", d.EdgePredicateField)
	v.SetDefault("dictionary.edge_path_field", d.EdgePathField)
	v.SetDefault("dictionary.namespace_field", d.NamespaceField)
	v.SetDefault("dictionary.default_namespace_key", d.DefaultNamespaceKey)
	v.SetDefault("dictionary.local_identifier_field", d.LocalIdentifierField)
}
