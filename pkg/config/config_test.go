package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dictionary", cfg.Store.Database)
	assert.Equal(t, "terms", cfg.Store.TermsCollection)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "_data", cfg.Dictionary.SectionData)
	assert.Equal(t, "_predicate_enum-of", cfg.Dictionary.EnumPredicate)
	assert.Equal(t, "_lid", cfg.Dictionary.LocalIdentifierField)
}

func TestDefaultDictionaryValidates(t *testing.T) {
	d := DefaultDictionary()
	assert.NoError(t, d.Validate())
}

func TestDictionaryDuplicateDimensionTags(t *testing.T) {
	d := DefaultDictionary()
	d.SetDimension = d.ArrayDimension

	err := d.Validate()
	require.Error(t, err)

	var dup *DuplicateTagError
	assert.ErrorAs(t, err, &dup)
}
