package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatus(t *testing.T) {
	r := newReport(NewCatalog(), "")

	ok := r.SetStatus(OK, "", nil, -1)
	assert.True(t, ok)
	assert.True(t, r.IsOK())

	ok = r.SetStatus(NotABoolean, "D1", "nope", -1)
	assert.False(t, ok)
	assert.False(t, r.IsOK())
	assert.Equal(t, NotABoolean, r.Slot.Status.Code)
	assert.Equal(t, "D1", r.Slot.Descriptor)
	assert.Equal(t, "nope", r.Slot.Value)

	// OK resets the slot.
	r.SetStatus(OK, "", nil, -1)
	assert.True(t, r.IsOK())
	assert.Nil(t, r.Slot.Value)
}

func TestSetStatusIndexed(t *testing.T) {
	r := newReport(NewCatalog(), "")
	r.initSlots(3)

	require.Len(t, r.Slots, 3)
	assert.True(t, r.IsOK())

	r.SetStatus(ValueHighRange, "D2", 11, 1)
	assert.False(t, r.IsOK())
	assert.True(t, r.Slots[0].IsOK())
	assert.False(t, r.Slots[1].IsOK())
	assert.True(t, r.Slots[2].IsOK())
}

func TestSetStatusExtras(t *testing.T) {
	r := newReport(NewCatalog(), "")
	section := map[string]any{"_min-range-inclusive": 0}

	r.SetStatus(ValueLowRange, "D2", -1, -1, WithSection(section), WithRegexp("^x$"), WithParent([]any{-1}))
	assert.Equal(t, section, r.Slot.Section)
	assert.Equal(t, "^x$", r.Slot.Regexp)
	assert.Equal(t, []any{-1}, r.Slot.ParentValue)
}

func TestLogResolution(t *testing.T) {
	r := newReport(NewCatalog(), "")
	r.SetStatus(OK, "", nil, -1)

	r.LogResolution("D3", "1970-01-01T00:00:00Z", int64(0), -1)
	require.Len(t, r.Slot.Changes, 1)

	// Idempotent for the same descriptor/value pair.
	r.LogResolution("D3", "1970-01-01T00:00:00Z", int64(0), -1)
	assert.Len(t, r.Slot.Changes, 1)

	// A different pair gets its own digest.
	r.LogResolution("D3", "1970-01-02T00:00:00Z", int64(86400000), -1)
	assert.Len(t, r.Slot.Changes, 2)

	for _, change := range r.Slot.Changes {
		assert.Equal(t, "D3", change.Field)
	}
}

func TestResolutionLostOnError(t *testing.T) {
	r := newReport(NewCatalog(), "")
	r.SetStatus(OK, "", nil, -1)
	r.LogResolution("D3", "1970-01-01T00:00:00Z", int64(0), -1)

	// An error replaces the slot; the value is no longer considered valid.
	r.SetStatus(ValueHighRange, "D3", int64(0), -1)
	assert.Empty(t, r.Slot.Changes)
}

func TestResolutionDigestStability(t *testing.T) {
	a := resolutionDigest("D3", "1970-01-01T00:00:00Z")
	b := resolutionDigest("D3", "1970-01-01T00:00:00Z")
	c := resolutionDigest("D4", "1970-01-01T00:00:00Z")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36) // canonical UUID form
}

func TestReportMarshal(t *testing.T) {
	r := newReport(NewCatalog(), "")
	r.SetStatus(NotAnInteger, "D2", "x", -1)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var slot map[string]any
	require.NoError(t, json.Unmarshal(data, &slot))
	status := slot["status"].(map[string]any)
	assert.Equal(t, float64(NotAnInteger), status["code"])
	assert.NotEmpty(t, status["message"])

	indexed := newReport(NewCatalog(), "")
	indexed.initSlots(2)
	data, err = json.Marshal(indexed)
	require.NoError(t, err)

	var slots []map[string]any
	require.NoError(t, json.Unmarshal(data, &slots))
	assert.Len(t, slots, 2)
}

func TestCatalogLanguages(t *testing.T) {
	catalog := NewCatalog()

	english := catalog.Message(NotABoolean, "en")
	spanish := catalog.Message(NotABoolean, "es")
	assert.NotEqual(t, english, spanish)

	// Regional variants match their base language.
	assert.Equal(t, spanish, catalog.Message(NotABoolean, "es-MX"))

	// Unknown languages fall back to the default.
	assert.Equal(t, english, catalog.Message(NotABoolean, "de"))
	assert.Equal(t, english, catalog.Message(NotABoolean, ""))

	// Garbage language tags fall back too.
	assert.Equal(t, english, catalog.Message(NotABoolean, "!!"))
}

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "OK", OK.String())
	assert.Equal(t, "VALUE_HIGH_RANGE", ValueHighRange.String())
	assert.Equal(t, "EXPECTING_DATA_DIMENSION", ExpectingDimension.String())
	assert.Equal(t, "STORE_ERROR", StoreError.String())
	assert.Equal(t, "UNKNOWN_STATUS", Code(999).String())
}
