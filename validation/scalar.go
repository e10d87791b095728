package validation

import (
	"context"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/milko/data-dictionary-cache/dictionary"
	"github.com/milko/data-dictionary-cache/pkg/logger"
)

// timestampLayouts are tried in order when a timestamp arrives as a string.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// checkScalarType dispatches on the scalar section's declared type. Callers
// guarantee the type tag is non-empty.
func (v *Validator) checkScalarType(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	switch section.Type {
	case dictionary.TypeBoolean:
		return v.checkBoolean(container, key, descriptor, idx)
	case dictionary.TypeInteger:
		return v.checkInteger(container, key, descriptor, section, idx)
	case dictionary.TypeNumber:
		return v.checkNumber(container, key, descriptor, section, idx)
	case dictionary.TypeTimestamp:
		return v.checkTimestamp(container, key, descriptor, section, idx)
	case dictionary.TypeString:
		return v.checkString(container, key, descriptor, section, idx)
	case dictionary.TypeKey:
		return v.checkKey(ctx, container, key, descriptor, section, idx)
	case dictionary.TypeHandle:
		return v.checkHandle(ctx, container, key, descriptor, idx)
	case dictionary.TypeEnum:
		return v.checkEnum(ctx, container, key, descriptor, section, idx)
	case dictionary.TypeDate, dictionary.TypeStruct, dictionary.TypeObject, dictionary.TypeGeoJSON:
		// Reserved for future extension.
		return true
	default:
		value := valueAt(container, key)
		return v.report.SetStatus(Unsupported, descriptor.Key, value, idx, WithSection(section))
	}
}

func (v *Validator) checkBoolean(container, key any, descriptor *dictionary.Term, idx int) bool {
	value := valueAt(container, key)
	if _, ok := value.(bool); !ok {
		return v.report.SetStatus(NotABoolean, descriptor.Key, value, idx)
	}
	return true
}

func (v *Validator) checkInteger(container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	if _, isBool := value.(bool); isBool {
		return v.report.SetStatus(NotAnInteger, descriptor.Key, value, idx)
	}
	num, ok := asInteger(value)
	if !ok {
		return v.report.SetStatus(NotAnInteger, descriptor.Key, value, idx)
	}
	return v.checkNumericRange(num, value, descriptor, section, idx)
}

func (v *Validator) checkNumber(container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	if _, isBool := value.(bool); isBool {
		return v.report.SetStatus(NotANumber, descriptor.Key, value, idx)
	}
	num, ok := asNumber(value)
	if !ok {
		return v.report.SetStatus(NotANumber, descriptor.Key, value, idx)
	}
	return v.checkNumericRange(num, value, descriptor, section, idx)
}

// checkTimestamp accepts milliseconds since the epoch, or a date string it
// can interpret. When resolution is enabled, a parsed string is rewritten in
// place to its numeric form and the substitution is logged before the range
// check runs; otherwise the string is range-checked and left unchanged.
func (v *Validator) checkTimestamp(container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)

	if num, ok := asNumber(value); ok {
		return v.checkNumericRange(num, value, descriptor, section, idx)
	}

	s, ok := value.(string)
	if !ok {
		return v.report.SetStatus(NotATimestamp, descriptor.Key, value, idx)
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if v.opts.resolve {
			ms := t.UnixMilli()
			setValue(container, key, ms)
			v.report.LogResolution(descriptor.Key, s, ms, idx)
			v.metrics.Resolution()
			v.log.Debug("timestamp resolved", logger.Fields{
				"descriptor": descriptor.Key,
				"original":   s,
				"resolved":   ms,
			})
			return v.checkNumericRange(float64(ms), ms, descriptor, section, idx)
		}
		return v.checkNumericRange(float64(t.UnixMilli()), value, descriptor, section, idx)
	}

	return v.report.SetStatus(NotATimestamp, descriptor.Key, value, idx)
}

func (v *Validator) checkString(container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	s, ok := value.(string)
	if !ok {
		return v.report.SetStatus(NotAString, descriptor.Key, value, idx)
	}

	if section.Regexp != "" {
		if !matchPattern(section.Regexp, s) {
			return v.report.SetStatus(NoMatchRegexp, descriptor.Key, value, idx, WithRegexp(section.Regexp))
		}
	}

	return v.checkStringRange(s, value, descriptor, section, idx)
}

// matchPattern matches with regexp2 so store-authored patterns may use
// constructs beyond RE2. An uncompilable pattern matches nothing.
func matchPattern(pattern, s string) bool {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return false
	}
	matched, err := re.MatchString(s)
	return err == nil && matched
}

// checkNumericRange applies the scalar section's range clause to a numeric
// value. Bounds are evaluated in the fixed order minInclusive, minExclusive,
// maxInclusive, maxExclusive.
func (v *Validator) checkNumericRange(num float64, value any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	clause := section.Range
	if clause == nil {
		return true
	}
	m, ok := clause.(map[string]any)
	if !ok {
		return v.report.SetStatus(RangeNotAnObject, descriptor.Key, value, idx, WithSection(clause))
	}

	if bound, ok := asNumber(m[v.cfg.MinInclusiveTag]); ok && num < bound {
		return v.report.SetStatus(ValueLowRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := asNumber(m[v.cfg.MinExclusiveTag]); ok && num <= bound {
		return v.report.SetStatus(ValueLowRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := asNumber(m[v.cfg.MaxInclusiveTag]); ok && num > bound {
		return v.report.SetStatus(ValueHighRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := asNumber(m[v.cfg.MaxExclusiveTag]); ok && num >= bound {
		return v.report.SetStatus(ValueHighRange, descriptor.Key, value, idx, WithSection(m))
	}
	return true
}

// checkStringRange applies the range clause's string bounds, byte-wise.
func (v *Validator) checkStringRange(s string, value any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	clause := section.Range
	if clause == nil {
		return true
	}
	m, ok := clause.(map[string]any)
	if !ok {
		return v.report.SetStatus(RangeNotAnObject, descriptor.Key, value, idx, WithSection(clause))
	}

	if bound, ok := m[v.cfg.MinInclusiveTag].(string); ok && s < bound {
		return v.report.SetStatus(ValueLowRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := m[v.cfg.MinExclusiveTag].(string); ok && s <= bound {
		return v.report.SetStatus(ValueLowRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := m[v.cfg.MaxInclusiveTag].(string); ok && s > bound {
		return v.report.SetStatus(ValueHighRange, descriptor.Key, value, idx, WithSection(m))
	}
	if bound, ok := m[v.cfg.MaxExclusiveTag].(string); ok && s >= bound {
		return v.report.SetStatus(ValueHighRange, descriptor.Key, value, idx, WithSection(m))
	}
	return true
}
