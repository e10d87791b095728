package validation

import (
	"context"

	"github.com/milko/data-dictionary-cache/dictionary"
)

// walk interprets one level of a data section against the addressed value.
// Traversal is depth-first and deterministic; the first error terminates the
// slot. Returns true while the slot is still idle.
func (v *Validator) walk(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.DataSection, idx int) bool {
	if err := ctx.Err(); err != nil {
		return v.cancel(err, descriptor.Key, idx)
	}

	dimension, ok := section.Dimension()
	if !ok {
		value := valueAt(container, key)
		return v.report.SetStatus(ExpectingDimension, descriptor.Key, value, idx, WithSection(section))
	}

	switch dimension {
	case dictionary.DimensionScalar:
		return v.walkScalar(ctx, container, key, descriptor, section.Scalar, idx)
	case dictionary.DimensionArray:
		return v.walkCollection(ctx, container, key, descriptor, section.Array, false, idx)
	case dictionary.DimensionSet:
		return v.walkCollection(ctx, container, key, descriptor, section.Set, true, idx)
	default:
		return v.walkDict(ctx, container, key, descriptor, section.Dict, idx)
	}
}

func (v *Validator) walkScalar(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	if isSequence(value) {
		return v.report.SetStatus(NotAScalar, descriptor.Key, value, idx)
	}

	if section.Type == "" {
		if v.opts.expectType {
			return v.report.SetStatus(MissingScalarType, descriptor.Key, value, idx, WithSection(section))
		}
		return true
	}

	return v.checkScalarType(ctx, container, key, descriptor, section, idx)
}

func (v *Validator) walkCollection(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.CollectionSection, unique bool, idx int) bool {
	value := valueAt(container, key)
	items, ok := value.([]any)
	if !ok {
		return v.report.SetStatus(NotAnArray, descriptor.Key, value, idx)
	}

	if section.Min != nil && len(items) < *section.Min {
		return v.report.SetStatus(ValueLowRange, descriptor.Key, value, idx, WithSection(section))
	}
	if section.Max != nil && len(items) > *section.Max {
		return v.report.SetStatus(ValueHighRange, descriptor.Key, value, idx, WithSection(section))
	}

	if unique {
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			k := structuralKey(item)
			if _, dup := seen[k]; dup {
				return v.report.SetStatus(DuplicateSetElement, descriptor.Key, value, idx)
			}
			seen[k] = struct{}{}
		}
	}

	if section.Elements == nil {
		return true
	}
	for i := range items {
		if !v.walk(ctx, items, i, descriptor, section.Elements, idx) {
			// Element errors carry their container so the report shows
			// where in the parent chain the element sits.
			if slot := v.report.slotAt(idx); slot != nil && slot.ParentValue == nil {
				slot.ParentValue = items
			}
			return false
		}
	}
	return true
}

func (v *Validator) walkDict(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.DictSection, idx int) bool {
	value := valueAt(container, key)
	mapping, ok := value.(map[string]any)
	if !ok {
		return v.report.SetStatus(NotAnObject, descriptor.Key, value, idx)
	}

	for _, mk := range sortedKeys(mapping) {
		if err := ctx.Err(); err != nil {
			return v.cancel(err, descriptor.Key, idx)
		}

		if section.Key != nil {
			// Keys are validated through a scratch wrapper; a mapping key
			// cannot be rewritten in place.
			wrapper := map[string]any{descriptor.Key: mk}
			if !v.walk(ctx, wrapper, descriptor.Key, descriptor, section.Key, idx) {
				if slot := v.report.slotAt(idx); slot != nil && slot.ParentValue == nil {
					slot.ParentValue = mapping
				}
				return false
			}
		}

		if section.Value != nil {
			if !v.walk(ctx, mapping, mk, descriptor, section.Value, idx) {
				if slot := v.report.slotAt(idx); slot != nil && slot.ParentValue == nil {
					slot.ParentValue = mapping
				}
				return false
			}
		}
	}
	return true
}
