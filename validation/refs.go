package validation

import (
	"context"
	"strings"

	"github.com/milko/data-dictionary-cache/dictionary"
	"github.com/milko/data-dictionary-cache/pkg/logger"
	"github.com/milko/data-dictionary-cache/store"
)

// checkKey validates a term reference: grammar, resolution, and the
// descriptor's kind qualifiers.
func (v *Validator) checkKey(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	s, ok := value.(string)
	if !ok {
		return v.report.SetStatus(NotAString, descriptor.Key, value, idx)
	}

	if s == "" {
		// The namespace descriptor may reference the default namespace by
		// an empty key when explicitly allowed.
		if descriptor.Key == v.cfg.NamespaceField && v.opts.defNamespace {
			return true
		}
		return v.report.SetStatus(EmptyKey, descriptor.Key, value, idx)
	}
	if s == v.cfg.DefaultNamespaceKey {
		return v.report.SetStatus(NoRefDefaultNamespace, descriptor.Key, value, idx)
	}
	if !store.IsValidKeyValue(s) {
		return v.report.SetStatus(BadKeyValue, descriptor.Key, value, idx)
	}

	term, err := v.cache.GetTerm(ctx, s, v.lookup())
	if err != nil {
		return v.storeFailure(err, descriptor.Key, value, idx)
	}
	if term == nil {
		return v.report.SetStatus(ValueNotTerm, descriptor.Key, value, idx)
	}

	if section.Kind == nil {
		return true
	}
	return v.checkKinds(term, descriptor, section, value, idx)
}

// checkKinds verifies that the resolved term satisfies at least one kind
// qualifier. The last failing kind decides the reported error.
func (v *Validator) checkKinds(term *dictionary.Term, descriptor *dictionary.Term, section *dictionary.ScalarSection, value any, idx int) bool {
	list, ok := kindList(section.Kind)
	if !ok {
		return v.report.SetStatus(KindNotAnArray, descriptor.Key, value, idx, WithSection(section.Kind))
	}

	failure := KindNotAnArray // empty list satisfies nothing
	for _, element := range list {
		token, ok := element.(string)
		if !ok {
			return v.report.SetStatus(InvalidKindOption, descriptor.Key, value, idx, WithSection(section.Kind))
		}

		switch token {
		case dictionary.KindAnyTerm:
			return true
		case dictionary.KindAnyEnum:
			if term.IsEnumeration() {
				return true
			}
			failure = NotAnEnum
		case dictionary.KindAnyDescriptor:
			if term.IsDescriptor() {
				return true
			}
			failure = NotADescriptor
		case dictionary.KindAnyObject:
			if term.IsStructure() {
				return true
			}
			failure = NotAStructureDefinition
		default:
			if strings.HasPrefix(token, dictionary.KindTokenPrefix) {
				return v.report.SetStatus(InvalidKindOption, descriptor.Key, value, idx, WithSection(section.Kind))
			}
			// Explicit enumeration type.
			if term.InPath(token) {
				return true
			}
			if term.IsEnumeration() {
				failure = NotCorrectEnumType
			} else {
				failure = NotAnEnum
			}
		}
	}

	return v.report.SetStatus(failure, descriptor.Key, value, idx, WithSection(section.Kind))
}

// checkHandle validates a document handle: collection/key split, grammars,
// and existence of both sides.
func (v *Validator) checkHandle(ctx context.Context, container, key any, descriptor *dictionary.Term, idx int) bool {
	value := valueAt(container, key)
	s, ok := value.(string)
	if !ok {
		return v.report.SetStatus(NotAString, descriptor.Key, value, idx)
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return v.report.SetStatus(BadHandleValue, descriptor.Key, value, idx)
	}
	collection, docKey := parts[0], parts[1]

	if !store.IsValidCollectionName(collection) {
		return v.report.SetStatus(BadCollectionName, descriptor.Key, value, idx)
	}
	exists, err := v.cache.CollectionExists(ctx, collection)
	if err != nil {
		return v.storeFailure(err, descriptor.Key, value, idx)
	}
	if !exists {
		return v.report.SetStatus(UnknownCollection, descriptor.Key, value, idx)
	}

	if !store.IsValidKeyValue(docKey) {
		return v.report.SetStatus(BadKeyValue, descriptor.Key, value, idx)
	}
	exists, err = v.cache.DocumentExists(ctx, collection, docKey)
	if err != nil {
		return v.storeFailure(err, descriptor.Key, value, idx)
	}
	if !exists {
		return v.report.SetStatus(UnknownDocument, descriptor.Key, value, idx)
	}
	return true
}

// checkEnum validates an enumeration reference. When the value does not
// resolve to a term and resolution is enabled, the code-section fallback may
// rewrite the value to the canonical element key.
func (v *Validator) checkEnum(ctx context.Context, container, key any, descriptor *dictionary.Term, section *dictionary.ScalarSection, idx int) bool {
	value := valueAt(container, key)
	s, ok := value.(string)
	if !ok {
		return v.report.SetStatus(NotAString, descriptor.Key, value, idx)
	}
	if !store.IsValidKeyValue(s) {
		return v.report.SetStatus(BadKeyValue, descriptor.Key, value, idx)
	}

	// An enum descriptor must name its enumeration types.
	list, ok := kindList(section.Kind)
	if !ok || len(list) == 0 {
		return v.report.SetStatus(KindNotAnArray, descriptor.Key, value, idx, WithSection(section.Kind))
	}
	kinds := make([]string, 0, len(list))
	for _, element := range list {
		token, ok := element.(string)
		if !ok {
			return v.report.SetStatus(InvalidKindOption, descriptor.Key, value, idx, WithSection(section.Kind))
		}
		kinds = append(kinds, token)
	}

	term, err := v.cache.GetTerm(ctx, s, v.lookup())
	if err != nil {
		return v.storeFailure(err, descriptor.Key, value, idx)
	}

	if term != nil {
		if !term.IsEnumeration() {
			return v.report.SetStatus(NotAnEnum, descriptor.Key, value, idx)
		}
		for _, kind := range kinds {
			if kind == dictionary.KindAnyEnum || term.InPath(kind) {
				return true
			}
		}
		return v.report.SetStatus(NotCorrectEnumType, descriptor.Key, value, idx, WithSection(section.Kind))
	}

	if v.opts.resolve {
		for _, kind := range kinds {
			if strings.HasPrefix(kind, dictionary.KindTokenPrefix) {
				continue
			}
			ids, err := v.cache.QueryEnumIdentifierByCode(ctx, v.opts.resolver, s, kind)
			if err != nil {
				return v.storeFailure(err, descriptor.Key, value, idx)
			}
			if len(ids) == 1 {
				setValue(container, key, ids[0])
				v.report.LogResolution(descriptor.Key, s, ids[0], idx)
				v.metrics.Resolution()
				v.log.Debug("enum resolved", logger.Fields{
					"descriptor": descriptor.Key,
					"original":   s,
					"resolved":   ids[0],
				})
				return true
			}
		}
	}

	return v.report.SetStatus(ValueNotTerm, descriptor.Key, value, idx)
}

// kindList normalizes a kind clause to a slice. Decoded JSON yields []any;
// programmatically built sections may carry []string.
func kindList(raw any) ([]any, bool) {
	switch list := raw.(type) {
	case []any:
		return list, true
	case []string:
		elements := make([]any, len(list))
		for i, s := range list {
			elements[i] = s
		}
		return elements, true
	}
	return nil, false
}
