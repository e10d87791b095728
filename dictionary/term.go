// Package dictionary defines the projected term model shared by the cache
// and the validator. A projected term retains only the fields validation
// needs: the global key, the data section, the rule section, and the
// enumeration path merged from the term's outgoing enumeration edges.
package dictionary

import (
	"github.com/milko/data-dictionary-cache/pkg/config"
)

// RuleSection holds a structure definition's cross-field constraints.
// Validation only interprets its presence; the contents stay opaque.
type RuleSection map[string]any

// Term is the cache's canonical representation of a dictionary entry.
type Term struct {
	// Key is the globally unique term identifier.
	Key string `json:"key"`

	// Data describes the descriptor's value shape. Nil when the term is
	// not a descriptor.
	Data *DataSection `json:"data,omitempty"`

	// Rule carries cross-field constraints. Nil when the term is not a
	// structure definition.
	Rule RuleSection `json:"rule,omitempty"`

	// Path lists the enumeration types this term belongs to. Empty when
	// the term is not an enumeration element.
	Path []string `json:"path,omitempty"`
}

// IsDescriptor reports whether the term declares a value shape.
func (t *Term) IsDescriptor() bool { return t != nil && t.Data != nil }

// IsStructure reports whether the term is a structure definition.
func (t *Term) IsStructure() bool { return t != nil && t.Rule != nil }

// IsEnumeration reports whether the term belongs to at least one
// enumeration type.
func (t *Term) IsEnumeration() bool { return t != nil && len(t.Path) > 0 }

// InPath reports whether the term's enumeration path contains the given
// enumeration type.
func (t *Term) InPath(enumType string) bool {
	if t == nil {
		return false
	}
	for _, p := range t.Path {
		if p == enumType {
			return true
		}
	}
	return false
}

// Project builds the trimmed term view from a stored term document and the
// flattened paths of its outgoing enumeration edges. Everything else in the
// document, the code section included, is discarded.
func Project(cfg *config.Dictionary, fields map[string]any, edgePaths []string) *Term {
	term := &Term{}

	if key, ok := fields[cfg.KeyField].(string); ok {
		term.Key = key
	}

	if raw, ok := fields[cfg.SectionData]; ok && raw != nil {
		term.Data = DecodeDataSection(cfg, raw)
	}

	if raw, ok := fields[cfg.SectionRule]; ok && raw != nil {
		if rule, ok := raw.(map[string]any); ok {
			term.Rule = RuleSection(rule)
		} else {
			// Presence is the contract even when the section is malformed.
			term.Rule = RuleSection{}
		}
	}

	if len(edgePaths) > 0 {
		seen := make(map[string]struct{}, len(edgePaths))
		path := make([]string, 0, len(edgePaths))
		for _, p := range edgePaths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			path = append(path, p)
		}
		term.Path = path
	}

	return term
}
