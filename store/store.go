// Package store is the boundary to the dictionary store: a document+graph
// backend persisting term documents, enumeration edges, and a search view
// over term code sections. The package exposes exactly the operations the
// cache consumes; it performs no caching and no projection.
package store

import (
	"context"
	"regexp"
)

// TermDocument is the fused result of one term lookup: the stored document
// fields plus the flattened paths of all enumeration edges leaving the term.
type TermDocument struct {
	Fields    map[string]any
	EdgePaths []string
}

// Store abstracts the dictionary store operations the cache consumes.
type Store interface {
	// FetchTerm returns the term document and its enumeration edge paths.
	// An absent term returns (nil, nil); errors are transport failures.
	FetchTerm(ctx context.Context, id string) (*TermDocument, error)

	// QueryByCode returns the keys of terms whose code-section field equals
	// value and whose enumeration path contains enumType. Uses the store's
	// search view, never the cache.
	QueryByCode(ctx context.Context, field string, value any, enumType string) ([]string, error)

	// DocumentExists reports whether collection holds a document with the
	// given key.
	DocumentExists(ctx context.Context, collection, key string) (bool, error)

	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)
}

var (
	collectionNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-]{0,255}$`)
	keyValueRe       = regexp.MustCompile(`^[a-zA-Z0-9_\-:.@()+,=;$!*'%]{1,254}$`)
)

// IsValidCollectionName reports whether s satisfies the store's collection
// name grammar. Pure; no I/O.
func IsValidCollectionName(s string) bool {
	return collectionNameRe.MatchString(s)
}

// IsValidKeyValue reports whether s satisfies the store's document key
// grammar. Pure; no I/O.
func IsValidKeyValue(s string) bool {
	return keyValueRe.MatchString(s)
}
