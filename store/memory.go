package store

import (
	"context"
	"sync"

	"github.com/milko/data-dictionary-cache/pkg/config"
)

// MemoryStore is a map-backed Store. It backs the store-backed tests and
// serves as an embedded fixture store for callers that load a dictionary
// snapshot at startup.
type MemoryStore struct {
	cfg *config.Dictionary

	mu          sync.RWMutex
	terms       map[string]map[string]any
	edges       map[string][][]string // term key -> enumeration edge paths
	collections map[string]map[string]struct{}
	err         error
}

// NewMemoryStore creates an empty in-memory store using the given tag table
// to locate key and code sections inside term documents.
func NewMemoryStore(cfg *config.Dictionary) *MemoryStore {
	return &MemoryStore{
		cfg:         cfg,
		terms:       make(map[string]map[string]any),
		edges:       make(map[string][][]string),
		collections: make(map[string]map[string]struct{}),
	}
}

// AddTerm stores a term document. The document must carry the configured
// key field.
func (s *MemoryStore) AddTerm(doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := doc[s.cfg.KeyField].(string); ok {
		s.terms[key] = doc
	}
}

// AddEnumEdge records an enumeration edge leaving the given term with the
// given path of type-term keys.
func (s *MemoryStore) AddEnumEdge(from string, path ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edges[from] = append(s.edges[from], path)
}

// AddCollection registers a collection and its document keys.
func (s *MemoryStore) AddCollection(name string, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]struct{})
		s.collections[name] = docs
	}
	for _, key := range keys {
		docs[key] = struct{}{}
	}
}

// SetError makes every subsequent operation fail with err. Passing nil
// restores normal operation.
func (s *MemoryStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *MemoryStore) FetchTerm(ctx context.Context, id string) (*TermDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, ok := s.terms[id]
	if !ok {
		return nil, nil
	}

	var paths []string
	for _, path := range s.edges[id] {
		paths = append(paths, path...)
	}

	return &TermDocument{Fields: doc, EdgePaths: paths}, nil
}

func (s *MemoryStore) QueryByCode(ctx context.Context, field string, value any, enumType string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	for key, doc := range s.terms {
		code, ok := doc[s.cfg.SectionCode].(map[string]any)
		if !ok || code[field] != value {
			continue
		}
		if s.pathContains(key, enumType) {
			ids = append(ids, key)
		}
	}
	return ids, nil
}

func (s *MemoryStore) DocumentExists(ctx context.Context, collection, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return false, s.err
	}

	docs, ok := s.collections[collection]
	if !ok {
		return false, nil
	}
	_, ok = docs[key]
	return ok, nil
}

func (s *MemoryStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return false, s.err
	}

	_, ok := s.collections[name]
	return ok, nil
}

// pathContains reports whether any enumeration edge of the term carries the
// given type. Callers hold the read lock.
func (s *MemoryStore) pathContains(key, enumType string) bool {
	for _, path := range s.edges[key] {
		for _, p := range path {
			if p == enumType {
				return true
			}
		}
	}
	return false
}
