// Package cache provides the process-wide, read-through memoization layer
// over the dictionary store. It is the only component talking to the store;
// every lookup it answers is a projected term record with the enumeration
// path already merged in.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/milko/data-dictionary-cache/dictionary"
	"github.com/milko/data-dictionary-cache/pkg/config"
	"github.com/milko/data-dictionary-cache/pkg/logger"
	"github.com/milko/data-dictionary-cache/pkg/metrics"
	"github.com/milko/data-dictionary-cache/store"
)

// entry is one slot of the global map: a projected term, or an absent
// sentinel suppressing repeat store misses.
type entry struct {
	term   *dictionary.Term
	absent bool
}

// Options steer a single lookup.
type Options struct {
	// UseCache consults and populates the global map.
	UseCache bool

	// CacheMissing stores an absent sentinel after a store miss, so
	// subsequent lookups of the same id short-circuit. Only effective
	// together with UseCache.
	CacheMissing bool

	// Batch is an optional per-validator overlay of staged terms,
	// consulted after the global map and before the store.
	Batch *Batch
}

// TermCache resolves term ids to their projected representation. The global
// map is shared by all validators; writes take the exclusive lock, reads of
// populated keys proceed in parallel.
type TermCache struct {
	store   store.Store
	cfg     *config.Dictionary
	log     logger.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	global map[string]entry
}

// Option configures a TermCache.
type Option func(*TermCache)

// WithLogger injects a logger.
func WithLogger(log logger.Logger) Option {
	return func(c *TermCache) { c.log = log }
}

// WithMetrics injects traffic collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *TermCache) { c.metrics = m }
}

// New creates a TermCache over the given store and tag table.
func New(st store.Store, cfg *config.Dictionary, opts ...Option) *TermCache {
	c := &TermCache{
		store:  st,
		cfg:    cfg,
		log:    logger.Nop(),
		global: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the tag table the cache projects with.
func (c *TermCache) Config() *config.Dictionary { return c.cfg }

// GetTerm resolves a term id. An unknown term returns (nil, nil); errors are
// store failures and leave the global map untouched for the failing id.
func (c *TermCache) GetTerm(ctx context.Context, id string, opts Options) (*dictionary.Term, error) {
	if opts.UseCache {
		c.mu.RLock()
		e, ok := c.global[id]
		c.mu.RUnlock()
		if ok {
			c.metrics.CacheHit()
			if e.absent {
				return nil, nil
			}
			return e.term, nil
		}
	}

	if opts.Batch != nil {
		if term, ok := opts.Batch.Get(id); ok {
			return term, nil
		}
	}

	c.metrics.CacheMiss()
	start := time.Now()
	doc, err := c.store.FetchTerm(ctx, id)
	c.metrics.StoreFetch(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch term %s: %w", id, err)
	}

	if doc == nil {
		c.log.Debug("term not found", logger.Fields{"key": id})
		if opts.UseCache && opts.CacheMissing {
			c.mu.Lock()
			c.global[id] = entry{absent: true}
			c.mu.Unlock()
		}
		return nil, nil
	}

	term := dictionary.Project(c.cfg, doc.Fields, doc.EdgePaths)
	if opts.UseCache {
		c.mu.Lock()
		c.global[id] = entry{term: term}
		c.mu.Unlock()
	}
	return term, nil
}

// GetTerms resolves a batch of ids, preserving input order and collapsing
// duplicates. Unknown ids are skipped.
func (c *TermCache) GetTerms(ctx context.Context, ids []string, opts Options) ([]*dictionary.Term, error) {
	seen := make(map[string]struct{}, len(ids))
	terms := make([]*dictionary.Term, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		term, err := c.GetTerm(ctx, id, opts)
		if err != nil {
			return nil, err
		}
		if term != nil {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// QueryEnumIdentifierByCode resolves enumeration elements by code-section
// field value, restricted to one enumeration type. The result is the list of
// matching term keys. More than one match indicates graph corruption; the
// caller decides what to do with it. Never consults the cache: the
// projection does not carry the code section.
func (c *TermCache) QueryEnumIdentifierByCode(ctx context.Context, field string, value any, enumType string) ([]string, error) {
	ids, err := c.store.QueryByCode(ctx, field, value, enumType)
	if err != nil {
		return nil, fmt.Errorf("query enum by code %s: %w", field, err)
	}
	if len(ids) > 1 {
		c.log.Warn("ambiguous enum code", logger.Fields{
			"field":   field,
			"value":   value,
			"type":    enumType,
			"matches": len(ids),
		})
	}
	return ids, nil
}

// DocumentExists delegates to the store.
func (c *TermCache) DocumentExists(ctx context.Context, collection, key string) (bool, error) {
	return c.store.DocumentExists(ctx, collection, key)
}

// CollectionExists delegates to the store.
func (c *TermCache) CollectionExists(ctx context.Context, name string) (bool, error) {
	return c.store.CollectionExists(ctx, name)
}

// Reset clears the global map. Test hook; there is no eviction in normal
// operation.
func (c *TermCache) Reset() {
	c.mu.Lock()
	c.global = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached entries, absent sentinels included.
func (c *TermCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.global)
}
