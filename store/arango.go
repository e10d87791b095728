package store

import (
	"context"
	"fmt"

	driver "github.com/arangodb/go-driver"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/milko/data-dictionary-cache/pkg/config"
)

// fetchTermQuery fuses the term document with its outgoing enumeration
// edges in a single round-trip, so downstream code never issues edge
// queries directly.
const fetchTermQuery = `
LET doc = DOCUMENT(@@terms, @key)
FILTER doc != null
LET paths = FLATTEN(
	FOR e IN @@edges
		FILTER e._from == doc._id AND e[@predicateField] == @predicate
		RETURN e[@pathField]
)
RETURN { doc: doc, paths: paths }`

// queryByCodeQuery resolves terms by code-section field through the search
// view, intersected with the enumeration edges carrying the requested type.
const queryByCodeQuery = `
FOR t IN @@view
	SEARCH t[@section][@field] == @value
	FOR e IN @@edges
		FILTER e._from == t._id AND e[@predicateField] == @predicate AND POSITION(e[@pathField], @enumType)
		RETURN DISTINCT t._key`

// ArangoStore implements Store over an ArangoDB database holding the term
// collection, the enumeration edge collection, and an ArangoSearch view
// over term code sections.
type ArangoStore struct {
	db     driver.Database
	cfg    *config.Dictionary
	terms  string
	edges  string
	view   string
	tracer trace.Tracer
}

// NewArangoStore wires an adapter over an open database handle. Connection
// bootstrap belongs to the host process.
func NewArangoStore(db driver.Database, sc config.StoreConfig, cfg *config.Dictionary) *ArangoStore {
	return &ArangoStore{
		db:     db,
		cfg:    cfg,
		terms:  sc.TermsCollection,
		edges:  sc.EdgesCollection,
		view:   sc.SearchView,
		tracer: otel.Tracer("github.com/milko/data-dictionary-cache/store"),
	}
}

func (s *ArangoStore) FetchTerm(ctx context.Context, id string) (*TermDocument, error) {
	ctx, span := s.tracer.Start(ctx, "store.FetchTerm",
		trace.WithAttributes(attribute.String("term.key", id)))
	defer span.End()

	cursor, err := s.db.Query(ctx, fetchTermQuery, map[string]any{
		"@terms":         s.terms,
		"@edges":         s.edges,
		"key":            id,
		"predicateField": s.cfg.EdgePredicateField,
		"pathField":      s.cfg.EdgePathField,
		"predicate":      s.cfg.EnumPredicate,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch term %s: %w", id, err)
	}
	defer cursor.Close()

	var row struct {
		Doc   map[string]any `json:"doc"`
		Paths []string       `json:"paths"`
	}
	if _, err := cursor.ReadDocument(ctx, &row); err != nil {
		if driver.IsNoMoreDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch term %s: %w", id, err)
	}

	return &TermDocument{Fields: row.Doc, EdgePaths: row.Paths}, nil
}

func (s *ArangoStore) QueryByCode(ctx context.Context, field string, value any, enumType string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "store.QueryByCode",
		trace.WithAttributes(
			attribute.String("code.field", field),
			attribute.String("enum.type", enumType),
		))
	defer span.End()

	cursor, err := s.db.Query(ctx, queryByCodeQuery, map[string]any{
		"@view":          s.view,
		"@edges":         s.edges,
		"section":        s.cfg.SectionCode,
		"field":          field,
		"value":          value,
		"predicateField": s.cfg.EdgePredicateField,
		"pathField":      s.cfg.EdgePathField,
		"predicate":      s.cfg.EnumPredicate,
		"enumType":       enumType,
	})
	if err != nil {
		return nil, fmt.Errorf("query by code %s: %w", field, err)
	}
	defer cursor.Close()

	var ids []string
	for {
		var key string
		if _, err := cursor.ReadDocument(ctx, &key); err != nil {
			if driver.IsNoMoreDocuments(err) {
				break
			}
			return nil, fmt.Errorf("query by code %s: %w", field, err)
		}
		ids = append(ids, key)
	}
	return ids, nil
}

func (s *ArangoStore) DocumentExists(ctx context.Context, collection, key string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "store.DocumentExists",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	col, err := s.db.Collection(ctx, collection)
	if err != nil {
		if driver.IsNotFoundGeneral(err) {
			return false, nil
		}
		return false, fmt.Errorf("open collection %s: %w", collection, err)
	}

	exists, err := col.DocumentExists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("document exists %s/%s: %w", collection, key, err)
	}
	return exists, nil
}

func (s *ArangoStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "store.CollectionExists",
		trace.WithAttributes(attribute.String("collection", name)))
	defer span.End()

	exists, err := s.db.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("collection exists %s: %w", name, err)
	}
	return exists, nil
}
