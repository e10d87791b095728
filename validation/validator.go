package validation

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/milko/data-dictionary-cache/cache"
	"github.com/milko/data-dictionary-cache/dictionary"
	"github.com/milko/data-dictionary-cache/pkg/config"
	"github.com/milko/data-dictionary-cache/pkg/logger"
	"github.com/milko/data-dictionary-cache/pkg/metrics"
)

// Construction errors. Invalid option combinations are programmer errors
// and fail construction; they never become report statuses.
var (
	ErrNoValue         = errors.New("validation: no value provided")
	ErrZipNoDescriptor = errors.New("validation: zip mode requires a descriptor")
	ErrZipNotSequence  = errors.New("validation: zip mode requires a sequence value")
	ErrValueShape      = errors.New("validation: without a descriptor the value must be an object or a sequence of objects")
	ErrEmptyResolver   = errors.New("validation: resolver field cannot be empty")
)

type options struct {
	value      any
	hasValue   bool
	descriptor string

	zip          bool
	useCache     bool
	cacheMissing bool
	expectTerms  bool
	expectType   bool
	resolve      bool
	defNamespace bool

	resolver string
	batch    *cache.Batch
}

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithValue sets the value under validation. Required.
func WithValue(value any) Option {
	return func(v *Validator) {
		v.opts.value = value
		v.opts.hasValue = true
	}
}

// WithDescriptor names the descriptor term the value is validated against.
func WithDescriptor(key string) Option {
	return func(v *Validator) { v.opts.descriptor = key }
}

// WithZip validates each element of a sequence against the descriptor,
// producing one report slot per element.
func WithZip() Option {
	return func(v *Validator) { v.opts.zip = true }
}

// WithoutCache bypasses the global term cache for every lookup.
func WithoutCache() Option {
	return func(v *Validator) { v.opts.useCache = false }
}

// WithCacheMissing caches absent sentinels so repeat misses skip the store.
func WithCacheMissing() Option {
	return func(v *Validator) { v.opts.cacheMissing = true }
}

// WithExpectTerms makes unknown object keys an error instead of skipping.
func WithExpectTerms() Option {
	return func(v *Validator) { v.opts.expectTerms = true }
}

// WithExpectType makes a scalar section without a type tag an error.
func WithExpectType() Option {
	return func(v *Validator) { v.opts.expectType = true }
}

// WithResolve allows the validator to rewrite almost-correct values into
// their canonical form, logging each substitution.
func WithResolve() Option {
	return func(v *Validator) { v.opts.resolve = true }
}

// WithDefaultNamespace allows an empty key on the namespace descriptor.
func WithDefaultNamespace() Option {
	return func(v *Validator) { v.opts.defNamespace = true }
}

// WithResolver names the code-section field probed during enum resolution.
// Defaults to the configured local-identifier field.
func WithResolver(field string) Option {
	return func(v *Validator) { v.opts.resolver = field }
}

// WithBatch consults a per-validator overlay of staged terms.
func WithBatch(batch *cache.Batch) Option {
	return func(v *Validator) { v.opts.batch = batch }
}

// WithValidatorLogger injects a logger.
func WithValidatorLogger(log logger.Logger) Option {
	return func(v *Validator) { v.log = log }
}

// WithValidatorMetrics injects traffic collectors.
func WithValidatorMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// Validator checks one value against the data dictionary. An instance is
// not safe for concurrent use; distinct instances may run in parallel over a
// shared cache.
type Validator struct {
	cache   *cache.TermCache
	cfg     *config.Dictionary
	log     logger.Logger
	metrics *metrics.Metrics
	catalog *Catalog
	tracer  trace.Tracer

	opts    options
	term    *dictionary.Term
	wrapper map[string]any
	report  *Report
	fatal   error
}

// New creates a validator. Inconsistent option combinations fail here, not
// during validation.
func New(tc *cache.TermCache, opts ...Option) (*Validator, error) {
	v := &Validator{
		cache:   tc,
		cfg:     tc.Config(),
		log:     logger.Nop(),
		catalog: NewCatalog(),
		tracer:  otel.Tracer("github.com/milko/data-dictionary-cache/validation"),
	}
	v.opts.useCache = true
	for _, opt := range opts {
		opt(v)
	}
	if v.opts.resolver == "" {
		v.opts.resolver = v.cfg.LocalIdentifierField
	}

	if !v.opts.hasValue {
		return nil, ErrNoValue
	}
	if v.opts.resolver == "" {
		return nil, ErrEmptyResolver
	}
	if v.opts.zip {
		if v.opts.descriptor == "" {
			return nil, ErrZipNoDescriptor
		}
		if !isSequence(v.opts.value) {
			return nil, ErrZipNotSequence
		}
	}
	if v.opts.descriptor == "" {
		switch v.opts.value.(type) {
		case map[string]any, []any:
		default:
			return nil, ErrValueShape
		}
	}

	return v, nil
}

// Report returns the result of the last Validate call.
func (v *Validator) Report() *Report { return v.report }

// Value returns the value under validation, reflecting any resolutions
// applied in place.
func (v *Validator) Value() any {
	if v.wrapper != nil && v.term != nil {
		return v.wrapper[v.term.Key]
	}
	return v.opts.value
}

// Validate runs the validation and reports whether every slot is idle.
// Validation errors live in the report; the returned error is reserved for
// infrastructure failures and cancellation.
func (v *Validator) Validate(ctx context.Context, language string) (bool, error) {
	ctx, span := v.tracer.Start(ctx, "validation.Validate",
		trace.WithAttributes(
			attribute.String("descriptor", v.opts.descriptor),
			attribute.Bool("zip", v.opts.zip),
			attribute.Bool("resolve", v.opts.resolve),
		))
	defer span.End()

	v.report = newReport(v.catalog, language)
	v.wrapper = nil
	v.term = nil
	v.fatal = nil

	if v.opts.descriptor != "" {
		term, err := v.cache.GetTerm(ctx, v.opts.descriptor, v.lookup())
		if err != nil {
			v.storeFailure(err, v.opts.descriptor, v.opts.value, -1)
			return false, v.fatal
		}
		if term == nil {
			v.report.SetStatus(UnknownTerm, v.opts.descriptor, v.opts.value, -1)
			v.metrics.Validation(false)
			return false, nil
		}
		if !term.IsDescriptor() {
			v.report.SetStatus(NotADescriptor, v.opts.descriptor, v.opts.value, -1)
			v.metrics.Validation(false)
			return false, nil
		}
		v.term = term
	}

	switch {
	case v.opts.zip:
		v.validateZip(ctx)
	case v.term != nil:
		v.report.SetStatus(OK, "", nil, -1)
		v.wrapper = map[string]any{v.term.Key: v.opts.value}
		v.walk(ctx, v.wrapper, v.term.Key, v.term, v.term.Data, -1)
	default:
		v.validateUntagged(ctx)
	}

	ok := v.fatal == nil && v.report.IsOK()
	span.SetAttributes(attribute.Bool("valid", ok))
	v.metrics.Validation(ok)
	return ok, v.fatal
}

// validateZip walks each element of the sequence against the descriptor.
// Slots are independent: an error in one element never stops the others.
func (v *Validator) validateZip(ctx context.Context) {
	items := v.opts.value.([]any)
	v.report.initSlots(len(items))

	for i := range items {
		if v.fatal != nil {
			return
		}
		v.walk(ctx, items, i, v.term, v.term.Data, i)
	}
}

// validateUntagged handles the descriptor-less modes: a single object, or a
// bag of objects with one slot each.
func (v *Validator) validateUntagged(ctx context.Context) {
	switch value := v.opts.value.(type) {
	case map[string]any:
		v.validateObject(ctx, value, -1)
	case []any:
		v.report.initSlots(len(value))
		for i, element := range value {
			if v.fatal != nil {
				return
			}
			mapping, ok := element.(map[string]any)
			if !ok {
				v.report.SetStatus(NotAnObject, "", element, i)
				continue
			}
			v.validateObject(ctx, mapping, i)
		}
	}
}

// validateObject resolves each key of the object as a descriptor term and
// walks its value. Keys are visited in sorted order; the first error
// terminates the slot.
func (v *Validator) validateObject(ctx context.Context, mapping map[string]any, idx int) bool {
	if len(mapping) == 0 {
		return v.report.SetStatus(EmptyObject, "", mapping, idx)
	}

	keys := sortedKeys(mapping)

	// One pass over the cache primes every descriptor before the walk.
	resolved, err := v.cache.GetTerms(ctx, keys, v.lookup())
	if err != nil {
		return v.storeFailure(err, "", mapping, idx)
	}
	byKey := make(map[string]*dictionary.Term, len(resolved))
	for _, term := range resolved {
		byKey[term.Key] = term
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return v.cancel(err, key, idx)
		}

		term := byKey[key]
		if term == nil {
			if v.opts.expectTerms {
				return v.report.SetStatus(UnknownTerm, key, mapping[key], idx)
			}
			continue
		}
		if !term.IsDescriptor() {
			return v.report.SetStatus(NotADescriptor, key, mapping[key], idx)
		}
		if !v.walk(ctx, mapping, key, term, term.Data, idx) {
			return false
		}
	}
	return true
}

// lookup builds the cache options for this validator's flags.
func (v *Validator) lookup() cache.Options {
	return cache.Options{
		UseCache:     v.opts.useCache,
		CacheMissing: v.opts.cacheMissing,
		Batch:        v.opts.batch,
	}
}

// storeFailure records a fatal store error in the open slot and aborts the
// whole call.
func (v *Validator) storeFailure(err error, descriptor string, value any, idx int) bool {
	v.fatal = err
	v.log.Error("dictionary store failure", logger.Fields{"error": err.Error()})
	return v.report.SetStatus(StoreError, descriptor, value, idx)
}

// cancel records the cancellation in the open slot and aborts the call,
// leaving the rest of the report unchanged.
func (v *Validator) cancel(err error, descriptor string, idx int) bool {
	v.fatal = err
	return v.report.SetStatus(Cancelled, descriptor, nil, idx)
}
