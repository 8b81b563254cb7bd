// Package column discovers the ordered, deduplicated set of columns across heterogeneous records.
package column

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// Registry maps a column index to the Key.
// Indexes are contiguous, in the first-seen order. The registry is immutable once built.
type Registry struct {
	keys    []*Key
	indexes map[string]int
}

type config struct {
	logLevel string
}

type Option func(c *config)

// WithLogLevel sets the level of the discovery messages, default is "debug".
func WithLogLevel(level string) Option {
	return func(c *config) {
		c.logLevel = level
	}
}

// Build walks records in the input order, for each record its type is walked first, then the ancestors.
// A new column is created for each not yet seen attribute name,
// an already seen name only adds the declaring type to the owners of the existing column.
//
// A derived type redeclaring an attribute with a different type is folded into the existing column,
// the first-seen declared type is kept.
func Build(ctx context.Context, logger log.Logger, introspector record.Introspector, records []any, opts ...Option) (*Registry, error) {
	cfg := config{logLevel: "debug"}
	for _, o := range opts {
		o(&cfg)
	}

	r := &Registry{indexes: make(map[string]int)}
	mapped := make(map[string]bool)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := introspector.TypeOf(rec)
		if err != nil {
			return nil, errors.PrefixErrorf(err, "cannot get type of the record %d", i+1)
		}

		// Each type adds the same columns, so it is walked only once.
		if mapped[t.ID()] {
			continue
		}
		mapped[t.ID()] = true

		logger.Logf(ctx, cfg.logLevel, `Mapping type "%s".`, t.ID())
		for _, typ := range record.Chain(t) {
			for _, attr := range typ.Attributes() {
				r.add(ctx, logger, cfg.logLevel, typ.ID(), attr)
			}
		}
	}
	return r, nil
}

func (r *Registry) add(ctx context.Context, logger log.Logger, logLevel string, typeID string, attr record.Attribute) {
	if index, found := r.indexes[attr.Name]; found {
		r.keys[index].addOwner(typeID)
		return
	}

	r.indexes[attr.Name] = len(r.keys)
	r.keys = append(r.keys, newKey(attr.Name, attr.Type, typeID))
	logger.With(
		attribute.Int("column.index", len(r.keys)-1),
		attribute.String("column.type", attr.Type),
	).Logf(ctx, logLevel, `Found new attribute "%s" in the type "%s".`, attr.Name, typeID)
}

func (r *Registry) Len() int {
	return len(r.keys)
}

// Key returns the column at the index, it panics if the index is out of range.
func (r *Registry) Key(index int) *Key {
	return r.keys[index]
}

func (r *Registry) Keys() []*Key {
	out := make([]*Key, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Registry) Names() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = k.name
	}
	return out
}

