// Package ctxattr stores attributes in the context, the logger adds them to each message.
package ctxattr

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type ctxKey string

const attributesCtxKey = ctxKey("attributes")

// ContextWith merges the attributes with the attributes already present in the context, the last value of a key wins.
func ContextWith(ctx context.Context, attrs ...attribute.KeyValue) context.Context {
	set := attribute.NewSet(append(Attributes(ctx).ToSlice(), attrs...)...)
	return context.WithValue(ctx, attributesCtxKey, &set)
}

func Attributes(ctx context.Context) *attribute.Set {
	if set, ok := ctx.Value(attributesCtxKey).(*attribute.Set); ok {
		return set
	}
	return attribute.EmptySet()
}
