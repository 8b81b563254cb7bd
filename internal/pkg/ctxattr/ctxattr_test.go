package ctxattr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestAttributes_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Attributes(context.Background()).Len())
}

func TestContextWith(t *testing.T) {
	t.Parallel()

	parent := ContextWith(context.Background(), attribute.String("input", "-"), attribute.String("output", "-"))
	child := ContextWith(parent, attribute.String("output", "out.csv"), attribute.Int("records", 5))

	// Parent is unchanged
	value, ok := Attributes(parent).Value("output")
	require.True(t, ok)
	assert.Equal(t, "-", value.Emit())
	assert.Equal(t, 2, Attributes(parent).Len())

	// The last value wins
	set := Attributes(child)
	assert.Equal(t, 3, set.Len())
	value, ok = set.Value("input")
	require.True(t, ok)
	assert.Equal(t, "-", value.Emit())
	value, ok = set.Value("output")
	require.True(t, ok)
	assert.Equal(t, "out.csv", value.Emit())
	value, ok = set.Value("records")
	require.True(t, ok)
	assert.Equal(t, "5", value.Emit())
}
