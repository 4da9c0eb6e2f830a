package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc123")
	assert.Equal(t, "abc123", TraceIDFromContext(ctx))
}

func TestWithTraceID_Overwrite(t *testing.T) {
	ctx := WithTraceID(context.Background(), "first")
	ctx = WithTraceID(ctx, "second")
	assert.Equal(t, "second", TraceIDFromContext(ctx))
}

func TestTraceIDFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()),
		"контекст без trace ID должен давать пустую строку")
}

func TestTraceIDFromContext_NilContext(t *testing.T) {
	//nolint:staticcheck // проверка поведения на nil context
	assert.Equal(t, "", TraceIDFromContext(nil))
}
