package tracing

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateTraceID_Format проверяет что GenerateTraceID возвращает 32-символьный hex string.
func TestGenerateTraceID_Format(t *testing.T) {
	traceID := GenerateTraceID()

	hexPattern := regexp.MustCompile("^[0-9a-f]{32}$")
	assert.True(t, hexPattern.MatchString(traceID),
		"trace_id должен содержать 32 hex символа, got: %s", traceID)
}

// TestGenerateTraceID_Unique проверяет что два вызова возвращают разные значения.
func TestGenerateTraceID_Unique(t *testing.T) {
	traceID1 := GenerateTraceID()
	traceID2 := GenerateTraceID()

	assert.NotEqual(t, traceID1, traceID2, "два вызова должны возвращать разные значения")
}

// TestGenerateTraceID_UniqueInConcurrentCalls проверяет уникальность при конкурентных вызовах.
func TestGenerateTraceID_UniqueInConcurrentCalls(t *testing.T) {
	const numGoroutines = 100
	ids := make(chan string, numGoroutines)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			ids <- GenerateTraceID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "обнаружен дубликат trace_id: %s", id)
		seen[id] = true
	}
}

// TestFallbackTraceID_Format проверяет формат fallback генерации.
func TestFallbackTraceID_Format(t *testing.T) {
	id := fallbackTraceID()
	assert.Len(t, id, 32, "fallback trace_id должен быть длиной 32 символа")

	other := fallbackTraceID()
	assert.NotEqual(t, id, other, "счётчик должен давать уникальные fallback ID")
}
