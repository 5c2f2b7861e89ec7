package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesEqualAcrossNumericRepresentations(t *testing.T) {
	assert.True(t, ValuesEqual(1.0, 1))
	assert.True(t, ValuesEqual(float64(2), float32(2)))
	assert.False(t, ValuesEqual(1, 2))
}

func TestValuesEqualObjectKeyOrderIndependent(t *testing.T) {
	a := map[string]any{"b": 1.0, "a": "x"}
	b := map[string]any{"a": "x", "b": 1.0}
	assert.True(t, ValuesEqual(a, b))
}

func TestValuesEqualArraysOrderSensitive(t *testing.T) {
	assert.False(t, ValuesEqual([]any{1.0, 2.0}, []any{2.0, 1.0}))
	assert.True(t, ValuesEqual([]any{1.0, 2.0}, []any{1.0, 2.0}))
}

func TestCanonicalizeNullAndBool(t *testing.T) {
	assert.Equal(t, "null", Canonicalize(nil))
	assert.Equal(t, "true", Canonicalize(true))
	assert.Equal(t, "false", Canonicalize(false))
}

func TestCanonicalizeIntegralFloatMatchesInt(t *testing.T) {
	assert.Equal(t, Canonicalize(1), Canonicalize(1.0))
}

func TestCanonicalizeCycleDoesNotPanic(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	assert.NotPanics(t, func() {
		Canonicalize(m)
	})
}
