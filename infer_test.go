package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferScalars(t *testing.T) {
	assert.Equal(t, SchemaType{"null"}, Infer(nil).Type)
	assert.Equal(t, SchemaType{"boolean"}, Infer(true).Type)
	assert.Equal(t, SchemaType{"string"}, Infer("x").Type)
	assert.Equal(t, SchemaType{"integer"}, Infer(float64(3)).Type)
	assert.Equal(t, SchemaType{"number"}, Infer(float64(3.5)).Type)
}

func TestInferObjectSortsKeysAndRequiresAll(t *testing.T) {
	s := Infer(map[string]any{"b": 1.0, "a": "x"})
	assert.Equal(t, SchemaType{"object"}, s.Type)
	assert.Equal(t, []string{"a", "b"}, s.Required)
	require.NotNil(t, s.Properties)
	assert.Equal(t, SchemaType{"string"}, (*s.Properties)["a"].Type)
	assert.Equal(t, SchemaType{"integer"}, (*s.Properties)["b"].Type)
}

func TestInferArrayMergesElements(t *testing.T) {
	s := Infer([]any{
		map[string]any{"id": "a", "amount": 1.0},
		map[string]any{"id": "b"},
	})
	assert.Equal(t, SchemaType{"array"}, s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, []string{"id"}, s.Items.Required)
}

func TestInferArrayWidensIntegerAndNumber(t *testing.T) {
	s := Infer([]any{1.0, 2.5})
	require.NotNil(t, s.Items)
	assert.Equal(t, SchemaType{"number"}, s.Items.Type)
}

func TestInferArrayEmpty(t *testing.T) {
	s := Infer([]any{})
	assert.Equal(t, SchemaType{"array"}, s.Type)
	assert.Nil(t, s.Items)
}

func TestWidenTypeFallsBackToUnion(t *testing.T) {
	widened := widenTypes(SchemaType{"string"}, SchemaType{"integer"})
	assert.Equal(t, SchemaType{"integer", "string"}, widened)
}
