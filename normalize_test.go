package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRewritesRequiredHint(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "string", "required": true},
			"name": {"type": "string"}
		}
	}`)

	out := Normalize(s)
	assert.Equal(t, []string{"id"}, out.Required)
	id := (*out.Properties)["id"]
	assert.Nil(t, id.Extra["required"])
}

func TestNormalizeMergesExplicitAndHinted(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"id": {"type": "string", "required": true},
			"name": {"type": "string"}
		}
	}`)

	out := Normalize(s)
	assert.Equal(t, []string{"id", "name"}, out.Required)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"id": {"type": "string", "required": true}}
	}`)

	once := Normalize(s)
	twice := Normalize(once)
	assert.Equal(t, once.Required, twice.Required)
}

func TestNormalizeSortsPropertyKeysAndRecursesIntoNested(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {
			"z": {"type": "object", "properties": {"inner": {"type": "string", "required": true}}},
			"a": {"type": "string"}
		}
	}`)

	out := Normalize(s)
	require.NotNil(t, out.Properties)
	z := (*out.Properties)["z"]
	require.NotNil(t, z)
	assert.Equal(t, []string{"inner"}, z.Required)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	s := mustSchema(t, `{"type": "object", "properties": {"id": {"type": "string", "required": true}}}`)
	Normalize(s)
	assert.Nil(t, s.Required)
}
