package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseMergesRequiredAndBounds(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"type": "object", "required": ["a"], "minProperties": 1},
			{"type": "object", "required": ["b"], "minProperties": 2}
		]
	}`)

	out := collapse(node)
	require.NotNil(t, out)
	assert.ElementsMatch(t, []string{"a", "b"}, out.Required)
	require.NotNil(t, out.MinProperties)
	assert.Equal(t, float64(2), *out.MinProperties)
}

func TestCollapseNarrowsBounds(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"minimum": 0, "maximum": 100},
			{"minimum": 10, "maximum": 50}
		]
	}`)

	out := collapse(node)
	require.NotNil(t, out.Minimum)
	require.NotNil(t, out.Maximum)
	assert.Equal(t, "10", FormatRat(out.Minimum))
	assert.Equal(t, "50", FormatRat(out.Maximum))
}

func TestCollapseAdditionalPropertiesFalseWins(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"additionalProperties": true},
			{"additionalProperties": false}
		]
	}`)

	out := collapse(node)
	require.NotNil(t, out.AdditionalProperties)
	require.NotNil(t, out.AdditionalProperties.Boolean)
	assert.False(t, *out.AdditionalProperties.Boolean)
}

func TestCollapsePropertiesIntersectsSharedKey(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"properties": {"id": {"minLength": 1}}},
			{"properties": {"id": {"maxLength": 10}}, "type": "object"}
		]
	}`)

	out := collapse(node)
	require.NotNil(t, out.Properties)
	id, ok := (*out.Properties)["id"]
	require.True(t, ok)
	require.NotNil(t, id.MinLength)
	require.NotNil(t, id.MaxLength)
	assert.Equal(t, float64(1), *id.MinLength)
	assert.Equal(t, float64(10), *id.MaxLength)
}

func TestCollapseDisagreeingMultipleOfDrops(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"multipleOf": 2},
			{"multipleOf": 3}
		]
	}`)

	out := collapse(node)
	assert.Nil(t, out.MultipleOf)
}

func TestCollapseAgreeingPatternSurvives(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"pattern": "^[a-z]+$"},
			{"pattern": "^[a-z]+$"}
		]
	}`)

	out := collapse(node)
	require.NotNil(t, out.Pattern)
	assert.Equal(t, "^[a-z]+$", *out.Pattern)
}

func TestCollapseTupleTupleComposesElementwise(t *testing.T) {
	node := mustSchema(t, `{
		"allOf": [
			{"prefixItems": [{"minimum": 0}, {"type": "string"}]},
			{"prefixItems": [{"maximum": 10}]}
		]
	}`)

	out := collapse(node)
	require.Len(t, out.PrefixItems, 2)
	require.NotNil(t, out.PrefixItems[0].Minimum)
	require.NotNil(t, out.PrefixItems[0].Maximum)
	assert.Equal(t, SchemaType{"string"}, out.PrefixItems[1].Type)
}

func TestCollapseNonAllOfPassesThrough(t *testing.T) {
	node := mustSchema(t, `{"type": "string"}`)
	out := collapse(node)
	assert.Same(t, node, out)
}
