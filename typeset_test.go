package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTypesExplicit(t *testing.T) {
	s := &Schema{Type: SchemaType{"integer", "number"}}
	assert.Equal(t, []string{"number"}, ExtractTypes(s))
}

func TestExtractTypesNullable(t *testing.T) {
	yes := true
	s := &Schema{Type: SchemaType{"string"}, Nullable: &yes}
	assert.Equal(t, []string{"null", "string"}, ExtractTypes(s))
}

func TestExtractTypesUnionOfBranches(t *testing.T) {
	s := &Schema{
		AnyOf: []*Schema{
			{Type: SchemaType{"string"}},
			{Type: SchemaType{"integer"}},
		},
	}
	assert.Equal(t, []string{"integer", "string"}, ExtractTypes(s))
}

func TestExtractTypesUnionCollapsesIntegerIntoNumber(t *testing.T) {
	s := &Schema{
		OneOf: []*Schema{
			{Type: SchemaType{"number"}},
			{Type: SchemaType{"integer"}},
		},
	}
	assert.Equal(t, []string{"number"}, ExtractTypes(s))
}

func TestExtractTypesAllOfIntersectionNarrowsToInteger(t *testing.T) {
	s := &Schema{
		AllOf: []*Schema{
			{Type: SchemaType{"number"}},
			{Type: SchemaType{"integer"}},
		},
	}
	assert.Equal(t, []string{"integer"}, ExtractTypes(s))
}

func TestExtractTypesAllOfIgnoresUntypedBranches(t *testing.T) {
	s := &Schema{
		AllOf: []*Schema{
			{Type: SchemaType{"string"}},
			{MinLength: ptrFloat(1)},
		},
	}
	assert.Equal(t, []string{"string"}, ExtractTypes(s))
}

func TestExtractTypesNoSignal(t *testing.T) {
	assert.Nil(t, ExtractTypes(&Schema{}))
	assert.Nil(t, ExtractTypes(nil))
}

func TestTypeAllows(t *testing.T) {
	base := []string{"number"}
	assert.True(t, typeAllows(base, "number"))
	assert.True(t, typeAllows(base, "integer"))
	assert.False(t, typeAllows([]string{"integer"}, "number"))
	assert.False(t, typeAllows(base, "string"))
}

func ptrFloat(f float64) *float64 { return &f }
