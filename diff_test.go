package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffSchemas(t *testing.T, baseDoc, nextDoc string) *DiffReport {
	t.Helper()
	base := Normalize(mustSchema(t, baseDoc))
	next := Normalize(mustSchema(t, nextDoc))
	return Diff(base, next)
}

func TestDiffRemovedRequiredProperty(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
		`{"type":"object","properties":{}}`,
	)
	assert.Equal(t, []string{"/id"}, report.Breaking.RemovedRequired)
	assert.Equal(t, 1, report.BreakingCount)
}

func TestDiffRequiredBecameOptional(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
		`{"type":"object","properties":{"id":{"type":"string"}}}`,
	)
	assert.Equal(t, []string{"/id"}, report.Breaking.RequiredBecameOptional)
}

func TestDiffTypeNarrowingIsNonBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"amount":{"type":"number"}}}`,
		`{"type":"object","properties":{"amount":{"type":"integer"}}}`,
	)
	assert.Empty(t, report.Breaking.TypeChanged)
	assert.Zero(t, report.BreakingCount)
}

func TestDiffTypeWideningIsBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"amount":{"type":"integer"}}}`,
		`{"type":"object","properties":{"amount":{"type":"number"}}}`,
	)
	require.Len(t, report.Breaking.TypeChanged, 1)
	assert.Contains(t, report.Breaking.TypeChanged[0], "/amount")
}

func TestDiffAdditionalPropertyAddedUnderClosedObjectIsBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"id":{"type":"string"}},"additionalProperties":false}`,
		`{"type":"object","properties":{"id":{"type":"string"},"extra":{"type":"string"}},"additionalProperties":false}`,
	)
	require.Len(t, report.Breaking.ConstraintsChanged, 1)
	assert.Contains(t, report.Breaking.ConstraintsChanged[0], "/extra")
}

func TestDiffAddedPropertyUnderOpenObjectIsNonBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"id":{"type":"string"}}}`,
		`{"type":"object","properties":{"id":{"type":"string"},"extra":{"type":"string"}}}`,
	)
	assert.Equal(t, []string{"/extra"}, report.NonBreaking.Added)
	assert.Zero(t, report.BreakingCount)
}

func TestDiffEnumWideningIsBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"string","enum":["a","b"]}`,
		`{"type":"string","enum":["a","b","c"]}`,
	)
	require.Len(t, report.Breaking.ConstraintsChanged, 1)
	assert.Contains(t, report.Breaking.ConstraintsChanged[0], "enum widened")
}

func TestDiffMinimumLoosenedIsBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"integer","minimum":10}`,
		`{"type":"integer","minimum":0}`,
	)
	require.Len(t, report.Breaking.ConstraintsChanged, 1)
	assert.Contains(t, report.Breaking.ConstraintsChanged[0], "minimum loosened")
}

func TestDiffMinimumTightenedIsNonBreaking(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"integer","minimum":0}`,
		`{"type":"integer","minimum":10}`,
	)
	assert.Empty(t, report.Breaking.ConstraintsChanged)
}

func TestDiffNoChangesIsClean(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
		`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
	)
	assert.Zero(t, report.BreakingCount)
	assert.Empty(t, report.NonBreaking.Added)
}

func TestDiffArrayItemWidening(t *testing.T) {
	report := diffSchemas(t,
		`{"type":"array","items":{"type":"integer"}}`,
		`{"type":"array","items":{"type":"number"}}`,
	)
	require.Len(t, report.Breaking.TypeChanged, 1)
	assert.Contains(t, report.Breaking.TypeChanged[0], "/*")
}

func TestIsExactMultipleNarrows(t *testing.T) {
	assert.True(t, isExactMultiple(NewRat(6), NewRat(2)))
	assert.False(t, isExactMultiple(NewRat(4), NewRat(3)))
}
