package webhookdiff_test

import (
	"encoding/json"
	"testing"

	"github.com/chanced/cmpjson"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holo-oc/webhookdiff"
)

// TestSchemaRoundTripsStructurally confirms that unmarshaling a schema
// document and re-marshaling it produces a structurally identical
// document, so the diff engine never silently drops or reshapes an input
// keyword on the way into its typed representation.
func TestSchemaRoundTripsStructurally(t *testing.T) {
	data := []byte(`{
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"amount": {"type": "number", "minimum": 0, "exclusiveMaximum": 1000},
			"status": {"type": "string", "enum": ["pending", "paid"]},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["id", "amount", "status"],
		"additionalProperties": false
	}`)

	var s webhookdiff.Schema
	require.NoError(t, json.Unmarshal(data, &s))

	out, err := json.Marshal(&s)
	require.NoError(t, err)

	assert.True(t, jsonpatch.Equal(data, out), cmpjson.Diff(data, out))
}

// TestCatalogWebhookPaymentStatusChange exercises the diff engine against
// a payment-webhook-shaped baseline/candidate pair covering several
// consumer-facing change classes at once.
func TestCatalogWebhookPaymentStatusChange(t *testing.T) {
	var base, next webhookdiff.Schema

	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "object",
		"properties": {
			"eventId": {"type": "string"},
			"amount": {"type": "integer", "minimum": 0},
			"currency": {"type": "string", "enum": ["USD", "EUR"]},
			"status": {"type": "string", "enum": ["pending", "paid", "failed"]},
			"metadata": {"type": "object", "additionalProperties": true}
		},
		"required": ["eventId", "amount", "currency", "status"],
		"additionalProperties": false
	}`), &base))

	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "object",
		"properties": {
			"eventId": {"type": "string"},
			"amount": {"type": "number", "minimum": 0},
			"currency": {"type": "string", "enum": ["USD", "EUR"]},
			"status": {"type": "string", "enum": ["pending", "paid", "failed", "refunded"]},
			"metadata": {"type": "object", "additionalProperties": true}
		},
		"required": ["eventId", "currency", "status"],
		"additionalProperties": false
	}`), &next))

	report := webhookdiff.Diff(webhookdiff.Normalize(&base), webhookdiff.Normalize(&next))

	assert.Equal(t, []string{"/amount"}, report.Breaking.RequiredBecameOptional)
	require.Len(t, report.Breaking.TypeChanged, 1)
	assert.Contains(t, report.Breaking.TypeChanged[0], "/amount")
	require.Len(t, report.Breaking.ConstraintsChanged, 1)
	assert.Contains(t, report.Breaking.ConstraintsChanged[0], "enum widened")
	assert.Equal(t, 3, report.BreakingCount)
}

// TestCatalogInferredPayloadAgainstHandWrittenSchema exercises Infer +
// Normalize + Diff against a baseline schema, the way --next-payload
// drives the CLI.
func TestCatalogInferredPayloadAgainstHandWrittenSchema(t *testing.T) {
	var base webhookdiff.Schema
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"count": {"type": "integer"}
		},
		"required": ["id", "count"]
	}`), &base))

	sample := map[string]any{
		"id":    "evt_1",
		"count": 3.5,
	}
	next := webhookdiff.Normalize(webhookdiff.Infer(sample))

	report := webhookdiff.Diff(webhookdiff.Normalize(&base), next)

	require.Len(t, report.Breaking.TypeChanged, 1)
	assert.Contains(t, report.Breaking.TypeChanged[0], "/count")
}
