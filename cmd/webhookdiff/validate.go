package main

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/holo-oc/webhookdiff"
)

// validatePayload delegates validation of a payload against a schema
// document to an external validator, per this project's stance that
// schema validation itself is someone else's problem: it only classifies
// schema changes.
func validatePayload(schemaJSON []byte, payload any) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("%w: %w", webhookdiff.ErrParseInput, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	const resourceURI = "mem://webhookdiff/next-schema.json"
	if err := compiler.AddResource(resourceURI, doc); err != nil {
		return fmt.Errorf("%w: %w", webhookdiff.ErrParseInput, err)
	}

	schema, err := compiler.Compile(resourceURI)
	if err != nil {
		return fmt.Errorf("%w: %w", webhookdiff.ErrParseInput, err)
	}

	return schema.Validate(payload)
}
