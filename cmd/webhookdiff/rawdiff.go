package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/wI2L/jsondiff"
)

// rawStructuralDiff computes an RFC 6902 structural diff between two raw
// schema documents, independent of this project's own breaking/non-breaking
// classification. --raw-diff surfaces it as a supplementary, unclassified
// view for cases where a reviewer wants to see every field-level change,
// not just the ones the consumer-oriented semantics consider significant.
func rawStructuralDiff(baseJSON, nextJSON []byte) ([]byte, error) {
	patch, err := jsondiff.CompareJSON(baseJSON, nextJSON)
	if err != nil {
		return nil, fmt.Errorf("compute raw structural diff: %w", err)
	}

	return json.MarshalIndent(patch, "", "  ")
}
