package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/holo-oc/webhookdiff"
)

// applyPatch applies an RFC 6902 JSON Patch document (read from
// patchPath) to baseSchemaJSON, producing the candidate schema document
// for --next-patch.
func applyPatch(baseSchemaJSON []byte, patchPath string) ([]byte, error) {
	patchData, err := readFile(patchPath)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrApplyPatch, patchPath, err)
	}

	result, err := patch.Apply(baseSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrApplyPatch, patchPath, err)
	}
	return result, nil
}
