package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	goyaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-json"

	"github.com/holo-oc/webhookdiff"
)

// readFile reads path, treating "-" as stdin.
func readFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", webhookdiff.ErrReadInput, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrReadInput, path, err)
	}
	return data, nil
}

// readPayload reads and parses path as a generic JSON/YAML value, for
// schema inference from a concrete payload sample.
func readPayload(path string) (any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	normalized, err := toJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrParseInput, path, err)
	}

	var value any
	if err := json.Unmarshal(normalized, &value); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrParseInput, path, err)
	}
	return value, nil
}

// toJSON passes already-JSON input through unchanged and converts YAML
// input to JSON by round-tripping it through a generic value, so every
// downstream consumer only ever sees JSON bytes.
func toJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return data, nil
	}

	var value any
	if err := goyaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return json.Marshal(value)
}
