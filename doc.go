// Package webhookdiff implements the producer-change diff engine for
// webhook contract testing: given a baseline JSON Schema and either a new
// payload sample or a new schema, it classifies the differences as
// breaking or non-breaking under consumer-oriented semantics and reports
// them with stable JSON-Pointer locations.
//
// The package is a pure, deterministic transformation over *Schema values
// and map[string]any payloads: Infer, Normalize, and Diff never perform
// I/O and never mutate their inputs.
package webhookdiff
