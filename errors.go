package webhookdiff

import "errors"

// === Parsing & schema-shape errors ===
var (
	// ErrInvalidSchemaType is returned when the "type" keyword is neither a
	// string nor an array of strings.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrNilConstValue is returned when UnmarshalJSON is called on a nil
	// *ConstValue receiver.
	ErrNilConstValue = errors.New("const value receiver is nil")

	// ErrUnsupportedTypeForRat is returned when a numeric bound keyword
	// carries a JSON value that cannot be interpreted as a number.
	ErrUnsupportedTypeForRat = errors.New("unsupported type for numeric bound")

	// ErrRatConversion is returned when a numeric bound's textual form
	// cannot be parsed into a rational number.
	ErrRatConversion = errors.New("numeric bound conversion failed")
)

// === CLI / embedding errors (used by cmd/webhookdiff) ===
var (
	// ErrReadInput is returned when a baseline or next input file cannot be
	// read from disk or stdin.
	ErrReadInput = errors.New("read input failed")

	// ErrParseInput is returned when a baseline or next input file is not
	// valid JSON or YAML.
	ErrParseInput = errors.New("parse input failed")

	// ErrApplyPatch is returned when an RFC 6902 patch cannot be applied to
	// the baseline schema to produce the next schema.
	ErrApplyPatch = errors.New("apply json patch failed")

	// ErrMissingNextInput is returned when neither a next schema, a next
	// payload, nor a patch was supplied.
	ErrMissingNextInput = errors.New("no next schema, payload, or patch supplied")

	// ErrMissingBaseInput is returned when no baseline schema was supplied.
	ErrMissingBaseInput = errors.New("no base schema supplied")
)
