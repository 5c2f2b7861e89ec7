package webhookdiff

import (
	"bytes"
	"maps"

	"github.com/goccy/go-json"
)

// knownSchemaFields lists every JSON Schema keyword (plus the OpenAPI
// nullable extension) the indexer recognizes. Anything else collected off
// an input document lands in Extra instead of a typed field, so the
// indexer's notion of "recognized keywords are a subset of standard JSON
// Schema" (see §3 of the design notes) has a single source of truth.
var knownSchemaFields = map[string]struct{}{
	"$ref":        {},
	"$defs":       {},
	"definitions": {}, // Draft-7 compatibility, folded into $defs on parse

	"allOf": {}, "anyOf": {}, "oneOf": {},

	"type":     {},
	"nullable": {}, // OpenAPI extension
	"enum":     {},
	"const":    {},

	"properties":           {},
	"additionalProperties": {},
	"propertyNames":        {},
	"items":                {},
	"prefixItems":          {},

	"required": {},

	"multipleOf":       {},
	"maximum":          {},
	"exclusiveMaximum": {},
	"minimum":          {},
	"exclusiveMinimum": {},

	"maxLength": {},
	"minLength": {},
	"pattern":   {},

	"maxItems": {},
	"minItems": {},

	"maxProperties": {},
	"minProperties": {},

	"format":           {},
	"contentEncoding":  {},
	"contentMediaType": {},
}

// Schema is a tree of JSON Schema 2020-12 nodes, trimmed to the keywords
// the diff engine actually reasons about (see SPEC_FULL.md §3). A node is
// either a boolean schema (Boolean non-nil, everything else zero) or an
// object schema; the two are mutually exclusive the way the spec's
// "boolean JSON schema" form requires.
type Schema struct {
	// Boolean holds the value of a `true`/`false` schema node. Non-nil iff
	// this node is a boolean schema.
	Boolean *bool `json:"-"`

	// Ref is this node's local $ref, if any. Only "#" and "#/..." forms are
	// meaningful; anything else is left unresolved (see ref.go).
	Ref string `json:"$ref,omitempty"`

	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"` // draft-7 alias for $defs

	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	Type     SchemaType `json:"type,omitempty"`
	Nullable *bool      `json:"nullable,omitempty"` // OpenAPI extension
	Enum     []any      `json:"enum,omitempty"`
	Const    *ConstValue `json:"const,omitempty"`

	Properties           *SchemaMap `json:"properties,omitempty"`
	AdditionalProperties *Schema    `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema    `json:"propertyNames,omitempty"`

	// Items holds the homogeneous-array element schema. PrefixItems holds
	// the tuple-validation item schemas. UnmarshalJSON below maps a JSON
	// array "items" value (draft-07 tuple validation) onto PrefixItems and
	// a JSON object "items" value onto Items, mirroring how 2020-12 readers
	// commonly accept both forms on input.
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`

	Required []string `json:"required,omitempty"`

	MultipleOf       *Rat `json:"multipleOf,omitempty"`
	Maximum          *Rat `json:"maximum,omitempty"`
	ExclusiveMaximum *Rat `json:"exclusiveMaximum,omitempty"`
	Minimum          *Rat `json:"minimum,omitempty"`
	ExclusiveMinimum *Rat `json:"exclusiveMinimum,omitempty"`

	MaxLength *float64 `json:"maxLength,omitempty"`
	MinLength *float64 `json:"minLength,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`

	MaxItems *float64 `json:"maxItems,omitempty"`
	MinItems *float64 `json:"minItems,omitempty"`

	MaxProperties *float64 `json:"maxProperties,omitempty"`
	MinProperties *float64 `json:"minProperties,omitempty"`

	Format           *string `json:"format,omitempty"`
	ContentEncoding  *string `json:"contentEncoding,omitempty"`
	ContentMediaType *string `json:"contentMediaType,omitempty"`

	// ResolvedRef is not populated by this package: the resolver in ref.go
	// returns new nodes rather than caching them here. It never
	// round-trips through JSON.
	ResolvedRef *Schema `json:"-"`

	// Extra holds keywords this package does not recognize, preserved for
	// round-tripping but never consulted by the indexer.
	Extra map[string]any `json:"-"`
}

// UnmarshalJSON implements the boolean-schema / tuple-items polymorphism
// every JSON Schema reader has to handle.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	type Alias Schema
	aux := &struct {
		Items    json.RawMessage `json:"items,omitempty"`
		Required json.RawMessage `json:"required,omitempty"`
		*Alias
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.Items) > 0 {
		trimmed := bytes.TrimSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(aux.Items, &s.PrefixItems); err != nil {
				return err
			}
		} else {
			if err := json.Unmarshal(aux.Items, &s.Items); err != nil {
				return err
			}
		}
	}

	// Most "required" values are a standard string array. Some hand-written
	// property schemas instead spell a single-property requirement as
	// `"required": true` on the property itself; that non-standard hint is
	// preserved via Extra rather than stored on the Required field, and is
	// rewritten onto the parent's required array by Normalize (see
	// normalize.go).
	if len(aux.Required) > 0 {
		trimmed := bytes.TrimSpace(aux.Required)
		switch {
		case len(trimmed) > 0 && trimmed[0] == '[':
			if err := json.Unmarshal(aux.Required, &s.Required); err != nil {
				return err
			}
		case string(trimmed) == "true" || string(trimmed) == "false":
			var hint bool
			if err := json.Unmarshal(aux.Required, &hint); err != nil {
				return err
			}
			if s.Extra == nil {
				s.Extra = map[string]any{}
			}
			s.Extra["required"] = hint
		}
	}

	if s.Defs == nil && s.Definitions != nil {
		s.Defs = s.Definitions
	}

	if constData, ok := rawField(data, "const"); ok {
		s.Const = &ConstValue{}
		if err := s.Const.UnmarshalJSON(constData); err != nil {
			return err
		}
	}

	return s.collectExtraFields(data)
}

func rawField(data []byte, key string) (json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	v, ok := raw[key]
	return v, ok
}

func (s *Schema) collectExtraFields(raw []byte) error {
	var allFields map[string]any
	if err := json.Unmarshal(raw, &allFields); err != nil {
		return err
	}
	for key := range knownSchemaFields {
		delete(allFields, key)
	}
	if len(allFields) == 0 {
		return nil
	}
	if s.Extra == nil {
		s.Extra = allFields
		return nil
	}
	for k, v := range allFields {
		s.Extra[k] = v
	}
	return nil
}

// MarshalJSON implements json.Marshaler, handling the Boolean escape hatch
// and the Const field's manual value unwrap.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Boolean != nil {
		return json.Marshal(*s.Boolean)
	}

	type Alias Schema
	alias := (*Alias)(s)

	data, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	if s.Const != nil {
		result["const"] = s.Const.Value
	}
	maps.Copy(result, s.Extra)

	return json.Marshal(result)
}

// SchemaMap is a map of property name to Schema, used for "properties".
type SchemaMap map[string]*Schema

// SchemaType holds the effective "type" keyword: absent, a single name, or
// a set of names.
type SchemaType []string

// MarshalJSON renders a single-element SchemaType as a bare string, the
// way hand-written schemas almost always spell a single type.
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st) == 1 {
		return json.Marshal(st[0])
	}
	return json.Marshal([]string(st))
}

// UnmarshalJSON accepts both the single-string and array forms of "type".
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*st = SchemaType{single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*st = SchemaType(multi)
		return nil
	}

	return ErrInvalidSchemaType
}

// ConstValue distinguishes "const is absent" from "const is set to null".
type ConstValue struct {
	Value any
	IsSet bool
}

// UnmarshalJSON implements json.Unmarshaler for ConstValue.
func (cv *ConstValue) UnmarshalJSON(data []byte) error {
	if cv == nil {
		return ErrNilConstValue
	}
	cv.IsSet = true
	if string(data) == "null" {
		cv.Value = nil
		return nil
	}
	return json.Unmarshal(data, &cv.Value)
}

// MarshalJSON implements json.Marshaler for ConstValue.
func (cv ConstValue) MarshalJSON() ([]byte, error) {
	if cv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(cv.Value)
}
