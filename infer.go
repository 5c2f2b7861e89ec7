package webhookdiff

import "sort"

// Infer produces a JSON Schema describing a single concrete payload value,
// per §4.5. A scalar yields a bare type; an object yields sorted,
// recursive properties plus a required list containing every key (a
// single sample gives no basis for optionality); an array yields the
// schema every element must satisfy, merging conservatively when elements
// disagree. The inferer deliberately omits additionalProperties and most
// constraint keywords — absence of a constraint in an inferred schema
// must never be read as "this constraint was removed" (see diff.go).
func Infer(value any) *Schema {
	switch v := value.(type) {
	case nil:
		return &Schema{Type: SchemaType{"null"}}
	case bool:
		return &Schema{Type: SchemaType{"boolean"}}
	case string:
		return &Schema{Type: SchemaType{"string"}}
	case float64:
		return &Schema{Type: SchemaType{inferNumberType(v)}}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &Schema{Type: SchemaType{"integer"}}
	case map[string]any:
		return inferObject(v)
	case []any:
		return inferArray(v)
	default:
		return &Schema{}
	}
}

func inferNumberType(f float64) string {
	if f == float64(int64(f)) {
		return "integer"
	}
	return "number"
}

func inferObject(obj map[string]any) *Schema {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	properties := make(SchemaMap, len(keys))
	for _, k := range keys {
		properties[k] = Infer(obj[k])
	}

	return &Schema{
		Type:       SchemaType{"object"},
		Properties: &properties,
		Required:   keys,
	}
}

func inferArray(arr []any) *Schema {
	if len(arr) == 0 {
		return &Schema{Type: SchemaType{"array"}}
	}

	items := Infer(arr[0])
	for _, elem := range arr[1:] {
		items = mergeInferred(items, Infer(elem))
	}

	return &Schema{Type: SchemaType{"array"}, Items: items}
}

// mergeInferred conservatively widens two inferred schemas describing
// different elements of the same array, so that a field present across
// every sampled element keeps its narrower schema while a field that
// varies, or a type that varies, widens rather than contradicts.
func mergeInferred(a, b *Schema) *Schema {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	widened := widenTypes(a.Type, b.Type)
	merged := &Schema{Type: widened}

	if isObjectType(widened) && a.Properties != nil && b.Properties != nil {
		merged.Properties, merged.Required = mergeInferredProperties(a, b)
	}

	if isArrayType(widened) {
		merged.Items = mergeInferred(a.Items, b.Items)
	}

	return merged
}

func mergeInferredProperties(a, b *Schema) (*SchemaMap, []string) {
	out := make(SchemaMap)
	for k, v := range *a.Properties {
		out[k] = v
	}
	for k, bv := range *b.Properties {
		if av, ok := out[k]; ok {
			out[k] = mergeInferred(av, bv)
		} else {
			out[k] = bv
		}
	}

	required := intersectStringSlices(a.Required, b.Required)
	sort.Strings(required)

	return &out, required
}

func intersectStringSlices(a, b []string) []string {
	bSet := make(map[string]bool, len(b))
	for _, s := range b {
		bSet[s] = true
	}
	var out []string
	for _, s := range a {
		if bSet[s] {
			out = append(out, s)
		}
	}
	return out
}

// widenType widens two single type names: equal types pass through,
// integer and number widen to number, anything else carries no usable
// signal.
func widenType(a, b string) string {
	if a == b {
		return a
	}
	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}
	return ""
}

// widenTypes widens two type sets element-wise, falling back to their
// union when no pairwise widening applies.
func widenTypes(a, b SchemaType) SchemaType {
	if len(a) == 1 && len(b) == 1 {
		if w := widenType(a[0], b[0]); w != "" {
			return SchemaType{w}
		}
	}
	return SchemaType(sortedUnique(appendUnique(append([]string(nil), a...), b...)))
}

func isObjectType(t SchemaType) bool {
	for _, name := range t {
		if name == "object" {
			return true
		}
	}
	return false
}

func isArrayType(t SchemaType) bool {
	for _, name := range t {
		if name == "array" {
			return true
		}
	}
	return false
}
