package webhookdiff

import "sort"

// Normalize rewrites the non-standard `required: true` hint found on a
// property schema into the parent's `required: []string` per §4.6,
// merges it with any explicit required array, sorts properties keys for
// determinism, and recurses into every nested schema. A root-level
// `required: true` has no parent to rewrite onto and is dropped.
// Normalize is idempotent: running it twice produces the same result as
// running it once, and never mutates its input.
func Normalize(s *Schema) *Schema {
	out := normalizeNode(s)
	if hasRequiredHint(out) {
		out = withoutRequiredHint(out)
	}
	return out
}

func normalizeNode(s *Schema) *Schema {
	if s == nil || s.Boolean != nil {
		return s
	}

	out := *s

	out.AllOf = normalizeList(s.AllOf)
	out.AnyOf = normalizeList(s.AnyOf)
	out.OneOf = normalizeList(s.OneOf)
	out.Items = normalizeNode(s.Items)
	out.PrefixItems = normalizeList(s.PrefixItems)
	out.AdditionalProperties = normalizeNode(s.AdditionalProperties)
	out.PropertyNames = normalizeNode(s.PropertyNames)
	if s.Defs != nil {
		out.Defs = make(map[string]*Schema, len(s.Defs))
		for k, d := range s.Defs {
			out.Defs[k] = normalizeNode(d)
		}
	}
	if s.Definitions != nil {
		out.Definitions = make(map[string]*Schema, len(s.Definitions))
		for k, d := range s.Definitions {
			out.Definitions[k] = normalizeNode(d)
		}
	}

	if s.Properties != nil {
		normalizedProps, hinted := normalizeProperties(*s.Properties)
		out.Properties = normalizedProps
		out.Required = mergeRequired(s.Required, hinted)
	} else if s.Required != nil {
		sorted := append([]string(nil), s.Required...)
		sort.Strings(sorted)
		out.Required = sorted
	}

	return &out
}

func normalizeList(list []*Schema) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, len(list))
	for i, s := range list {
		out[i] = normalizeNode(s)
	}
	return out
}

// normalizeProperties strips the required:true hint (via its Extra bag
// entry) off each property, returning the normalized map plus the sorted
// set of property names that carried the hint.
func normalizeProperties(props SchemaMap) (*SchemaMap, []string) {
	out := make(SchemaMap, len(props))
	var hinted []string

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop := props[k]
		normalized := normalizeNode(prop)
		if hasRequiredHint(normalized) {
			hinted = append(hinted, k)
			normalized = withoutRequiredHint(normalized)
		}
		out[k] = normalized
	}

	return &out, hinted
}

func hasRequiredHint(s *Schema) bool {
	if s == nil || s.Boolean != nil || s.Extra == nil {
		return false
	}
	v, ok := s.Extra["required"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func withoutRequiredHint(s *Schema) *Schema {
	out := *s
	out.Extra = make(map[string]any, len(s.Extra))
	for k, v := range s.Extra {
		if k != "required" {
			out.Extra[k] = v
		}
	}
	if len(out.Extra) == 0 {
		out.Extra = nil
	}
	return &out
}

func mergeRequired(explicit, hinted []string) []string {
	seen := make(map[string]bool, len(explicit)+len(hinted))
	var out []string
	for _, s := range explicit {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range hinted {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if out == nil {
		return nil
	}
	sort.Strings(out)
	return out
}
