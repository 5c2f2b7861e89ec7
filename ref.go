package webhookdiff

import "strings"

// maxRefChain bounds the number of hops resolveRef will follow before
// treating the chain as a cycle. A real schema's $defs graph is never this
// deep; this is a backstop against pathological or adversarial input, not
// a tuning knob.
const maxRefChain = 64

// isLocalRef reports whether ref targets the root document ("#" or
// "#/...") rather than an external document.
func isLocalRef(ref string) bool {
	return ref == "#" || strings.HasPrefix(ref, "#/")
}

// resolveRef resolves node's local $ref against root, per §4.2: walk RFC
// 6901 tokens from root to the referent, then merge the node's own
// (non-$ref) keys on top of the referent so that local overrides win.
// Chains of references are followed with a visited set; hitting a cycle
// stops at the last successfully resolved node. A non-local reference, or
// a node with no $ref at all, is returned unchanged.
func resolveRef(root, node *Schema) *Schema {
	if node == nil || node.Ref == "" {
		return node
	}
	if !isLocalRef(node.Ref) {
		return node
	}

	visited := map[string]bool{}
	return followRefChain(root, node, visited)
}

func followRefChain(root, node *Schema, visited map[string]bool) *Schema {
	if node == nil || node.Ref == "" || !isLocalRef(node.Ref) {
		return node
	}
	if len(visited) > maxRefChain || visited[node.Ref] {
		return node
	}
	visited[node.Ref] = true

	target := walkPointer(root, node.Ref)
	if target == nil {
		return node
	}

	merged := overlay(target, node)

	if merged.Ref != "" && isLocalRef(merged.Ref) && merged.Ref != node.Ref {
		return followRefChain(root, merged, visited)
	}
	return merged
}

// walkPointer walks the tokens of a local $ref ("#" or "#/a/b/0") from
// root to the referenced node, applying RFC 6901 unescaping to each
// token. Returns nil if any segment of the path does not exist.
func walkPointer(root *Schema, ref string) *Schema {
	if ref == "#" {
		return root
	}

	pointer := strings.TrimPrefix(ref, "#")
	tokens := pointerTokens(pointer)

	current := root
	for _, token := range tokens {
		if current == nil {
			return nil
		}
		current = stepInto(current, token)
	}
	return current
}

// stepInto resolves a single RFC 6901 token against a schema node, the
// way $defs/properties/array-index lookups are actually spelled in a
// JSON Schema document. Container-naming tokens ($defs, properties, …)
// name a map or list that has no schema of its own; stepInto leaves node
// unchanged for those so the following token performs the actual lookup
// against it, mirroring a literal RFC 6901 walk over the typed tree.
func stepInto(node *Schema, token string) *Schema {
	if node == nil {
		return nil
	}

	switch token {
	case "$defs", "definitions", "properties", "prefixItems", "allOf", "anyOf", "oneOf":
		return node
	case "items":
		return node.Items
	}

	if node.Defs != nil {
		if child, ok := node.Defs[token]; ok {
			return child
		}
	}
	if node.Properties != nil {
		if child, ok := (*node.Properties)[token]; ok {
			return child
		}
	}
	if idx, ok := parseArrayIndex(token); ok {
		if idx >= 0 && idx < len(node.PrefixItems) {
			return node.PrefixItems[idx]
		}
		if idx >= 0 && idx < len(node.AllOf) {
			return node.AllOf[idx]
		}
		if idx >= 0 && idx < len(node.AnyOf) {
			return node.AnyOf[idx]
		}
		if idx >= 0 && idx < len(node.OneOf) {
			return node.OneOf[idx]
		}
	}
	return nil
}

func parseArrayIndex(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	n := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// overlay returns a new node that is the referent with node's own keys
// layered on top — local keys win. Neither input is mutated, per the
// read-only contract on indexer inputs.
func overlay(referent, node *Schema) *Schema {
	if referent == nil {
		return node
	}
	if referent.Boolean != nil && isBareRef(node) {
		return referent
	}

	merged := *referent

	if len(node.AllOf) > 0 {
		merged.AllOf = node.AllOf
	}
	if len(node.AnyOf) > 0 {
		merged.AnyOf = node.AnyOf
	}
	if len(node.OneOf) > 0 {
		merged.OneOf = node.OneOf
	}
	if len(node.Type) > 0 {
		merged.Type = node.Type
	}
	if node.Nullable != nil {
		merged.Nullable = node.Nullable
	}
	if node.Enum != nil {
		merged.Enum = node.Enum
	}
	if node.Const != nil {
		merged.Const = node.Const
	}
	if node.Properties != nil {
		merged.Properties = node.Properties
	}
	if node.AdditionalProperties != nil {
		merged.AdditionalProperties = node.AdditionalProperties
	}
	if node.PropertyNames != nil {
		merged.PropertyNames = node.PropertyNames
	}
	if node.Items != nil {
		merged.Items = node.Items
	}
	if node.PrefixItems != nil {
		merged.PrefixItems = node.PrefixItems
	}
	if node.Required != nil {
		merged.Required = node.Required
	}
	if node.MultipleOf != nil {
		merged.MultipleOf = node.MultipleOf
	}
	if node.Maximum != nil {
		merged.Maximum = node.Maximum
	}
	if node.ExclusiveMaximum != nil {
		merged.ExclusiveMaximum = node.ExclusiveMaximum
	}
	if node.Minimum != nil {
		merged.Minimum = node.Minimum
	}
	if node.ExclusiveMinimum != nil {
		merged.ExclusiveMinimum = node.ExclusiveMinimum
	}
	if node.MaxLength != nil {
		merged.MaxLength = node.MaxLength
	}
	if node.MinLength != nil {
		merged.MinLength = node.MinLength
	}
	if node.Pattern != nil {
		merged.Pattern = node.Pattern
	}
	if node.MaxItems != nil {
		merged.MaxItems = node.MaxItems
	}
	if node.MinItems != nil {
		merged.MinItems = node.MinItems
	}
	if node.MaxProperties != nil {
		merged.MaxProperties = node.MaxProperties
	}
	if node.MinProperties != nil {
		merged.MinProperties = node.MinProperties
	}
	if node.Format != nil {
		merged.Format = node.Format
	}
	if node.ContentEncoding != nil {
		merged.ContentEncoding = node.ContentEncoding
	}
	if node.ContentMediaType != nil {
		merged.ContentMediaType = node.ContentMediaType
	}
	if node.Extra != nil {
		merged.Extra = node.Extra
	}

	return &merged
}

// isBareRef reports whether node carries nothing but a $ref, i.e. there
// are no local keys to overlay onto a boolean referent.
func isBareRef(node *Schema) bool {
	return len(node.AllOf) == 0 && len(node.AnyOf) == 0 && len(node.OneOf) == 0 &&
		len(node.Type) == 0 && node.Nullable == nil && node.Enum == nil &&
		node.Const == nil && node.Properties == nil && node.AdditionalProperties == nil &&
		node.PropertyNames == nil && node.Items == nil && node.PrefixItems == nil &&
		node.Required == nil && node.MultipleOf == nil && node.Maximum == nil &&
		node.ExclusiveMaximum == nil && node.Minimum == nil && node.ExclusiveMinimum == nil &&
		node.MaxLength == nil && node.MinLength == nil && node.Pattern == nil &&
		node.MaxItems == nil && node.MinItems == nil && node.MaxProperties == nil &&
		node.MinProperties == nil && node.Format == nil && node.ContentEncoding == nil &&
		node.ContentMediaType == nil
}
