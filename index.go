package webhookdiff

// NodeInfo is one entry in a schema index: the effective constraints at a
// single pointer, after local $ref resolution and allOf collapse (§3).
type NodeInfo struct {
	Pointer  string
	Type     []string
	Required bool

	Enum  []any
	Const *ConstValue

	// AdditionalProperties* describe the "additionalProperties" keyword:
	// Set is false when it is absent. When Set is true, exactly one of
	// Bool (a literal true/false) or Schema (a subschema) is non-nil.
	AdditionalPropertiesSet    bool
	AdditionalPropertiesBool   *bool
	AdditionalPropertiesSchema *Schema

	PropertyNamesPattern *string

	Minimum          *Rat
	ExclusiveMinimum *Rat
	Maximum          *Rat
	ExclusiveMaximum *Rat
	MultipleOf       *Rat

	MinLength     *float64
	MaxLength     *float64
	MinItems      *float64
	MaxItems      *float64
	MinProperties *float64
	MaxProperties *float64

	Pattern          *string
	Format           *string
	ContentEncoding  *string
	ContentMediaType *string
}

// Index walks root depth-first, resolving local references and collapsing
// allOf composition as it goes, and returns a map from pointer to NodeInfo
// per §4.7. The root is always present, keyed "/", with Required true (it
// is vacuously required of itself).
func Index(root *Schema) map[string]*NodeInfo {
	out := make(map[string]*NodeInfo)
	walkIndex(root, root, rootPointer, true, out)
	return out
}

func walkIndex(root, node *Schema, pointer string, required bool, out map[string]*NodeInfo) {
	if node == nil {
		return
	}

	resolved := resolveRef(root, node)
	if resolved != nil && len(resolved.AllOf) > 0 {
		withBranches := *resolved
		withBranches.AllOf = make([]*Schema, len(resolved.AllOf))
		for i, branch := range resolved.AllOf {
			withBranches.AllOf[i] = resolveRef(root, branch)
		}
		resolved = &withBranches
	}
	if resolved == nil {
		return
	}

	types := ExtractTypes(resolved)
	resolved = collapse(resolved)
	info := buildNodeInfo(resolved, types, pointer, required)
	out[pointer] = info

	if resolved.Boolean != nil {
		return
	}

	if looksLikeObject(resolved, types) {
		indexObjectChildren(root, resolved, pointer, required, out)
	}
	if looksLikeArray(resolved, types) {
		indexArrayChildren(root, resolved, pointer, out)
	}
}

func buildNodeInfo(s *Schema, types []string, pointer string, required bool) *NodeInfo {
	info := &NodeInfo{
		Pointer:  pointer,
		Required: required,
	}

	if s.Boolean != nil {
		return info
	}

	info.Type = types
	info.Enum = s.Enum
	info.Const = s.Const

	switch {
	case s.AdditionalProperties == nil:
		// absent: AdditionalPropertiesSet stays false
	case s.AdditionalProperties.Boolean != nil:
		info.AdditionalPropertiesSet = true
		info.AdditionalPropertiesBool = s.AdditionalProperties.Boolean
	default:
		info.AdditionalPropertiesSet = true
		info.AdditionalPropertiesSchema = s.AdditionalProperties
	}

	if s.PropertyNames != nil && s.PropertyNames.Pattern != nil {
		info.PropertyNamesPattern = s.PropertyNames.Pattern
	}

	info.Minimum = s.Minimum
	info.ExclusiveMinimum = s.ExclusiveMinimum
	info.Maximum = s.Maximum
	info.ExclusiveMaximum = s.ExclusiveMaximum
	info.MultipleOf = s.MultipleOf

	info.MinLength = s.MinLength
	info.MaxLength = s.MaxLength
	info.MinItems = s.MinItems
	info.MaxItems = s.MaxItems
	info.MinProperties = s.MinProperties
	info.MaxProperties = s.MaxProperties

	info.Pattern = s.Pattern
	info.Format = s.Format
	info.ContentEncoding = s.ContentEncoding
	info.ContentMediaType = s.ContentMediaType

	return info
}

// looksLikeObject reports whether a node should be descended into as an
// object, per §4.7: either its type set says "object", or it simply
// carries a properties keyword (a schema author sometimes omits "type").
func looksLikeObject(s *Schema, types []string) bool {
	for _, t := range types {
		if t == "object" {
			return true
		}
	}
	return s.Properties != nil
}

// looksLikeArray reports whether a node should be descended into as an
// array: either its type set says "array", or it carries items/prefixItems.
func looksLikeArray(s *Schema, types []string) bool {
	for _, t := range types {
		if t == "array" {
			return true
		}
	}
	return s.Items != nil || len(s.PrefixItems) > 0
}

func indexObjectChildren(root, node *Schema, pointer string, nodeRequired bool, out map[string]*NodeInfo) {
	required := make(map[string]bool, len(node.Required))
	for _, r := range node.Required {
		required[r] = true
	}

	if node.Properties != nil {
		for key, prop := range *node.Properties {
			childPtr := childPointer(pointer, key)
			walkIndex(root, prop, childPtr, required[key], out)
		}
	}

	// A literal additionalProperties:true/false is recorded on the parent
	// NodeInfo (see buildNodeInfo) but has no subschema to descend into.
	if node.AdditionalProperties != nil && node.AdditionalProperties.Boolean == nil {
		apPtr := childPointer(pointer, apToken)
		walkIndex(root, node.AdditionalProperties, apPtr, nodeRequired, out)
	}
}

func indexArrayChildren(root, node *Schema, pointer string, out map[string]*NodeInfo) {
	if node.Items != nil {
		itemsPtr := childPointer(pointer, itemsToken)
		walkIndex(root, node.Items, itemsPtr, false, out)
	}
	for i, item := range node.PrefixItems {
		walkIndex(root, item, tupleChildPointer(pointer, i), false, out)
	}
}
