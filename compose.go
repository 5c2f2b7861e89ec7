package webhookdiff

import "github.com/goccy/go-json"

// collapse materializes allOf composition onto node per §4.3: each branch
// is recursively collapsed, then folded onto a copy of node under
// intersection semantics. Collapse never mutates node or any branch; it
// builds new Schema values throughout, honoring the read-only contract on
// indexer inputs (see §5).
func collapse(node *Schema) *Schema {
	if node == nil || node.Boolean != nil || len(node.AllOf) == 0 {
		return node
	}

	result := *node
	result.AllOf = nil

	for _, branch := range node.AllOf {
		collapsed := collapse(branch)
		result = *foldBranch(&result, collapsed)
	}

	return &result
}

// foldBranch folds a single collapsed allOf branch onto acc under
// intersection semantics, returning a new Schema.
func foldBranch(acc, branch *Schema) *Schema {
	if branch == nil || branch.Boolean != nil {
		return acc
	}

	out := *acc

	out.Required = unionStrings(acc.Required, branch.Required)
	out.Properties = composeProperties(acc.Properties, branch.Properties)
	out.AdditionalProperties = composeAdditionalProperties(acc.AdditionalProperties, branch.AdditionalProperties)

	out.Minimum = stricterBound(acc.Minimum, branch.Minimum, true)
	out.ExclusiveMinimum = stricterBound(acc.ExclusiveMinimum, branch.ExclusiveMinimum, true)
	out.MinLength = stricterFloat(acc.MinLength, branch.MinLength, true)
	out.MinItems = stricterFloat(acc.MinItems, branch.MinItems, true)
	out.MinProperties = stricterFloat(acc.MinProperties, branch.MinProperties, true)

	out.Maximum = stricterBound(acc.Maximum, branch.Maximum, false)
	out.ExclusiveMaximum = stricterBound(acc.ExclusiveMaximum, branch.ExclusiveMaximum, false)
	out.MaxLength = stricterFloat(acc.MaxLength, branch.MaxLength, false)
	out.MaxItems = stricterFloat(acc.MaxItems, branch.MaxItems, false)
	out.MaxProperties = stricterFloat(acc.MaxProperties, branch.MaxProperties, false)

	out.MultipleOf = agreeRat(acc.MultipleOf, branch.MultipleOf)
	out.Pattern = agreeString(acc.Pattern, branch.Pattern)
	out.Format = agreeString(acc.Format, branch.Format)
	out.ContentEncoding = agreeString(acc.ContentEncoding, branch.ContentEncoding)
	out.ContentMediaType = agreeString(acc.ContentMediaType, branch.ContentMediaType)
	out.PropertyNames = agreePropertyNames(acc.PropertyNames, branch.PropertyNames)

	out.Items = composeItems(acc.Items, acc.PrefixItems, branch.Items, branch.PrefixItems, &out)

	return &out
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// composeProperties merges two properties maps key by key: a key present
// on both sides is replaced by the composition of the two branch schemas
// (wrapped as an allOf pair so nested collapse applies uniformly);
// a key present on only one side carries over unchanged.
func composeProperties(a, b *SchemaMap) *SchemaMap {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := make(SchemaMap, len(*a)+len(*b))
	for k, v := range *a {
		out[k] = v
	}
	for k, bv := range *b {
		if av, ok := out[k]; ok {
			out[k] = collapse(&Schema{AllOf: []*Schema{av, bv}})
		} else {
			out[k] = bv
		}
	}
	return &out
}

// composeAdditionalProperties implements §4.3's additionalProperties
// fold: false wins over everything, a subschema composes with another
// subschema, and true yields to any subschema.
func composeAdditionalProperties(a, b *Schema) *Schema {
	switch {
	case a != nil && a.Boolean != nil && !*a.Boolean:
		return a
	case b != nil && b.Boolean != nil && !*b.Boolean:
		return b
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Boolean != nil && *a.Boolean:
		return b
	case b.Boolean != nil && *b.Boolean:
		return a
	default:
		return collapse(&Schema{AllOf: []*Schema{a, b}})
	}
}

// stricterBound picks the tighter of two optional Rat bounds: the maximum
// of the two for a lower bound (wantMax=true), the minimum for an upper
// bound.
func stricterBound(a, b *Rat, wantMax bool) *Rat {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	cmp := cmpRat(a, b)
	if wantMax {
		if cmp >= 0 {
			return a
		}
		return b
	}
	if cmp <= 0 {
		return a
	}
	return b
}

func stricterFloat(a, b *float64, wantMax bool) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	if wantMax {
		if *a >= *b {
			return a
		}
		return b
	}
	if *a <= *b {
		return a
	}
	return b
}

// agreeRat keeps a value present on only one side, and keeps two present
// values only if they are equal; two differing values are dropped, since
// the intersection of two differing multipleOf constraints is not
// guaranteed to equal either of them.
func agreeRat(a, b *Rat) *Rat {
	if a == nil || b == nil {
		if a == nil {
			return b
		}
		return a
	}
	if cmpRat(a, b) == 0 {
		return a
	}
	return nil
}

func agreeString(a, b *string) *string {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a == *b {
		return a
	}
	return nil
}

func agreePropertyNames(a, b *Schema) *Schema {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if ValuesEqual(schemaToAny(a), schemaToAny(b)) {
		return a
	}
	return nil
}

// schemaToAny renders a Schema node through its own MarshalJSON into a
// generic value, so agreePropertyNames can reuse the value canonicalizer
// for structural equality instead of a bespoke comparator.
func schemaToAny(s *Schema) any {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

// composeItems implements §4.3's items fold: two homogeneous-array
// element schemas compose; a tuple on either side is left as-is relative
// to a plain schema (tuple × schema is not merged). Tuple × tuple
// composes element-wise up to the shorter length; any extra trailing
// elements of the longer tuple carry over unchanged.
func composeItems(accItems *Schema, accTuple []*Schema, branchItems *Schema, branchTuple []*Schema, out *Schema) *Schema {
	switch {
	case len(accTuple) > 0 && len(branchTuple) > 0:
		out.PrefixItems = composeTuples(accTuple, branchTuple)
		return nil
	case len(accTuple) > 0 || len(branchTuple) > 0:
		if len(accTuple) > 0 {
			out.PrefixItems = accTuple
		} else {
			out.PrefixItems = branchTuple
		}
		return nil
	case accItems == nil:
		return branchItems
	case branchItems == nil:
		return accItems
	default:
		return collapse(&Schema{AllOf: []*Schema{accItems, branchItems}})
	}
}

func composeTuples(a, b []*Schema) []*Schema {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*Schema, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(a):
			out[i] = b[i]
		case i >= len(b):
			out[i] = a[i]
		default:
			out[i] = collapse(&Schema{AllOf: []*Schema{a[i], b[i]}})
		}
	}
	return out
}
