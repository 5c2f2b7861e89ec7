package webhookdiff

import "sort"

// typeNumber and typeInteger are the two names the extractor treats as
// related by subset: every integer is a number, so intersecting {number}
// with {integer} narrows to {integer}, while a type set that unions both
// (an explicit `type: [number, integer]`, or an anyOf/oneOf covering both)
// collapses to just {number} since integer adds nothing to that set.
const (
	typeNumber  = "number"
	typeInteger = "integer"
)

// ExtractTypes computes the effective type set of a schema node per the
// rules in §4.4: an explicit "type" (plus nullable), else the union
// across anyOf/oneOf branches, else the intersection across allOf
// branches, else no signal at all (nil).
func ExtractTypes(s *Schema) []string {
	if s == nil {
		return nil
	}
	if s.Boolean != nil {
		return nil
	}

	if len(s.Type) > 0 {
		types := append([]string(nil), s.Type...)
		if s.Nullable != nil && *s.Nullable {
			types = appendUnique(types, "null")
		}
		return sortedUnique(types)
	}

	if len(s.AnyOf) > 0 || len(s.OneOf) > 0 {
		var union []string
		for _, branch := range s.AnyOf {
			union = appendUnique(union, ExtractTypes(branch)...)
		}
		for _, branch := range s.OneOf {
			union = appendUnique(union, ExtractTypes(branch)...)
		}
		return sortedUnique(union)
	}

	if len(s.AllOf) > 0 {
		return intersectBranchTypes(s.AllOf)
	}

	return nil
}

// intersectBranchTypes intersects the type sets of each allOf branch,
// ignoring branches that carry no type signal at all.
func intersectBranchTypes(branches []*Schema) []string {
	var result []string
	started := false

	for _, branch := range branches {
		branchTypes := ExtractTypes(branch)
		if len(branchTypes) == 0 {
			continue
		}
		if !started {
			result = append([]string(nil), branchTypes...)
			started = true
			continue
		}
		result = intersectTypeSets(result, branchTypes)
	}

	if !started {
		return nil
	}
	return sortedUnique(result)
}

// intersectTypeSets intersects two type sets under integer ⊂ number: a
// "number" on one side matches an "integer" on the other (the
// intersection keeps "integer", the stricter name).
func intersectTypeSets(a, b []string) []string {
	bSet := make(map[string]bool, len(b))
	for _, t := range b {
		bSet[t] = true
	}

	var out []string
	for _, t := range a {
		switch {
		case bSet[t]:
			out = appendUnique(out, t)
		case t == typeNumber && bSet[typeInteger]:
			out = appendUnique(out, typeInteger)
		case t == typeInteger && bSet[typeNumber]:
			out = appendUnique(out, typeInteger)
		}
	}
	return out
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}

// sortedUnique sorts and collapses the integer/number redundancy: if
// "number" is present, "integer" is dropped: as a union, {number, integer}
// means nothing more than {number}, since every integer already is a
// number. This is the union-side reduction; intersectTypeSets applies the
// opposite, narrower rule for allOf.
func sortedUnique(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	hasNumber := false
	for _, t := range types {
		if t == typeNumber {
			hasNumber = true
			break
		}
	}

	out := make([]string, 0, len(types))
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if hasNumber && t == typeInteger {
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	sort.Strings(out)
	return out
}

// typeAllows reports whether candidate is permitted by the type set base,
// treating "integer" as allowed whenever base contains "number" (so a
// narrowing from number to integer is permitted, but not the reverse).
func typeAllows(base []string, candidate string) bool {
	for _, t := range base {
		if t == candidate {
			return true
		}
		if candidate == typeInteger && t == typeNumber {
			return true
		}
	}
	return false
}
