package webhookdiff

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Breaking groups the breaking-change findings of a diff, per §6.
type Breaking struct {
	RemovedRequired        []string `json:"removedRequired"`
	RequiredBecameOptional []string `json:"requiredBecameOptional"`
	TypeChanged            []string `json:"typeChanged"`
	ConstraintsChanged     []string `json:"constraintsChanged"`
}

// NonBreaking groups the non-breaking-change findings of a diff.
type NonBreaking struct {
	Added           []string `json:"added"`
	RemovedOptional []string `json:"removedOptional"`
}

// DiffReport is the full result of comparing two indexed schemas.
type DiffReport struct {
	Breaking      Breaking    `json:"breaking"`
	NonBreaking   NonBreaking `json:"nonBreaking"`
	BreakingCount int         `json:"breakingCount"`
}

// Diff compares a baseline and next schema under the consumer-oriented
// semantics of §4.8: widening breaks, narrowing is safe. Both schemas are
// indexed internally; Diff itself never mutates its inputs.
func Diff(base, next *Schema) *DiffReport {
	baseIndex := Index(base)
	nextIndex := Index(next)
	return DiffIndexed(baseIndex, nextIndex)
}

// DiffIndexed compares two already-built indexes, for callers that want to
// index once and diff many times.
func DiffIndexed(base, next map[string]*NodeInfo) *DiffReport {
	report := &DiffReport{}

	basePointers := sortedKeys(base)
	for _, p := range basePointers {
		baseNode := base[p]
		nextNode, inNext := next[p]

		if !inNext {
			handleRemoved(p, baseNode, next, report)
			continue
		}

		if baseNode.Required && !nextNode.Required {
			report.Breaking.RequiredBecameOptional = append(report.Breaking.RequiredBecameOptional, toDisplayPointer(p))
		}

		if isBreakingTypeChange(baseNode, nextNode) {
			entry := fmt.Sprintf("%s (%s -> %s)", toDisplayPointer(p), typeAnnotation(baseNode.Type), typeAnnotation(nextNode.Type))
			report.Breaking.TypeChanged = append(report.Breaking.TypeChanged, entry)
		}

		for _, reason := range constraintChangeReasons(baseNode, nextNode) {
			entry := fmt.Sprintf("%s (%s)", toDisplayPointer(p), reason)
			report.Breaking.ConstraintsChanged = append(report.Breaking.ConstraintsChanged, entry)
		}
	}

	nextPointers := sortedKeys(next)
	for _, p := range nextPointers {
		if _, inBase := base[p]; inBase {
			continue
		}
		handleAdded(p, next[p], base, report)
	}

	sortReport(report)
	fillEmptySlices(report)
	report.BreakingCount = len(report.Breaking.RemovedRequired) +
		len(report.Breaking.RequiredBecameOptional) +
		len(report.Breaking.TypeChanged) +
		len(report.Breaking.ConstraintsChanged)

	return report
}

func handleRemoved(p string, baseNode *NodeInfo, next map[string]*NodeInfo, report *DiffReport) {
	if baseNode.Required {
		report.Breaking.RemovedRequired = append(report.Breaking.RemovedRequired, toDisplayPointer(p))
		return
	}

	parent, ok := next[parentPointer(p)]
	if ok && isClosedObject(parent) {
		report.NonBreaking.RemovedOptional = append(report.NonBreaking.RemovedOptional, toDisplayPointer(p))
	}
}

func handleAdded(p string, nextNode *NodeInfo, base map[string]*NodeInfo, report *DiffReport) {
	last := lastToken(p)
	if last == apToken {
		return
	}

	parentPtr := parentPointer(p)
	isRealProperty := last != itemsToken && last != tupleItemsToken && lastToken(parentPtr) != tupleItemsToken

	baseParent, parentExists := base[parentPtr]

	if isRealProperty && parentExists && isClosedObject(baseParent) {
		entry := fmt.Sprintf("%s (added under closed object %s)", toDisplayPointer(p), toDisplayPointer(parentPtr))
		report.Breaking.ConstraintsChanged = append(report.Breaking.ConstraintsChanged, entry)
		return
	}

	if isRealProperty && parentExists && baseParent.AdditionalPropertiesSet && baseParent.AdditionalPropertiesSchema != nil {
		baseAP, ok := base[childPointer(parentPtr, apToken)]
		if ok && len(baseAP.Type) > 0 && isBreakingTypeChange(baseAP, nextNode) {
			entry := fmt.Sprintf(
				"%s (added key violates additionalProperties schema %s: %s -> %s)",
				toDisplayPointer(p), toDisplayPointer(parentPtr), typeAnnotation(baseAP.Type), typeAnnotation(nextNode.Type),
			)
			report.Breaking.ConstraintsChanged = append(report.Breaking.ConstraintsChanged, entry)
			return
		}
	}

	report.NonBreaking.Added = append(report.NonBreaking.Added, toDisplayPointer(p))
}

func isClosedObject(n *NodeInfo) bool {
	return n.AdditionalPropertiesSet && n.AdditionalPropertiesBool != nil && !*n.AdditionalPropertiesBool
}

// isBreakingTypeChange implements §4.8.1.
func isBreakingTypeChange(base, next *NodeInfo) bool {
	if len(base.Type) == 0 {
		return false
	}
	if len(next.Type) == 0 {
		return base.Required
	}
	for _, n := range next.Type {
		if !typeAllows(base.Type, n) {
			return true
		}
	}
	return false
}

func typeAnnotation(types []string) string {
	if len(types) == 0 {
		return "undefined"
	}
	if len(types) == 1 {
		return fmt.Sprintf("%q", types[0])
	}
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// constraintChangeReasons implements §4.8.2, returning the ordered list of
// breaking-constraint-change reasons accumulated at one pointer.
func constraintChangeReasons(base, next *NodeInfo) []string {
	var reasons []string

	if r := enumReason(base, next); r != "" {
		reasons = append(reasons, r)
	}
	if r := constReason(base, next); r != "" {
		reasons = append(reasons, r)
	}
	if r := additionalPropertiesReason(base, next); r != "" {
		reasons = append(reasons, r)
	}
	reasons = append(reasons, numericBoundReasons(base, next)...)
	if r := multipleOfReason(base, next); r != "" {
		reasons = append(reasons, r)
	}
	reasons = append(reasons, lengthBoundReasons(base, next)...)
	reasons = append(reasons, stringKeywordReasons(base, next)...)

	return reasons
}

func enumReason(base, next *NodeInfo) string {
	if base.Enum == nil {
		return ""
	}
	if next.Enum != nil {
		for _, nv := range next.Enum {
			if !memberOf(nv, base.Enum) {
				return "enum widened"
			}
		}
		return ""
	}
	if next.Const != nil && next.Const.IsSet {
		if !memberOf(next.Const.Value, base.Enum) {
			return "enum widened"
		}
	}
	return ""
}

func memberOf(v any, set []any) bool {
	for _, m := range set {
		if ValuesEqual(v, m) {
			return true
		}
	}
	return false
}

func constReason(base, next *NodeInfo) string {
	if base.Const == nil || !base.Const.IsSet {
		return ""
	}
	if next.Const != nil && next.Const.IsSet {
		if !ValuesEqual(base.Const.Value, next.Const.Value) {
			return "const changed"
		}
		return ""
	}
	if next.Enum != nil {
		for _, nv := range next.Enum {
			if !ValuesEqual(base.Const.Value, nv) {
				return "const widened"
			}
		}
	}
	return ""
}

func additionalPropertiesReason(base, next *NodeInfo) string {
	if !base.AdditionalPropertiesSet {
		return ""
	}
	baseClosed := base.AdditionalPropertiesBool != nil && !*base.AdditionalPropertiesBool
	baseSchema := base.AdditionalPropertiesSchema != nil

	if baseClosed {
		if !next.AdditionalPropertiesSet {
			return ""
		}
		if next.AdditionalPropertiesSchema != nil || (next.AdditionalPropertiesBool != nil && *next.AdditionalPropertiesBool) {
			return "additionalProperties opened"
		}
		return ""
	}

	if baseSchema {
		if next.AdditionalPropertiesSet && next.AdditionalPropertiesBool != nil && *next.AdditionalPropertiesBool {
			return "additionalProperties schema loosened"
		}
		return ""
	}

	return ""
}

func numericBoundReasons(base, next *NodeInfo) []string {
	var reasons []string

	if r := lowerBoundReason(base.Minimum, base.ExclusiveMinimum, next.Minimum, next.ExclusiveMinimum); r != "" {
		reasons = append(reasons, r)
	}
	if r := upperBoundReason(base.Maximum, base.ExclusiveMaximum, next.Maximum, next.ExclusiveMaximum); r != "" {
		reasons = append(reasons, r)
	}

	return reasons
}

// effectiveLower and effectiveUpper pick the tighter of an inclusive/exclusive pair on one
// side of a lower or upper bound, returning its value and whether it is
// exclusive. Returns ok=false when neither is present.
func effectiveLower(min, exclMin *Rat) (bound *Rat, exclusive, ok bool) {
	switch {
	case min != nil && exclMin != nil:
		if cmpRat(exclMin, min) >= 0 {
			return exclMin, true, true
		}
		return min, false, true
	case exclMin != nil:
		return exclMin, true, true
	case min != nil:
		return min, false, true
	default:
		return nil, false, false
	}
}

func effectiveUpper(max, exclMax *Rat) (bound *Rat, exclusive, ok bool) {
	switch {
	case max != nil && exclMax != nil:
		if cmpRat(exclMax, max) <= 0 {
			return exclMax, true, true
		}
		return max, false, true
	case exclMax != nil:
		return exclMax, true, true
	case max != nil:
		return max, false, true
	default:
		return nil, false, false
	}
}

func lowerBoundReason(baseMin, baseExclMin, nextMin, nextExclMin *Rat) string {
	baseBound, baseExclusive, baseOK := effectiveLower(baseMin, baseExclMin)
	if !baseOK {
		return ""
	}
	nextBound, nextExclusive, nextOK := effectiveLower(nextMin, nextExclMin)
	if !nextOK {
		return ""
	}

	cmp := cmpRat(nextBound, baseBound)
	loosened := cmp < 0 || (cmp == 0 && baseExclusive && !nextExclusive)
	if !loosened {
		return ""
	}
	return fmt.Sprintf("minimum loosened (%s -> %s)", boundString(baseBound, baseExclusive), boundString(nextBound, nextExclusive))
}

func upperBoundReason(baseMax, baseExclMax, nextMax, nextExclMax *Rat) string {
	baseBound, baseExclusive, baseOK := effectiveUpper(baseMax, baseExclMax)
	if !baseOK {
		return ""
	}
	nextBound, nextExclusive, nextOK := effectiveUpper(nextMax, nextExclMax)
	if !nextOK {
		return ""
	}

	cmp := cmpRat(nextBound, baseBound)
	loosened := cmp > 0 || (cmp == 0 && baseExclusive && !nextExclusive)
	if !loosened {
		return ""
	}
	return fmt.Sprintf("maximum loosened (%s -> %s)", boundString(baseBound, baseExclusive), boundString(nextBound, nextExclusive))
}

func boundString(r *Rat, exclusive bool) string {
	if exclusive {
		return "exclusive " + FormatRat(r)
	}
	return FormatRat(r)
}

func multipleOfReason(base, next *NodeInfo) string {
	if base.MultipleOf == nil || next.MultipleOf == nil {
		return ""
	}
	if cmpRat(base.MultipleOf, next.MultipleOf) == 0 {
		return ""
	}
	if isExactMultiple(next.MultipleOf, base.MultipleOf) {
		return ""
	}
	return fmt.Sprintf("multipleOf changed (%s -> %s)", FormatRat(base.MultipleOf), FormatRat(next.MultipleOf))
}

// isExactMultiple reports whether next is an integer multiple of base,
// i.e. every value satisfying "multipleOf next" also satisfies
// "multipleOf base" (next narrows, not widens).
func isExactMultiple(next, base *Rat) bool {
	if base.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(next.Rat, base.Rat)
	return quotient.IsInt()
}

func lengthBoundReasons(base, next *NodeInfo) []string {
	var reasons []string

	if r := maxFloatReason("maxLength", base.MaxLength, next.MaxLength); r != "" {
		reasons = append(reasons, r)
	}
	if r := minFloatReason("minLength", base.MinLength, next.MinLength); r != "" {
		reasons = append(reasons, r)
	}
	if r := maxFloatReason("maxItems", base.MaxItems, next.MaxItems); r != "" {
		reasons = append(reasons, r)
	}
	if r := minFloatReason("minItems", base.MinItems, next.MinItems); r != "" {
		reasons = append(reasons, r)
	}
	if r := maxFloatReason("maxProperties", base.MaxProperties, next.MaxProperties); r != "" {
		reasons = append(reasons, r)
	}
	if r := minFloatReason("minProperties", base.MinProperties, next.MinProperties); r != "" {
		reasons = append(reasons, r)
	}

	return reasons
}

func maxFloatReason(name string, base, next *float64) string {
	if base == nil || next == nil {
		return ""
	}
	if *next > *base {
		return fmt.Sprintf("%s loosened (%v -> %v)", name, *base, *next)
	}
	return ""
}

func minFloatReason(name string, base, next *float64) string {
	if base == nil || next == nil {
		return ""
	}
	if *next < *base {
		return fmt.Sprintf("%s loosened (%v -> %v)", name, *base, *next)
	}
	return ""
}

func stringKeywordReasons(base, next *NodeInfo) []string {
	var reasons []string

	if r := stringFieldReason("pattern", base.Pattern, next.Pattern); r != "" {
		reasons = append(reasons, r)
	}
	if r := stringFieldReason("format", base.Format, next.Format); r != "" {
		reasons = append(reasons, r)
	}
	if r := stringFieldReason("contentEncoding", base.ContentEncoding, next.ContentEncoding); r != "" {
		reasons = append(reasons, r)
	}
	if r := stringFieldReason("contentMediaType", base.ContentMediaType, next.ContentMediaType); r != "" {
		reasons = append(reasons, r)
	}
	if r := stringFieldReason("propertyNames.pattern", base.PropertyNamesPattern, next.PropertyNamesPattern); r != "" {
		reasons = append(reasons, r)
	}

	return reasons
}

func stringFieldReason(name string, base, next *string) string {
	if base == nil || next == nil {
		return ""
	}
	if *base == *next {
		return ""
	}
	return fmt.Sprintf("%s changed (%q -> %q)", name, *base, *next)
}

func sortedKeys(m map[string]*NodeInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortReport sorts every list in the report per §4.8.3: plain pointer
// lists lexicographically, annotated lists by the pointer prefix before
// the first space.
func sortReport(r *DiffReport) {
	sort.Strings(r.Breaking.RemovedRequired)
	sort.Strings(r.Breaking.RequiredBecameOptional)
	sort.Strings(r.NonBreaking.Added)
	sort.Strings(r.NonBreaking.RemovedOptional)
	sortAnnotated(r.Breaking.TypeChanged)
	sortAnnotated(r.Breaking.ConstraintsChanged)
}

func sortAnnotated(entries []string) {
	sort.Slice(entries, func(i, j int) bool {
		return annotatedPrefix(entries[i]) < annotatedPrefix(entries[j])
	})
}

// fillEmptySlices ensures every report list serializes as a JSON array
// ([]) rather than null when it has no entries, since embedders (CI
// wrappers, Action outputs) generally expect a stable shape.
func fillEmptySlices(r *DiffReport) {
	if r.Breaking.RemovedRequired == nil {
		r.Breaking.RemovedRequired = []string{}
	}
	if r.Breaking.RequiredBecameOptional == nil {
		r.Breaking.RequiredBecameOptional = []string{}
	}
	if r.Breaking.TypeChanged == nil {
		r.Breaking.TypeChanged = []string{}
	}
	if r.Breaking.ConstraintsChanged == nil {
		r.Breaking.ConstraintsChanged = []string{}
	}
	if r.NonBreaking.Added == nil {
		r.NonBreaking.Added = []string{}
	}
	if r.NonBreaking.RemovedOptional == nil {
		r.NonBreaking.RemovedOptional = []string{}
	}
}

func annotatedPrefix(entry string) string {
	if idx := strings.Index(entry, " "); idx >= 0 {
		return entry[:idx]
	}
	return entry
}
