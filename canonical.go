package webhookdiff

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Canonicalize produces a stable string serialization of an arbitrary
// JSON-like value, suitable for equality comparisons of const/enum
// members. Two values canonicalize to the same string iff they denote the
// same JSON value modulo object key order — with one caveat: since Go's
// JSON decoders hand us float64/json.Number/map[string]any/[]any trees,
// "the same JSON value" here means "the same decoded tree", not bit-exact
// floating point equality against some other representation.
//
// Non-JSON leaves (nil channel/func/complex values) and cycles serialize
// to distinguishable sentinel strings so they never collide with real
// data; Canonicalize never panics and never returns an ambiguous result.
func Canonicalize(v any) string {
	var b strings.Builder
	canonicalizeInto(&b, v, make(map[uintptr]bool))
	return b.String()
}

func canonicalizeInto(b *strings.Builder, v any, visiting map[uintptr]bool) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		b.WriteString(strconv.Quote(val))
	case float64:
		canonicalizeFloat(b, val)
	case float32:
		canonicalizeFloat(b, float64(val))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprintf(b, "%d", val)
	case *big.Int:
		b.WriteString(val.String())
	case *big.Rat:
		if val.IsInt() {
			b.WriteString(val.Num().String())
		} else {
			b.WriteString(val.RatString())
		}
	case []any:
		withCycleGuard(b, v, visiting, func() { canonicalizeArray(b, val, visiting) })
	case map[string]any:
		withCycleGuard(b, v, visiting, func() { canonicalizeObject(b, val, visiting) })
	default:
		canonicalizeReflective(b, v, visiting)
	}
}

func canonicalizeFloat(b *strings.Builder, f float64) {
	// Integral floats serialize without a fractional part so that 1.0 and
	// 1 canonicalize identically — JSON itself makes no int/float
	// distinction, and an inferred schema's const/enum samples routinely
	// come through as float64 regardless of whether the source literal had
	// a decimal point.
	if f == float64(int64(f)) {
		fmt.Fprintf(b, "%d", int64(f))
		return
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

// pointerIdentity returns the address backing a map or slice value, for
// cycle detection, and ok=false for anything else (including nil, or
// types reflect cannot take a Pointer() of).
func pointerIdentity(v any) (ptr uintptr, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

// withCycleGuard marks v as in-progress by its backing pointer before
// running render, so a self-referencing map or slice emits a cycle
// sentinel instead of recursing forever. Maps and slices are not
// comparable, so a plain map[any]bool keyed on the value itself would
// either panic (unhashable) or never detect the cycle; keying on the
// runtime pointer sidesteps both problems.
func withCycleGuard(b *strings.Builder, v any, visiting map[uintptr]bool, render func()) {
	ptr, ok := pointerIdentity(v)
	if !ok {
		render()
		return
	}
	if visiting[ptr] {
		b.WriteString("\x00cycle\x00")
		return
	}
	visiting[ptr] = true
	defer delete(visiting, ptr)
	render()
}

func canonicalizeArray(b *strings.Builder, arr []any, visiting map[uintptr]bool) {
	b.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			b.WriteByte(',')
		}
		canonicalizeInto(b, elem, visiting)
	}
	b.WriteByte(']')
}

func canonicalizeObject(b *strings.Builder, obj map[string]any, visiting map[uintptr]bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		canonicalizeInto(b, obj[k], visiting)
	}
	b.WriteByte('}')
}

// canonicalizeReflective handles the long tail: other map/slice shapes
// that may cycle, and values (func, chan, complex) that have no JSON
// representation at all.
func canonicalizeReflective(b *strings.Builder, v any, visiting map[uintptr]bool) {
	switch v.(type) {
	case func(), complex64, complex128:
		fmt.Fprintf(b, "\x00non-json:%T\x00", v)
		return
	}

	switch val := v.(type) {
	case map[any]any:
		withCycleGuard(b, v, visiting, func() { canonicalizeGenericMap(b, val, visiting) })
	case []map[string]any:
		withCycleGuard(b, v, visiting, func() {
			generic := make([]any, len(val))
			for i, m := range val {
				generic[i] = m
			}
			canonicalizeArray(b, generic, visiting)
		})
	default:
		fmt.Fprintf(b, "\x00unrepresentable:%v\x00", v)
	}
}

func canonicalizeGenericMap(b *strings.Builder, obj map[any]any, visiting map[uintptr]bool) {
	keys := make([]string, 0, len(obj))
	index := make(map[string]any, len(obj))
	for k, v := range obj {
		ks := fmt.Sprint(k)
		keys = append(keys, ks)
		index[ks] = v
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		canonicalizeInto(b, index[k], visiting)
	}
	b.WriteByte('}')
}

// ValuesEqual reports whether a and b denote the same JSON value, per
// Canonicalize. This is the single equality primitive const/enum
// comparisons use throughout the diff summarizer.
func ValuesEqual(a, b any) bool {
	return Canonicalize(a) == Canonicalize(b)
}
