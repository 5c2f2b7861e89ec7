package webhookdiff

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Sentinel pointer tokens reserved by the indexer. They stand in for
// synthetic children that have no corresponding property name in the
// payload. escapeToken leaves them unchanged, so a real object key equal
// to one of these strings yields the same pointer as the sentinel; the
// indexer does not tell the two apart.
const (
	itemsToken      = "ITEMS"       // element schema of a homogeneous array
	tupleItemsToken = "TUPLE_ITEMS" // parent token for tuple-validation items
	apToken         = "AP"          // additionalProperties subschema
)

// rootPointer is the pointer of the schema root.
const rootPointer = "/"

// escapeToken applies RFC 6901 token escaping: "~" becomes "~0" and "/"
// becomes "~1". Order matters — "~" must be escaped first, or a literal
// "/" escaped to "~1" would itself be re-escaped.
func escapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// unescapeToken reverses escapeToken.
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// childPointer appends a single already-unescaped token to a parent
// pointer, escaping it as it goes. The root pointer is "/"; its only
// child of token "k" is "/k", not "//k".
func childPointer(parent, token string) string {
	escaped := escapeToken(token)
	if parent == rootPointer {
		return rootPointer + escaped
	}
	return parent + "/" + escaped
}

// tupleChildPointer builds the pointer for tuple item i under parent.
func tupleChildPointer(parent string, i int) string {
	return childPointer(childPointer(parent, tupleItemsToken), strconv.Itoa(i))
}

// pointerTokens splits a pointer into its unescaped tokens using the
// jsonpointer library's RFC 6901 parser, so "/" yields no tokens and
// "/a~1b/0" yields []string{"a/b", "0"}.
func pointerTokens(pointer string) []string {
	if pointer == "" || pointer == rootPointer {
		return nil
	}
	return jsonpointer.Parse(pointer)
}

// parentPointer returns the pointer of the parent node. The root's parent
// is itself, since callers only use parentPointer to look up a NodeInfo
// and the root is vacuously its own ancestor for that purpose.
func parentPointer(pointer string) string {
	tokens := pointerTokens(pointer)
	if len(tokens) == 0 {
		return rootPointer
	}
	if len(tokens) == 1 {
		return rootPointer
	}
	return buildPointer(tokens[:len(tokens)-1])
}

// buildPointer joins already-unescaped tokens into a pointer string.
func buildPointer(tokens []string) string {
	if len(tokens) == 0 {
		return rootPointer
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(escapeToken(t))
	}
	return b.String()
}

// lastToken returns the final, unescaped token of a pointer, or "" for the
// root pointer.
func lastToken(pointer string) string {
	tokens := pointerTokens(pointer)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// isRoot reports whether pointer identifies the schema root.
func isRoot(pointer string) bool {
	return pointer == rootPointer
}
