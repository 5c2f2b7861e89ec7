package webhookdiff

import "strings"

// toDisplayPointer converts an internal pointer (which may carry sentinel
// tokens) into the user-facing form described in §4.9:
//   .../ITEMS              -> .../*
//   .../TUPLE_ITEMS/<i>     -> .../[<i>]
//   .../AP                  -> .../{additionalProperties}
// Applied once, at the boundary where the diff summarizer builds its
// output strings.
func toDisplayPointer(pointer string) string {
	tokens := pointerTokens(pointer)
	if len(tokens) == 0 {
		return pointer
	}

	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case token == itemsToken:
			b.WriteString("/*")
		case token == apToken:
			b.WriteString("/{additionalProperties}")
		case token == tupleItemsToken && i+1 < len(tokens):
			b.WriteString("/[")
			b.WriteString(tokens[i+1])
			b.WriteString("]")
			i++
		case token == tupleItemsToken:
			b.WriteString("/[]")
		default:
			b.WriteByte('/')
			b.WriteString(escapeToken(token))
		}
	}
	return b.String()
}
