package webhookdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayPointer(t *testing.T) {
	cases := map[string]string{
		rootPointer:                      rootPointer,
		childPointer(rootPointer, "id"):  "/id",
		childPointer(rootPointer, itemsToken): "/*",
		childPointer(rootPointer, apToken):    "/{additionalProperties}",
		tupleChildPointer(rootPointer, 2):     "/[2]",
	}
	for pointer, want := range cases {
		assert.Equal(t, want, toDisplayPointer(pointer), "pointer=%q", pointer)
	}
}

func TestToDisplayPointerNestedPath(t *testing.T) {
	p := childPointer(childPointer(rootPointer, "items"), itemsToken)
	assert.Equal(t, "/items/*", toDisplayPointer(p))
}

func TestToDisplayPointerEscapesLiteralTokens(t *testing.T) {
	p := childPointer(rootPointer, "a/b")
	assert.Equal(t, "/a~1b", toDisplayPointer(p))
}
