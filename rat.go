package webhookdiff

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/goccy/go-json"
)

// Rat wraps a big.Rat so numeric bound keywords (minimum, maximum,
// exclusiveMinimum, exclusiveMaximum, multipleOf) compare exactly. A
// hand-written baseline schema routinely carries bounds like 0.1 or large
// integer IDs; comparing those as float64 risks false positives/negatives
// from rounding, which the diff summarizer cannot afford (see §4.8.2).
type Rat struct {
	*big.Rat
}

// NewRat creates a Rat from a numeric or numeric-string value. It returns
// nil, rather than an error, for values that cannot be interpreted as a
// number — callers that index a schema must degrade gracefully rather than
// fail (see §7 of the design notes).
func NewRat(value any) *Rat {
	r, err := convertToBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{r}
}

// UnmarshalJSON implements json.Unmarshaler for Rat.
func (r *Rat) UnmarshalJSON(data []byte) error {
	var tmp any
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	converted, err := convertToBigRat(tmp)
	if err != nil {
		return err
	}
	r.Rat = converted
	return nil
}

// MarshalJSON implements json.Marshaler for Rat.
func (r *Rat) MarshalJSON() ([]byte, error) {
	formatted := FormatRat(r)
	if strings.Contains(formatted, "/") {
		return json.Marshal(formatted)
	}
	return []byte(formatted), nil
}

func convertToBigRat(data any) (*big.Rat, error) {
	var str string
	switch v := data.(type) {
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case string:
		str = v
	default:
		return nil, ErrUnsupportedTypeForRat
	}

	rat := new(big.Rat)
	if _, ok := rat.SetString(str); !ok {
		return nil, ErrRatConversion
	}
	return rat, nil
}

// FormatRat formats a Rat for display, trimming trailing zeros from the
// decimal expansion.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}

	dec := r.FloatString(10)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}

// cmpRat compares two Rat bounds. Both operands must be non-nil; it panics
// otherwise, and its callers check for an absent bound first. It is used
// throughout the numeric-bound loosening checks in diff.go.
func cmpRat(a, b *Rat) int {
	if a == nil || b == nil {
		panic("cmpRat: nil operand")
	}
	return a.Rat.Cmp(b.Rat)
}
