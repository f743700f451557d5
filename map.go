package rcparsing

import (
	"strconv"
	"strings"

	"github.com/romecore/rcparsing/internal/value"
)

// MapFunc transforms a token pattern's raw string intermediate value into a
// replacement string. Grounded in participle's map.go, which offers the
// same small set of transforms (Unquote, Upper, Lower, Map) as node-wrapping
// combinators over a single captured string; here they operate on the
// leaf-level value a TokenPattern already produced rather than wrapping a
// grammar node, since patterns in this engine are data, not node objects.
type MapFunc func(s string) (string, error)

// MapString wraps fn as a ValueProjection. Since TokenPattern is immutable
// once registered, mappers are applied through a rule's ValueProjection. The
// projection applies fn to the element's String intermediate value (the
// empty string for any other kind of value) and yields value.Nil when fn
// returns an error.
func MapString(fn MapFunc) ValueProjection {
	return func(el ParsedElement, _ []value.Value) value.Value {
		s := el.IntermediateValue.String()
		out, err := fn(s)
		if err != nil {
			return value.Nil
		}
		return value.OfString(out)
	}
}

// Unquote strips the leading/trailing quote character of quote and resolves
// Go-style escape sequences, the transform participle's map.go offers for
// turning a raw quoted-literal token into its decoded string value.
func Unquote(quote byte) MapFunc {
	return func(s string) (string, error) {
		if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
			return s, nil
		}
		return strconv.Unquote(s)
	}
}

// Upper upper-cases a captured string.
func Upper(s string) (string, error) { return strings.ToUpper(s), nil }

// Lower lower-cases a captured string.
func Lower(s string) (string, error) { return strings.ToLower(s), nil }

// Map composes MapFuncs left to right.
func Map(fns ...MapFunc) MapFunc {
	return func(s string) (string, error) {
		var err error
		for _, fn := range fns {
			s, err = fn(s)
			if err != nil {
				return "", err
			}
		}
		return s, nil
	}
}
