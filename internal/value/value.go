// Package value implements the tagged intermediate-value holder carried by
// parsed elements. Values coming out of token and rule evaluation can be a
// matched substring, a regex match, an ordered list of children's values, or
// an arbitrary value handed back by a user leaf or value projection -- so
// rather than threading an `interface{}` through every evaluator (and losing
// the ability to cheaply ask "is this empty?" or "is this a list?"), we keep
// a small closed tag set with one opaque escape hatch.
package value

// Kind identifies which field of a Value is meaningful.
type Kind int

const (
	// None is the zero Value: no payload (epsilon matches, lookaheads).
	None Kind = iota
	// String holds a matched substring (literal/char-class matches).
	String
	// List holds the ordered intermediate values of a sequence or repeat.
	List
	// Regex holds the underlying regexp match.
	Regex
	// Opaque holds an arbitrary user-leaf or projection result.
	Opaque
)

// Value is a tagged union over the payloads an evaluator can produce.
type Value struct {
	kind   Kind
	str    string
	list   []Value
	match  []string
	opaque interface{}
}

// Nil is the empty Value.
var Nil = Value{kind: None}

// Of wraps an arbitrary value as an Opaque Value.
func Of(v interface{}) Value {
	if v == nil {
		return Nil
	}
	return Value{kind: Opaque, opaque: v}
}

// OfString wraps a matched substring.
func OfString(s string) Value { return Value{kind: String, str: s} }

// OfList wraps an ordered list of child values.
func OfList(vs []Value) Value { return Value{kind: List, list: vs} }

// OfRegexMatch wraps the submatch slice returned by regexp.FindStringSubmatch.
func OfRegexMatch(m []string) Value { return Value{kind: Regex, match: m} }

// Kind reports which payload this Value carries.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value carries no payload.
func (v Value) IsNil() bool { return v.kind == None }

// String returns the string payload, or "" if this isn't a String value.
func (v Value) String() string {
	if v.kind == String {
		return v.str
	}
	return ""
}

// List returns the list payload, or nil if this isn't a List value.
func (v Value) List() []Value {
	if v.kind == List {
		return v.list
	}
	return nil
}

// RegexMatch returns the submatch slice, or nil if this isn't a Regex value.
func (v Value) RegexMatch() []string {
	if v.kind == Regex {
		return v.match
	}
	return nil
}

// Interface returns the payload as an interface{}, regardless of kind.
// Useful for passing to a user ValueProjection callback.
func (v Value) Interface() interface{} {
	switch v.kind {
	case None:
		return nil
	case String:
		return v.str
	case List:
		out := make([]interface{}, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case Regex:
		return v.match
	default:
		return v.opaque
	}
}
