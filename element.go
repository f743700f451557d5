package rcparsing

import "github.com/romecore/rcparsing/internal/value"

// ParsedElement is the uniform result of matching a token pattern or a rule
// at some position: a success flag, the span that was consumed, whether it
// should be spliced out of the AST, and whatever intermediate value the
// match produced. Every evaluator in this package -- token, rule, recovery --
// returns this one type, the same way every node in participle's grammar
// tree returns a uniform []reflect.Value; we just carry positions and a
// tagged Value instead of reflection values, since the engine never needs
// to know about user struct fields.
type ParsedElement struct {
	Success           bool
	ExcludeFromAST    bool
	ElementID         int
	StartIndex        Position
	Length            int
	IntermediateValue value.Value
	Children          []ParsedElement
}

// FailElement is the canonical failure sentinel: success=false, startIndex=-1,
// length=0.
var FailElement = ParsedElement{Success: false, StartIndex: -1, Length: 0}

// Fail returns a fresh failure sentinel tagged with the element that failed
// to match, useful when callers want to know *what* failed without needing
// an error value.
func Fail(elementID int) ParsedElement {
	return ParsedElement{Success: false, ElementID: elementID, StartIndex: -1, Length: 0}
}

// Succeed builds a successful leaf element (no AST children).
func Succeed(elementID int, start Position, length int, iv value.Value) ParsedElement {
	return ParsedElement{
		Success:           true,
		ElementID:         elementID,
		StartIndex:        start,
		Length:            length,
		IntermediateValue: iv,
	}
}

// SucceedNode builds a successful element that carries an explicit AST
// children list: elementId, startIndex, length, intermediateValue, and the
// spliced child nodes.
func SucceedNode(elementID int, start Position, length int, iv value.Value, children []ParsedElement) ParsedElement {
	e := Succeed(elementID, start, length, iv)
	e.Children = children
	return e
}

// Span returns the consumed span. Only meaningful when Success is true.
func (e ParsedElement) Span() Span {
	return Span{Start: e.StartIndex, Length: e.Length}
}

// End returns StartIndex+Length.
func (e ParsedElement) End() Position {
	return e.StartIndex + Position(e.Length)
}
