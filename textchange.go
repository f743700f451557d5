package rcparsing

import "fmt"

// TextChange describes one incremental edit to a previously-parsed text, per
// : a byte-for-byte (code-unit-for-code-unit) splice replacing
// oldLength code units starting at startIndex with newLength code units,
// plus the already-computed resultingText for the whole buffer after the
// edit (the driver never recomputes it itself -- the caller already applied
// the edit to produce resultingText, same as participle's own approach of
// handing a fully-formed new lexer.Lexer to each incremental parse rather
// than diffing it out of pieces).
type TextChange struct {
	StartIndex    Position
	OldLength     int
	NewLength     int
	ResultingText []uint16
}

// Shift is newLength - oldLength, the displacement every position at or
// after the edit's end must be adjusted by ( step 1/3).
func (c TextChange) Shift() int { return c.NewLength - c.OldLength }

// OldEnd is the end of the replaced span in the previous text.
func (c TextChange) OldEnd() Position { return c.StartIndex + Position(c.OldLength) }

// validate enforces the constructor law: start/old/new are all non-negative,
// and resultingText must be at least long enough to contain the new span.
func (c TextChange) validate() error {
	if c.StartIndex < 0 || c.OldLength < 0 || c.NewLength < 0 {
		return fmt.Errorf("rcparsing: TextChange has a negative field: %+v", c)
	}
	if int(c.StartIndex)+c.NewLength > len(c.ResultingText) {
		return fmt.Errorf("rcparsing: TextChange span [%d,%d) does not fit in a %d-unit resultingText",
			c.StartIndex, int(c.StartIndex)+c.NewLength, len(c.ResultingText))
	}
	return nil
}
