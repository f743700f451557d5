package rcparsing

import "fmt"

// BarrierTokenRegistry assigns stable numeric ids to the barrier token kinds
// a host lexer may produce (INDENT, DEDENT, NEWLINE, ...), the same role
// PatternRegistry plays for token patterns: numeric ids plus alias lookup.
type BarrierTokenRegistry struct {
	byAlias map[string]int
	aliases []string
}

// NewBarrierTokenRegistry creates an empty registry.
func NewBarrierTokenRegistry() *BarrierTokenRegistry {
	return &BarrierTokenRegistry{byAlias: map[string]int{}}
}

// Define assigns (or returns the existing) id for a barrier token alias.
func (b *BarrierTokenRegistry) Define(alias string) int {
	if id, ok := b.byAlias[alias]; ok {
		return id
	}
	id := len(b.aliases)
	b.byAlias[alias] = id
	b.aliases = append(b.aliases, alias)
	return id
}

// IDOf returns the id for alias, and whether it was known.
func (b *BarrierTokenRegistry) IDOf(alias string) (int, bool) {
	id, ok := b.byAlias[alias]
	return id, ok
}

// AliasOf returns the alias for id, or "" if out of range.
func (b *BarrierTokenRegistry) AliasOf(id int) string {
	if id < 0 || id >= len(b.aliases) {
		return ""
	}
	return b.aliases[id]
}

// BarrierToken is the source-level, caller-supplied lexer output, the
// pre-lexed layout token (INDENT/DEDENT/NEWLINE and similar) handed to the
// parser at the API boundary.
type BarrierToken struct {
	StartIndex Position
	Length     int
	TokenAlias string
}

// IntermediateBarrierToken is the engine-internal form: Index is the token's
// position *within the barrier list*, TextStart keeps its position in the
// source text, and TokenID replaces the alias as the fast comparison key.
// Length and Alias are retained from the source token.
type IntermediateBarrierToken struct {
	Index      int
	TokenID    int
	TextStart  Position // the token's actual position in the source text
	Length     int
	Alias      string
}

// End returns TextStart+Length.
func (t IntermediateBarrierToken) End() Position { return t.TextStart + Position(t.Length) }

// BarrierList is a sorted, non-overlapping sequence of intermediate barrier
// tokens; the cursor into it is a separate BarrierCursor value. It is owned
// by the ParserContext // "Ownership".
type BarrierList struct {
	tokens []IntermediateBarrierToken
}

// NewBarrierList converts caller-supplied BarrierTokens to their engine-
// internal form, resolving aliases to ids via reg and validating the 
// invariant that the list is sorted strictly by text position with no
// overlaps.
func NewBarrierList(reg *BarrierTokenRegistry, tokens []BarrierToken) (*BarrierList, error) {
	out := make([]IntermediateBarrierToken, len(tokens))
	prevEnd := Position(-1)
	for i, t := range tokens {
		id, ok := reg.IDOf(t.TokenAlias)
		if !ok {
			id = reg.Define(t.TokenAlias)
		}
		if t.StartIndex < prevEnd {
			return nil, fmt.Errorf("rcparsing: barrier token %d (%q@%d) overlaps or precedes the previous barrier (ends at %d)",
				i, t.TokenAlias, t.StartIndex, prevEnd)
		}
		out[i] = IntermediateBarrierToken{
			Index:     i,
			TokenID:   id,
			TextStart: t.StartIndex,
			Length:    t.Length,
			Alias:     t.TokenAlias,
		}
		prevEnd = out[i].End()
	}
	return &BarrierList{tokens: out}, nil
}

// Len returns the number of barrier tokens.
func (l *BarrierList) Len() int { return len(l.tokens) }

// At returns the barrier token at list index i.
func (l *BarrierList) At(i int) IntermediateBarrierToken { return l.tokens[i] }

// BarrierCursor is an integer index into a BarrierList . It is
// part of the memoization key because the same (ruleId, position) with a
// different unconsumed-barrier cursor can yield a different outcome.
type BarrierCursor int

// current returns the barrier at the cursor, and whether one exists (false
// at the end of the list).
func (l *BarrierList) current(c BarrierCursor) (IntermediateBarrierToken, bool) {
	i := int(c)
	if i < 0 || i >= len(l.tokens) {
		return IntermediateBarrierToken{}, false
	}
	return l.tokens[i], true
}

// TryConsume attempts to consume the barrier at the cursor if it matches
// tokenID and sits exactly at pos two-part match rule. On
// success it returns the advanced cursor, the barrier's length (to advance
// the parse position), and true.
func (l *BarrierList) TryConsume(c BarrierCursor, tokenID int, pos Position) (BarrierCursor, int, bool) {
	tok, ok := l.current(c)
	if !ok || tok.TokenID != tokenID || tok.TextStart != pos {
		return c, 0, false
	}
	return c + 1, tok.Length, true
}

// Blocking reports whether an unconsumed barrier sits exactly at pos but
// does not match tokenID -- the "stepped over" hazard TryConsume's caller
// must detect and report rather than silently skip. Returns the blocking
// token when true.
func (l *BarrierList) Blocking(c BarrierCursor, tokenID int, pos Position) (IntermediateBarrierToken, bool) {
	tok, ok := l.current(c)
	if !ok || tok.TextStart != pos {
		return IntermediateBarrierToken{}, false
	}
	return tok, tok.TokenID != tokenID
}
