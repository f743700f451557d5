// Package errorformat renders a parser's retained diagnostics into text. It
// is deliberately peripheral: the engine only specifies the data shape a
// formatter consumes (position, expected set, rule stack, kind, recovery
// marker), not how that gets turned into prose. Grounded in participle's
// own stance on error presentation -- lexer.FormatError in participle
// produces one plain "pos: message" line and nothing fancier -- generalized
// here into a pluggable Formatter behind a thin facade so callers can swap
// in their own renderer without touching the engine.
package errorformat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/romecore/rcparsing"
)

// Flags selects which columns/sections a Formatter renders.
type Flags uint

const (
	// ShowRuleStack includes each error's enclosing-rule chain.
	ShowRuleStack Flags = 1 << iota
	// ShowRecovered marks entries that were recovered rather than fatal.
	ShowRecovered
	// GroupByPosition clusters entries sharing a position under one header.
	GroupByPosition
)

// DefaultFlags renders the rule stack and recovery markers but does not
// group by position, participle's own one-line-per-error texture.
const DefaultFlags = ShowRuleStack | ShowRecovered

// Formatter turns a pre-grouped diagnostic set into its final string. The
// bundled TextFormatter is the only implementation this package ships;
// callers needing JSON or LSP-shaped diagnostics provide their own.
type Formatter interface {
	Format(groups []Group) string
}

// Group is one farthest-failure position's worth of entries, already
// separated from other positions by FormatErrors' pre-grouping pass.
type Group struct {
	Position int
	Entries  []rcparsing.ParsingError
}

// FormatErrors groups errs by position (when flags requests it, otherwise
// each error is its own singleton group preserving recording order) and
// delegates rendering to f. recoveryIndices marks which entries in errs were
// recovered rather than fatal, matching errorRecoveryIndices export.
func FormatErrors(errs []rcparsing.ParsingError, recoveryIndices []int, flags Flags, f Formatter) string {
	if f == nil {
		f = TextFormatter{Flags: flags}
	}
	recovered := make(map[int]bool, len(recoveryIndices))
	for _, idx := range recoveryIndices {
		recovered[idx] = true
	}
	for i := range errs {
		errs[i].Recovered = errs[i].Recovered || recovered[i]
	}

	if flags&GroupByPosition == 0 {
		groups := make([]Group, len(errs))
		for i, e := range errs {
			groups[i] = Group{Position: int(e.Position), Entries: []rcparsing.ParsingError{e}}
		}
		return f.Format(groups)
	}

	byPos := map[int][]rcparsing.ParsingError{}
	var positions []int
	for _, e := range errs {
		p := int(e.Position)
		if _, ok := byPos[p]; !ok {
			positions = append(positions, p)
		}
		byPos[p] = append(byPos[p], e)
	}
	sort.Ints(positions)
	groups := make([]Group, len(positions))
	for i, p := range positions {
		groups[i] = Group{Position: p, Entries: byPos[p]}
	}
	return f.Format(groups)
}

// TextFormatter is the bundled, intentionally minimal text renderer:
// "<pos>: <kind> at <pos>[: expected <set>][ (in rule [N M])][ [recovered]]"
// per line, the bracketed parts appearing only when present and enabled.
type TextFormatter struct {
	Flags Flags
}

func (t TextFormatter) Format(groups []Group) string {
	var b strings.Builder
	for _, g := range groups {
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "%d: %s", g.Position, e.Message())
			if t.Flags&ShowRuleStack != 0 && len(e.RuleStack) > 0 {
				fmt.Fprintf(&b, " (in rule %v)", e.RuleStack)
			}
			if t.Flags&ShowRecovered != 0 && e.Recovered {
				b.WriteString(" [recovered]")
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
