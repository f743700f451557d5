package rcparsing

import "fmt"

// Grammar owns every pattern, rule, and barrier-token definition for one
// parser. Once Compile succeeds a Grammar is immutable and safe to share
// across concurrent parses on distinct *ParserContexts, the same guarantee
// participle's own *Parser carries after build() finishes walking its node
// graph.
type Grammar struct {
	Patterns *PatternRegistry
	Rules    *RuleRegistry
	Barriers *BarrierTokenRegistry

	StartRule int

	compiled bool
}

// NewGrammar creates an empty, mutable grammar under construction.
func NewGrammar() *Grammar {
	return &Grammar{
		Patterns:  NewPatternRegistry(),
		Rules:     NewRuleRegistry(),
		Barriers:  NewBarrierTokenRegistry(),
		StartRule: -1,
	}
}

// SetStartRule names the rule Parse/TryParse drive by default.
func (g *Grammar) SetStartRule(ruleID int) *Grammar {
	g.StartRule = ruleID
	return g
}

// Compile validates the grammar's referential integrity: every TokenRef and
// RuleRef must resolve, the start rule must be set, recovery anchor/stop rule
// ids must exist, and rule recursion must not loop without ever consuming
// input. Token patterns are not checked for cycles, and rules unreachable
// from the start rule are not reported. This mirrors the participle's
// two-pass construction in grammar.go (build the node graph, then "populate a
// dictionary with the EBNF expansion ... to avoid infinite recursion" -- we
// reuse that second pass's spirit, checking rule cycles via visit.go instead
// of EBNF expansion).
func (g *Grammar) Compile() error {
	if g.StartRule < 0 || g.Rules.ByID(g.StartRule) == nil {
		return fmt.Errorf("rcparsing: grammar has no valid start rule")
	}
	for id := 0; id < g.Rules.Len(); id++ {
		rule := g.Rules.ByID(id)
		if rule.Body == nil {
			return fmt.Errorf("rcparsing: rule %q (id %d) has no body", rule.Alias, id)
		}
		if err := g.checkExprRefs(rule.Body); err != nil {
			return fmt.Errorf("rcparsing: rule %q: %w", rule.Alias, err)
		}
		if rule.Recovery != nil {
			if rule.Recovery.AnchorRule >= 0 && g.Rules.ByID(rule.Recovery.AnchorRule) == nil {
				return fmt.Errorf("rcparsing: rule %q: recovery anchor rule id %d does not exist", rule.Alias, rule.Recovery.AnchorRule)
			}
			if rule.Recovery.StopRule >= 0 && g.Rules.ByID(rule.Recovery.StopRule) == nil {
				return fmt.Errorf("rcparsing: rule %q: recovery stop rule id %d does not exist", rule.Alias, rule.Recovery.StopRule)
			}
		}
	}
	if cyc := findUnguardedCycle(g.Rules); cyc != nil {
		return fmt.Errorf("rcparsing: unguarded left-recursive cycle through rules %v (every rule on the cycle starts with a direct rule-ref at position 0)", cyc)
	}
	g.compiled = true
	return nil
}

func (g *Grammar) checkExprRefs(expr *RuleExpr) error {
	switch expr.Kind {
	case RuleTokenRef:
		if g.Patterns.ByID(expr.TokenID) == nil {
			return fmt.Errorf("dangling token pattern id %d", expr.TokenID)
		}
	case RuleRuleRef:
		if g.Rules.ByID(expr.RefRuleID) == nil {
			return fmt.Errorf("dangling rule id %d", expr.RefRuleID)
		}
	case RuleSequence, RuleChoice:
		for _, c := range expr.Children {
			if err := g.checkExprRefs(c); err != nil {
				return err
			}
		}
	case RuleRepeat:
		if err := g.checkExprRefs(expr.Inner); err != nil {
			return err
		}
		if expr.Separator != nil {
			if err := g.checkExprRefs(expr.Separator); err != nil {
				return err
			}
		}
	case RuleOptional, RuleLookaheadPositive, RuleLookaheadNegative:
		return g.checkExprRefs(expr.Inner)
	}
	return nil
}
