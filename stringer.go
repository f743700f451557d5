package rcparsing

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/repr"
)

// StringifyRule renders a rule's body as an EBNF-ish one-liner, the same
// debug rendering participle's stringer.go produces for a struct's grammar
// (disjunction/sequence/optional/repetition/literal), generalized here onto
// RuleExpr/TokenPattern instead of participle's reflect-typed node tree.
func StringifyRule(rules *RuleRegistry, patterns *PatternRegistry, ruleID int) string {
	rule := rules.ByID(ruleID)
	if rule == nil {
		return "<missing rule>"
	}
	var buf bytes.Buffer
	writeExpr(&buf, rules, patterns, rule.Body, false)
	return buf.String()
}

// DumpRule renders a rule's body as a deep Go-syntax-like structural dump,
// for diagnosing unexpected RuleExpr shapes. Grounded on participle's own
// reliance on github.com/alecthomas/repr for GoString-style node dumps
// rather than writing %#v or a bespoke pretty-printer by hand.
func DumpRule(rules *RuleRegistry, ruleID int) string {
	rule := rules.ByID(ruleID)
	if rule == nil {
		return "<missing rule>"
	}
	return repr.String(rule.Body, repr.Indent("  "), repr.OmitEmpty(true))
}

func writeExpr(buf *bytes.Buffer, rules *RuleRegistry, patterns *PatternRegistry, expr *RuleExpr, grouped bool) {
	switch expr.Kind {
	case RuleTokenRef:
		fmt.Fprint(buf, patterns.ByID(expr.TokenID).String())

	case RuleRuleRef:
		if r := rules.ByID(expr.RefRuleID); r != nil && r.Alias != "" {
			fmt.Fprintf(buf, "<%s>", r.Alias)
		} else {
			fmt.Fprintf(buf, "<rule#%d>", expr.RefRuleID)
		}

	case RuleSequence:
		for i, c := range expr.Children {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeExpr(buf, rules, patterns, c, true)
		}

	case RuleChoice:
		if grouped {
			buf.WriteByte('(')
		}
		for i, c := range expr.Children {
			if i > 0 {
				buf.WriteString(" | ")
			}
			writeExpr(buf, rules, patterns, c, true)
		}
		if grouped {
			buf.WriteByte(')')
		}

	case RuleRepeat:
		buf.WriteString("( ")
		writeExpr(buf, rules, patterns, expr.Inner, grouped)
		buf.WriteString(" )")
		if expr.Min == 0 {
			buf.WriteByte('*')
		} else {
			buf.WriteByte('+')
		}

	case RuleOptional:
		buf.WriteString("[ ")
		writeExpr(buf, rules, patterns, expr.Inner, grouped)
		buf.WriteString(" ]")

	case RuleLookaheadPositive:
		buf.WriteString("&(")
		writeExpr(buf, rules, patterns, expr.Inner, false)
		buf.WriteByte(')')

	case RuleLookaheadNegative:
		buf.WriteString("!(")
		writeExpr(buf, rules, patterns, expr.Inner, false)
		buf.WriteByte(')')
	}
}
