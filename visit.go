package rcparsing

// findUnguardedCycle walks every rule's body looking for a left-recursive
// cycle of rule-refs that has no escape -- no alternative, anywhere on the
// cycle, that can succeed without first routing back through the cycle
// itself. A cycle with an escape (e.g. "expr := expr '+' num | num") is left
// alone: the memo cache's Pending->Fail guard (rule_eval.go) already turns
// the recursive branch's self-call into a clean Fail and lets the escape
// alternative win, exactly the packrat "cut to Fail" behavior participle's
// own left-recursion note in lookahead.go warns circular grammars need. Only
// a cycle where every member is *itself* unable to terminate without
// recursing is reported, since the guard would cut every branch to Fail and
// the rule could never actually match anything.
//
// Grounded in participle's own visit.go graph walk (a seen-set driven
// recursive descent over the node tree, generalized here from participle's
// node interface to RuleExpr) and in lookahead.go's buildLookahead, which
// walks the same kind of graph with a visited set and returns early once a
// token-consuming node is reached.
func findUnguardedCycle(rules *RuleRegistry) []int {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS stack
		black = 2 // fully explored
	)
	color := make([]int, rules.Len())
	var stack []int

	var walk func(ruleID int) []int
	walk = func(ruleID int) []int {
		color[ruleID] = gray
		stack = append(stack, ruleID)

		for _, next := range leadingRuleRefs(rules.ByID(ruleID).Body) {
			switch color[next] {
			case white:
				if cyc := walk(next); cyc != nil {
					return cyc
				}
			case gray:
				cycle := cycleFrom(stack, next)
				if !cycleHasEscape(rules, cycle) {
					return cycle
				}
				// Escaped: this back-edge is a guarded left-recursive loop,
				// not a defect. Keep walking the rest of ruleID's refs.
			}
		}

		stack = stack[:len(stack)-1]
		color[ruleID] = black
		return nil
	}

	for id := 0; id < rules.Len(); id++ {
		if color[id] == white {
			if cyc := walk(id); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

func cycleFrom(stack []int, start int) []int {
	for i, id := range stack {
		if id == start {
			return append([]int(nil), stack[i:]...)
		}
	}
	return nil
}

// cycleHasEscape reports whether some rule on the cycle has a leading
// alternative that doesn't itself require routing back through the cycle --
// a base case the recursion can bottom out on.
func cycleHasEscape(rules *RuleRegistry, cycle []int) bool {
	inCycle := make(map[int]bool, len(cycle))
	for _, id := range cycle {
		inCycle[id] = true
	}
	for _, id := range cycle {
		if hasEscape(rules.ByID(id).Body, inCycle) {
			return true
		}
	}
	return false
}

// hasEscape reports whether expr has some leading path that doesn't pass
// through a rule-ref inside cycle -- a token match, a rule-ref to outside the
// cycle, or a construct (Optional, a zero-minimum Repeat, either lookahead)
// that can succeed at its position without consuming via the cycle at all.
func hasEscape(expr *RuleExpr, cycle map[int]bool) bool {
	switch expr.Kind {
	case RuleTokenRef:
		return true
	case RuleRuleRef:
		return !cycle[expr.RefRuleID]
	case RuleChoice:
		for _, c := range expr.Children {
			if hasEscape(c, cycle) {
				return true
			}
		}
		return false
	case RuleSequence:
		if len(expr.Children) == 0 {
			return true
		}
		return hasEscape(expr.Children[0], cycle)
	case RuleOptional:
		return true
	case RuleRepeat:
		if expr.Min == 0 {
			return true
		}
		return hasEscape(expr.Inner, cycle)
	case RuleLookaheadPositive, RuleLookaheadNegative:
		return true
	}
	return false
}

// leadingRuleRefs returns the set of rule ids expr could invoke at its own
// starting position without having consumed any input first -- the set a
// left-recursion cycle must pass entirely through. Token refs, and the
// second-and-later children of a sequence, are not "leading" since they sit
// behind something that must consume input first.
func leadingRuleRefs(expr *RuleExpr) []int {
	var out []int
	var walk func(e *RuleExpr)
	walk = func(e *RuleExpr) {
		switch e.Kind {
		case RuleRuleRef:
			out = append(out, e.RefRuleID)
		case RuleChoice:
			for _, c := range e.Children {
				walk(c)
			}
		case RuleSequence:
			if len(e.Children) > 0 {
				walk(e.Children[0])
			}
		case RuleOptional:
			walk(e.Inner)
		case RuleRepeat:
			walk(e.Inner)
		case RuleLookaheadPositive, RuleLookaheadNegative:
			// Lookahead never consumes input either way, but it also can't
			// recurse into the same rule at the same position productively,
			// so it isn't counted as a leading edge for cycle purposes.
		}
	}
	walk(expr)
	return out
}
