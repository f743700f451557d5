package rcparsing

import "github.com/romecore/rcparsing/internal/value"

// RuleExprKind discriminates the rule-body algebra of Rule: "a named
// composition over token patterns and other rules with the same algebra
// (sequence, choice, repeat, optional, lookahead positive/negative)".
type RuleExprKind int

const (
	RuleSequence RuleExprKind = iota
	RuleChoice
	RuleRepeat
	RuleOptional
	RuleLookaheadPositive
	RuleLookaheadNegative
	RuleTokenRef
	RuleRuleRef
)

// RuleExpr is one node of a rule's body tree.
type RuleExpr struct {
	Kind      RuleExprKind
	Children  []*RuleExpr // Sequence / Choice
	Inner     *RuleExpr   // Repeat / Optional / Lookahead
	Min, Max  int         // Repeat; Max<0 means unbounded
	Separator *RuleExpr   // Repeat
	TokenID   int         // RuleTokenRef
	RefRuleID int         // RuleRuleRef
}

// Seq builds a sequence expression.
func Seq(children ...*RuleExpr) *RuleExpr { return &RuleExpr{Kind: RuleSequence, Children: children} }

// Choice builds an ordered-choice expression.
func Choice(children ...*RuleExpr) *RuleExpr { return &RuleExpr{Kind: RuleChoice, Children: children} }

// Repeat builds a greedy repetition expression. max<0 means unbounded.
func Repeat(inner *RuleExpr, min, max int, sep *RuleExpr) *RuleExpr {
	return &RuleExpr{Kind: RuleRepeat, Inner: inner, Min: min, Max: max, Separator: sep}
}

// Opt builds an optional expression.
func Opt(inner *RuleExpr) *RuleExpr { return &RuleExpr{Kind: RuleOptional, Inner: inner} }

// LookaheadPositive builds a positive lookahead over inner.
func LookaheadPositive(inner *RuleExpr) *RuleExpr {
	return &RuleExpr{Kind: RuleLookaheadPositive, Inner: inner}
}

// LookaheadNegative builds a negative lookahead over inner.
func LookaheadNegative(inner *RuleExpr) *RuleExpr {
	return &RuleExpr{Kind: RuleLookaheadNegative, Inner: inner}
}

// TokenRef builds a leaf expression matching a token pattern by id.
func TokenRef(tokenID int) *RuleExpr { return &RuleExpr{Kind: RuleTokenRef, TokenID: tokenID} }

// RuleRef builds a leaf expression matching another rule by id, the
// mechanism that lets rules recurse -- the grammar graph itself is not
// required to be a DAG, only the unguarded cycles visit.go rejects.
func RuleRef(ruleID int) *RuleExpr { return &RuleExpr{Kind: RuleRuleRef, RefRuleID: ruleID} }

// ValueProjection is the optional user callback that turns a rule's parsed
// element plus its children's intermediate values into a final value.
// These are opaque: the engine never inspects what they return beyond
// storing it back on the element.
type ValueProjection func(element ParsedElement, children []value.Value) value.Value

// RecoveryStrategyKind enumerates per-rule recovery strategies.
type RecoveryStrategyKind int

const (
	RecoveryNone RecoveryStrategyKind = iota
	RecoverySkipUntilAnchor
	RecoverySkipUntilAfterAnchor
	RecoverySkipAndRetry
	RecoveryPanicMode
)

// ErrorRecovery is the declarative per-rule recovery policy of : a
// strategy kind, an anchor rule to resume at, and a stop rule bounding the
// scan. Equality is structural across all three fields, as specified.
type ErrorRecovery struct {
	Strategy   RecoveryStrategyKind
	AnchorRule int // -1 for none
	StopRule   int // -1 for none
}

// Equal reports structural equality invariant on ErrorRecovery.
func (e ErrorRecovery) Equal(o ErrorRecovery) bool {
	return e.Strategy == o.Strategy && e.AnchorRule == o.AnchorRule && e.StopRule == o.StopRule
}

// Rule is a named composition over token patterns and other rules.
type Rule struct {
	ID             int
	Alias          string
	Body           *RuleExpr
	Project        ValueProjection
	Recovery       *ErrorRecovery
	ExcludeFromAST bool
}

// RuleRegistry owns all Rules for a grammar and assigns stable numeric ids.
type RuleRegistry struct {
	byID    []*Rule
	byAlias map[string]*Rule
}

// NewRuleRegistry creates an empty registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{byAlias: map[string]*Rule{}}
}

// Define registers a new rule and returns its id. body may be nil and
// filled in later via SetBody, to allow mutually- and self-recursive rules
// to reference each other's ids before either body is built.
func (r *RuleRegistry) Define(alias string, body *RuleExpr) *Rule {
	rule := &Rule{ID: len(r.byID), Alias: alias, Body: body}
	r.byID = append(r.byID, rule)
	if alias != "" {
		r.byAlias[alias] = rule
	}
	return rule
}

// SetBody assigns a rule's body after the fact (for forward references).
func (r *Rule) SetBody(body *RuleExpr) *Rule {
	r.Body = body
	return r
}

// WithProjection attaches a value projection callback.
func (r *Rule) WithProjection(fn ValueProjection) *Rule {
	r.Project = fn
	return r
}

// WithRecovery attaches a recovery policy.
func (r *Rule) WithRecovery(rec ErrorRecovery) *Rule {
	r.Recovery = &rec
	return r
}

// Excluded marks the rule's own node (not its children) for splicing out of
// the AST . Useful for purely-structural wrapper rules.
func (r *Rule) Excluded() *Rule {
	r.ExcludeFromAST = true
	return r
}

// ByID returns the rule with the given id, or nil if out of range.
func (r *RuleRegistry) ByID(id int) *Rule {
	if id < 0 || id >= len(r.byID) {
		return nil
	}
	return r.byID[id]
}

// ByAlias looks up a rule by its alias.
func (r *RuleRegistry) ByAlias(alias string) (*Rule, bool) {
	rule, ok := r.byAlias[alias]
	return rule, ok
}

// Len returns the number of registered rules.
func (r *RuleRegistry) Len() int { return len(r.byID) }
