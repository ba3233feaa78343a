package edd

import "strings"

// RuleKind discriminates rule nodes.
type RuleKind int

const (
	RuleCondition RuleKind = iota
	RuleAll
	RuleAny
)

// Match operators accepted in conditions.
const (
	OpIs       = "Is"
	OpIsNot    = "IsNot"
	OpIncludes = "Includes"
	OpExcludes = "Excludes"
)

func validOperator(op string) bool {
	switch op {
	case OpIs, OpIsNot, OpIncludes, OpExcludes:
		return true
	}
	return false
}

// Rule is an application rule: a criterion condition or a compound of rules.
type Rule struct {
	Kind      RuleKind
	Criterion string
	Op        string
	Value     string
	Children  []*Rule
}

// String renders the rule in the builder's syntax, e.g. "All{Mode Is Call, Any{Dev Includes Spk}}".
func (r *Rule) String() string {
	switch r.Kind {
	case RuleAll, RuleAny:
		parts := make([]string, len(r.Children))
		for i, c := range r.Children {
			parts[i] = c.String()
		}
		kw := "All"
		if r.Kind == RuleAny {
			kw = "Any"
		}
		return kw + "{" + strings.Join(parts, ", ") + "}"
	default:
		return r.Criterion + " " + r.Op + " " + r.Value
	}
}

// criteria appends, in first-seen order, the criterion names not already in seen.
func (r *Rule) criteria(seen map[string]bool, out []string) []string {
	if r.Kind == RuleCondition {
		if !seen[r.Criterion] {
			seen[r.Criterion] = true
			out = append(out, r.Criterion)
		}
		return out
	}
	for _, c := range r.Children {
		out = c.criteria(seen, out)
	}
	return out
}

// conjunction ANDs rules together, splicing nested All members. It returns nil for no rules.
func conjunction(rules []*Rule) *Rule {
	var members []*Rule
	for _, r := range rules {
		if r.Kind == RuleAll {
			members = append(members, r.Children...)
			continue
		}
		members = append(members, r)
	}
	if len(members) == 0 {
		return nil
	}
	return &Rule{Kind: RuleAll, Children: members}
}
