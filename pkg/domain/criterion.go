package domain

import "fmt"

// Inclusiveness tells whether a criterion holds one value (exclusive) or a set of values (inclusive).
type Inclusiveness string

const (
	// Inclusive criteria behave as bit fields: several values may be active at once.
	Inclusive Inclusiveness = "inclusive"
	// Exclusive criteria hold exactly one value at a time.
	Exclusive Inclusiveness = "exclusive"
)

// ParseInclusiveness maps the "inclusive"/"exclusive" spelling used by the criterion-types XML.
func ParseInclusiveness(s string) (Inclusiveness, error) {
	switch Inclusiveness(s) {
	case Inclusive, Exclusive:
		return Inclusiveness(s), nil
	}
	return "", fmt.Errorf("unknown criterion inclusiveness %q (want %q or %q)", s, Inclusive, Exclusive)
}

// Criterion is a selection criterion as declared in a criteria file.
type Criterion struct {
	Name          string        `json:"name" yaml:"name"`
	Inclusiveness Inclusiveness `json:"inclusiveness" yaml:"inclusiveness"`
	// Values keeps declaration order.
	Values []string `json:"values" yaml:"values"`
}

// Command returns the createSelectionCriterion command declaring this criterion.
func (c Criterion) Command() Command {
	args := make([]string, 0, len(c.Values)+2)
	args = append(args, string(c.Inclusiveness), c.Name)
	args = append(args, c.Values...)
	return NewCommand(VerbCreateSelectionCriterion, args...)
}

// DomainReference lists the criteria a domain's rules are written against.
type DomainReference struct {
	Domain   string
	Criteria []string
}

// UndeclaredCriteria returns, per domain, the referenced criteria that criteria does not declare.
// Domains with nothing undeclared are left out.
func UndeclaredCriteria(criteria []Criterion, refs []DomainReference) []DomainReference {
	declared := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		declared[c.Name] = true
	}
	var out []DomainReference
	for _, ref := range refs {
		var missing []string
		for _, name := range ref.Criteria {
			if !declared[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			out = append(out, DomainReference{Domain: ref.Domain, Criteria: missing})
		}
	}
	return out
}
