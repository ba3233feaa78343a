package edd

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
)

var (
	_ ports.RuleTree           = (*Tree)(nil)
	_ ports.CriteriaReferencer = (*Tree)(nil)
)

// Domain is a fully resolved configurable domain.
type Domain struct {
	Name          string
	SequenceAware bool
	// Elements is the union of every configuration's parameter paths, in first-seen order.
	Elements       []string
	Configurations []Configuration
	line           int
}

// Configuration is a resolved configuration: its full name, its combined rule and its settings.
type Configuration struct {
	Name     string
	Rule     *Rule // nil when the configuration is unconditional
	Settings []Setting
	line     int
}

// Setting assigns a value to an absolute parameter path.
type Setting struct {
	Path  string
	Value string
}

// Tree is a parsed source. It is read-only once Propagate has succeeded.
type Tree struct {
	source     string
	roots      []*node
	domains    []Domain
	propagated bool
}

// Source returns the name the tree was parsed under.
func (t *Tree) Source() string { return t.source }

// Domains returns the resolved domains; it is empty until Propagate succeeds.
func (t *Tree) Domains() []Domain { return t.domains }

// Propagate resolves group names, inherited rules and component paths, then checks that
// names are unique and that every configuration of a domain sets the same elements.
func (t *Tree) Propagate() error {
	if t.propagated {
		return nil
	}
	var domains []Domain
	seen := map[string]int{}

	var walk func(prefix string, nodes []*node) error
	walk = func(prefix string, nodes []*node) error {
		for _, n := range nodes {
			switch n.kind {
			case kindDomainGroup:
				if err := walk(prefix+n.name+".", n.children); err != nil {
					return err
				}
			case kindDomain:
				d, err := resolveDomain(prefix+n.name, n)
				if err != nil {
					return err
				}
				if first, dup := seen[d.Name]; dup {
					return &PropagationError{Line: n.line, Msg: fmt.Sprintf("domain %q already defined at line %d", d.Name, first)}
				}
				seen[d.Name] = n.line
				domains = append(domains, d)
			}
		}
		return nil
	}
	if err := walk("", t.roots); err != nil {
		return err
	}
	t.domains = domains
	t.propagated = true
	return nil
}

// scope is what a configuration inherits from its enclosing confGroups and components.
type scope struct {
	confPrefix string
	rules      []*Rule
	path       string
}

func resolveDomain(name string, n *node) (Domain, error) {
	d := Domain{Name: name, SequenceAware: n.sequenceAware, line: n.line}
	confLines := map[string]int{}

	var collect func(sc scope, nodes []*node) error
	collect = func(sc scope, nodes []*node) error {
		for _, c := range nodes {
			switch c.kind {
			case kindComponent:
				next := sc
				next.path = joinPath(sc.path, c.name)
				if err := collect(next, c.children); err != nil {
					return err
				}
			case kindConfGroup:
				next := sc
				next.confPrefix = sc.confPrefix + c.name + "."
				inherited, err := ruleNodes(c.children)
				if err != nil {
					return err
				}
				next.rules = append(slices.Clone(sc.rules), inherited...)
				if err := collect(next, c.children); err != nil {
					return err
				}
			case kindConf:
				conf, err := resolveConfiguration(sc, c)
				if err != nil {
					return err
				}
				if first, dup := confLines[conf.Name]; dup {
					return &PropagationError{Line: c.line, Msg: fmt.Sprintf("configuration %q of domain %q already defined at line %d", conf.Name, name, first)}
				}
				confLines[conf.Name] = c.line
				d.Configurations = append(d.Configurations, conf)
			}
		}
		return nil
	}
	if err := collect(scope{}, n.children); err != nil {
		return Domain{}, err
	}

	known := map[string]bool{}
	for _, conf := range d.Configurations {
		for _, s := range conf.Settings {
			if !known[s.Path] {
				known[s.Path] = true
				d.Elements = append(d.Elements, s.Path)
			}
		}
	}
	for _, conf := range d.Configurations {
		set := make(map[string]bool, len(conf.Settings))
		for _, s := range conf.Settings {
			set[s.Path] = true
		}
		var missing []string
		for _, e := range d.Elements {
			if !set[e] {
				missing = append(missing, e)
			}
		}
		if len(missing) > 0 {
			return Domain{}, &PropagationError{
				Line: conf.line,
				Msg:  fmt.Sprintf("configuration %q of domain %q does not set %s", conf.Name, name, strings.Join(missing, ", ")),
			}
		}
	}
	return d, nil
}

func resolveConfiguration(sc scope, n *node) (Configuration, error) {
	own, err := ruleNodes(n.children)
	if err != nil {
		return Configuration{}, err
	}
	conf := Configuration{
		Name: sc.confPrefix + n.name,
		Rule: conjunction(append(slices.Clone(sc.rules), own...)),
		line: n.line,
	}
	seen := map[string]bool{}

	var walk func(base string, nodes []*node) error
	walk = func(base string, nodes []*node) error {
		for _, c := range nodes {
			switch c.kind {
			case kindComponent:
				if err := walk(joinPath(base, c.name), c.children); err != nil {
					return err
				}
			case kindSetting:
				p := joinPath(base, c.name)
				if !strings.HasPrefix(p, "/") {
					return &PropagationError{Line: c.line, Msg: fmt.Sprintf("parameter path %q is not absolute", p)}
				}
				if seen[p] {
					return &PropagationError{Line: c.line, Msg: fmt.Sprintf("parameter %q set twice in configuration %q", p, conf.Name)}
				}
				seen[p] = true
				conf.Settings = append(conf.Settings, Setting{Path: p, Value: c.value})
			}
		}
		return nil
	}
	if err := walk(sc.path, n.children); err != nil {
		return Configuration{}, err
	}
	return conf, nil
}

func ruleNodes(nodes []*node) ([]*Rule, error) {
	var rules []*Rule
	for _, n := range nodes {
		if n.kind.isRule() {
			r, err := toRule(n)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// toRule converts a rule node. ALL and ANY blocks must hold at least one rule.
func toRule(n *node) (*Rule, error) {
	switch n.kind {
	case kindAll, kindAny:
		r := &Rule{Kind: RuleAll}
		if n.kind == kindAny {
			r.Kind = RuleAny
		}
		if len(n.children) == 0 {
			return nil, &PropagationError{Line: n.line, Msg: fmt.Sprintf("empty %s block", n.kind)}
		}
		for _, c := range n.children {
			child, err := toRule(c)
			if err != nil {
				return nil, err
			}
			r.Children = append(r.Children, child)
		}
		return r, nil
	default:
		return &Rule{Kind: RuleCondition, Criterion: n.name, Op: n.op, Value: n.value}, nil
	}
}

func joinPath(base, p string) string {
	if strings.HasPrefix(p, "/") || base == "" {
		return p
	}
	return path.Join(base, p)
}

// Translate replays the propagated tree into tr. An unpropagated tree emits nothing.
func (t *Tree) Translate(tr ports.Translator) {
	if !t.propagated {
		return
	}
	for _, d := range t.domains {
		tr.CreateDomain(d.Name)
		if d.SequenceAware {
			tr.SetSequenceAware()
		}
		for _, e := range d.Elements {
			tr.AddElement(e)
		}
		for _, conf := range d.Configurations {
			tr.CreateConfiguration(conf.Name)
			if conf.Rule != nil {
				tr.SetRule(conf.Rule.String())
			}
			if d.SequenceAware {
				seq := make([]string, len(conf.Settings))
				for i, s := range conf.Settings {
					seq[i] = s.Path
				}
				tr.SetElementSequence(seq)
			}
			for _, s := range conf.Settings {
				tr.SetParameter(s.Path, s.Value)
			}
		}
	}
}

// References lists, per domain, the criteria its configuration rules use.
func (t *Tree) References() []domain.DomainReference {
	refs := make([]domain.DomainReference, 0, len(t.domains))
	for _, d := range t.domains {
		seen := map[string]bool{}
		var names []string
		for _, conf := range d.Configurations {
			if conf.Rule != nil {
				names = conf.Rule.criteria(seen, names)
			}
		}
		refs = append(refs, domain.DomainReference{Domain: d.Name, Criteria: names})
	}
	return refs
}
