package edd

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aretw0/domaingen/pkg/ports"
)

const maxLineSize = 1 << 20

var _ ports.RuleParser = (*Parser)(nil)

type nodeKind int

const (
	kindDomainGroup nodeKind = iota
	kindDomain
	kindConfGroup
	kindConf
	kindComponent
	kindAll
	kindAny
	kindCondition
	kindSetting
)

var kindNames = map[nodeKind]string{
	kindDomainGroup: "domainGroup",
	kindDomain:      "domain",
	kindConfGroup:   "confGroup",
	kindConf:        "conf",
	kindComponent:   "component",
	kindAll:         "ALL",
	kindAny:         "ANY",
	kindCondition:   "condition",
	kindSetting:     "setting",
}

func (k nodeKind) String() string { return kindNames[k] }

func (k nodeKind) isRule() bool {
	return k == kindAll || k == kindAny || k == kindCondition
}

// node is one statement of the source, with its nested statements.
type node struct {
	kind          nodeKind
	line          int
	name          string // group, domain, conf or component name; setting path; condition criterion
	op            string // condition operator
	value         string // condition or setting value
	sequenceAware bool
	children      []*node
}

// nest decides which statements may appear under a node.
type nest int

const (
	ctxTop nest = iota
	ctxDomainGroup
	ctxDomain
	ctxConfGroup
	ctxConf
	ctxRule
	ctxComponentDomain
	ctxComponentConf
	ctxLeaf
)

var allowed = map[nest][]nodeKind{
	ctxTop:             {kindDomainGroup, kindDomain},
	ctxDomainGroup:     {kindDomainGroup, kindDomain},
	ctxDomain:          {kindComponent, kindConfGroup, kindConf},
	ctxConfGroup:       {kindAll, kindAny, kindCondition, kindComponent, kindConfGroup, kindConf},
	ctxConf:            {kindAll, kindAny, kindCondition, kindComponent, kindSetting},
	ctxRule:            {kindAll, kindAny, kindCondition},
	ctxComponentDomain: {kindComponent, kindConfGroup, kindConf},
	ctxComponentConf:   {kindComponent, kindSetting},
}

// childContext returns the context the children of a node of kind k are parsed in.
func childContext(parent nest, k nodeKind) nest {
	switch k {
	case kindDomainGroup:
		return ctxDomainGroup
	case kindDomain:
		return ctxDomain
	case kindConfGroup:
		return ctxConfGroup
	case kindConf:
		return ctxConf
	case kindAll, kindAny:
		return ctxRule
	case kindComponent:
		if parent == ctxConf || parent == ctxComponentConf {
			return ctxComponentConf
		}
		return ctxComponentDomain
	}
	return ctxLeaf
}

var keywordRe = regexp.MustCompile(`^(domainGroup|domain|confGroup|conf|component)\s*:\s*(.*)$`)

// rawLine is a significant source line placed in the indentation tree.
type rawLine struct {
	num      int
	indent   int
	text     string
	children []*rawLine
}

// Parser reads domain description sources. The zero value is ready to use.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements ports.RuleParser.
func (p *Parser) Parse(name string, r io.Reader) (ports.RuleTree, error) {
	t, err := p.ParseTree(name, r)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTree parses a source into a concrete, not yet propagated, Tree.
func (p *Parser) ParseTree(name string, r io.Reader) (*Tree, error) {
	root, err := indentTree(r)
	if err != nil {
		return nil, err
	}
	nodes, err := build(root.children, ctxTop)
	if err != nil {
		return nil, err
	}
	return &Tree{source: name, roots: nodes}, nil
}

// indentTree groups significant lines by indentation. Siblings must share the same indentation.
func indentTree(r io.Reader) (*rawLine, error) {
	root := &rawLine{indent: -1}
	stack := []*rawLine{root}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	num := 0
	for sc.Scan() {
		num++
		raw := strings.TrimRight(sc.Text(), "\r")
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		l := &rawLine{num: num, indent: indentation(raw), text: text}
		for stack[len(stack)-1].indent >= l.indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if len(parent.children) > 0 && parent.children[0].indent != l.indent {
			return nil, &SyntaxError{Line: num, Msg: "inconsistent indentation"}
		}
		parent.children = append(parent.children, l)
		stack = append(stack, l)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// indentation measures leading whitespace in columns, tabs stopping every 8 columns.
func indentation(s string) int {
	col := 0
	for _, c := range s {
		switch c {
		case ' ':
			col++
		case '\t':
			col = (col/8 + 1) * 8
		default:
			return col
		}
	}
	return col
}

func build(lines []*rawLine, ctx nest) ([]*node, error) {
	nodes := make([]*node, 0, len(lines))
	for _, l := range lines {
		n, err := classify(l)
		if err != nil {
			return nil, err
		}
		if !permitted(ctx, n.kind) {
			return nil, &SyntaxError{Line: l.num, Msg: fmt.Sprintf("%s is not allowed here", n.kind)}
		}
		sub := childContext(ctx, n.kind)
		if sub == ctxLeaf && len(l.children) > 0 {
			return nil, &SyntaxError{Line: l.children[0].num, Msg: fmt.Sprintf("a %s cannot have nested statements", n.kind)}
		}
		if n.children, err = build(l.children, sub); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func permitted(ctx nest, k nodeKind) bool {
	for _, a := range allowed[ctx] {
		if a == k {
			return true
		}
	}
	return false
}

func classify(l *rawLine) (*node, error) {
	n := &node{line: l.num}

	if m := keywordRe.FindStringSubmatch(l.text); m != nil {
		fields := strings.Fields(m[2])
		if len(fields) == 0 {
			return nil, &SyntaxError{Line: l.num, Msg: fmt.Sprintf("%s needs a name", m[1])}
		}
		n.name = fields[0]
		switch m[1] {
		case "domainGroup":
			n.kind = kindDomainGroup
		case "domain":
			n.kind = kindDomain
		case "confGroup":
			n.kind = kindConfGroup
		case "conf":
			n.kind = kindConf
		case "component":
			n.kind = kindComponent
		}
		for _, opt := range fields[1:] {
			if n.kind == kindDomain && opt == "sequenceAware" {
				n.sequenceAware = true
				continue
			}
			return nil, &SyntaxError{Line: l.num, Msg: fmt.Sprintf("unexpected %q after %s name", opt, m[1])}
		}
		return n, nil
	}

	switch strings.ToUpper(l.text) {
	case "ALL":
		n.kind = kindAll
		return n, nil
	case "ANY":
		n.kind = kindAny
		return n, nil
	}

	if path, value, ok := strings.Cut(l.text, "="); ok {
		path = strings.TrimSpace(path)
		if path == "" || strings.ContainsAny(path, " \t") {
			return nil, &SyntaxError{Line: l.num, Msg: fmt.Sprintf("invalid parameter path %q", path)}
		}
		n.kind = kindSetting
		n.name = path
		n.value = strings.TrimSpace(value)
		return n, nil
	}

	fields := strings.Fields(l.text)
	if len(fields) == 3 && validOperator(fields[1]) {
		n.kind = kindCondition
		n.name, n.op, n.value = fields[0], fields[1], fields[2]
		return n, nil
	}
	return nil, &SyntaxError{Line: l.num, Msg: fmt.Sprintf("unrecognized statement %q", l.text)}
}
