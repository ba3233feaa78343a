package graph

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/domaingen/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of which criteria drive which domains.
// It applies semantic styling:
// - Inclusive criterion: [[Subroutine]]
// - Exclusive criterion: [/Parallelogram/]
// - Domain: [Rectangle]
// Criteria referenced by a domain but never declared are drawn dotted and styled as undeclared.
func GenerateMermaid(criteria []domain.Criterion, refs []domain.DomainReference) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	declared := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		declared[c.Name] = true
		opener, closer := "[/", "/]"
		if c.Inclusiveness == domain.Inclusive {
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> %d values\"%s\n", criterionID(c.Name), opener, label(c.Name), len(c.Values), closer)
	}

	var undeclared []string
	seen := map[string]bool{}
	for _, ref := range refs {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", domainID(ref.Domain), label(ref.Domain))
		for _, name := range ref.Criteria {
			arrow := "-->"
			if !declared[name] {
				arrow = "-.->"
				if !seen[name] {
					seen[name] = true
					undeclared = append(undeclared, name)
					fmt.Fprintf(&sb, "    %s(\"%s\")\n", criterionID(name), label(name))
				}
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", criterionID(name), arrow, domainID(ref.Domain))
		}
	}

	if len(undeclared) > 0 {
		sb.WriteString("\n    %% Undeclared criteria\n")
		sb.WriteString("    classDef undeclared fill:#fee2e2,stroke:#b91c1c,stroke-dasharray:4,color:#000;\n")
		for _, name := range undeclared {
			fmt.Fprintf(&sb, "    class %s undeclared;\n", criterionID(name))
		}
	}

	return sb.String()
}

func criterionID(name string) string { return "c_" + sanitizeMermaidID(name) }

func domainID(name string) string { return "d_" + sanitizeMermaidID(name) }

// sanitizeMermaidID keeps ASCII letters and digits and writes every other rune as
// _<hex>_, so distinct names never share an id.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			continue
		}
		fmt.Fprintf(&sb, "_%x_", r)
	}
	return sb.String()
}

// label escapes the quote that would end a Mermaid string label.
func label(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
