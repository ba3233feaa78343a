package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/script"
)

// VerbCount is how many times a verb occurs in a script.
type VerbCount struct {
	Verb  string
	Count int
}

// Summarize counts commands per verb, in order of first occurrence.
func Summarize(cmds []domain.Command) []VerbCount {
	var counts []VerbCount
	index := map[string]int{}
	for _, c := range cmds {
		v := c.Verb()
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, VerbCount{Verb: v})
		}
		counts[i].Count++
	}
	return counts
}

// ScriptMarkdown describes a command script as markdown: a per-verb summary table
// followed by the commands themselves.
func ScriptMarkdown(title string, cmds []domain.Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d commands.\n\n", len(cmds))

	sb.WriteString("| Verb | Count |\n|------|------:|\n")
	for _, vc := range Summarize(cmds) {
		fmt.Fprintf(&sb, "| `%s` | %d |\n", vc.Verb, vc.Count)
	}

	sb.WriteString("\n## Commands\n\n```\n")
	for _, c := range cmds {
		sb.WriteString(script.FormatText(c))
		sb.WriteByte('\n')
	}
	sb.WriteString("```\n")
	return sb.String()
}
