package script

import (
	"strconv"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
)

// FormatText renders a command on one line, quoting tokens that would otherwise be ambiguous.
func FormatText(cmd domain.Command) string {
	parts := make([]string, len(cmd))
	for i, tok := range cmd {
		if tok == "" || strings.ContainsAny(tok, " \t\"\\") || !strconv.CanBackquote(tok) {
			parts[i] = strconv.Quote(tok)
			continue
		}
		parts[i] = tok
	}
	return strings.Join(parts, " ")
}
