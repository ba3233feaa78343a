package criteria

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
)

var criterionLine = regexp.MustCompile(`^((?:Inclusive|Exclusive)Criterion)\s*(\S+)\s*:\s*(.*)$`)

var keywordInclusiveness = map[string]domain.Inclusiveness{
	"InclusiveCriterion": domain.Inclusive,
	"ExclusiveCriterion": domain.Exclusive,
}

// LoadText reads criteria in the line format "<Inclusive|Exclusive>Criterion <name> : <values...>".
// Every line must match, blank ones included. A line with nothing after the colon declares a
// criterion with the single value "".
func LoadText(name string, r io.Reader, opts ...Option) ([]domain.Criterion, error) {
	o := newOptions(opts)

	var all []domain.Criterion
	declared := map[string]int{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		m := criterionLine.FindStringSubmatch(text)
		if m == nil {
			return nil, &domain.InputFormatError{File: name, Line: line, Reason: fmt.Sprintf("invalid criterion line %q", text)}
		}
		c := domain.Criterion{
			Name:          m[2],
			Inclusiveness: keywordInclusiveness[m[1]],
			Values:        splitValues(m[3]),
		}
		if first, dup := declared[c.Name]; dup {
			return nil, &domain.InputFormatError{File: name, Line: line, Reason: fmt.Sprintf("criterion %q already declared at line %d", c.Name, first)}
		}
		if v, dup := firstDuplicate(c.Values); dup {
			return nil, &domain.InputFormatError{File: name, Line: line, Reason: fmt.Sprintf("criterion %q declares value %q twice", c.Name, v)}
		}
		declared[c.Name] = line
		all = append(all, c)
		o.logger.Debug("criterion loaded", "file", name, "line", line, "criterion", c.Name, "values", len(c.Values))
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.InputFormatError{File: name, Reason: "read failed", Err: err}
	}
	return all, nil
}

// splitValues splits on whitespace runs. Leading and trailing whitespace yield no empty
// values; only an empty remainder gives [""].
func splitValues(s string) []string {
	values := strings.Fields(s)
	if len(values) == 0 {
		return []string{""}
	}
	return values
}

func firstDuplicate(values []string) (string, bool) {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v, true
		}
		seen[v] = true
	}
	return "", false
}
