package criteria

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/domaingen/internal/xmltok"
	"github.com/aretw0/domaingen/pkg/domain"
)

const (
	elemCriterion     = "criterion"
	elemCriterionType = "criterion_type"
)

// criterionType is a <criterion_type> declaration as written, resolved only when referenced.
type criterionType struct {
	name   string
	kind   string
	values string
	line   int
}

// LoadXML reads the <criterion> children of the criteria document and resolves each one's
// type among the <criterion_type> children of the types document. The first type with a
// matching name wins. A criterion whose type is not declared is skipped without error.
func LoadXML(criteriaName string, criteria io.Reader, typesName string, types io.Reader, opts ...Option) ([]domain.Criterion, error) {
	o := newOptions(opts)

	declared, err := readTypes(typesName, types)
	if err != nil {
		return nil, err
	}

	var all []domain.Criterion
	seen := map[string]int{}
	err = xmltok.Walk(criteria, func(path []xml.StartElement, line int) error {
		el := path[len(path)-1]
		if len(path) != 2 || el.Name.Local != elemCriterion {
			return nil
		}
		name, _ := xmltok.Attr(el, "name")
		if name == "" {
			return &domain.InputFormatError{File: criteriaName, Line: line, Element: elemCriterion, Reason: "missing name attribute"}
		}
		typeName, _ := xmltok.Attr(el, "type")

		ct, ok := lookupType(declared, typeName)
		if !ok {
			o.logger.Debug("criterion skipped, type not declared", "file", criteriaName, "line", line, "criterion", name, "type", typeName)
			return nil
		}
		inclusiveness, err := domain.ParseInclusiveness(ct.kind)
		if err != nil {
			return &domain.InputFormatError{File: typesName, Line: ct.line, Element: elemCriterionType + " " + ct.name, Reason: "invalid type attribute", Err: err}
		}
		c := domain.Criterion{Name: name, Inclusiveness: inclusiveness, Values: strings.Split(ct.values, ",")}

		if first, dup := seen[name]; dup {
			return &domain.InputFormatError{File: criteriaName, Line: line, Element: elemCriterion, Reason: fmt.Sprintf("criterion %q already declared at line %d", name, first)}
		}
		if v, dup := firstDuplicate(c.Values); dup {
			return &domain.InputFormatError{File: typesName, Line: ct.line, Element: elemCriterionType + " " + ct.name, Reason: fmt.Sprintf("value %q listed twice", v)}
		}
		seen[name] = line
		all = append(all, c)
		o.logger.Debug("criterion loaded", "file", criteriaName, "criterion", name, "type", typeName, "values", len(c.Values))
		return nil
	})
	if err != nil {
		return nil, asInputError(criteriaName, err)
	}
	return all, nil
}

func readTypes(name string, r io.Reader) ([]criterionType, error) {
	var declared []criterionType
	err := xmltok.Walk(r, func(path []xml.StartElement, line int) error {
		el := path[len(path)-1]
		if len(path) != 2 || el.Name.Local != elemCriterionType {
			return nil
		}
		ct := criterionType{line: line}
		ct.name, _ = xmltok.Attr(el, "name")
		ct.kind, _ = xmltok.Attr(el, "type")
		ct.values, _ = xmltok.Attr(el, "values")
		declared = append(declared, ct)
		return nil
	})
	if err != nil {
		return nil, asInputError(name, err)
	}
	return declared, nil
}

func lookupType(declared []criterionType, name string) (criterionType, bool) {
	for _, ct := range declared {
		if ct.name == name {
			return ct, true
		}
	}
	return criterionType{}, false
}

// asInputError wraps decoder and read failures; InputFormatErrors pass through unchanged.
func asInputError(file string, err error) error {
	var ife *domain.InputFormatError
	if errors.As(err, &ife) {
		return err
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &domain.InputFormatError{File: file, Line: se.Line, Reason: "malformed XML", Err: err}
	}
	return &domain.InputFormatError{File: file, Reason: "read failed", Err: err}
}
