// Package xmltok walks and rewrites XML documents at the token level, so that documents
// round-trip with their prefixes, comments and processing instructions intact.
package xmltok

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Walk calls visit for every start element. path holds the element's ancestors followed
// by the element itself; it is reused between calls and must not be retained.
// line is the 1-based line the element ends on.
func Walk(r io.Reader, visit func(path []xml.StartElement, line int) error) error {
	dec := xml.NewDecoder(r)
	var path []xml.StartElement
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			if len(path) > 0 {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "unexpected EOF", Line: line}
			}
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Copy())
			line, _ := dec.InputPos()
			if err := visit(path, line); err != nil {
				return err
			}
		case xml.EndElement:
			if len(path) == 0 {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "unexpected end element </" + qname(t.Name) + ">", Line: line}
			}
			path = path[:len(path)-1]
		}
	}
}

// Rewrite copies r to w, calling edit on every start element before it is written.
// ancestors lists the names of the enclosing elements, root first.
// Self-closing elements are written as an explicit start and end tag.
func Rewrite(r io.Reader, w io.Writer, edit func(ancestors []xml.Name, el *xml.StartElement)) error {
	dec := xml.NewDecoder(r)
	bw := bufio.NewWriter(w)
	var ancestors []xml.Name
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			if len(ancestors) > 0 {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "unexpected EOF", Line: line}
			}
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := t.Copy()
			if edit != nil {
				edit(ancestors, &el)
			}
			writeStart(bw, el)
			ancestors = append(ancestors, el.Name)
		case xml.EndElement:
			if len(ancestors) > 0 {
				ancestors = ancestors[:len(ancestors)-1]
			}
			bw.WriteString("</" + qname(t.Name) + ">")
		case xml.CharData:
			bw.WriteString(escape(string(t), false))
		case xml.Comment:
			bw.WriteString("<!--" + string(t) + "-->")
		case xml.ProcInst:
			bw.WriteString("<?" + t.Target)
			if len(t.Inst) > 0 {
				bw.WriteString(" " + string(t.Inst))
			}
			bw.WriteString("?>")
		case xml.Directive:
			bw.WriteString("<!" + string(t) + ">")
		}
	}
	return bw.Flush()
}

// Attr returns the value of the unprefixed attribute named local.
func Attr(el xml.StartElement, local string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the unprefixed attribute named local, appending it when absent.
func SetAttr(el *xml.StartElement, local, value string) {
	for i, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			el.Attr[i].Value = value
			return
		}
	}
	el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

func writeStart(w *bufio.Writer, el xml.StartElement) {
	w.WriteString("<" + qname(el.Name))
	for _, a := range el.Attr {
		w.WriteString(" " + qname(a.Name) + `="` + escape(a.Value, true) + `"`)
	}
	w.WriteString(">")
}

// qname renders a raw (untranslated) name as prefix:local.
func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

func escape(s string, attr bool) string {
	if attr {
		return attrEscaper.Replace(s)
	}
	return textEscaper.Replace(s)
}
