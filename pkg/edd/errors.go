package edd

import "fmt"

// SyntaxError reports a source line that does not fit the grammar.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// PropagationError reports a structurally inconsistent tree.
type PropagationError struct {
	Line int
	Msg  string
}

func (e *PropagationError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
