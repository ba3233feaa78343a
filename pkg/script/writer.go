package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
)

const (
	tokenSeparator  = '\x00'
	recordSeparator = '\n'
)

// EncodeError reports a command that cannot be framed.
// Nothing of the offending command has been written when it is returned.
type EncodeError struct {
	Command domain.Command
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot frame command %q: %v", e.Command.Verb(), e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Writer frames commands onto an underlying writer.
// Output is buffered: call Flush once the last command is written.
type Writer struct {
	w *bufio.Writer
	n int
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write frames one command.
func (w *Writer) Write(cmd domain.Command) error {
	if err := Validate(cmd); err != nil {
		return &EncodeError{Command: cmd, Err: err}
	}
	for i, tok := range cmd {
		if i > 0 {
			if err := w.w.WriteByte(tokenSeparator); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(tok); err != nil {
			return err
		}
	}
	if err := w.w.WriteByte(recordSeparator); err != nil {
		return err
	}
	w.n++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of commands written so far.
func (w *Writer) Count() int {
	return w.n
}

// Validate checks that cmd can be framed without ambiguity.
func Validate(cmd domain.Command) error {
	if len(cmd) == 0 {
		return domain.ErrEmptyCommand
	}
	for i, tok := range cmd {
		if strings.ContainsAny(tok, "\x00\n") {
			return fmt.Errorf("token %d %q contains a NUL or newline", i, tok)
		}
	}
	return nil
}
