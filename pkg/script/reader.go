package script

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/aretw0/domaingen/pkg/domain"
)

// maxRecordSize bounds a single framed command. Long element sequences stay far below it.
const maxRecordSize = 4 << 20

// Reader decodes framed commands.
type Reader struct {
	s *bufio.Scanner
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	s.Split(scanRecords)
	return &Reader{s: s}
}

// Next returns the next command, or io.EOF after the last one.
// A final record missing its newline is still returned.
func (r *Reader) Next() (domain.Command, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return domain.Command(strings.Split(r.s.Text(), string(tokenSeparator))), nil
}

// All iterates over the remaining commands, stopping after the first error.
func (r *Reader) All() iter.Seq2[domain.Command, error] {
	return func(yield func(domain.Command, error) bool) {
		for {
			cmd, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(cmd, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll decodes every command from r.
func ReadAll(r io.Reader) ([]domain.Command, error) {
	var cmds []domain.Command
	for cmd, err := range NewReader(r).All() {
		if err != nil {
			return cmds, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// scanRecords splits on '\n' only; unlike bufio.ScanLines it keeps a trailing '\r'.
func scanRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, recordSeparator); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
