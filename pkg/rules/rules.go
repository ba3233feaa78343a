// Package rules loads domain rule sources through a ports.RuleParser and keeps
// only trees that parsed and propagated cleanly.
package rules

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
)

// Source is one rule-language input.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource reads a rule file from disk.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// StringSource serves an in-memory rule text.
func StringSource(name, text string) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(text)), nil },
	}
}

// Parsed is a rule tree that propagated successfully, with the name of its source.
type Parsed struct {
	Name string
	Tree ports.RuleTree
}

// Loader parses and propagates rule sources in order.
type Loader struct {
	parser ports.RuleParser
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader backed by parser.
func NewLoader(parser ports.RuleParser, opts ...Option) *Loader {
	l := &Loader{parser: parser, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses then propagates each source, stopping at the first failure.
// Parse failures are *domain.RuleSyntaxError, propagation failures *domain.RuleConsistencyError,
// unreadable sources *domain.InputFormatError. Nothing is returned on failure.
func (l *Loader) Load(ctx context.Context, sources ...Source) ([]Parsed, error) {
	parsed := make([]Parsed, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := l.load(src)
		if err != nil {
			l.logger.Error("rule source rejected", "source", src.Name, "error", err)
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// LoadFiles is Load over FileSource(path) for each path.
func (l *Loader) LoadFiles(ctx context.Context, paths ...string) ([]Parsed, error) {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = FileSource(p)
	}
	return l.Load(ctx, sources...)
}

func (l *Loader) load(src Source) (Parsed, error) {
	rc, err := src.Open()
	if err != nil {
		return Parsed{}, &domain.InputFormatError{File: src.Name, Reason: "cannot open rule file", Err: err}
	}
	defer rc.Close()

	l.logger.Debug("parsing rule source", "source", src.Name)
	tree, err := l.parser.Parse(src.Name, rc)
	if err != nil {
		return Parsed{}, &domain.RuleSyntaxError{Source: src.Name, Err: err}
	}
	if err := tree.Propagate(); err != nil {
		return Parsed{}, &domain.RuleConsistencyError{Source: src.Name, Err: err}
	}
	return Parsed{Name: src.Name, Tree: tree}, nil
}
