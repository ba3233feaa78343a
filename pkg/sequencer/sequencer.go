// Package sequencer produces the ordered builder command stream.
//
// The order is fixed: every selection criterion, then a single start, then the initial
// settings import, the standalone domain imports, and finally the commands translated
// from each rule tree. The stream is lazy; nothing is computed until it is ranged over.
package sequencer

import (
	"iter"
	"log/slog"

	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
	"github.com/aretw0/domaingen/pkg/rules"
	"github.com/aretw0/domaingen/pkg/script"
)

// Input is everything a command stream is built from.
type Input struct {
	Criteria []domain.Criterion
	// InitialSettings is the resolved path of a settings file; empty means none.
	InitialSettings string
	// Domains are standalone domain files, passed through as given.
	Domains []string
	Rules   []rules.Parsed
}

type config struct {
	logger     *slog.Logger
	translator ports.TranslatorFactory
	observe    func(domain.Command)
}

// Option configures Sequence.
type Option func(*config)

// WithLogger sets the logger used for per-stage progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTranslatorFactory overrides how the translator for each rule tree is created.
func WithTranslatorFactory(f ports.TranslatorFactory) Option {
	return func(c *config) {
		if f != nil {
			c.translator = f
		}
	}
}

// WithObserver registers a callback invoked with each command just before it is yielded.
func WithObserver(fn func(domain.Command)) Option {
	return func(c *config) {
		c.observe = fn
	}
}

// Sequence returns the command stream for in. It may be ranged over more than once;
// each pass re-translates the rule trees.
func Sequence(in Input, opts ...Option) iter.Seq[domain.Command] {
	cfg := &config{logger: logging.NewNop(), translator: script.NewScriptTranslator}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(yield func(domain.Command) bool) {
		emit := func(cmd domain.Command) bool {
			if cfg.observe != nil {
				cfg.observe(cmd)
			}
			return yield(cmd)
		}

		cfg.logger.Debug("creating criteria", "count", len(in.Criteria))
		for _, c := range in.Criteria {
			if !emit(c.Command()) {
				return
			}
		}

		if !emit(domain.NewCommand(domain.VerbStart)) {
			return
		}

		if in.InitialSettings != "" {
			cfg.logger.Info("importing initial settings", "file", in.InitialSettings)
			if !emit(domain.NewCommand(domain.VerbImportDomains, in.InitialSettings)) {
				return
			}
		}

		for _, d := range in.Domains {
			cfg.logger.Info("importing domain file", "file", d)
			if !emit(domain.NewCommand(domain.VerbImportDomain, d)) {
				return
			}
		}

		for _, p := range in.Rules {
			cfg.logger.Info("translating rule file", "file", p.Name)
			tr := cfg.translator()
			p.Tree.Translate(tr)
			for _, cmd := range tr.Script() {
				if !emit(cmd) {
					return
				}
			}
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[domain.Command]) []domain.Command {
	var out []domain.Command
	for cmd := range seq {
		out = append(out, cmd)
	}
	return out
}
