package domaingen

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/domaingen/internal/hostconfig"
	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/internal/metrics"
	"github.com/aretw0/domaingen/pkg/adapters/process"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/criteria"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/edd"
	"github.com/aretw0/domaingen/pkg/ports"
	"github.com/aretw0/domaingen/pkg/rules"
	"github.com/aretw0/domaingen/pkg/sequencer"
)

// Generator is the high-level entry point: it loads the inputs named by a Config and
// drives a builder session with the resulting command stream.
type Generator struct {
	cfg     config.Config
	logger  *slog.Logger
	builder ports.Builder
	parser  ports.RuleParser
	metrics *metrics.Recorder
	tmpDir  string
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets the structured logger handed to every stage.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithBuilder injects a custom builder, bypassing the connector process.
func WithBuilder(b ports.Builder) Option {
	return func(g *Generator) {
		g.builder = b
	}
}

// WithRuleParser replaces the rule-language parser.
func WithRuleParser(p ports.RuleParser) Option {
	return func(g *Generator) {
		g.parser = p
	}
}

// WithMetrics records run statistics into m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithTempDir sets where the rewritten top-level configuration is written.
func WithTempDir(dir string) Option {
	return func(g *Generator) {
		g.tmpDir = dir
	}
}

// New creates a Generator for cfg. By default rules are parsed by pkg/edd and the builder
// is the connector process named by cfg.Connector.
func New(cfg config.Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.parser == nil {
		g.parser = edd.NewParser()
	}
	if g.builder == nil {
		g.builder = process.NewConnector(
			process.WithBinary(cfg.Connector),
			process.WithLogger(g.logger),
		)
	}
	return g
}

// Config returns the configuration the generator was created with.
func (g *Generator) Config() config.Config { return g.cfg }

// Plan is a fully loaded and checked generation: nothing remains that can fail before
// the builder runs.
type Plan struct {
	Criteria []domain.Criterion
	Rules    []rules.Parsed
	input    sequencer.Input
	opts     []sequencer.Option
}

// Commands returns the lazy command stream of the plan.
func (p *Plan) Commands() iter.Seq[domain.Command] {
	return sequencer.Sequence(p.input, p.opts...)
}

// References lists, per domain, the criteria the plan's rules use.
// Rule trees that cannot report references are left out.
func (p *Plan) References() []domain.DomainReference {
	var refs []domain.DomainReference
	for _, r := range p.Rules {
		if cr, ok := r.Tree.(ports.CriteriaReferencer); ok {
			refs = append(refs, cr.References()...)
		}
	}
	return refs
}

// Undeclared lists the criteria rules reference without any criterion declaring them.
func (p *Plan) Undeclared() []domain.DomainReference {
	return domain.UndeclaredCriteria(p.Criteria, p.References())
}

// Load reads the criteria and the rule files. Any failure is fatal; no partial plan is returned.
func (g *Generator) Load(ctx context.Context) (*Plan, error) {
	if err := g.cfg.ValidateInputs(); err != nil {
		return nil, err
	}

	start := time.Now()
	crit, err := criteria.Load(g.cfg.Criteria, g.cfg.CriterionTypes, criteria.WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	g.metrics.CriteriaLoaded(len(crit))
	g.metrics.ObserveStage("criteria", start)

	start = time.Now()
	parsed, err := rules.NewLoader(g.parser, rules.WithLogger(g.logger)).LoadFiles(ctx, g.cfg.RuleFiles...)
	if err != nil {
		return nil, err
	}
	g.metrics.RuleFilesLoaded(len(parsed))
	g.metrics.ObserveStage("rules", start)

	return &Plan{
		Criteria: crit,
		Rules:    parsed,
		input: sequencer.Input{
			Criteria:        crit,
			InitialSettings: ResolvePath(g.cfg.InitialSettings),
			Domains:         g.cfg.Domains,
			Rules:           parsed,
		},
		opts: []sequencer.Option{
			sequencer.WithLogger(g.logger),
			sequencer.WithObserver(g.metrics.CommandEmitted),
		},
	}, nil
}

// Run loads the inputs, rewrites the top-level configuration for the host and streams the
// commands to the builder. A builder that exits non-zero yields *domain.BuilderFailure.
func (g *Generator) Run(ctx context.Context) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	plan, err := g.Load(ctx)
	if err != nil {
		return err
	}
	return g.Build(ctx, plan)
}

// Build drives one builder session for plan. The temporary configuration is removed
// whatever the outcome.
func (g *Generator) Build(ctx context.Context, plan *Plan) error {
	tmp, cleanup, err := hostconfig.WriteTemp(g.cfg.ToplevelConfig, g.tmpDir)
	if err != nil {
		return err
	}
	defer cleanup()
	g.logger.Debug("top-level configuration rewritten", "source", g.cfg.ToplevelConfig, "tmp", tmp)

	start := time.Now()
	code, err := g.builder.Run(ctx, g.cfg.SessionConfig(tmp), plan.Commands())
	g.metrics.ObserveStage("build", start)
	g.metrics.Finished(time.Now())
	if err != nil {
		return fmt.Errorf("builder session: %w", err)
	}
	g.metrics.BuilderStatus(code)
	if code != 0 {
		return &domain.BuilderFailure{Code: code}
	}
	g.logger.Info("settings generated")
	return nil
}

// ResolvePath returns the absolute, symlink-free form of p, or its absolute form when it
// cannot be resolved. An empty p stays empty.
func ResolvePath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
