package memory

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
)

var _ ports.Builder = (*Builder)(nil)

// Session is one recorded builder run.
type Session struct {
	Config   domain.SessionConfig
	Commands []domain.Command
}

// Builder implements ports.Builder in memory: it records every session instead of building.
// Safe for concurrent use.
type Builder struct {
	mu       sync.Mutex
	status   int
	sessions []Session
}

// Option configures the Builder.
type Option func(*Builder)

// WithStatus makes every run report status, as a failing builder would.
func WithStatus(status int) Option {
	return func(b *Builder) {
		b.status = status
	}
}

// NewBuilder creates an in-memory builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run drains cmds and records them with cfg.
func (b *Builder) Run(ctx context.Context, cfg domain.SessionConfig, cmds iter.Seq[domain.Command]) (int, error) {
	var recorded []domain.Command
	for cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		recorded = append(recorded, slices.Clone(cmd))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = append(b.sessions, Session{Config: cfg, Commands: recorded})
	return b.status, nil
}

// Calls returns how many sessions were run.
func (b *Builder) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// Sessions returns a copy of the recorded sessions, oldest first.
func (b *Builder) Sessions() []Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.sessions)
}

// Last returns the most recent session, if any.
func (b *Builder) Last() (Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sessions) == 0 {
		return Session{}, false
	}
	return b.sessions[len(b.sessions)-1], true
}
