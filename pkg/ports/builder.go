package ports

import (
	"context"
	"iter"

	"github.com/aretw0/domaingen/pkg/domain"
)

// Builder consumes an ordered command stream and materializes the settings database.
// It is a two-phase session: every command is written first, then end of input
// triggers the actual build.
type Builder interface {
	// Run starts a session with cfg, consumes cmds in order and returns the builder's status.
	// A returned error means the session could not run; a non-zero status alone is not an error.
	Run(ctx context.Context, cfg domain.SessionConfig, cmds iter.Seq[domain.Command]) (int, error)
}
