package criteria

import (
	"log/slog"

	"github.com/aretw0/domaingen/internal/logging"
)

type options struct {
	logger *slog.Logger
}

// Option configures a loader call.
type Option func(*options)

// WithLogger sets the logger used for progress and skipped-entry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
