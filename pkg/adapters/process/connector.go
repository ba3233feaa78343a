package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"

	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
	"github.com/aretw0/domaingen/pkg/script"
)

// DefaultBinary is the settings-database builder looked up on PATH.
const DefaultBinary = "domainGeneratorConnector"

var _ ports.Builder = (*Connector)(nil)

// Connector drives the builder as a child process: the session configuration goes on its
// command line and the framed command stream on its standard input.
type Connector struct {
	binary string
	stdout io.Writer
	stderr io.Writer
	env    map[string]string
	logger *slog.Logger
}

// Option configures the connector.
type Option func(*Connector)

// WithBinary sets the builder executable (a path, or a name resolved through PATH).
func WithBinary(path string) Option {
	return func(c *Connector) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithStdout sets where the builder's standard output goes. It defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *Connector) {
		if w != nil {
			c.stdout = w
		}
	}
}

// WithStderr sets where the builder's standard error goes. It defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *Connector) {
		if w != nil {
			c.stderr = w
		}
	}
}

// WithEnv adds variables to the builder's environment, on top of the inherited one.
func WithEnv(env map[string]string) Option {
	return func(c *Connector) {
		maps.Copy(c.env, env)
	}
}

// WithLogger sets the connector's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConnector creates a Connector.
func NewConnector(opts ...Option) *Connector {
	c := &Connector{
		binary: DefaultBinary,
		stdout: os.Stdout,
		stderr: os.Stderr,
		env:    make(map[string]string),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the configured builder executable.
func (c *Connector) Binary() string { return c.binary }

// Run launches the builder, streams cmds to it in order, closes its input to trigger the
// build and returns its exit status.
//
// If the builder stops reading early, streaming stops and its status is still returned.
// A command that cannot be framed kills the builder before its input is closed, so a
// truncated script is never built. Cancelling ctx kills the builder.
func (c *Connector) Run(ctx context.Context, cfg domain.SessionConfig, cmds iter.Seq[domain.Command]) (int, error) {
	args := cfg.Args()
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	cmd.Env = cmd.Environ()
	for _, k := range slices.Sorted(maps.Keys(c.env)) {
		cmd.Env = append(cmd.Env, k+"="+c.env[k])
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return -1, &domain.LaunchError{Binary: c.binary, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return -1, &domain.LaunchError{Binary: c.binary, Err: err}
	}
	c.logger.Info("builder started", "binary", c.binary, "pid", cmd.Process.Pid, "args", args)

	w := script.NewWriter(stdin)
	streamErr := stream(w, cmds)

	var encErr *script.EncodeError
	switch {
	case errors.As(streamErr, &encErr):
		_ = cmd.Process.Kill()
	case streamErr != nil:
		c.logger.Warn("builder stopped reading commands", "written", w.Count(), "error", streamErr)
	default:
		c.logger.Debug("command stream complete", "commands", w.Count())
	}

	// End of input is the builder's signal to build.
	_ = stdin.Close()
	waitErr := cmd.Wait()

	if encErr != nil {
		return -1, encErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("builder interrupted: %w", ctxErr)
	}
	code, err := exitStatus(waitErr)
	if err != nil {
		return -1, err
	}
	c.logger.Info("builder finished", "binary", c.binary, "status", code)
	return code, nil
}

func stream(w *script.Writer, cmds iter.Seq[domain.Command]) error {
	for cmd := range cmds {
		if err := w.Write(cmd); err != nil {
			return err
		}
	}
	return w.Flush()
}

func exitStatus(waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return -1, fmt.Errorf("waiting for builder: %w", waitErr)
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code, nil
	}
	return -1, fmt.Errorf("builder terminated: %w", waitErr)
}
