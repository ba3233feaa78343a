// Package cli holds the plumbing shared by the domaingen commands: signal handling,
// logger setup, script output and watch mode.
package cli

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/internal/presentation/tui"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/script"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger builds the run's logger: an explicit log level wins, otherwise --verbose
// selects debug. Logs always go to stderr.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level := logging.Level(cfg.Verbose)
	if cfg.LogLevel != "" {
		l, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, &domain.ConfigError{Field: config.FlagLogLevel, Reason: err.Error()}
		}
		level = l
	}
	return logging.New(level), nil
}

// Format selects how a command script is written out.
type Format string

const (
	// FormatFramed is the builder's wire format.
	FormatFramed Format = "framed"
	// FormatText puts one space-separated command per line.
	FormatText Format = "text"
	// FormatMarkdown is a summary table plus the commands, rendered on a terminal.
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatFramed, FormatText, FormatMarkdown:
		return f, nil
	}
	return "", &domain.ConfigError{Field: "format", Reason: fmt.Sprintf("unknown format %q (want framed, text or markdown)", s)}
}

// Renderer turns markdown into terminal output.
type Renderer func(string) (string, error)

// WriteScript writes cmds to w in the given format and returns how many were written.
// Markdown goes through render when it is not nil, and is written raw otherwise.
func WriteScript(w io.Writer, cmds iter.Seq[domain.Command], format Format, title string, render Renderer) (int, error) {
	switch format {
	case FormatFramed:
		sw := script.NewWriter(w)
		for cmd := range cmds {
			if err := sw.Write(cmd); err != nil {
				return sw.Count(), err
			}
		}
		return sw.Count(), sw.Flush()

	case FormatText:
		n := 0
		for cmd := range cmds {
			if _, err := fmt.Fprintln(w, script.FormatText(cmd)); err != nil {
				return n, err
			}
			n++
		}
		return n, nil

	case FormatMarkdown:
		var all []domain.Command
		for cmd := range cmds {
			all = append(all, cmd)
		}
		md := tui.ScriptMarkdown(title, all)
		if render != nil {
			out, err := render(md)
			if err != nil {
				return 0, fmt.Errorf("render markdown: %w", err)
			}
			md = out
		}
		_, err := io.WriteString(w, md)
		return len(all), err
	}
	return 0, &domain.ConfigError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)}
}

// TerminalRenderer returns a glamour renderer when f is a terminal, and nil otherwise.
func TerminalRenderer(f *os.File) Renderer {
	if !tui.IsTerminal(f) {
		return nil
	}
	render, err := tui.NewRenderer("", tui.TerminalWidth(f, 100))
	if err != nil {
		return nil
	}
	return render
}

// OpenOutput returns stdout for "" or "-", or the created file at path.
func OpenOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &domain.InputFormatError{File: path, Reason: "cannot create output", Err: err}
	}
	return f, f.Close, nil
}
