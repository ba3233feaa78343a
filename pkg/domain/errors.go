package domain

import (
	"errors"
	"fmt"
)

// Process exit codes for fatal errors. A builder failure forwards the builder's own status instead.
const (
	ExitOK                 = 0
	ExitRuleConsistency    = 1
	ExitRuleSyntax         = 2
	ExitInputFormat        = 3
	ExitLaunch             = 4
	ExitConfig             = 5
	exitUnrecoverableError = 1
)

// ErrEmptyCommand is returned when a command without any token is about to be framed.
var ErrEmptyCommand = errors.New("empty command")

// InputFormatError reports a malformed criteria line or an unreadable/unparsable input document.
type InputFormatError struct {
	File    string
	Line    int    // 1-based; 0 when not applicable
	Element string // offending XML element, if any
	Reason  string
	Err     error
}

func (e *InputFormatError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Element != "" {
		loc = fmt.Sprintf("%s: %s", loc, e.Element)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// ExitCode implements exitCoder.
func (e *InputFormatError) ExitCode() int { return ExitInputFormat }

// RuleSyntaxError reports a rule-language source that could not be parsed.
type RuleSyntaxError struct {
	Source string
	Err    error
}

func (e *RuleSyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s: %v", e.Source, e.Err)
}

func (e *RuleSyntaxError) Unwrap() error { return e.Err }

// ExitCode implements exitCoder.
func (e *RuleSyntaxError) ExitCode() int { return ExitRuleSyntax }

// RuleConsistencyError reports a parsed rule tree that failed propagation.
type RuleConsistencyError struct {
	Source string
	Err    error
}

func (e *RuleConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent rules in %s: %v", e.Source, e.Err)
}

func (e *RuleConsistencyError) Unwrap() error { return e.Err }

// ExitCode implements exitCoder.
func (e *RuleConsistencyError) ExitCode() int { return ExitRuleConsistency }

// LaunchError reports a builder process that could not be started at all.
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch builder %q: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitCode implements exitCoder.
func (e *LaunchError) ExitCode() int { return ExitLaunch }

// ConfigError reports invalid or missing invocation arguments.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ExitCode implements exitCoder.
func (e *ConfigError) ExitCode() int { return ExitConfig }

// BuilderFailure carries the non-zero status of a builder that ran to completion.
// The status is forwarded verbatim, never reinterpreted.
type BuilderFailure struct {
	Code int
}

func (e *BuilderFailure) Error() string {
	return fmt.Sprintf("builder exited with status %d", e.Code)
}

// ExitCode implements exitCoder.
func (e *BuilderFailure) ExitCode() int { return e.Code }

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps an error to the process exit status.
// Untyped errors count as a single unrecoverable error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return exitUnrecoverableError
}
