package ports

import (
	"io"

	"github.com/aretw0/domaingen/pkg/domain"
)

// RuleParser turns one rule-language source into a rule tree.
type RuleParser interface {
	// Parse reads the whole source. name identifies it in error messages.
	Parse(name string, r io.Reader) (RuleTree, error)
}

// RuleTree is a parsed rule-language source.
// Once Propagate succeeds the tree is internally consistent and read-only.
type RuleTree interface {
	// Propagate resolves inherited rules and paths and checks structural consistency.
	Propagate() error

	// Translate replays the propagated tree into t, in the tree's own order.
	Translate(t Translator)
}

// Translator receives translation callbacks.
// Calls are contextual: SetRule, SetElementSequence and SetParameter apply to the
// configuration last created, which belongs to the domain last created.
type Translator interface {
	CreateDomain(name string)
	SetSequenceAware()
	AddElement(path string)
	CreateConfiguration(name string)
	SetRule(rule string)
	SetElementSequence(paths []string)
	SetParameter(path, value string)
}

// ScriptTranslator is a Translator that accumulates builder commands.
type ScriptTranslator interface {
	Translator

	// Script returns the accumulated commands in emission order.
	Script() []domain.Command
}

// CriteriaReferencer is implemented by rule trees that can list the criteria their rules use.
// It is optional and only serves diagnostics.
type CriteriaReferencer interface {
	References() []domain.DomainReference
}

// TranslatorFactory returns a fresh, empty ScriptTranslator.
type TranslatorFactory func() ScriptTranslator
