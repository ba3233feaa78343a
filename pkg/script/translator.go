package script

import (
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
)

var _ ports.ScriptTranslator = (*Translator)(nil)

// Translator accumulates the builder commands produced while translating one rule tree.
type Translator struct {
	domain string
	conf   string
	script []domain.Command
}

// NewTranslator returns an empty translator.
func NewTranslator() *Translator {
	return &Translator{}
}

// NewScriptTranslator is NewTranslator typed as the port, for use as a factory.
func NewScriptTranslator() ports.ScriptTranslator {
	return NewTranslator()
}

// Script returns the commands accumulated so far.
func (t *Translator) Script() []domain.Command {
	return t.script
}

func (t *Translator) CreateDomain(name string) {
	t.domain = name
	t.conf = ""
	t.append(domain.VerbCreateDomain, name)
}

func (t *Translator) SetSequenceAware() {
	t.append(domain.VerbSetSequenceAwareness, t.domain, "true")
}

func (t *Translator) AddElement(path string) {
	t.append(domain.VerbAddElement, t.domain, path)
}

func (t *Translator) CreateConfiguration(name string) {
	t.conf = name
	t.append(domain.VerbCreateConfiguration, t.domain, name)
}

func (t *Translator) SetRule(rule string) {
	t.append(domain.VerbSetRule, t.domain, t.conf, rule)
}

func (t *Translator) SetElementSequence(paths []string) {
	args := append([]string{t.domain, t.conf}, paths...)
	t.append(domain.VerbSetElementSequence, args...)
}

func (t *Translator) SetParameter(path, value string) {
	t.append(domain.VerbSetConfigurationParameter, t.domain, t.conf, path, value)
}

func (t *Translator) append(verb string, args ...string) {
	t.script = append(t.script, domain.NewCommand(verb, args...))
}
