package domain

import "strings"

// Builder command verbs.
const (
	VerbCreateSelectionCriterion = "createSelectionCriterion"
	VerbStart                    = "start"
	VerbImportDomains            = "importDomainsWithSettingsXML"
	VerbImportDomain             = "importDomainWithSettingsXML"

	// Emitted by rule translation.
	VerbCreateDomain              = "createDomain"
	VerbSetSequenceAwareness      = "setSequenceAwareness"
	VerbAddElement                = "addElement"
	VerbCreateConfiguration       = "createConfiguration"
	VerbSetRule                   = "setRule"
	VerbSetElementSequence        = "setElementSequence"
	VerbSetConfigurationParameter = "setConfigurationParameter"
)

// Command is one primitive builder command: a verb followed by its arguments.
// Commands are opaque outside the builder; only their relative order matters here.
type Command []string

// NewCommand builds a command from a verb and its arguments.
func NewCommand(verb string, args ...string) Command {
	cmd := make(Command, 0, len(args)+1)
	cmd = append(cmd, verb)
	return append(cmd, args...)
}

// Verb returns the first token, or "" for an empty command.
func (c Command) Verb() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns every token after the verb.
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// String renders the command space-separated, for logs.
func (c Command) String() string {
	return strings.Join(c, " ")
}
