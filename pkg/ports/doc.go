/*
Package ports defines the driven ports (interfaces) of the domain generator.

These interfaces decouple the generation pipeline from the rule-language
implementation and from the settings-database builder, so that each side can be
swapped (a real connector process, an in-memory recorder in tests).

# Key Interfaces

  - RuleParser / RuleTree: Parse a rule-language source, propagate it, translate it.
  - Translator: Receives translation callbacks and accumulates builder commands.
  - Builder: Consumes an ordered command stream and reports a final status.
*/
package ports
