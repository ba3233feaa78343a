// Package script holds the builder command script: the translator that turns rule
// trees into commands, and the NUL/newline framing used on the builder's input.
//
// A framed record is the command's tokens joined with NUL bytes and terminated by a
// single newline. Tokens therefore may contain neither byte.
package script
