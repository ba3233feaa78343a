/*
Package edd implements the domain description language used to write configurable
domains compactly.

A source is structured by indentation. Comments start with '#'.

	domainGroup: Audio
		domain: Routing sequenceAware
			component: /Audio/codec
				conf: Call
					ANY
						Mode Is InCall
						Mode Is InCommunication
					volume = 10
				conf: Default
					volume = 0

Groups prefix the names they contain ("Audio.Routing"); confGroup rules are ANDed into
every nested configuration; component paths prefix the parameter paths below them.
Conditions read "<Criterion> <Is|IsNot|Includes|Excludes> <Value>".

Parse only checks syntax. Propagate resolves names, rules and paths and checks that the
result is consistent; Translate then replays it into a ports.Translator.
*/
package edd
