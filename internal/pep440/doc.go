// Package pep440 implements parsing, canonical formatting, ordering and
// bump arithmetic for PEP 440 version identifiers.
package pep440
