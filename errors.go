package config

import "errors"

var (
	// ErrLex indicates a lexer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a parser failure.
	ErrParse = errors.New("parse error")

	// ErrUnknownClass indicates a resolution target with no declaration.
	ErrUnknownClass = errors.New("unknown class")

	// ErrAmbiguousClass indicates a bare class name matching several scopes.
	ErrAmbiguousClass = errors.New("ambiguous class")

	// ErrCycle indicates a base-class chain that revisits itself.
	ErrCycle = errors.New("inheritance cycle")
)
