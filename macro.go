package config

import "strings"

// expander rewrites macro-call tokens from the lexer using the caller's
// resolver. Expansion is single-pass: resolver output becomes a plain string
// token and is never re-scanned for further macro calls.
type expander struct {
	l       *lexer        // Token source
	resolve MacroResolver // Caller-supplied resolution capability
	source  string        // Source identifier for diagnostics
	diags   []Diagnostic  // Recorded diagnostics
}

// newExpander creates an expander over a lexer.
func newExpander(l *lexer, resolve MacroResolver, source string) *expander {
	return &expander{l: l, resolve: resolve, source: source}
}

// next returns the next token, expanding macro calls.
func (e *expander) next() (token, error) {
	tok, err := e.l.next()
	if err != nil || tok.Type != tokMacro {
		return tok, err
	}

	name, args := splitMacroCall(tok.Lit)
	if e.resolve != nil {
		if text, ok := e.resolve(name, args); ok {
			return token{Type: tokString, Lit: text, Line: tok.Line, Col: tok.Col}, nil
		}
	}

	// Unresolved calls pass through with their raw text; resolution of the
	// surrounding class is unaffected.
	e.diags = append(e.diags, Diagnostic{
		Level:   DiagWarning,
		Code:    CodeUnresolvedMacro,
		Message: "unresolved macro " + tok.Lit,
		Source:  e.source,
		Line:    tok.Line,
		Col:     tok.Col,
	})

	return tok, nil
}

// splitMacroCall splits raw call text into the macro name and its arguments.
func splitMacroCall(raw string) (string, []string) {
	open := strings.IndexByte(raw, '(')
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return raw, nil
	}

	name := raw[:open]
	body := raw[open+1 : len(raw)-1]
	if strings.TrimSpace(body) == "" {
		return name, nil
	}

	return name, splitTopLevel(body)
}

// splitTopLevel splits an argument list on top-level commas only. Commas
// nested inside parentheses or string literals do not split.
func splitTopLevel(s string) []string {
	var args []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(s[start:]))

	return args
}
