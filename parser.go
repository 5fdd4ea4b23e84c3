package config

import (
	"fmt"
	"strconv"
	"strings"
)

// parser represents a parser for config text.
type parser struct {
	tok    *expander    // Expanded token source
	buf    token        // Buffered token
	has    bool         // Has buffered token
	source string       // Source identifier for diagnostics
	diags  []Diagnostic // Recorded diagnostics
}

// newParser creates a new parser over an expanded token stream.
func newParser(tok *expander, source string) *parser {
	return &parser{tok: tok, source: source}
}

// next returns the next token.
func (p *parser) next() (token, error) {
	if p.has {
		p.has = false
		return p.buf, nil
	}

	return p.tok.next()
}

// peek returns the next token without consuming it.
func (p *parser) peek() (token, error) {
	if p.has {
		return p.buf, nil
	}

	tok, err := p.tok.next()
	if err != nil {
		return tok, err
	}

	p.buf = tok
	p.has = true
	return tok, nil
}

// parseSource parses a whole source into top-level nodes.
func (p *parser) parseSource() ([]node, error) {
	nodes, err := p.parseMembers(tokEOF)
	if err != nil {
		return nil, err
	}

	return nodes, nil
}

// parseMembers parses class-body or top-level members until the end token.
func (p *parser) parseMembers(end tokenType) ([]node, error) {
	var body []node
	seen := make(map[string]token)
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Type == end {
			_, _ = p.next()
			break
		}

		switch tok.Type {
		case tokClass:
			n, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			body = append(body, n)

		case tokDelete:
			n, err := p.parseDelete()
			if err != nil {
				return nil, err
			}
			body = append(body, n)

		case tokEnum:
			entries, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			body = append(body, entries...)

		case tokIdent:
			n, err := p.parseAssign()
			if err != nil {
				return nil, err
			}

			// Last occurrence wins at resolution time; the shadowing one
			// is where the diagnostic points.
			if prev, ok := seen[n.Name]; ok {
				p.diags = append(p.diags, Diagnostic{
					Level:   DiagWarning,
					Code:    CodeDuplicateProperty,
					Message: fmt.Sprintf("property %q shadows an earlier assignment at %d:%d", n.Name, prev.Line, prev.Col),
					Source:  p.source,
					Line:    n.Line,
					Col:     n.Col,
				})
			}
			seen[n.Name] = token{Line: n.Line, Col: n.Col}
			body = append(body, n)

		default:
			return nil, p.errorf(tok, "unexpected token %q", tok.Lit)
		}
	}

	return body, nil
}

// parseClass parses a class declaration or definition.
func (p *parser) parseClass() (node, error) {
	if _, err := p.expect(tokClass); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	// Base-class references stay textual here; resolution is deferred to
	// the session so cross-file bases are not parse errors.
	base := ""
	if tok, _ := p.peek(); tok.Type == tokColon {
		_, _ = p.next()
		btok, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		base = btok.Lit
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	// A trailing semicolon with no body is a forward declaration.
	if tok.Type == tokSemicolon {
		_, _ = p.next()
		return classNode{
			Name:    nameTok.Lit,
			Base:    base,
			Forward: true,
			Line:    nameTok.Line,
			Col:     nameTok.Col,
		}, nil
	}

	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	body, err := p.parseMembers(tokRBrace)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokSemicolon); err != nil {
		return nil, err
	}

	return classNode{
		Name: nameTok.Lit,
		Base: base,
		Body: body,
		Line: nameTok.Line,
		Col:  nameTok.Col,
	}, nil
}

// parseDelete parses a delete statement.
func (p *parser) parseDelete() (node, error) {
	delTok, err := p.expect(tokDelete)
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return nil, err
	}

	return deleteNode{Name: nameTok.Lit, Line: delTok.Line, Col: delTok.Col}, nil
}

// parseEnum parses an enum block into auto-numbered constant assignments.
func (p *parser) parseEnum() ([]node, error) {
	if _, err := p.expect(tokEnum); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	var entries []node
	next := 0.0
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Type == tokRBrace {
			_, _ = p.next()
			break
		}

		nameTok, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}

		val := Number(next)
		if tok, _ := p.peek(); tok.Type == tokEqual {
			_, _ = p.next()
			val, err = p.parseValue()
			if err != nil {
				return nil, err
			}
		}
		if val.Kind == ValueNumber {
			next = val.Num + 1
		}

		entries = append(entries, assignNode{
			Name:  nameTok.Lit,
			Value: val,
			Line:  nameTok.Line,
			Col:   nameTok.Col,
		})

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == tokComma {
			_, _ = p.next()
			continue
		}
		if tok.Type == tokRBrace {
			continue
		}

		return nil, p.errorf(tok, "expected ',' or '}' in enum")
	}

	if _, err := p.expect(tokSemicolon); err != nil {
		return nil, err
	}

	return entries, nil
}

// parseAssign parses a property assignment.
func (p *parser) parseAssign() (assignNode, error) {
	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return assignNode{}, err
	}

	isArray := false
	if tok, _ := p.peek(); tok.Type == tokLBracket {
		_, _ = p.next()
		if _, err := p.expect(tokRBracket); err != nil {
			return assignNode{}, err
		}
		isArray = true
	}

	opTok, err := p.next()
	if err != nil {
		return assignNode{}, err
	}

	appendOp := false
	switch opTok.Type {
	case tokEqual:
	case tokPlusEqual:
		if !isArray {
			return assignNode{}, p.errorf(opTok, "'+=' requires an array property")
		}
		appendOp = true
	default:
		return assignNode{}, p.errorf(opTok, "expected '=' or '+='")
	}

	val, err := p.parseValue()
	if err != nil {
		return assignNode{}, err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return assignNode{}, err
	}

	return assignNode{
		Name:    nameTok.Lit,
		Value:   val,
		IsArray: isArray,
		Append:  appendOp,
		Line:    nameTok.Line,
		Col:     nameTok.Col,
	}, nil
}

// parseValue parses a value.
func (p *parser) parseValue() (Value, error) {
	tok, err := p.next()
	if err != nil {
		return Value{}, err
	}

	switch tok.Type {
	case tokNumber:
		f, err := strconv.ParseFloat(strings.TrimPrefix(tok.Lit, "+"), 64)
		if err != nil {
			return Value{}, p.errorf(tok, "invalid number")
		}
		return Value{Kind: ValueNumber, Num: f}, nil

	case tokString:
		return Value{Kind: ValueString, Str: tok.Lit}, nil

	case tokIdent:
		return Value{Kind: ValueIdent, Str: tok.Lit}, nil

	case tokMacro:
		// Only calls the resolver declined reach the parser; they keep
		// their raw call text.
		return Value{Kind: ValueUnresolved, Str: tok.Lit}, nil

	case tokLBrace:
		arr, err := p.parseArray()
		return Value{Kind: ValueArray, Array: arr}, err

	default:
		return Value{}, p.errorf(tok, "unexpected token")
	}
}

// parseArray parses an array body after its opening brace.
func (p *parser) parseArray() ([]Value, error) {
	var arr []Value
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Type == tokRBrace {
			_, _ = p.next()
			break
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Type == tokComma {
			_, _ = p.next()
			continue
		}

		if tok.Type == tokRBrace {
			continue
		}

		return nil, p.errorf(tok, "expected ',' or '}' in array")
	}

	return arr, nil
}

// expect consumes a token of the given type.
func (p *parser) expect(tt tokenType) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s", tokenName(tt))
	}

	return tok, nil
}

// errorf formats a parse error.
func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w at %d:%d: %s", ErrParse, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

// tokenName returns the name of a token type.
func tokenName(tt tokenType) string {
	switch tt {
	case tokEOF:
		return "EOF"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokMacro:
		return "macro call"
	case tokLBrace:
		return "{"
	case tokRBrace:
		return "}"
	case tokLBracket:
		return "["
	case tokRBracket:
		return "]"
	case tokEqual:
		return "="
	case tokPlusEqual:
		return "+="
	case tokSemicolon:
		return ";"
	case tokColon:
		return ":"
	case tokComma:
		return ","
	case tokClass:
		return "class"
	case tokDelete:
		return "delete"
	case tokEnum:
		return "enum"
	default:
		return "token"
	}
}
