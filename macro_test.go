package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitMacroCall(t *testing.T) {
	tests := []struct {
		raw      string
		wantName string
		wantArgs []string
	}{
		{"ECSTRING(common,ACETeam)", "ECSTRING", []string{"common", "ACETeam"}},
		{`QPATHTOF(data\bandage.p3d)`, "QPATHTOF", []string{`data\bandage.p3d`}},
		{"FUNC()", "FUNC", nil},
		{"QUOTE(call(f,g))", "QUOTE", []string{"call(f,g)"}},
		{`FMT("a,b",c)`, "FMT", []string{`"a,b"`, "c"}},
		{"TWO(a, b)", "TWO", []string{"a", "b"}},
	}

	for _, tt := range tests {
		name, args := splitMacroCall(tt.raw)
		if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
			t.Fatalf("%s: got %q %v want %q %v", tt.raw, name, args, tt.wantName, tt.wantArgs)
		}
	}
}

func TestExpanderResolves(t *testing.T) {
	resolve := func(name string, args []string) (string, bool) {
		if name == "ECSTRING" && len(args) == 2 {
			return "ACE-Team", true
		}
		return "", false
	}

	e := newExpander(newLexer(strings.NewReader("author = ECSTRING(common,ACETeam);"), Options{}), resolve, "t")
	var toks []token
	for {
		tok, err := e.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.Type == tokEOF {
			break
		}
		toks = append(toks, tok)
	}

	if toks[2].Type != tokString || toks[2].Lit != "ACE-Team" {
		t.Fatalf("expected expanded string token, got %v %q", toks[2].Type, toks[2].Lit)
	}
	if len(e.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.diags)
	}
}

func TestExpanderUnresolvedPassesThrough(t *testing.T) {
	e := newExpander(newLexer(strings.NewReader("author = ECSTRING(common,ACETeam);"), Options{}), nil, "t")
	var macroTok token
	for {
		tok, err := e.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.Type == tokEOF {
			break
		}
		if tok.Type == tokMacro {
			macroTok = tok
		}
	}

	if macroTok.Lit != "ECSTRING(common,ACETeam)" {
		t.Fatalf("raw macro text must pass through, got %q", macroTok.Lit)
	}
	if len(e.diags) != 1 || e.diags[0].Code != CodeUnresolvedMacro {
		t.Fatalf("expected one unresolved_macro diagnostic, got %v", e.diags)
	}
	if e.diags[0].Level != DiagWarning {
		t.Fatalf("unresolved macro must be non-fatal, got %v", e.diags[0].Level)
	}
}

func TestExpanderArityMiss(t *testing.T) {
	// A resolver may decline on arity; the call then passes through raw.
	resolve := func(name string, args []string) (string, bool) {
		if name == "CSTRING" && len(args) == 1 {
			return "ok", true
		}
		return "", false
	}

	e := newExpander(newLexer(strings.NewReader("a = CSTRING(x,y);"), Options{}), resolve, "t")
	for {
		tok, err := e.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.Type == tokEOF {
			break
		}
	}
	if len(e.diags) != 1 {
		t.Fatalf("expected diagnostic for arity miss, got %v", e.diags)
	}
}

func TestExpansionSinglePass(t *testing.T) {
	// Resolver output that looks like another macro call must not be
	// re-expanded.
	calls := 0
	resolve := func(name string, args []string) (string, bool) {
		calls++
		return "INNER(x)", true
	}

	s := NewSession(&Options{Macros: MacroResolver(resolve)})
	diags := s.Ingest("t", []byte("class C { a = OUTER(1); };"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if calls != 1 {
		t.Fatalf("expected a single resolver call, got %d", calls)
	}

	table, err := s.Resolve("C")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, _ := table.Str("a"); got != "INNER(x)" {
		t.Fatalf("expanded text must stay literal, got %q", got)
	}
}
