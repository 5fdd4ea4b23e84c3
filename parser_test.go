package config

import (
	"errors"
	"reflect"
	"testing"
)

// mustParse parses source text, failing the test on any fatal error.
func mustParse(t *testing.T, src string) ([]node, []Diagnostic) {
	t.Helper()
	nodes, diags, err := parseSource("test", []byte(src), Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	return nodes, diags
}

func TestParseAssignKinds(t *testing.T) {
	nodes, _ := mustParse(t, `
		mass = 0.6;
		displayName = "Field Dressing";
		simulation = maxwell;
		items[] = {"a", 2, inner};
	`)

	want := []node{
		assignNode{Name: "mass", Value: Number(0.6), Line: 2, Col: 3},
		assignNode{Name: "displayName", Value: String("Field Dressing"), Line: 3, Col: 3},
		assignNode{Name: "simulation", Value: Value{Kind: ValueIdent, Str: "maxwell"}, Line: 4, Col: 3},
		assignNode{
			Name:    "items",
			IsArray: true,
			Value: Array(
				String("a"),
				Number(2),
				Value{Kind: ValueIdent, Str: "inner"},
			),
			Line: 5,
			Col:  3,
		},
	}

	if !reflect.DeepEqual(nodes, want) {
		t.Fatalf("got %#v\nwant %#v", nodes, want)
	}
}

func TestParseClassForward(t *testing.T) {
	nodes, _ := mustParse(t, "class ItemCore;")

	c, ok := nodes[0].(classNode)
	if !ok || !c.Forward || c.Name != "ItemCore" || c.Body != nil {
		t.Fatalf("expected forward declaration, got %#v", nodes[0])
	}
}

func TestParseClassNested(t *testing.T) {
	nodes, _ := mustParse(t, `
		class CfgWeapons {
			class ACE_fieldDressing: ItemCore {
				class ItemInfo {
					mass = 0.6;
				};
			};
		};
	`)

	outer := nodes[0].(classNode)
	if outer.Name != "CfgWeapons" || outer.Base != "" {
		t.Fatalf("unexpected outer class %#v", outer)
	}

	mid := outer.Body[0].(classNode)
	if mid.Name != "ACE_fieldDressing" || mid.Base != "ItemCore" {
		t.Fatalf("unexpected class %#v", mid)
	}

	inner := mid.Body[0].(classNode)
	if inner.Name != "ItemInfo" || len(inner.Body) != 1 {
		t.Fatalf("unexpected nested class %#v", inner)
	}
}

func TestParseDelete(t *testing.T) {
	nodes, _ := mustParse(t, "class C: B { delete items; };")

	c := nodes[0].(classNode)
	d, ok := c.Body[0].(deleteNode)
	if !ok || d.Name != "items" {
		t.Fatalf("expected delete node, got %#v", c.Body[0])
	}
}

func TestParseEnumAutoNumbering(t *testing.T) {
	nodes, _ := mustParse(t, "enum { DestructNo, DestructBuilding = 5, DestructTree };")

	want := []struct {
		name string
		num  float64
	}{
		{"DestructNo", 0},
		{"DestructBuilding", 5},
		{"DestructTree", 6},
	}

	if len(nodes) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(nodes))
	}
	for i, w := range want {
		a := nodes[i].(assignNode)
		if a.Name != w.name || a.Value.Kind != ValueNumber || a.Value.Num != w.num {
			t.Fatalf("entry %d: got %#v want %s=%v", i, a, w.name, w.num)
		}
	}
}

func TestParseAppendOperator(t *testing.T) {
	nodes, _ := mustParse(t, `items[] += {"extra"};`)

	a := nodes[0].(assignNode)
	if !a.IsArray || !a.Append {
		t.Fatalf("expected array append, got %#v", a)
	}
}

func TestParseAppendRequiresArray(t *testing.T) {
	_, _, err := parseSource("test", []byte("count += 1;"), Options{})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseDuplicatePropertyDiagnostic(t *testing.T) {
	nodes, diags := mustParse(t, `
		class C {
			scope = 1;
			scope = 2;
		};
	`)

	if len(diags) != 1 || diags[0].Code != CodeDuplicateProperty {
		t.Fatalf("expected one duplicate_property diagnostic, got %v", diags)
	}
	if diags[0].Level != DiagWarning {
		t.Fatalf("duplicate property must be a warning, got %v", diags[0].Level)
	}
	if diags[0].Line != 4 || diags[0].Col != 4 {
		t.Fatalf("diagnostic must point at the shadowing assignment, got %d:%d", diags[0].Line, diags[0].Col)
	}

	// Both assignments survive; the last one wins at resolution time.
	c := nodes[0].(classNode)
	if len(c.Body) != 2 {
		t.Fatalf("expected both assignments kept, got %d", len(c.Body))
	}
}

func TestParseTrailingComma(t *testing.T) {
	nodes, _ := mustParse(t, `items[] = {"a", "b",};`)

	a := nodes[0].(assignNode)
	if len(a.Value.Array) != 2 {
		t.Fatalf("expected 2 items, got %#v", a.Value.Array)
	}
}

func TestParseUnresolvedMacroValue(t *testing.T) {
	nodes, diags := mustParse(t, "author = ECSTRING(common,ACETeam);")

	a := nodes[0].(assignNode)
	if a.Value.Kind != ValueUnresolved || a.Value.Str != "ECSTRING(common,ACETeam)" {
		t.Fatalf("expected raw unresolved value, got %#v", a.Value)
	}
	if len(diags) != 1 || diags[0].Code != CodeUnresolvedMacro {
		t.Fatalf("expected unresolved_macro diagnostic, got %v", diags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"class;",
		"class C: { };",
		"mass = ;",
		"mass = 1",
		"items[ = {1};",
		"class C { } ",
		"= 1;",
	}

	for _, src := range tests {
		if _, _, err := parseSource("test", []byte(src), Options{}); !errors.Is(err, ErrParse) {
			t.Fatalf("%q: expected parse error, got %v", src, err)
		}
	}
}
