package config

import (
	"bytes"
	"testing"
)

func TestFormatOutput(t *testing.T) {
	s := NewSession(nil)
	s.Ingest("t", []byte(`
		class C {
			scope = 2;
			displayName = "Say ""hi""";
			simulation = maxwell;
			items[] = {"a", 1.5};
			class Info {
				mass = 0.6;
			};
		};
	`))

	table, err := s.Resolve("C")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	out, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := `class C
{
    scope=2;
    displayName="Say ""hi""";
    simulation=maxwell;
    items[]={"a", 1.5};
    class Info
    {
        mass=0.6;
    };
};
`
	if string(out) != want {
		t.Fatalf("got:\n%swant:\n%s", out, want)
	}
}

func TestFormatDeterministic(t *testing.T) {
	s := ingestFixture(t, "ace_medical.hpp", nil)

	table, err := s.Resolve("CfgWeapons")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	first, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	second, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("repeated formatting produced different bytes")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	s := ingestFixture(t, "ace_medical.hpp", nil)

	table, err := s.Resolve("CfgWeapons")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	// Re-ingesting the rendered text must reproduce the same table.
	again := NewSession(nil)
	for _, d := range again.Ingest("rendered", out) {
		if d.Level == DiagError {
			t.Fatalf("re-ingest: %v", d)
		}
	}

	table2, err := again.Resolve("CfgWeapons")
	if err != nil {
		t.Fatalf("resolve rendered: %v", err)
	}
	if !table.Equal(table2) {
		t.Fatal("formatted output does not round-trip")
	}
}

func TestFormatUnresolvedMacroRoundTrip(t *testing.T) {
	s := NewSession(nil)
	s.Ingest("t", []byte("class C { author = ECSTRING(common,ACETeam); };"))

	table, err := s.Resolve("C")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	if !bytes.Contains(out, []byte("author=ECSTRING(common,ACETeam);")) {
		t.Fatalf("raw macro call lost:\n%s", out)
	}
}

func TestFormatCustomIndent(t *testing.T) {
	s := NewSession(nil)
	s.Ingest("t", []byte("class C { scope = 1; };"))

	table, err := s.Resolve("C")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	out, err := Format(table, &FormatOptions{Indent: "\t"})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := "class C\n{\n\tscope=1;\n};\n"
	if string(out) != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestFormatQualifiedNameUsesLastSegment(t *testing.T) {
	s := ingestFixture(t, "ace_medical.hpp", nil)

	table, err := s.Resolve("CfgWeapons/ACE_fieldDressing")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := Format(table, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	if !bytes.HasPrefix(out, []byte("class ACE_fieldDressing\n")) {
		t.Fatalf("unexpected header:\n%s", out)
	}
}
