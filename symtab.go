package config

import (
	"fmt"
	"strings"
)

// classDef is one declaration occurrence of a class in some source.
type classDef struct {
	source  string // Source identifier the occurrence came from
	body    []node // Body members, nil for forward declarations
	forward bool   // Declaration without a body
}

// classEntry collects every occurrence of one qualified class name.
// Later full definitions amend earlier ones; the occurrence order is the
// ingestion order chosen by the caller.
type classEntry struct {
	name    string     // Declared spelling
	path    string     // Qualified path, e.g. "CfgWeapons/ACE_fieldDressing"
	scope   string     // Qualified path of the enclosing scope, "" for top level
	base    string     // First-seen non-empty base reference
	defs    []classDef // Occurrences in ingestion order
	hasBody bool       // At least one occurrence supplied a body
}

// symbolTable maps qualified class paths to their merged declarations.
// It is not safe for concurrent use; the session serializes access.
type symbolTable struct {
	entries map[string]*classEntry
	order   []string            // Entry creation order
	byName  map[string][]string // Bare name to qualified paths, creation order
}

// newSymbolTable creates an empty symbol table.
func newSymbolTable() *symbolTable {
	return &symbolTable{
		entries: make(map[string]*classEntry),
		byName:  make(map[string][]string),
	}
}

// joinPath builds a qualified path from a scope and a class name.
func joinPath(scope, name string) string {
	if scope == "" {
		return name
	}

	return scope + "/" + name
}

// parentScope returns the scope enclosing a qualified path.
func parentScope(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}

	return path[:i]
}

// ingest merges the top-level nodes of one parsed source. Classes are
// registered at every nesting depth so nested classes can be amended and
// resolved through their own entries. Members outside any class have no
// resolvable entry, so they are reported instead of dropped silently.
func (t *symbolTable) ingest(nodes []node, source string, diags *[]Diagnostic) {
	for _, n := range nodes {
		switch n := n.(type) {
		case classNode:
			t.register(n, "", source, diags)
		case assignNode:
			*diags = append(*diags, Diagnostic{
				Level:   DiagWarning,
				Code:    CodeTopLevelIgnored,
				Message: fmt.Sprintf("top-level assignment %q has no enclosing class and is ignored", n.Name),
				Source:  source,
				Line:    n.Line,
				Col:     n.Col,
			})
		case deleteNode:
			*diags = append(*diags, Diagnostic{
				Level:   DiagWarning,
				Code:    CodeTopLevelIgnored,
				Message: fmt.Sprintf("top-level delete %q has no enclosing class and is ignored", n.Name),
				Source:  source,
				Line:    n.Line,
				Col:     n.Col,
			})
		}
	}
}

// register records one class occurrence and recurses into its body.
func (t *symbolTable) register(c classNode, scope, source string, diags *[]Diagnostic) {
	path := joinPath(scope, c.Name)
	e, ok := t.entries[path]
	if !ok {
		e = &classEntry{name: c.Name, path: path, scope: scope}
		t.entries[path] = e
		t.order = append(t.order, path)
		t.byName[c.Name] = append(t.byName[c.Name], path)
	}

	if c.Base != "" {
		switch {
		case e.base == "":
			e.base = c.Base
		case e.base != c.Base:
			// First-seen base wins.
			*diags = append(*diags, Diagnostic{
				Level:   DiagWarning,
				Code:    CodeConflictingBase,
				Message: fmt.Sprintf("class %q declares base %q but was first declared with base %q", path, c.Base, e.base),
				Source:  source,
				Line:    c.Line,
				Col:     c.Col,
			})
		}
	}

	e.defs = append(e.defs, classDef{source: source, body: c.Body, forward: c.Forward})
	if !c.Forward {
		e.hasBody = true
	}

	for _, n := range c.Body {
		if nc, ok := n.(classNode); ok {
			t.register(nc, path, source, diags)
		}
	}
}

// lookupBase finds the entry a class's base reference names, searching the
// declaring scope and then each enclosing scope out to the top level. The
// class itself never matches, so `class N: N` reaches past its own
// declaration.
func (t *symbolTable) lookupBase(e *classEntry) *classEntry {
	for s := e.scope; ; s = parentScope(s) {
		if be, ok := t.entries[joinPath(s, e.base)]; ok && be != e {
			return be
		}
		if s == "" {
			return nil
		}
	}
}

// baseResolvable reports whether a base reference names any declaration: an
// entry in an enclosing scope, or, for a nested class naming its own name,
// a same-named nested class up the enclosing class's base chain.
func (t *symbolTable) baseResolvable(e *classEntry) bool {
	if t.lookupBase(e) != nil {
		return true
	}
	if e.scope == "" || e.base != e.name {
		return false
	}

	seen := map[string]bool{}
	for pe := t.entries[e.scope]; pe != nil && pe.base != "" && !seen[pe.path]; {
		seen[pe.path] = true
		pb := t.lookupBase(pe)
		if pb == nil {
			return false
		}
		if _, ok := t.entries[joinPath(pb.path, e.name)]; ok {
			return true
		}
		pe = pb
	}

	return false
}

// find locates a resolution target. Qualified paths match directly; a bare
// name prefers a top-level class and otherwise must be unique across scopes.
func (t *symbolTable) find(name string) (*classEntry, error) {
	if e, ok := t.entries[name]; ok {
		return e, nil
	}
	if strings.ContainsRune(name, '/') {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}

	paths := t.byName[name]
	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	case 1:
		return t.entries[paths[0]], nil
	default:
		return nil, fmt.Errorf("%w: %q declared in %s", ErrAmbiguousClass, name, strings.Join(paths, ", "))
	}
}
