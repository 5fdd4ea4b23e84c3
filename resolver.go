package config

import (
	"fmt"
	"strings"
)

// resolver computes fully merged property tables over a symbol table.
// Results are memoized in the shared session cache; the session guarantees
// single-threaded access while a resolution runs.
type resolver struct {
	tab   *symbolTable
	cache map[string]*PropertyTable
	stack []string // Qualified paths on the current base chain
}

// resolve computes the merged table for one class entry.
func (r *resolver) resolve(e *classEntry) (*PropertyTable, error) {
	if t, ok := r.cache[e.path]; ok {
		return t, nil
	}

	for _, p := range r.stack {
		if p == e.path {
			return nil, fmt.Errorf("%w: %s", ErrCycle, chainString(r.stack, e.path))
		}
	}
	r.stack = append(r.stack, e.path)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	// A class with only forward declarations models an externally defined
	// engine base: it resolves to an empty table, never an error.
	t := newPropertyTable(e.path)
	if e.base != "" {
		bt, basePath, err := r.base(e)
		if err != nil {
			return nil, err
		}

		t = bt.child(e.path)
		t.lineage = append([]string{basePath}, bt.lineage...)
	}

	// Occurrences apply in ingestion order, each body in source order, as if
	// they were one sequential body.
	for _, def := range e.defs {
		for _, n := range def.body {
			if err := r.apply(t, e, n); err != nil {
				return nil, err
			}
		}
	}

	r.cache[e.path] = t
	return t, nil
}

// base resolves the base table of a class entry. A nested class naming its
// own name as base inherits the same-named nested table carried down by the
// enclosing class's base chain (the `class Turret: Turret` engine idiom);
// any other base reference is looked up scope-outward, never matching the
// class itself.
func (r *resolver) base(e *classEntry) (*PropertyTable, string, error) {
	if e.scope != "" && e.base == e.name {
		seed, err := r.inheritedNested(e)
		if err != nil {
			return nil, "", err
		}
		if seed != nil {
			return seed, seed.name, nil
		}
	}

	be := r.tab.lookupBase(e)
	if be == nil {
		return nil, "", fmt.Errorf("%w: base %q of class %q", ErrUnknownClass, e.base, e.path)
	}

	bt, err := r.resolve(be)
	if err != nil {
		return nil, "", err
	}

	return bt, be.path, nil
}

// inheritedNested returns the nested table of e's name carried by the base
// chain of its enclosing class, or nil when the chain has none.
func (r *resolver) inheritedNested(e *classEntry) (*PropertyTable, error) {
	pe, ok := r.tab.entries[e.scope]
	if !ok || pe.base == "" {
		return nil, nil
	}

	pb := r.tab.lookupBase(pe)
	if pb == nil {
		return nil, nil
	}

	pbt, err := r.resolve(pb)
	if err != nil {
		return nil, err
	}

	return pbt.nested[e.name], nil
}

// apply merges one body member into the table under construction.
func (r *resolver) apply(t *PropertyTable, e *classEntry, n node) error {
	switch n := n.(type) {
	case assignNode:
		if n.Append {
			t.appendArray(n.Name, n.Value)
			return nil
		}
		t.set(n.Name, n.Value)
		return nil

	case deleteNode:
		t.remove(n.Name)
		return nil

	case classNode:
		// Nested classes resolve through their own entry, so a child class
		// only inherits a parent-side nested table when it names a base
		// itself; a bare redeclaration starts empty and replaces the slot.
		ne, ok := r.tab.entries[joinPath(e.path, n.Name)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownClass, joinPath(e.path, n.Name))
		}

		nt, err := r.resolve(ne)
		if err != nil {
			return err
		}

		t.setNested(n.Name, nt)
		return nil

	default:
		return nil
	}
}

// chainString renders a base chain for cycle errors.
func chainString(stack []string, repeat string) string {
	start := 0
	for i, p := range stack {
		if p == repeat {
			start = i
			break
		}
	}

	return strings.Join(append(append([]string{}, stack[start:]...), repeat), " -> ")
}
