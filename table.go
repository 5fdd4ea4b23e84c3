package config

// Property is one resolved name/value pair.
type Property struct {
	Name  string `json:"name" yaml:"name"`   // Property name
	Value Value  `json:"value" yaml:"value"` // Resolved value
}

// PropertyTable is the fully merged property set of one class. Tables are
// immutable snapshots: they are cached and shared between callers, so they
// must never be modified after resolution.
type PropertyTable struct {
	name        string
	lineage     []string
	props       []Property
	index       map[string]int
	nestedNames []string
	nested      map[string]*PropertyTable
}

// newPropertyTable creates an empty table for the named class.
func newPropertyTable(name string) *PropertyTable {
	return &PropertyTable{
		name:   name,
		index:  make(map[string]int),
		nested: make(map[string]*PropertyTable),
	}
}

// Name returns the qualified class name the table was resolved for.
func (t *PropertyTable) Name() string {
	return t.name
}

// Lineage returns the chain of resolved base classes, nearest first.
func (t *PropertyTable) Lineage() []string {
	out := make([]string, len(t.lineage))
	copy(out, t.lineage)

	return out
}

// Len returns the number of properties in the table.
func (t *PropertyTable) Len() int {
	return len(t.props)
}

// Properties returns the ordered name/value pairs.
func (t *PropertyTable) Properties() []Property {
	out := make([]Property, len(t.props))
	copy(out, t.props)

	return out
}

// Get returns the value of a property.
func (t *PropertyTable) Get(name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return Value{}, false
	}

	return t.props[i].Value, true
}

// Num returns a numeric property value.
func (t *PropertyTable) Num(name string) (float64, bool) {
	v, ok := t.Get(name)
	if !ok || v.Kind != ValueNumber {
		return 0, false
	}

	return v.Num, true
}

// Str returns a string property value.
func (t *PropertyTable) Str(name string) (string, bool) {
	v, ok := t.Get(name)
	if !ok || (v.Kind != ValueString && v.Kind != ValueIdent) {
		return "", false
	}

	return v.Str, true
}

// Nested returns the resolved table of a nested class, or nil.
func (t *PropertyTable) Nested(name string) *PropertyTable {
	return t.nested[name]
}

// NestedNames returns the names of nested classes in merge order.
func (t *PropertyTable) NestedNames() []string {
	out := make([]string, len(t.nestedNames))
	copy(out, t.nestedNames)

	return out
}

// child derives a mutable copy used while resolving a subclass.
func (t *PropertyTable) child(name string) *PropertyTable {
	c := &PropertyTable{
		name:        name,
		props:       make([]Property, len(t.props)),
		index:       make(map[string]int, len(t.index)),
		nestedNames: make([]string, len(t.nestedNames)),
		nested:      make(map[string]*PropertyTable, len(t.nested)),
	}
	copy(c.props, t.props)
	copy(c.nestedNames, t.nestedNames)
	for k, v := range t.index {
		c.index[k] = v
	}
	for k, v := range t.nested {
		c.nested[k] = v
	}

	return c
}

// set replaces a property, preserving the position of an inherited one.
func (t *PropertyTable) set(name string, v Value) {
	if i, ok := t.index[name]; ok {
		t.props[i].Value = v
		return
	}

	t.index[name] = len(t.props)
	t.props = append(t.props, Property{Name: name, Value: v})
}

// appendArray concatenates items to an inherited array value. The inherited
// slice is never mutated; a fresh one is built so the base table stays
// untouched.
func (t *PropertyTable) appendArray(name string, v Value) {
	items := v.Array
	if v.Kind != ValueArray {
		items = []Value{v}
	}

	if i, ok := t.index[name]; ok && t.props[i].Value.Kind == ValueArray {
		prev := t.props[i].Value.Array
		merged := make([]Value, 0, len(prev)+len(items))
		merged = append(merged, prev...)
		merged = append(merged, items...)
		t.props[i].Value = Value{Kind: ValueArray, Array: merged}
		return
	}

	t.set(name, Value{Kind: ValueArray, Array: items})
}

// remove drops a property or nested class of the given name.
func (t *PropertyTable) remove(name string) {
	if i, ok := t.index[name]; ok {
		t.props = append(t.props[:i:i], t.props[i+1:]...)
		delete(t.index, name)
		for k, v := range t.index {
			if v > i {
				t.index[k] = v - 1
			}
		}
	}

	if _, ok := t.nested[name]; ok {
		delete(t.nested, name)
		for i, n := range t.nestedNames {
			if n == name {
				t.nestedNames = append(t.nestedNames[:i:i], t.nestedNames[i+1:]...)
				break
			}
		}
	}
}

// setNested replaces the nested table of the given name.
func (t *PropertyTable) setNested(name string, nt *PropertyTable) {
	if _, ok := t.nested[name]; !ok {
		t.nestedNames = append(t.nestedNames, name)
	}

	t.nested[name] = nt
}

// Equal reports whether two tables hold identical properties and nesting.
func (t *PropertyTable) Equal(o *PropertyTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.props) != len(o.props) || len(t.nestedNames) != len(o.nestedNames) {
		return false
	}
	for i := range t.props {
		if t.props[i].Name != o.props[i].Name || !t.props[i].Value.Equal(o.props[i].Value) {
			return false
		}
	}
	for i, n := range t.nestedNames {
		if o.nestedNames[i] != n || !t.nested[n].Equal(o.nested[n]) {
			return false
		}
	}

	return true
}
