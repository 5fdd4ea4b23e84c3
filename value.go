package config

// ValueKind represents the kind of a parsed value.
type ValueKind int

const (
	// ValueNumber indicates a numeric literal.
	ValueNumber ValueKind = iota
	// ValueString indicates a quoted string literal or an expanded macro.
	ValueString
	// ValueIdent indicates a bare identifier literal.
	ValueIdent
	// ValueArray indicates an array literal.
	ValueArray
	// ValueUnresolved indicates a macro call the resolver could not expand.
	// Str carries the raw call text.
	ValueUnresolved
)

// Value represents a parsed property value. Values never reference classes.
type Value struct {
	Str   string    `json:"str,omitempty" yaml:"str,omitempty"`     // String, identifier, or raw macro text
	Array []Value   `json:"array,omitempty" yaml:"array,omitempty"` // Array items
	Kind  ValueKind `json:"kind" yaml:"kind"`                       // Value kind
	Num   float64   `json:"num,omitempty" yaml:"num,omitempty"`     // Number value
}

// Number creates a numeric Value.
func Number(v float64) Value {
	return Value{Kind: ValueNumber, Num: v}
}

// String creates a string Value.
func String(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// Array creates an array Value.
func Array(items ...Value) Value {
	return Value{Kind: ValueArray, Array: items}
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind || v.Str != o.Str || v.Num != o.Num {
		return false
	}
	if len(v.Array) != len(o.Array) {
		return false
	}
	for i := range v.Array {
		if !v.Array[i].Equal(o.Array[i]) {
			return false
		}
	}

	return true
}
