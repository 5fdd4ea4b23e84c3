package config

// node is a parsed AST node.
type node interface {
	node()
}

// assignNode represents name[] = value; and name[] += value; assignments.
type assignNode struct {
	Name    string // Name of the assigned property
	Value   Value  // Value of the assignment
	IsArray bool   // Whether the property was declared with []
	Append  bool   // Whether the assignment uses +=
	Line    int    // Line of the property name
	Col     int    // Column of the property name
}

// node implements the node interface.
func (assignNode) node() {}

// classNode represents class declarations and definitions.
type classNode struct {
	Name    string // Name of the class
	Base    string // Base class name, empty for none
	Body    []node // Body of the class
	Forward bool   // Declaration without a body
	Line    int    // Line of the class name
	Col     int    // Column of the class name
}

// node implements the node interface.
func (classNode) node() {}

// deleteNode represents delete Name; tombstones.
type deleteNode struct {
	Name string // Name of the deleted property or class
	Line int    // Line of the delete keyword
	Col  int    // Column of the delete keyword
}

// node implements the node interface.
func (deleteNode) node() {}
