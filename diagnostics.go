package config

import "fmt"

// DiagLevel represents severity of a diagnostic.
type DiagLevel string

const (
	// DiagError indicates a failure scoped to one source or query.
	DiagError DiagLevel = "error"
	// DiagWarning indicates a recoverable problem.
	DiagWarning DiagLevel = "warning"
)

// Diagnostic codes.
const (
	CodeLex               = "lex"
	CodeParse             = "parse"
	CodeUnresolvedMacro   = "unresolved_macro"
	CodeDuplicateProperty = "duplicate_property"
	CodeConflictingBase   = "conflicting_base"
	CodeTopLevelIgnored   = "top_level_ignored"
	CodeUnknownBase       = "unknown_base"
	CodeCycle             = "cycle"
)

// Diagnostic represents a problem found while ingesting or checking sources.
type Diagnostic struct {
	Level   DiagLevel `json:"level" yaml:"level"`                       // Severity level
	Code    string    `json:"code,omitempty" yaml:"code,omitempty"`     // Machine-readable code
	Message string    `json:"message" yaml:"message"`                   // Diagnostic message
	Source  string    `json:"source,omitempty" yaml:"source,omitempty"` // Source identifier
	Line    int       `json:"line,omitempty" yaml:"line,omitempty"`     // Line in the source
	Col     int       `json:"col,omitempty" yaml:"col,omitempty"`       // Column in the source
}

// String renders the diagnostic for logs.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s at %s:%d:%d: %s", d.Level, d.Code, d.Source, d.Line, d.Col, d.Message)
	}
	if d.Source != "" {
		return fmt.Sprintf("%s: %s in %s: %s", d.Level, d.Code, d.Source, d.Message)
	}

	return fmt.Sprintf("%s: %s: %s", d.Level, d.Code, d.Message)
}
