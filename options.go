package config

// MacroResolver expands a macro call into literal text. It receives the
// macro name and its raw arguments and reports whether it could expand the
// call. The package defines no built-in macros.
type MacroResolver func(name string, args []string) (string, bool)

// Options controls parsing and macro expansion for a session.
type Options struct {
	// Macros expands macro calls encountered in the token stream.
	// When nil, every macro call is recorded as unresolved.
	Macros MacroResolver
	// DisableComments disables // and /* */ comments.
	DisableComments bool
}

// FormatOptions controls writer formatting.
type FormatOptions struct {
	// Indent is the indentation string for nested blocks (default is four spaces).
	Indent string
}

// normalize normalizes the Options.
func (o *Options) normalize() Options {
	if o == nil {
		return Options{}
	}

	return *o
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Indent: "    "}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = "    "
	}

	return out
}
