package config

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Encode writes a resolved PropertyTable as config text.
func Encode(w io.Writer, t *PropertyTable, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, indent: fopt.Indent}
	if err := wr.writeTable(baseName(t.Name()), t); err != nil {
		return err
	}

	return bw.Flush()
}

// Format renders a resolved PropertyTable to bytes. The output is a plain
// class definition without a base, since a resolved table already carries
// every inherited property; it re-ingests to an equal table.
func Format(t *PropertyTable, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writer writes tables to an output stream.
type writer struct {
	w      io.Writer // Writer to write to
	indent string    // Indentation string
	cache  []string  // Cache of indentation strings
	level  int       // Current nesting level
}

// writeTable writes one class block.
func (w *writer) writeTable(name string, t *PropertyTable) error {
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("class "); err != nil {
		return err
	}
	if err := w.writeString(name); err != nil {
		return err
	}
	if err := w.writeString("\n"); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("{\n"); err != nil {
		return err
	}

	w.level++
	for _, p := range t.Properties() {
		if err := w.writeAssign(p.Name, p.Value); err != nil {
			return err
		}
	}
	for _, n := range t.NestedNames() {
		if err := w.writeTable(n, t.Nested(n)); err != nil {
			return err
		}
	}
	w.level--

	if err := w.writeIndent(); err != nil {
		return err
	}

	return w.writeString("};\n")
}

// writeAssign writes one property assignment.
func (w *writer) writeAssign(name string, val Value) error {
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString(name); err != nil {
		return err
	}

	if val.Kind == ValueArray {
		if err := w.writeString("[]="); err != nil {
			return err
		}
	} else {
		if err := w.writeString("="); err != nil {
			return err
		}
	}

	if err := w.writeValue(val); err != nil {
		return err
	}

	return w.writeString(";\n")
}

// writeValue writes a value.
func (w *writer) writeValue(v Value) error {
	switch v.Kind {
	case ValueNumber:
		return w.writeNumber(v.Num)
	case ValueString:
		return w.writeQuoted(v.Str)
	case ValueIdent, ValueUnresolved:
		// Unresolved macros round-trip as their raw call text.
		return w.writeString(v.Str)
	case ValueArray:
		return w.writeArray(v.Array)
	default:
		return nil
	}
}

// writeArray writes an array of values.
func (w *writer) writeArray(vals []Value) error {
	if err := w.writeString("{"); err != nil {
		return err
	}

	for i, v := range vals {
		if i > 0 {
			if err := w.writeString(", "); err != nil {
				return err
			}
		}
		if err := w.writeValue(v); err != nil {
			return err
		}
	}

	return w.writeString("}")
}

// writeNumber writes a float64 value.
func (w *writer) writeNumber(v float64) error {
	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
	_, err := w.w.Write(b)

	return err
}

// writeQuoted writes a quoted string. The body is emitted verbatim with
// CSV-style quote doubling, mirroring the lexer.
func (w *writer) writeQuoted(s string) error {
	if err := w.writeString("\""); err != nil {
		return err
	}
	if err := w.writeString(strings.ReplaceAll(s, `"`, `""`)); err != nil {
		return err
	}

	return w.writeString("\"")
}

// writeIndent writes the current indentation level.
func (w *writer) writeIndent() error {
	if w.level <= 0 {
		return nil
	}

	// Cache repeated indentation strings per nesting level.
	return w.writeString(w.indentFor(w.level))
}

// writeString writes a string to the output.
func (w *writer) writeString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// indentFor returns the cached indentation for a nesting level.
func (w *writer) indentFor(level int) string {
	if level <= 0 {
		return ""
	}

	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		// Cache computed indentation for this level.
		w.cache[level] = strings.Repeat(w.indent, level)
	}

	return w.cache[level]
}

// baseName returns the last segment of a qualified class path.
func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}

	return path
}
