package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"

	config "github.com/tyen-customs-a3/hemtt-config"
)

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject      `toml:"project"`
	Strings map[string]string `toml:"strings"`
	Paths   *tomlPaths        `toml:"paths"`
}

// tomlProject represents the project section as it is encoded in TOML.
type tomlProject struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
	Classes []string `toml:"classes,omitempty"`
}

// tomlPaths represents the path macro configuration as it is encoded in TOML.
type tomlPaths struct {
	Prefix string `toml:"prefix"`
	Root   string `toml:"root,omitempty"`
}

// project is a loaded and validated config project.
type project struct {
	Name    string            // Project name used in messages
	Root    string            // Directory enclosing the project file
	Sources []string          // Config sources in merge order
	Classes []string          // Classes to resolve by default
	Strings map[string]string // Stringtable entries for CSTRING/ECSTRING
	Prefix  string            // Addon path prefix for QPATHTOF
	PathTop string            // Mod path root for QPATHTOEF
}

// loadProject loads and validates a project file. `path` is the path to the
// TOML project file; source paths inside it are relative to its directory.
func loadProject(path string) (*project, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	if tpf.Project == nil || tpf.Project.Name == "" {
		return nil, fmt.Errorf("missing project name in %s", path)
	}
	if len(tpf.Project.Sources) == 0 {
		return nil, fmt.Errorf("project %q lists no sources", tpf.Project.Name)
	}

	proj := &project{
		Name:    tpf.Project.Name,
		Root:    filepath.Dir(path),
		Sources: tpf.Project.Sources,
		Classes: tpf.Project.Classes,
		Strings: tpf.Strings,
	}
	if tpf.Paths != nil {
		proj.Prefix = tpf.Paths.Prefix
		proj.PathTop = tpf.Paths.Root
	}

	return proj, nil
}

// sourceTexts reads every project source in its listed order.
func (p *project) sourceTexts() []config.SourceText {
	sources := make([]config.SourceText, 0, len(p.Sources))
	for _, rel := range p.Sources {
		data, err := os.ReadFile(filepath.Join(p.Root, rel))
		if err != nil {
			printErrorMessage("Source Error", err)
			continue
		}

		sources = append(sources, config.SourceText{ID: rel, Data: data})
	}

	return sources
}

// macroResolver builds the resolver for the stringtable and path macros the
// project configures. Calls outside that set stay unresolved.
func (p *project) macroResolver() config.MacroResolver {
	return func(name string, args []string) (string, bool) {
		switch name {
		case "CSTRING":
			if len(args) == 1 {
				s, ok := p.Strings[args[0]]
				return s, ok
			}
		case "ECSTRING":
			if len(args) == 2 {
				s, ok := p.Strings[args[0]+","+args[1]]
				return s, ok
			}
		case "QPATHTOF":
			if len(args) == 1 && p.Prefix != "" {
				return p.Prefix + `\` + args[0], true
			}
		case "QPATHTOEF":
			if len(args) == 2 && p.PathTop != "" {
				return p.PathTop + `\` + args[0] + `\` + args[1], true
			}
		}

		return "", false
	}
}

// splitClassList splits the --class argument into class names.
func splitClassList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
