/*
Package config parses Real Virtuality class-based config text and resolves
class inheritance across any number of sources.

Sources are ingested into a Session in a caller-chosen order; forward
declarations, amendments, and base classes may live in different files.
Resolve answers queries with a fully merged, immutable PropertyTable per
class. Macro calls (string-table references, path constructors) are expanded
through a caller-supplied resolver so macro and literal sources produce
identical tables.

Ingest and resolve example:

	s := config.NewSession(nil)
	diags := s.Ingest("config.cpp", data)
	if len(diags) != 0 {
		// handle diagnostics
	}
	table, err := s.Resolve("CfgWeapons/ACE_fieldDressing")
	if err != nil {
		// handle error
	}
	mass, _ := table.Nested("ItemInfo").Num("mass")

Macro expansion example:

	s := config.NewSession(&config.Options{
		Macros: func(name string, args []string) (string, bool) {
			if name == "QPATHTOF" && len(args) == 1 {
				return args[0], true
			}
			return "", false
		},
	})

Writer example:

	out, err := config.Format(table, nil)
	if err != nil {
		// handle error
	}
*/
package config
