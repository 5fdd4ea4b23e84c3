package config

import (
	"os"
	"path/filepath"
	"testing"
)

func BenchmarkIngest(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "ace_medical.hpp"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := NewSession(nil)
		for _, d := range s.Ingest("bench", data) {
			if d.Level == DiagError {
				b.Fatalf("ingest: %v", d)
			}
		}
	}
}

func BenchmarkResolve(b *testing.B) {
	s := NewSession(nil)
	data, err := os.ReadFile(filepath.Join("testdata", "ace_medical.hpp"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	s.Ingest("bench", data)
	e, err := s.tab.find("CfgWeapons")
	if err != nil {
		b.Fatalf("find: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := &resolver{tab: s.tab, cache: make(map[string]*PropertyTable)}
		if _, err := r.resolve(e); err != nil {
			b.Fatalf("resolve: %v", err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	s := NewSession(nil)
	data, err := os.ReadFile(filepath.Join("testdata", "ace_medical.hpp"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	s.Ingest("bench", data)
	table, err := s.Resolve("CfgWeapons")
	if err != nil {
		b.Fatalf("resolve: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Format(table, nil); err != nil {
			b.Fatalf("format: %v", err)
		}
	}
}
