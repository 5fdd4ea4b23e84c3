package config

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

// SourceText is one config source queued for ingestion.
type SourceText struct {
	ID   string // Source identifier used in diagnostics
	Data []byte // Raw UTF-8 config text
}

// Session is one resolution session: a symbol table built up by ingestion
// plus a per-class resolution cache. Ingestion is serialized; Resolve may be
// called concurrently once ingestion is done.
type Session struct {
	opt   Options
	mu    sync.Mutex
	tab   *symbolTable
	cache map[string]*PropertyTable
}

// NewSession creates an empty resolution session.
func NewSession(opt *Options) *Session {
	return &Session{
		opt:   opt.normalize(),
		tab:   newSymbolTable(),
		cache: make(map[string]*PropertyTable),
	}
}

// Ingest parses one source and merges its declarations into the session.
// Lex and parse failures are scoped to the source: they are reported as
// error diagnostics and nothing from the source is merged.
func (s *Session) Ingest(sourceID string, data []byte) []Diagnostic {
	nodes, diags, err := parseSource(sourceID, data, s.opt)
	if err != nil {
		return append(diags, errorDiagnostic(sourceID, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merge(nodes, sourceID, &diags)

	return diags
}

// IngestAll parses the given sources concurrently and merges them in slice
// order, so resolution is deterministic regardless of parse scheduling.
func (s *Session) IngestAll(sources []SourceText) []Diagnostic {
	type result struct {
		nodes []node
		diags []Diagnostic
		err   error
	}

	results := make([]result, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src SourceText) {
			defer wg.Done()
			nodes, diags, err := parseSource(src.ID, src.Data, s.opt)
			results[i] = result{nodes: nodes, diags: diags, err: err}
		}(i, src)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	var diags []Diagnostic
	for i, res := range results {
		diags = append(diags, res.diags...)
		if res.err != nil {
			diags = append(diags, errorDiagnostic(sources[i].ID, res.err))
			continue
		}
		s.merge(res.nodes, sources[i].ID, &diags)
	}

	return diags
}

// merge folds parsed nodes into the symbol table and drops stale results.
// Callers hold s.mu.
func (s *Session) merge(nodes []node, sourceID string, diags *[]Diagnostic) {
	s.tab.ingest(nodes, sourceID, diags)
	s.cache = make(map[string]*PropertyTable)
}

// Resolve computes the fully merged property table for a class. The name is
// either a qualified path ("CfgWeapons/ACE_fieldDressing") or a bare name
// that is top-level or unique across scopes. Results are cached until the
// next ingestion or Reset.
func (s *Session) Resolve(name string) (*PropertyTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.tab.find(name)
	if err != nil {
		return nil, err
	}

	r := &resolver{tab: s.tab, cache: s.cache}
	return r.resolve(e)
}

// Check lints the symbol table without resolving property values: it reports
// base references that no scope declares and base chains that cycle.
func (s *Session) Check() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Diagnostic
	for _, path := range s.tab.order {
		e := s.tab.entries[path]
		if e.base == "" {
			continue
		}

		if !s.tab.baseResolvable(e) {
			out = append(out, Diagnostic{
				Level:   DiagWarning,
				Code:    CodeUnknownBase,
				Message: fmt.Sprintf("class %q extends undeclared base %q", e.path, e.base),
				Source:  firstSource(e),
			})
			continue
		}

		if chain, cyclic := s.baseCycle(e); cyclic {
			out = append(out, Diagnostic{
				Level:   DiagError,
				Code:    CodeCycle,
				Message: "inheritance cycle: " + chain,
				Source:  firstSource(e),
			})
		}
	}

	return out
}

// baseCycle walks one base chain looking for a revisit. Callers hold s.mu.
func (s *Session) baseCycle(e *classEntry) (string, bool) {
	seen := map[string]bool{}
	chain := []string{}
	for cur := e; cur != nil && cur.base != ""; {
		if seen[cur.path] {
			return chainString(chain, cur.path), true
		}
		seen[cur.path] = true
		chain = append(chain, cur.path)
		cur = s.tab.lookupBase(cur)
	}

	return "", false
}

// Reset drops all declarations and cached results, starting a fresh session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = newSymbolTable()
	s.cache = make(map[string]*PropertyTable)
}

// parseSource tokenizes, macro-expands, and parses one source. It has no
// shared state, so sources may be parsed in parallel.
func parseSource(sourceID string, data []byte, opt Options) ([]node, []Diagnostic, error) {
	e := newExpander(newLexer(bytes.NewReader(data), opt), opt.Macros, sourceID)
	p := newParser(e, sourceID)
	nodes, err := p.parseSource()
	diags := append(e.diags, p.diags...)
	if err != nil {
		return nil, diags, err
	}

	return nodes, diags, nil
}

// errorDiagnostic converts a fatal per-source failure into a diagnostic.
func errorDiagnostic(sourceID string, err error) Diagnostic {
	code := CodeParse
	if errors.Is(err, ErrLex) {
		code = CodeLex
	}

	return Diagnostic{
		Level:   DiagError,
		Code:    code,
		Message: err.Error(),
		Source:  sourceID,
	}
}

// firstSource returns the source of the first recorded occurrence.
func firstSource(e *classEntry) string {
	if len(e.defs) == 0 {
		return ""
	}

	return e.defs[0].source
}
