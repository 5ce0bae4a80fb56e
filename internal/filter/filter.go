package filter

import (
	"errors"
	"fmt"

	"bench-dashboard/internal/benchmark"
)

var (
	// ErrEmptySelection means a filter that needs at least one value got none.
	ErrEmptySelection  = errors.New("empty selection")
	ErrUnknownCategory = errors.New("unknown category")
)

// Criteria is one composed filter. The zero value of every optional field
// imposes no constraint.
type Criteria struct {
	Scenario benchmark.Scenario

	// Languages must be non-empty unless AnyLanguage is set.
	Languages   []string
	AnyLanguage bool

	// Categories maps a category to its allowed values; empty sets pass through.
	Categories map[benchmark.Category][]string

	Levels []float64

	// Selection is a snapshot of the selection state keyed by row name.
	Selection map[string]bool
}

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

type compiled struct {
	scenario   benchmark.Scenario
	languages  stringSet
	categories map[benchmark.Category]stringSet
	levels     map[float64]struct{}
	names      stringSet
}

func compile(c Criteria) (*compiled, error) {
	if c.Scenario == "" {
		return nil, fmt.Errorf("%w: scenario is required", ErrEmptySelection)
	}
	if !c.AnyLanguage && len(c.Languages) == 0 {
		return nil, fmt.Errorf("%w: at least one language is required", ErrEmptySelection)
	}

	p := &compiled{scenario: c.Scenario}
	if !c.AnyLanguage {
		p.languages = newStringSet(c.Languages)
	}

	for cat, values := range c.Categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
		}
		if len(values) == 0 {
			continue
		}
		if p.categories == nil {
			p.categories = make(map[benchmark.Category]stringSet)
		}
		p.categories[cat] = newStringSet(values)
	}

	if len(c.Levels) > 0 {
		p.levels = make(map[float64]struct{}, len(c.Levels))
		for _, l := range c.Levels {
			p.levels[l] = struct{}{}
		}
	}

	p.names = selectedNames(c.Selection)
	return p, nil
}

// selectedNames resolves a selection snapshot to the set of names to keep.
// With at least one true flag only flagged names are kept; with none, every
// listed name is kept. An empty snapshot yields nil, meaning no constraint.
func selectedNames(selection map[string]bool) stringSet {
	if len(selection) == 0 {
		return nil
	}
	names := make(stringSet)
	for id, checked := range selection {
		if checked {
			names[id] = struct{}{}
		}
	}
	if len(names) > 0 {
		return names
	}
	// TODO: confirm with product whether nothing-checked should keep showing every listed row.
	for id := range selection {
		names[id] = struct{}{}
	}
	return names
}

func (p *compiled) keep(r benchmark.Row) bool {
	if r.Scenario != p.scenario {
		return false
	}
	if p.languages != nil && !p.languages.has(r.Language) {
		return false
	}
	for cat, allowed := range p.categories {
		if !allowed.has(r.Category(cat)) {
			return false
		}
	}
	if p.levels != nil {
		if _, ok := p.levels[r.Level]; !ok {
			return false
		}
	}
	if p.names != nil && !p.names.has(r.Name) {
		return false
	}
	return true
}

// Apply returns the rows matching every criterion, in input order.
// An empty result is valid.
func Apply(rows []benchmark.Row, c Criteria) ([]benchmark.Row, error) {
	p, err := compile(c)
	if err != nil {
		return nil, err
	}
	out := make([]benchmark.Row, 0, len(rows))
	for _, r := range rows {
		if p.keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// BySelection keeps rows whose name passes the selection snapshot, across
// every scenario. It backs the idle power view, which ignores the scenario.
func BySelection(rows []benchmark.Row, selection map[string]bool) []benchmark.Row {
	names := selectedNames(selection)
	out := make([]benchmark.Row, 0, len(rows))
	for _, r := range rows {
		if names == nil || names.has(r.Name) {
			out = append(out, r)
		}
	}
	return out
}
