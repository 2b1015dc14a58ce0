// Package filtering evaluates free-text search and categorical selections
// over an in-memory list of records. It is pure: the output depends only on
// the records, the query and the selections.
package filtering

import "strings"

// All is the selection value meaning "no constraint".
const All = "all"

// Field exposes one string-valued attribute of a record. Derived attributes
// (such as a status computed against the clock) are resolved by the caller
// before the record reaches the evaluator.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Selections maps a categorical field name to the selected value.
type Selections map[string]string

// Criteria bundles the query and selections of a single list request.
type Criteria struct {
	Query      string
	Selections Selections
}

// AppliedFilter is a selection that constrains the result.
type AppliedFilter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Evaluator filters records of type T. It holds no mutable state and is safe
// for concurrent use.
type Evaluator[T any] struct {
	searchable  []Field[T]
	categorical []Field[T]
}

// New builds an evaluator from the searchable text fields and the
// categorical fields, in the order filters should be reported.
func New[T any](searchable []Field[T], categorical []Field[T]) *Evaluator[T] {
	return &Evaluator[T]{
		searchable:  append([]Field[T](nil), searchable...),
		categorical: append([]Field[T](nil), categorical...),
	}
}

// IsAll reports whether value places no constraint on a field.
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, All)
}

// SearchMatches reports whether the trimmed, lowercased query is a substring
// of any searchable field. An empty query matches everything.
func (e *Evaluator[T]) SearchMatches(record T, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range e.searchable {
		if strings.Contains(strings.ToLower(f.Value(record)), q) {
			return true
		}
	}
	return false
}

// SelectionsMatch reports whether record satisfies every known, non-default
// selection. Unknown names are ignored.
func (e *Evaluator[T]) SelectionsMatch(record T, selections Selections) bool {
	for _, f := range e.categorical {
		want, ok := selections[f.Name]
		if !ok || IsAll(want) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(f.Value(record)), strings.TrimSpace(want)) {
			return false
		}
	}
	return true
}

// Matches combines SearchMatches and SelectionsMatch.
func (e *Evaluator[T]) Matches(record T, criteria Criteria) bool {
	return e.SearchMatches(record, criteria.Query) && e.SelectionsMatch(record, criteria.Selections)
}

// Evaluate returns the subsequence of records matching criteria, preserving
// their relative order. The result is never nil.
func (e *Evaluator[T]) Evaluate(records []T, criteria Criteria) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if e.Matches(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

// Applied lists the known selections that constrain the result, in field
// declaration order.
func (e *Evaluator[T]) Applied(selections Selections) []AppliedFilter {
	var out []AppliedFilter
	for _, f := range e.categorical {
		v, ok := selections[f.Name]
		if !ok || IsAll(v) {
			continue
		}
		out = append(out, AppliedFilter{Name: f.Name, Value: strings.TrimSpace(v)})
	}
	return out
}

// FilterNames returns the categorical field names the evaluator recognises.
func (e *Evaluator[T]) FilterNames() []string {
	names := make([]string, 0, len(e.categorical))
	for _, f := range e.categorical {
		names = append(names, f.Name)
	}
	return names
}

// IsDefault reports whether criteria leave the list unconstrained: an empty
// query and every selection set to all.
func (c Criteria) IsDefault() bool {
	if strings.TrimSpace(c.Query) != "" {
		return false
	}
	for _, v := range c.Selections {
		if !IsAll(v) {
			return false
		}
	}
	return true
}
