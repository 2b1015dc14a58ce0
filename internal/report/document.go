// Package report turns a filtered list screen into a printable document and
// writes it through a Sink.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

// Stat is one label/value pair in the summary block.
type Stat struct {
	Label string
	Value string
}

// Document is a rendered-agnostic report. Stats describe exactly the rows in
// the table.
type Document struct {
	Entity      string
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Stats       []Stat
	Query       string
	Filters     []filtering.AppliedFilter
	Columns     []string
	Rows        [][]string
}

// HasFilters reports whether the applied-filters block should be shown.
func (d *Document) HasFilters() bool {
	return strings.TrimSpace(d.Query) != "" || len(d.Filters) > 0
}

// Filename suggests a download name such as vouchers-20261019-1530.csv.
func (d *Document) Filename(format Format) string {
	entity := d.Entity
	if entity == "" {
		entity = "report"
	}
	return fmt.Sprintf("%s-%s.%s", entity, d.GeneratedAt.Format("20060102-1504"), format)
}

// Column describes how one table column is read from a record.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// Source describes how a list screen turns into a Document.
type Source[T any] struct {
	Entity  string
	Title   string
	Noun    string
	Columns []Column[T]
}

// Build assembles a Document from records that have already been filtered by
// criteria. stats must be computed from the same records.
func Build[T any](src Source[T], records []T, criteria filtering.Criteria, applied []filtering.AppliedFilter, stats []Stat, now time.Time) *Document {
	doc := &Document{
		Entity:      src.Entity,
		Title:       src.Title,
		Subtitle:    subtitle(len(records), src.Noun),
		GeneratedAt: now,
		Stats:       stats,
		Query:       strings.TrimSpace(criteria.Query),
		Filters:     applied,
		Columns:     make([]string, 0, len(src.Columns)),
		Rows:        make([][]string, 0, len(records)),
	}
	for _, c := range src.Columns {
		doc.Columns = append(doc.Columns, c.Label)
	}
	for _, r := range records {
		row := make([]string, 0, len(src.Columns))
		for _, c := range src.Columns {
			row = append(row, c.Value(r))
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

func subtitle(n int, noun string) string {
	if noun == "" {
		noun = "record"
	}
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}
