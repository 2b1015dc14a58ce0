package report

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templatesFS, "templates/report.html"))

// Sink renders a Document somewhere. It is the only place a report touches
// the outside world.
type Sink interface {
	Render(ctx context.Context, doc *Document) error
}

// Options control presentation shared by every sink.
type Options struct {
	BrandName string
	AutoPrint bool
	Location  *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// HTMLSink writes a self-contained printable page. With AutoPrint the page
// opens the browser print dialog once loaded.
type HTMLSink struct {
	w    io.Writer
	opts Options
}

func NewHTMLSink(w io.Writer, opts Options) *HTMLSink {
	return &HTMLSink{w: w, opts: opts}
}

type htmlView struct {
	*Document
	Brand     string
	Generated string
	AutoPrint bool
}

func (s *HTMLSink) Render(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	view := htmlView{
		Document:  doc,
		Brand:     s.opts.BrandName,
		Generated: doc.GeneratedAt.In(s.opts.location()).Format("02 Jan 2006 15:04 MST"),
		AutoPrint: s.opts.AutoPrint,
	}
	if err := htmlTemplate.Execute(s.w, view); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// CSVSink writes the table block as CSV with a header row.
type CSVSink struct {
	w io.Writer
}

func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: w}
}

func (s *CSVSink) Render(ctx context.Context, doc *Document) error {
	cw := csv.NewWriter(s.w)
	if err := cw.Write(doc.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(neutralizeFormulas(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// neutralizeFormulas prefixes cells a spreadsheet would evaluate with a
// quote so exported names and titles stay text.
func neutralizeFormulas(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
			cell = "'" + cell
		}
		out[i] = cell
	}
	return out
}
