package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
)

type row struct {
	Code   string
	Status string
	Uses   int
}

var rowSource = Source[row]{
	Entity: "vouchers",
	Title:  "Voucher Report",
	Noun:   "voucher",
	Columns: []Column[row]{
		{Label: "Code", Value: func(r row) string { return r.Code }},
		{Label: "Status", Value: func(r row) string { return r.Status }},
		{Label: "Uses", Value: func(r row) string { return strconv.Itoa(r.Uses) }},
	},
}

var rowEvaluator = filtering.New(
	[]filtering.Field[row]{{Name: "code", Value: func(r row) string { return r.Code }}},
	[]filtering.Field[row]{{Name: "status", Value: func(r row) string { return r.Status }}},
)

func rowStats(rows []row) []Stat {
	uses := 0
	for _, r := range rows {
		uses += r.Uses
	}
	return []Stat{
		{Label: "Total", Value: strconv.Itoa(len(rows))},
		{Label: "Redemptions", Value: strconv.Itoa(uses)},
	}
}

func sampleRows() []row {
	return []row{
		{Code: "SAVE20", Status: "Active", Uses: 50},
		{Code: "FIXED10", Status: "Active", Uses: 5},
		{Code: "EXPIRED15", Status: "Inactive", Uses: 90},
	}
}

func TestBuildStatsDescribeFilteredRows(t *testing.T) {
	criteria := filtering.Criteria{Selections: filtering.Selections{"status": "active"}}
	filtered := rowEvaluator.Evaluate(sampleRows(), criteria)

	doc := Build(rowSource, filtered, criteria, rowEvaluator.Applied(criteria.Selections), rowStats(filtered), time.Now())

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []Stat{{Label: "Total", Value: "2"}, {Label: "Redemptions", Value: "55"}}, doc.Stats)
	assert.Equal(t, "2 vouchers", doc.Subtitle)
	assert.True(t, doc.HasFilters())
	assert.Equal(t, []string{"Code", "Status", "Uses"}, doc.Columns)
	assert.Equal(t, []string{"SAVE20", "Active", "50"}, doc.Rows[0])
}

func TestBuildWithoutFilters(t *testing.T) {
	doc := Build(rowSource, sampleRows(), filtering.Criteria{}, nil, nil, time.Now())
	assert.False(t, doc.HasFilters())

	doc = Build(rowSource, sampleRows()[:1], filtering.Criteria{Query: " save "}, nil, nil, time.Now())
	assert.True(t, doc.HasFilters())
	assert.Equal(t, "save", doc.Query)
	assert.Equal(t, "1 voucher", doc.Subtitle)
}

func TestHTMLSinkRendersDocument(t *testing.T) {
	criteria := filtering.Criteria{Query: "<b>", Selections: filtering.Selections{"status": "active"}}
	doc := Build(rowSource, sampleRows()[:1], criteria, rowEvaluator.Applied(criteria.Selections), rowStats(sampleRows()[:1]), time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	sink := NewHTMLSink(&buf, Options{BrandName: "VenueHub", AutoPrint: true})
	require.NoError(t, sink.Render(context.Background(), doc))

	out := buf.String()
	assert.Contains(t, out, "<h1>Voucher Report</h1>")
	assert.Contains(t, out, "VenueHub")
	assert.Contains(t, out, "Applied filters")
	assert.Contains(t, out, "status: active")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.NotContains(t, out, "search: \"<b>\"")
	assert.Contains(t, out, "<td>SAVE20</td>")
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, "19 Oct 2026 09:30 UTC")
}

func TestHTMLSinkWithoutAutoPrintOrFilters(t *testing.T) {
	doc := Build(rowSource, nil, filtering.Criteria{}, nil, nil, time.Now())

	var buf bytes.Buffer
	require.NoError(t, NewHTMLSink(&buf, Options{}).Render(context.Background(), doc))

	out := buf.String()
	assert.NotContains(t, out, "window.print()")
	assert.NotContains(t, out, "Applied filters")
	assert.Contains(t, out, "No records match the current filters.")
}

func TestCSVSinkWritesTable(t *testing.T) {
	doc := Build(rowSource, sampleRows(), filtering.Criteria{}, nil, nil, time.Now())

	var buf bytes.Buffer
	require.NoError(t, NewCSVSink(&buf).Render(context.Background(), doc))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Code", "Status", "Uses"}, records[0])
	assert.Equal(t, []string{"EXPIRED15", "Inactive", "90"}, records[3])
}

func TestCSVSinkQuotesFormulaCells(t *testing.T) {
	doc := &Document{
		Columns: []string{"Code", "Title"},
		Rows: [][]string{
			{"SAVE20", "=HYPERLINK(\"http://evil\")"},
			{"FIXED10", "@SUM(A1)"},
			{"NEG", "-10 off"},
			{"PLUS", "+1"},
			{"PLAIN", "Summer sale"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVSink(&buf).Render(context.Background(), doc))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "'=HYPERLINK(\"http://evil\")", records[1][1])
	assert.Equal(t, "'@SUM(A1)", records[2][1])
	assert.Equal(t, "'-10 off", records[3][1])
	assert.Equal(t, "'+1", records[4][1])
	assert.Equal(t, "Summer sale", records[5][1])
	assert.Equal(t, "SAVE20", records[1][0])
}

func TestExporterRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	exporter := NewExporter(config.ReportsConfig{BrandName: "VenueHub", TimeZone: "UTC"}, metrics.NewReportMetrics(reg), nil)

	doc := Build(rowSource, sampleRows(), filtering.Criteria{}, nil, nil, exporter.Now())
	var buf bytes.Buffer
	require.NoError(t, exporter.Write(context.Background(), &buf, FormatCSV, doc))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "report_exports_total" {
			found = true
			assert.Equal(t, float64(1), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "expected report_exports_total to be gathered")

	_, err = exporter.SinkFor(Format("pdf"), &buf)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv; charset=utf-8", f.ContentType())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	doc := &Document{Entity: "vendors", GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)}
	assert.Equal(t, "vendors-20260102-0304.csv", doc.Filename(FormatCSV))
}
