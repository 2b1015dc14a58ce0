package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
)

// Exporter picks a sink for the requested format and records the export.
type Exporter struct {
	opts    Options
	metrics *metrics.ReportMetrics
	logg    *logger.Logger
	clock   func() time.Time
}

// NewExporter builds an exporter from the report config.
func NewExporter(cfg config.ReportsConfig, m *metrics.ReportMetrics, logg *logger.Logger) *Exporter {
	return &Exporter{
		opts: Options{
			BrandName: cfg.BrandName,
			AutoPrint: cfg.AutoPrint,
			Location:  cfg.Location(),
		},
		metrics: m,
		logg:    logg,
		clock:   time.Now,
	}
}

// Now is the timestamp stamped onto new documents.
func (e *Exporter) Now() time.Time {
	return e.clock().UTC()
}

// SinkFor returns the sink that renders format into w.
func (e *Exporter) SinkFor(format Format, w io.Writer) (Sink, error) {
	switch format {
	case FormatHTML:
		return NewHTMLSink(w, e.opts), nil
	case FormatCSV:
		return NewCSVSink(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Write renders doc as format into w.
func (e *Exporter) Write(ctx context.Context, w io.Writer, format Format, doc *Document) error {
	sink, err := e.SinkFor(format, w)
	if err != nil {
		return err
	}
	start := e.clock()
	if err := sink.Render(ctx, doc); err != nil {
		return err
	}
	e.metrics.ObserveExport(doc.Entity, format.String(), len(doc.Rows), e.clock().Sub(start))
	if e.logg != nil {
		e.logg.Info(e.logg.WithFields(ctx, map[string]any{
			"entity": doc.Entity,
			"format": format.String(),
			"rows":   len(doc.Rows),
		}), "report exported")
	}
	return nil
}
