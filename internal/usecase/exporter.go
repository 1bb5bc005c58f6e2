package usecase

import (
	"context"
	"errors"
	"fmt"

	drepo "SpacWatch/internal/domain/repository"
	"SpacWatch/internal/services/digest"
	"SpacWatch/pkg/util"
)

// ErrNoSink is returned by Publish when no alert sink is configured.
var ErrNoSink = errors.New("alert sink disabled")

// Exporter renders the current alerts digest into downloadable files
// and optionally forwards the records to a sink.
type Exporter struct {
	orch *Orchestrator
	sink drepo.AlertSink
}

// NewExporter creates an alerts exporter. sink may be nil.
func NewExporter(orch *Orchestrator, sink drepo.AlertSink) *Exporter {
	return &Exporter{orch: orch, sink: sink}
}

// CSV returns the export filename and the delimited body for the
// current alerts records.
func (e *Exporter) CSV() (filename, body string) {
	records := e.orch.AlertRecords()
	return fmt.Sprintf("spac_alerts_%s.csv", util.Today()), digest.CSV(records)
}

// Markdown returns the export filename and the digest body. The remote
// digest is exported verbatim; the body is rebuilt from the extracted
// records only when no remote markdown settled.
func (e *Exporter) Markdown() (filename, body string) {
	filename = fmt.Sprintf("spac_alerts_%s.md", util.Today())
	if d := e.orch.Alerts(); d != nil && d.Markdown != "" {
		return filename, d.Markdown
	}
	return filename, digest.Markdown(e.orch.AlertRecords())
}

// Publish forwards the current alerts records to the configured sink.
func (e *Exporter) Publish(ctx context.Context) error {
	if e.sink == nil {
		return ErrNoSink
	}
	records := e.orch.AlertRecords()
	if len(records) == 0 {
		return nil
	}
	if err := e.sink.PublishAlerts(ctx, records); err != nil {
		return fmt.Errorf("publish alerts: %w", err)
	}
	return nil
}
