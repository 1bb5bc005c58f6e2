package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"SpacWatch/internal/domain/models"
	drepo "SpacWatch/internal/domain/repository"
	"SpacWatch/pkg/util"
)

type fakeSink struct {
	mu      sync.Mutex
	batches [][]models.AlertRecord
	err     error
	closed  bool
}

func (s *fakeSink) PublishAlerts(ctx context.Context, records []models.AlertRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, records)
	return nil
}

func (s *fakeSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func exporterWithDigest(t *testing.T, sink drepo.AlertSink, d *models.AlertsDigest) *Exporter {
	t.Helper()
	gw := newFakeGateway()
	gw.digest = d
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	ch := collect(o)
	gen := o.RefreshAlerts(models.DateRange{})
	waitSettled(t, ch, models.PanelAlerts, gen)
	return NewExporter(o, sink)
}

func settledExporter(t *testing.T, sink drepo.AlertSink) *Exporter {
	t.Helper()
	return exporterWithDigest(t, sink, &models.AlertsDigest{
		Date: "2024-01-05",
		Markdown: "# 📊 Daily SPAC Alerts\n\n" +
			"- **AAPL** (2024-01-05) → Unusual volume spike\n",
	})
}

func TestExporterCSV(t *testing.T) {
	e := settledExporter(t, nil)
	name, body := e.CSV()
	want := fmt.Sprintf("spac_alerts_%s.csv", util.Today())
	if name != want {
		t.Fatalf("unexpected filename %q", name)
	}
	if body != "Ticker,Trade Date,Details\nAAPL,2024-01-05,\"Unusual volume spike\"" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestExporterMarkdown(t *testing.T) {
	e := settledExporter(t, nil)
	name, body := e.Markdown()
	if !strings.HasSuffix(name, ".md") {
		t.Fatalf("unexpected filename %q", name)
	}
	if !strings.Contains(body, "- **AAPL** (2024-01-05) → Unusual volume spike") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestExporterMarkdownIsVerbatimDigest(t *testing.T) {
	md := "# 📊 Daily SPAC Alerts\n\n" +
		"New filings today: 2\n\n" +
		"- **AAPL** (2024-01-05) → Filed an \"unusual\" report\n"
	e := exporterWithDigest(t, nil, &models.AlertsDigest{Date: "2024-01-05", Markdown: md})

	_, body := e.Markdown()
	if body != md {
		t.Fatalf("markdown export must be the digest verbatim, got %q", body)
	}
	if !strings.Contains(body, "New filings today: 2") {
		t.Fatalf("prose line dropped from export %q", body)
	}
	if strings.Contains(body, `""unusual""`) {
		t.Fatalf("doubled quotes leaked into markdown export %q", body)
	}

	// the doubling stays in the delimited export
	_, csv := e.CSV()
	if !strings.Contains(csv, `""unusual""`) {
		t.Fatalf("csv should carry doubled quotes, got %q", csv)
	}
}

func TestExporterMarkdownRebuiltWhenRemoteAbsent(t *testing.T) {
	e := exporterWithDigest(t, nil, &models.AlertsDigest{
		Date:    "2024-01-05",
		Records: []models.AlertRecord{{Ticker: "AAPL", TradeDate: "2024-01-05", Details: "Unusual volume spike"}},
	})
	_, body := e.Markdown()
	if !strings.HasPrefix(body, "# 📊 Daily SPAC Alerts") {
		t.Fatalf("rebuilt digest missing heading %q", body)
	}
	if !strings.Contains(body, "- **AAPL** (2024-01-05) → Unusual volume spike") {
		t.Fatalf("rebuilt digest missing record line %q", body)
	}
}

func TestExporterPublish(t *testing.T) {
	sink := &fakeSink{}
	e := settledExporter(t, sink)
	if err := e.Publish(context.Background()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.batches) != 1 || len(sink.batches[0]) != 1 {
		t.Fatalf("unexpected batches %+v", sink.batches)
	}
}

func TestExporterPublishWithoutSink(t *testing.T) {
	e := settledExporter(t, nil)
	if err := e.Publish(context.Background()); !errors.Is(err, ErrNoSink) {
		t.Fatalf("expected ErrNoSink, got %v", err)
	}
}

func TestExporterPublishWrapsSinkError(t *testing.T) {
	sink := &fakeSink{err: errors.New("broker down")}
	e := settledExporter(t, sink)
	err := e.Publish(context.Background())
	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
}
