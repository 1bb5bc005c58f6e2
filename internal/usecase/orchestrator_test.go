package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"SpacWatch/internal/domain/models"
)

// fakeGateway serves canned per-ticker data. Fetches for a ticker with a
// registered gate block until the gate is closed.
type fakeGateway struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	absent  bool
	digest  *models.AlertsDigest
	panicOn string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{gates: make(map[string]chan struct{})}
}

func (g *fakeGateway) gate(ticker string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[ticker] = ch
	return ch
}

func (g *fakeGateway) wait(ticker string) {
	g.mu.Lock()
	ch := g.gates[ticker]
	g.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (g *fakeGateway) ListTickers(ctx context.Context) ([]string, bool) {
	return []string{"AAPL", "TSLA"}, !g.absent
}

func (g *fakeGateway) GetStockPrice(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool) {
	g.wait(ticker)
	if g.panicOn == "price" {
		panic("boom")
	}
	if g.absent {
		return nil, false
	}
	return &models.PriceSnapshot{
		Ticker:   ticker,
		Period:   period,
		Interval: interval,
		Prices:   []models.PricePoint{{Close: 10}, {Close: 12}, {Close: 15}},
	}, true
}

func (g *fakeGateway) GetStockHistory(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool) {
	return g.GetStockPrice(ctx, ticker, period, interval)
}

func (g *fakeGateway) GetVolumeHistory(ctx context.Context, ticker string, days int) ([]models.VolumePoint, bool) {
	g.wait(ticker)
	if g.absent {
		return nil, false
	}
	return []models.VolumePoint{
		{Date: "2024-01-01", Volume: 10},
		{Date: "2024-01-02", Volume: 20},
	}, true
}

func (g *fakeGateway) DetectAnomalies(ctx context.Context, ticker string) ([]models.Anomaly, bool) {
	g.wait(ticker)
	if g.absent {
		return nil, false
	}
	return []models.Anomaly{{TradeDate: "2024-01-02", AnomalyType: "volume"}}, true
}

func (g *fakeGateway) GetFilings(ctx context.Context, ticker string, formTypes []string, limit int, summarize bool) ([]models.Filing, bool) {
	g.wait(ticker)
	if g.absent {
		return nil, false
	}
	return []models.Filing{{FormType: "424B3", Summary: "Prospectus"}}, true
}

func (g *fakeGateway) GetAlertsMarkdown(ctx context.Context, dr models.DateRange) (*models.AlertsDigest, bool) {
	if g.absent || g.digest == nil {
		return nil, false
	}
	d := *g.digest
	return &d, true
}

// fakeRecorder counts orchestration events.
type fakeRecorder struct {
	mu       sync.Mutex
	settles  []string
	faults   []string
	discards chan string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{discards: make(chan string, 16)}
}

func (r *fakeRecorder) RecordToolCall(tool string, ok bool, seconds float64) {}
func (r *fakeRecorder) RecordBroadcast()                                     {}

func (r *fakeRecorder) RecordPanelSettle(kind string) {
	r.mu.Lock()
	r.settles = append(r.settles, kind)
	r.mu.Unlock()
}

func (r *fakeRecorder) RecordStaleDiscard(kind string) { r.discards <- kind }

func (r *fakeRecorder) RecordPanelFault(panel string) {
	r.mu.Lock()
	r.faults = append(r.faults, panel)
	r.mu.Unlock()
}

func testConfig() Config {
	return Config{
		DiscardStale:    true,
		FetchTimeout:    5 * time.Second,
		VolumeDays:      10,
		PricePeriod:     "1mo",
		PriceInterval:   "1d",
		FilingFormTypes: []string{"8-K", "S-1", "S-8", "424B3", "4"},
		FilingLimit:     5,
		SummarizeFiling: true,
	}
}

func collect(o *Orchestrator) chan models.PanelUpdate {
	ch := make(chan models.PanelUpdate, 64)
	o.Subscribe(func(u models.PanelUpdate) { ch <- u })
	return ch
}

func waitSettled(t *testing.T, ch chan models.PanelUpdate, kind models.PanelKind, gen uint64) models.PanelUpdate {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u := <-ch:
			if u.Kind == kind && u.Status == models.StatusSettled && u.Generation == gen {
				return u
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s settle at generation %d", kind, gen)
		}
	}
}

func TestPanelsStartIdle(t *testing.T) {
	o := NewOrchestrator(newFakeGateway(), newFakeRecorder(), nil, testConfig())
	for _, u := range o.Snapshot() {
		if u.Status != models.StatusIdle {
			t.Fatalf("panel %s should start idle, got %s", u.Kind, u.Status)
		}
	}
}

func TestSelectFlipsPanelsToLoading(t *testing.T) {
	gw := newFakeGateway()
	gate := gw.gate("AAPL")
	defer close(gate)

	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	gen := o.Select("AAPL")

	for _, kind := range tickerPanels {
		u, ok := o.Panel(kind)
		if !ok {
			t.Fatalf("missing panel %s", kind)
		}
		if u.Status != models.StatusLoading {
			t.Fatalf("panel %s should be loading, got %s", kind, u.Status)
		}
		if u.Generation != gen || u.Ticker != "AAPL" {
			t.Fatalf("unexpected slot %+v", u)
		}
	}
	if alerts, _ := o.Panel(models.PanelAlerts); alerts.Status != models.StatusIdle {
		t.Fatalf("selection must not touch the alerts panel")
	}
}

func TestPanelsSettleWithEnrichment(t *testing.T) {
	gw := newFakeGateway()
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	ch := collect(o)
	gen := o.Select("AAPL")

	price := waitSettled(t, ch, models.PanelPrice, gen)
	if price.Price == nil || price.Price.Change == nil {
		t.Fatalf("price change not attached: %+v", price.Price)
	}
	if price.Price.Change.Absolute != 5 {
		t.Fatalf("unexpected change %+v", price.Price.Change)
	}
	if price.Price.Latest != 15 {
		t.Fatalf("unexpected latest %v", price.Price.Latest)
	}
	if price.Price.Support == 0 || price.Price.Resistance == 0 {
		t.Fatalf("levels not computed: %+v", price.Price)
	}

	volume := waitSettled(t, ch, models.PanelVolume, gen)
	if volume.Volume == nil || len(volume.Volume.Points) != 2 {
		t.Fatalf("unexpected volume %+v", volume.Volume)
	}

	filings := waitSettled(t, ch, models.PanelFilings, gen)
	if len(filings.Filings) != 1 || filings.Filings[0].Risk != models.RiskWarning {
		t.Fatalf("filings not classified: %+v", filings.Filings)
	}

	anomalies := waitSettled(t, ch, models.PanelAnomalies, gen)
	if len(anomalies.Anomalies) != 1 {
		t.Fatalf("unexpected anomalies %+v", anomalies.Anomalies)
	}
}

func TestStaleSettleDiscarded(t *testing.T) {
	gw := newFakeGateway()
	gate := gw.gate("TSLA")

	rec := newFakeRecorder()
	o := NewOrchestrator(gw, rec, nil, testConfig())
	ch := collect(o)

	o.Select("TSLA")
	gen2 := o.Select("AAPL")

	for _, kind := range tickerPanels {
		waitSettled(t, ch, kind, gen2)
	}

	close(gate)
	for i := 0; i < len(tickerPanels); i++ {
		select {
		case <-rec.discards:
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d stale discards, got %d", len(tickerPanels), i)
		}
	}

	u, _ := o.Panel(models.PanelPrice)
	if u.Ticker != "AAPL" {
		t.Fatalf("stale settle overwrote fresh state: %+v", u)
	}
}

func TestStaleSettleAppliedWhenDiscardDisabled(t *testing.T) {
	gw := newFakeGateway()
	gate := gw.gate("TSLA")

	cfg := testConfig()
	cfg.DiscardStale = false
	o := NewOrchestrator(gw, newFakeRecorder(), nil, cfg)
	ch := collect(o)

	gen1 := o.Select("TSLA")
	gen2 := o.Select("AAPL")
	for _, kind := range tickerPanels {
		waitSettled(t, ch, kind, gen2)
	}

	close(gate)
	waitSettled(t, ch, models.PanelPrice, gen1)

	deadline := time.After(2 * time.Second)
	for {
		u, _ := o.Panel(models.PanelPrice)
		if u.Ticker == "TSLA" {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("last write should win with discard disabled: %+v", u)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAbsentResultSettlesEmpty(t *testing.T) {
	gw := newFakeGateway()
	gw.absent = true
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	ch := collect(o)
	gen := o.Select("AAPL")

	price := waitSettled(t, ch, models.PanelPrice, gen)
	if price.Price != nil {
		t.Fatalf("absent result should settle with no payload: %+v", price.Price)
	}
	volume := waitSettled(t, ch, models.PanelVolume, gen)
	if volume.Volume != nil {
		t.Fatalf("absent result should settle with no payload: %+v", volume.Volume)
	}
}

func TestPanicSettlesViaFallback(t *testing.T) {
	gw := newFakeGateway()
	gw.panicOn = "price"
	rec := newFakeRecorder()
	o := NewOrchestrator(gw, rec, nil, testConfig())
	ch := collect(o)
	gen := o.Select("AAPL")

	price := waitSettled(t, ch, models.PanelPrice, gen)
	if price.Price != nil {
		t.Fatalf("panicked fetch should settle empty: %+v", price.Price)
	}
	rec.mu.Lock()
	faults := len(rec.faults)
	rec.mu.Unlock()
	if faults != 1 {
		t.Fatalf("expected 1 recorded fault, got %d", faults)
	}
}

func TestAlertsPipeline(t *testing.T) {
	gw := newFakeGateway()
	gw.digest = &models.AlertsDigest{
		Date: "2024-01-05",
		Markdown: "# 📊 Daily SPAC Alerts\n\n" +
			"- **AAPL** (2024-01-05) → Unusual volume spike\n" +
			"- **TSLA** (2024-01-05) → Price moved 12% on no news\n",
	}
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	ch := collect(o)
	gen := o.RefreshAlerts(models.DateRange{Start: "2024-01-01", End: "2024-01-05"})

	u := waitSettled(t, ch, models.PanelAlerts, gen)
	if u.Alerts == nil {
		t.Fatalf("expected digest payload")
	}
	if len(u.Alerts.Records) != 2 || u.Alerts.Count != 2 {
		t.Fatalf("records not extracted: %+v", u.Alerts)
	}
	if got := o.AlertRecords(); len(got) != 2 {
		t.Fatalf("unexpected records %+v", got)
	}
}

func TestHistoryEnriches(t *testing.T) {
	gw := newFakeGateway()
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())

	snap, ok := o.History(context.Background(), "AAPL", "1y", "1d")
	if !ok || snap == nil {
		t.Fatalf("expected history")
	}
	if snap.Change == nil || snap.Change.Absolute != 5 {
		t.Fatalf("history not enriched: %+v", snap.Change)
	}
	if snap.Latest != 15 {
		t.Fatalf("unexpected latest %v", snap.Latest)
	}
}

func TestHistoryNormalizesArguments(t *testing.T) {
	gw := newFakeGateway()
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())

	snap, ok := o.History(context.Background(), "AAPL", "2w", "15m")
	if !ok {
		t.Fatalf("expected history")
	}
	if snap.Period != "1mo" || snap.Interval != "1d" {
		t.Fatalf("arguments not normalized: %q %q", snap.Period, snap.Interval)
	}
}

func TestRefreshWithoutSelection(t *testing.T) {
	o := NewOrchestrator(newFakeGateway(), newFakeRecorder(), nil, testConfig())
	if _, ok := o.Refresh(); ok {
		t.Fatalf("refresh with no selection should be a no-op")
	}
}

func TestRefreshRefetchesCurrentTicker(t *testing.T) {
	gw := newFakeGateway()
	o := NewOrchestrator(gw, newFakeRecorder(), nil, testConfig())
	ch := collect(o)

	gen1 := o.Select("AAPL")
	for _, kind := range tickerPanels {
		waitSettled(t, ch, kind, gen1)
	}

	gen2, ok := o.Refresh()
	if !ok || gen2 <= gen1 {
		t.Fatalf("refresh should bump generation: %d -> %d", gen1, gen2)
	}
	if sel := o.Selection(); sel.Ticker != "AAPL" {
		t.Fatalf("unexpected selection %+v", sel)
	}
	for _, kind := range tickerPanels {
		waitSettled(t, ch, kind, gen2)
	}
}
