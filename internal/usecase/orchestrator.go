package usecase

import (
	"context"
	"sync"
	"time"

	"SpacWatch/internal/domain/models"
	drepo "SpacWatch/internal/domain/repository"
	"SpacWatch/internal/services/analytics"
	"SpacWatch/internal/services/classify"
	"SpacWatch/internal/services/digest"
	"SpacWatch/pkg/logger"
)

// PanelListener receives every panel slot transition after it is applied.
type PanelListener func(models.PanelUpdate)

// Config controls fetch parameters for the dashboard panels.
type Config struct {
	DiscardStale    bool
	FetchTimeout    time.Duration
	VolumeDays      int
	PricePeriod     string
	PriceInterval   string
	FilingFormTypes []string
	FilingLimit     int
	SummarizeFiling bool
	AlertsRefresh   time.Duration
}

// tickerPanels are the slots refetched together on every selection.
var tickerPanels = []models.PanelKind{
	models.PanelPrice,
	models.PanelVolume,
	models.PanelAnomalies,
	models.PanelFilings,
}

// Orchestrator drives the per-panel fetch lifecycle. Selecting a ticker
// moves the four ticker panels to loading and spawns one fetch per
// panel; each settles independently. Every selection bumps a generation
// counter carried by the fetches, and a settle whose generation no
// longer matches the current one is discarded instead of overwriting
// fresher state. The alerts panel runs on its own generation because it
// is keyed by date range, not ticker.
type Orchestrator struct {
	gateway drepo.Gateway
	metrics drepo.Metrics
	log     *logger.Logger
	cfg     Config

	mu        sync.Mutex
	selection models.Selection
	gen       uint64
	alertsGen uint64
	slots     map[models.PanelKind]models.PanelUpdate
	listeners []PanelListener

	stop chan struct{}
}

// NewOrchestrator creates the dashboard fetch orchestrator.
func NewOrchestrator(gateway drepo.Gateway, metrics drepo.Metrics, log *logger.Logger, cfg Config) *Orchestrator {
	cfg.PricePeriod = string(drepo.NormalizePeriod(cfg.PricePeriod))
	cfg.PriceInterval = drepo.NormalizeInterval(cfg.PriceInterval)
	slots := make(map[models.PanelKind]models.PanelUpdate, len(tickerPanels)+1)
	for _, kind := range tickerPanels {
		slots[kind] = models.PanelUpdate{Kind: kind, Status: models.StatusIdle}
	}
	slots[models.PanelAlerts] = models.PanelUpdate{Kind: models.PanelAlerts, Status: models.StatusIdle}
	return &Orchestrator{
		gateway: gateway,
		metrics: metrics,
		log:     log,
		cfg:     cfg,
		slots:   slots,
		stop:    make(chan struct{}),
	}
}

// Subscribe registers a listener for panel transitions. Listeners are
// invoked outside the orchestrator lock, in registration order.
func (o *Orchestrator) Subscribe(fn PanelListener) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// Selection returns the current query state.
func (o *Orchestrator) Selection() models.Selection {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selection
}

// Panel returns the current slot for one panel kind.
func (o *Orchestrator) Panel(kind models.PanelKind) (models.PanelUpdate, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	u, ok := o.slots[kind]
	return u, ok
}

// Snapshot returns the current state of every panel slot.
func (o *Orchestrator) Snapshot() []models.PanelUpdate {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.PanelUpdate, 0, len(o.slots))
	for _, kind := range tickerPanels {
		out = append(out, o.slots[kind])
	}
	out = append(out, o.slots[models.PanelAlerts])
	return out
}

// Tickers lists the monitored tickers through the gateway.
func (o *Orchestrator) Tickers(ctx context.Context) ([]string, bool) {
	return o.gateway.ListTickers(ctx)
}

// History fetches the full candle history for a ticker on demand,
// outside the panel lifecycle. The result is enriched like the price
// panel but does not touch any slot.
func (o *Orchestrator) History(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool) {
	period = string(drepo.NormalizePeriod(period))
	interval = drepo.NormalizeInterval(interval)
	snap, ok := o.gateway.GetStockHistory(ctx, ticker, period, interval)
	if !ok || snap == nil {
		return nil, false
	}
	snap.Ticker = ticker
	snap.Change = analytics.PriceChange(snap.Prices)
	if snap.Latest == 0 {
		snap.Latest = analytics.LatestClose(snap.Prices)
	}
	if snap.Support == 0 && snap.Resistance == 0 {
		snap.Support, snap.Resistance = analytics.SupportResistance(snap.Prices)
	}
	return snap, true
}

// Select switches the dashboard to a new ticker. All four ticker panels
// flip to loading synchronously, then fetch concurrently. Returns the
// generation assigned to the new selection.
func (o *Orchestrator) Select(ticker string) uint64 {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.selection.Ticker = ticker
	loading := make([]models.PanelUpdate, 0, len(tickerPanels))
	for _, kind := range tickerPanels {
		u := models.PanelUpdate{Kind: kind, Status: models.StatusLoading, Ticker: ticker, Generation: gen}
		o.slots[kind] = u
		loading = append(loading, u)
	}
	listeners := append([]PanelListener(nil), o.listeners...)
	o.mu.Unlock()

	for _, u := range loading {
		o.notify(listeners, u)
	}

	go o.fetchPrice(ticker, gen)
	go o.fetchVolume(ticker, gen)
	go o.fetchAnomalies(ticker, gen)
	go o.fetchFilings(ticker, gen)
	return gen
}

// Refresh refetches the four ticker panels for the current selection.
// No-op when no ticker is selected.
func (o *Orchestrator) Refresh() (uint64, bool) {
	o.mu.Lock()
	ticker := o.selection.Ticker
	o.mu.Unlock()
	if ticker == "" {
		return 0, false
	}
	return o.Select(ticker), true
}

// RefreshAlerts refetches the alerts digest for the given date range.
func (o *Orchestrator) RefreshAlerts(dr models.DateRange) uint64 {
	dr = dr.Normalize()
	o.mu.Lock()
	o.alertsGen++
	gen := o.alertsGen
	o.selection.Range = dr
	u := models.PanelUpdate{Kind: models.PanelAlerts, Status: models.StatusLoading, Generation: gen}
	o.slots[models.PanelAlerts] = u
	listeners := append([]PanelListener(nil), o.listeners...)
	o.mu.Unlock()

	o.notify(listeners, u)
	go o.fetchAlerts(dr, gen)
	return gen
}

// Alerts returns the last settled alerts digest, or nil when the
// alerts panel has not settled.
func (o *Orchestrator) Alerts() *models.AlertsDigest {
	o.mu.Lock()
	defer o.mu.Unlock()
	u := o.slots[models.PanelAlerts]
	if u.Status != models.StatusSettled || u.Alerts == nil {
		return nil
	}
	return u.Alerts
}

// AlertRecords returns the records of the last settled alerts digest.
func (o *Orchestrator) AlertRecords() []models.AlertRecord {
	if d := o.Alerts(); d != nil {
		return d.Records
	}
	return nil
}

// Start launches the periodic alerts refresh loop when configured.
func (o *Orchestrator) Start(ctx context.Context) {
	if o.cfg.AlertsRefresh <= 0 {
		return
	}
	go func() {
		tick := time.NewTicker(o.cfg.AlertsRefresh)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-o.stop:
				return
			case <-tick.C:
				o.mu.Lock()
				dr := o.selection.Range
				o.mu.Unlock()
				o.RefreshAlerts(dr)
			}
		}
	}()
}

// Stop terminates the refresh loop. In-flight fetches run to completion
// and settle or get discarded by generation as usual.
func (o *Orchestrator) Stop() {
	select {
	case <-o.stop:
	default:
		close(o.stop)
	}
}

func (o *Orchestrator) fetchCtx() (context.Context, context.CancelFunc) {
	timeout := o.cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (o *Orchestrator) fetchPrice(ticker string, gen uint64) {
	ctx, cancel := o.fetchCtx()
	defer cancel()
	fallback := models.PanelUpdate{Kind: models.PanelPrice, Status: models.StatusSettled, Ticker: ticker, Generation: gen}
	u := RunPanel(o.log, o.metrics, string(models.PanelPrice), fallback, func() models.PanelUpdate {
		u := fallback
		snap, ok := o.gateway.GetStockPrice(ctx, ticker, o.cfg.PricePeriod, o.cfg.PriceInterval)
		if ok && snap != nil {
			snap.Ticker = ticker
			snap.Change = analytics.PriceChange(snap.Prices)
			if snap.Latest == 0 {
				snap.Latest = analytics.LatestClose(snap.Prices)
			}
			if snap.Support == 0 && snap.Resistance == 0 {
				snap.Support, snap.Resistance = analytics.SupportResistance(snap.Prices)
			}
			u.Price = snap
		}
		return u
	})
	o.settle(u)
}

func (o *Orchestrator) fetchVolume(ticker string, gen uint64) {
	ctx, cancel := o.fetchCtx()
	defer cancel()
	fallback := models.PanelUpdate{Kind: models.PanelVolume, Status: models.StatusSettled, Ticker: ticker, Generation: gen}
	u := RunPanel(o.log, o.metrics, string(models.PanelVolume), fallback, func() models.PanelUpdate {
		u := fallback
		points, ok := o.gateway.GetVolumeHistory(ctx, ticker, o.cfg.VolumeDays)
		if ok {
			u.Volume = &models.VolumeSnapshot{
				Ticker: ticker,
				Days:   o.cfg.VolumeDays,
				Points: analytics.WithMovingAverage(points, analytics.MA7Window),
			}
		}
		return u
	})
	o.settle(u)
}

func (o *Orchestrator) fetchAnomalies(ticker string, gen uint64) {
	ctx, cancel := o.fetchCtx()
	defer cancel()
	fallback := models.PanelUpdate{Kind: models.PanelAnomalies, Status: models.StatusSettled, Ticker: ticker, Generation: gen}
	u := RunPanel(o.log, o.metrics, string(models.PanelAnomalies), fallback, func() models.PanelUpdate {
		u := fallback
		anomalies, ok := o.gateway.DetectAnomalies(ctx, ticker)
		if ok {
			u.Anomalies = anomalies
		}
		return u
	})
	o.settle(u)
}

func (o *Orchestrator) fetchFilings(ticker string, gen uint64) {
	ctx, cancel := o.fetchCtx()
	defer cancel()
	fallback := models.PanelUpdate{Kind: models.PanelFilings, Status: models.StatusSettled, Ticker: ticker, Generation: gen}
	u := RunPanel(o.log, o.metrics, string(models.PanelFilings), fallback, func() models.PanelUpdate {
		u := fallback
		filings, ok := o.gateway.GetFilings(ctx, ticker, o.cfg.FilingFormTypes, o.cfg.FilingLimit, o.cfg.SummarizeFiling)
		if ok {
			u.Filings = classify.Filings(filings)
		}
		return u
	})
	o.settle(u)
}

func (o *Orchestrator) fetchAlerts(dr models.DateRange, gen uint64) {
	ctx, cancel := o.fetchCtx()
	defer cancel()
	fallback := models.PanelUpdate{Kind: models.PanelAlerts, Status: models.StatusSettled, Generation: gen}
	u := RunPanel(o.log, o.metrics, string(models.PanelAlerts), fallback, func() models.PanelUpdate {
		u := fallback
		d, ok := o.gateway.GetAlertsMarkdown(ctx, dr)
		if ok && d != nil {
			if len(d.Records) == 0 {
				d.Records = digest.Extract(d.Markdown)
			}
			if d.Count == 0 {
				d.Count = len(d.Records)
			}
			u.Alerts = d
		}
		return u
	})
	o.settle(u)
}

// settle applies a fetched update unless it lost the generation race.
func (o *Orchestrator) settle(u models.PanelUpdate) {
	o.mu.Lock()
	current := o.gen
	if u.Kind == models.PanelAlerts {
		current = o.alertsGen
	}
	if o.cfg.DiscardStale && u.Generation != current {
		o.mu.Unlock()
		if o.metrics != nil {
			o.metrics.RecordStaleDiscard(string(u.Kind))
		}
		if o.log != nil {
			o.log.Debug("stale panel settle discarded",
				logger.String("kind", string(u.Kind)),
				logger.String("ticker", u.Ticker),
				logger.Uint64("generation", u.Generation),
				logger.Uint64("current", current))
		}
		return
	}
	o.slots[u.Kind] = u
	listeners := append([]PanelListener(nil), o.listeners...)
	o.mu.Unlock()

	if o.metrics != nil {
		o.metrics.RecordPanelSettle(string(u.Kind))
	}
	o.notify(listeners, u)
}

func (o *Orchestrator) notify(listeners []PanelListener, u models.PanelUpdate) {
	for _, fn := range listeners {
		fn(u)
	}
	if o.metrics != nil && len(listeners) > 0 {
		o.metrics.RecordBroadcast()
	}
}
