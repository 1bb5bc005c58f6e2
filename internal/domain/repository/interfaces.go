package repository

import (
	"context"

	"SpacWatch/internal/domain/models"
)

// Gateway is the remote tool-invocation API the dashboard is built on.
// Every operation is a single unary call. The boolean return is the
// absent-result signal: false means transport or decode failure and the
// other return values must be ignored. Implementations never surface
// errors to callers.
type Gateway interface {
	ListTickers(ctx context.Context) ([]string, bool)
	GetStockPrice(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool)
	GetVolumeHistory(ctx context.Context, ticker string, days int) ([]models.VolumePoint, bool)
	GetStockHistory(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool)
	DetectAnomalies(ctx context.Context, ticker string) ([]models.Anomaly, bool)
	GetFilings(ctx context.Context, ticker string, formTypes []string, limit int, summarize bool) ([]models.Filing, bool)
	GetAlertsMarkdown(ctx context.Context, dr models.DateRange) (*models.AlertsDigest, bool)
}

// Metrics records operational counters for the gateway and orchestrator.
type Metrics interface {
	RecordToolCall(tool string, ok bool, seconds float64)
	RecordPanelSettle(kind string)
	RecordStaleDiscard(kind string)
	RecordPanelFault(panel string)
	RecordBroadcast()
}

// AlertSink receives extracted alert records for downstream consumers.
type AlertSink interface {
	PublishAlerts(ctx context.Context, records []models.AlertRecord) error
	Close() error
}
