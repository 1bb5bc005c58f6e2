package di

import (
	"fmt"

	"SpacWatch/internal/domain/repository"
	"SpacWatch/internal/gateway"
	"SpacWatch/internal/handler/api"
	"SpacWatch/internal/handler/ws"
	internalrepo "SpacWatch/internal/repository"
	"SpacWatch/internal/service/ratelimit"
	"SpacWatch/internal/usecase"
	"SpacWatch/pkg/cache"
	"SpacWatch/pkg/config"
	xhttp "SpacWatch/pkg/http"
	pkgkafka "SpacWatch/pkg/kafka"
	"SpacWatch/pkg/logger"
	"SpacWatch/pkg/metrics"
	"SpacWatch/pkg/server"
)

// ProvideLogger creates the application logger with an attached fault log.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachFaultLog(logger.NewFaultLog(cfg.Dashboard.FaultLogSize))
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend selected in config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
	case "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MaxSize)), nil
	default:
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxSize)), nil
	}
}

// ProvideGateway creates the remote tool gateway client.
func ProvideGateway(cfg *config.Config, l *logger.Logger, c cache.Service, m repository.Metrics) repository.Gateway {
	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithCache(c, cfg.Gateway.TickerCacheTTL, cfg.Gateway.DigestCacheTTL),
		gateway.WithMetrics(m),
	}
	if cfg.Gateway.RateLimitRPS > 0 {
		burst := cfg.Gateway.RateLimitBurst
		if burst <= 0 {
			burst = cfg.Gateway.RateLimitRPS
		}
		opts = append(opts, gateway.WithRateLimit(ratelimit.New(burst, cfg.Gateway.RateLimitRPS)))
	}
	return gateway.New(cfg.Gateway.BaseURL, l, opts...)
}

// ProvideOrchestrator creates the dashboard fetch orchestrator.
func ProvideOrchestrator(cfg *config.Config, gw repository.Gateway, m repository.Metrics, l *logger.Logger) *usecase.Orchestrator {
	return usecase.NewOrchestrator(gw, m, l, usecase.Config{
		DiscardStale:    cfg.Dashboard.DiscardStale,
		FetchTimeout:    cfg.Dashboard.FetchTimeout,
		VolumeDays:      cfg.Dashboard.VolumeDays,
		PricePeriod:     cfg.Dashboard.PricePeriod,
		PriceInterval:   cfg.Dashboard.PriceInterval,
		FilingFormTypes: cfg.Dashboard.FilingFormTypes,
		FilingLimit:     cfg.Dashboard.FilingLimit,
		SummarizeFiling: cfg.Dashboard.SummarizeFiling,
		AlertsRefresh:   cfg.Dashboard.AlertsRefresh,
	})
}

// ProvideAlertSink creates the Kafka alert sink, or nil when disabled.
func ProvideAlertSink(cfg *config.Config) (repository.AlertSink, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, 0),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAlertSink(producer, cfg.Kafka.Topic), nil
}

// ProvideExporter creates the alerts exporter.
func ProvideExporter(orch *usecase.Orchestrator, sink repository.AlertSink) *usecase.Exporter {
	return usecase.NewExporter(orch, sink)
}

// ProvideDashboardHandler creates the HTTP API handler.
func ProvideDashboardHandler(l *logger.Logger, orch *usecase.Orchestrator, exporter *usecase.Exporter) *api.DashboardHandler {
	return api.NewDashboardHandler(l, orch, exporter)
}

// ProvideHub creates the WebSocket push hub subscribed to the orchestrator.
func ProvideHub(l *logger.Logger, orch *usecase.Orchestrator) *ws.Hub {
	return ws.NewHub(l, orch)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	orch *usecase.Orchestrator,
	hub *ws.Hub,
	sink repository.AlertSink,
	handler *api.DashboardHandler,
) *server.App {
	return server.New(cfg, l, orch, hub, sink, []xhttp.Handler{handler, hub})
}
