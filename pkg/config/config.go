package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled"`
		SlowThreshold time.Duration `yaml:"slow_threshold"`
	} `yaml:"metrics"`
	Gateway struct {
		BaseURL        string        `yaml:"base_url"`
		Timeout        time.Duration `yaml:"timeout"`
		TickerCacheTTL time.Duration `yaml:"ticker_cache_ttl"`
		DigestCacheTTL time.Duration `yaml:"digest_cache_ttl"`
		RateLimitBurst float64       `yaml:"rate_limit_burst"`
		RateLimitRPS   float64       `yaml:"rate_limit_rps"` // 0 disables per-tool limiting
	} `yaml:"gateway"`
	Dashboard struct {
		DiscardStale    bool          `yaml:"discard_stale"`
		FetchTimeout    time.Duration `yaml:"fetch_timeout"`
		VolumeDays      int           `yaml:"volume_days"`
		PricePeriod     string        `yaml:"price_period"`
		PriceInterval   string        `yaml:"price_interval"`
		FilingFormTypes []string      `yaml:"filing_form_types"`
		FilingLimit     int           `yaml:"filing_limit"`
		SummarizeFiling bool          `yaml:"summarize_filings"`
		AlertsRefresh   time.Duration `yaml:"alerts_refresh"`
		FaultLogSize    int           `yaml:"fault_log_size"`
	} `yaml:"dashboard"`
	Cache struct {
		Backend string `yaml:"backend"` // memory, redis, or layered
		MaxSize int    `yaml:"max_size"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"kafka"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// The gateway base URL is resolved once here and is immutable afterwards.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GATEWAY_BASE_URL"); v != "" {
		c.Gateway.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.BaseURL == "" {
		c.Gateway.BaseURL = "http://localhost:8000"
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = 15 * time.Second
	}
	if c.Dashboard.FetchTimeout <= 0 {
		c.Dashboard.FetchTimeout = 30 * time.Second
	}
	if c.Dashboard.VolumeDays <= 0 {
		c.Dashboard.VolumeDays = 10
	}
	if c.Dashboard.PricePeriod == "" {
		c.Dashboard.PricePeriod = "1mo"
	}
	if c.Dashboard.PriceInterval == "" {
		c.Dashboard.PriceInterval = "1d"
	}
	if len(c.Dashboard.FilingFormTypes) == 0 {
		c.Dashboard.FilingFormTypes = []string{"8-K", "S-1", "S-8", "424B3", "4"}
	}
	if c.Dashboard.FilingLimit <= 0 {
		c.Dashboard.FilingLimit = 5
	}
	if c.Dashboard.FaultLogSize <= 0 {
		c.Dashboard.FaultLogSize = 100
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend != "memory" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for backend '%s'", c.Cache.Backend)
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when kafka is enabled")
		}
	}
	return nil
}
