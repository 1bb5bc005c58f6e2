// Package gateway implements the client for the remote tool-invocation
// API backing every dashboard panel.
//
// All operations share one wire shape: POST {base}/tools/{name} with a
// JSON body {"args": {...}} and a JSON result body. Transport failures,
// non-success statuses and undecodable bodies all fold into a single
// absent-result signal at this boundary; callers get (zero value, false)
// and must treat it as "no data yet". The distinction between the
// failure modes survives only in the logs.
package gateway

import (
	"context"
	"time"

	"SpacWatch/internal/domain/repository"
	"SpacWatch/internal/service/ratelimit"
	"SpacWatch/pkg/cache"
	xhttp "SpacWatch/pkg/http"
	xlogger "SpacWatch/pkg/logger"
)

// Option configures Client.
type Option func(*Client)

// Client invokes named remote tools over HTTP. The base URL is fixed at
// construction and immutable afterwards.
type Client struct {
	baseURL string
	http    *xhttp.Client
	cache   cache.Service
	log     *xlogger.Logger
	metrics repository.Metrics
	limiter *ratelimit.Limiter

	tickerTTL time.Duration
	digestTTL time.Duration
}

// New creates a gateway client for the given base URL.
func New(baseURL string, log *xlogger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		log:       log,
		tickerTTL: 5 * time.Minute,
		digestTTL: time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// WithCache attaches a cache for slow, rarely-changing tool results.
func WithCache(svc cache.Service, tickerTTL, digestTTL time.Duration) Option {
	return func(c *Client) {
		c.cache = svc
		if tickerTTL > 0 {
			c.tickerTTL = tickerTTL
		}
		if digestTTL > 0 {
			c.digestTTL = digestTTL
		}
	}
}

// WithMetrics attaches an operational metrics recorder.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRateLimit caps the per-tool call rate. Calls over the limit are
// skipped and reported as absent.
func WithRateLimit(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// toolRequest is the uniform request envelope expected by the tool server.
type toolRequest struct {
	Args map[string]interface{} `json:"args"`
}

// invoke performs one unary tool call, decoding the result into dest.
// Returns false on any transport or decode failure.
func (c *Client) invoke(ctx context.Context, tool string, args map[string]interface{}, dest interface{}) bool {
	if args == nil {
		args = map[string]interface{}{}
	}
	if c.limiter != nil && !c.limiter.Allow(tool) {
		c.log.Warn("tool call rate limited", xlogger.String("tool", tool))
		return false
	}

	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + "/tools/" + tool,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    toolRequest{Args: args},
	}, dest)

	if c.metrics != nil {
		c.metrics.RecordToolCall(tool, err == nil, time.Since(start).Seconds())
	}
	if err != nil {
		c.log.Error("tool call failed",
			xlogger.String("tool", tool),
			xlogger.Error(err),
		)
		return false
	}
	return true
}
