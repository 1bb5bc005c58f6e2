package gateway

import (
	"context"

	"SpacWatch/internal/domain/models"
	"SpacWatch/pkg/cache"
)

// Response envelopes as declared by the tool server. Fields the
// dashboard ignores are omitted; unknown fields decode away silently.

type tickersResponse struct {
	Tickers []string `json:"tickers"`
}

type priceResponse struct {
	Ticker     string              `json:"ticker"`
	Period     string              `json:"period"`
	Interval   string              `json:"interval"`
	Prices     []models.PricePoint `json:"prices"`
	Support    float64             `json:"support"`
	Resistance float64             `json:"resistance"`
	Price      float64             `json:"price"`
}

type volumeResponse struct {
	Ticker  string               `json:"ticker"`
	Days    int                  `json:"days"`
	History []models.VolumePoint `json:"history"`
}

type anomaliesResponse struct {
	Ticker    string           `json:"ticker"`
	Anomalies []models.Anomaly `json:"anomalies"`
}

type filingsResponse struct {
	Ticker  string          `json:"ticker"`
	Filings []models.Filing `json:"filings"`
}

type alertsResponse struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Markdown string `json:"markdown"`
}

// ListTickers returns the monitored ticker universe. The result is
// cached: the universe changes far slower than any panel.
func (c *Client) ListTickers(ctx context.Context) ([]string, bool) {
	const key = "tickers"
	if c.cache != nil {
		if cached, err := cache.GetTyped[[]string](ctx, c.cache, key); err == nil {
			return cached, true
		}
	}

	var res tickersResponse
	if !c.invoke(ctx, "list_tickers", nil, &res) {
		return nil, false
	}

	if c.cache != nil && len(res.Tickers) > 0 {
		_ = cache.SetTyped(ctx, c.cache, key, res.Tickers, c.tickerTTL)
	}
	return res.Tickers, true
}

// GetStockPrice fetches price history with support/resistance levels.
func (c *Client) GetStockPrice(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool) {
	var res priceResponse
	ok := c.invoke(ctx, "get_stock_price", map[string]interface{}{
		"ticker":   ticker,
		"period":   period,
		"interval": interval,
	}, &res)
	if !ok {
		return nil, false
	}

	return &models.PriceSnapshot{
		Ticker:     res.Ticker,
		Period:     res.Period,
		Interval:   res.Interval,
		Prices:     res.Prices,
		Latest:     res.Price,
		Support:    res.Support,
		Resistance: res.Resistance,
	}, true
}

// GetStockHistory fetches the full candle history for a ticker. Same
// result shape as GetStockPrice with a longer default lookback.
func (c *Client) GetStockHistory(ctx context.Context, ticker, period, interval string) (*models.PriceSnapshot, bool) {
	var res priceResponse
	ok := c.invoke(ctx, "get_stock_history", map[string]interface{}{
		"ticker":   ticker,
		"period":   period,
		"interval": interval,
	}, &res)
	if !ok {
		return nil, false
	}

	return &models.PriceSnapshot{
		Ticker:     res.Ticker,
		Period:     res.Period,
		Interval:   res.Interval,
		Prices:     res.Prices,
		Latest:     res.Price,
		Support:    res.Support,
		Resistance: res.Resistance,
	}, true
}

// GetVolumeHistory fetches daily trading volume for the last N days.
func (c *Client) GetVolumeHistory(ctx context.Context, ticker string, days int) ([]models.VolumePoint, bool) {
	var res volumeResponse
	ok := c.invoke(ctx, "get_volume_history", map[string]interface{}{
		"ticker": ticker,
		"days":   days,
	}, &res)
	if !ok {
		return nil, false
	}
	return res.History, true
}

// DetectAnomalies fetches server-detected anomalies for a ticker.
func (c *Client) DetectAnomalies(ctx context.Context, ticker string) ([]models.Anomaly, bool) {
	var res anomaliesResponse
	ok := c.invoke(ctx, "detect_anomalies", map[string]interface{}{
		"ticker": ticker,
	}, &res)
	if !ok {
		return nil, false
	}
	return res.Anomalies, true
}

// GetFilings fetches recent regulatory filings for a ticker.
func (c *Client) GetFilings(ctx context.Context, ticker string, formTypes []string, limit int, summarize bool) ([]models.Filing, bool) {
	var res filingsResponse
	ok := c.invoke(ctx, "get_filings", map[string]interface{}{
		"ticker":     ticker,
		"form_types": formTypes,
		"limit":      limit,
		"summarize":  summarize,
	}, &res)
	if !ok {
		return nil, false
	}
	return res.Filings, true
}

// GetAlertsMarkdown fetches the rendered cross-ticker alerts digest for
// a date range. Results are cached per range.
func (c *Client) GetAlertsMarkdown(ctx context.Context, dr models.DateRange) (*models.AlertsDigest, bool) {
	key := cache.KeyWithParams("alerts", dr.Start, dr.End)
	if c.cache != nil {
		if cached, err := cache.GetTyped[models.AlertsDigest](ctx, c.cache, key); err == nil {
			return &cached, true
		}
	}

	args := map[string]interface{}{}
	if dr.Start != "" {
		args["start_date"] = dr.Start
	}
	if dr.End != "" {
		args["end_date"] = dr.End
	}

	var res alertsResponse
	if !c.invoke(ctx, "get_alerts_markdown", args, &res) {
		return nil, false
	}

	digest := &models.AlertsDigest{
		Date:     res.Date,
		Count:    res.Count,
		Markdown: res.Markdown,
	}
	if c.cache != nil {
		_ = cache.SetTyped(ctx, c.cache, key, digest, c.digestTTL)
	}
	return digest, true
}
