package models

// PricePoint is one candle of a ticker's price history. Dates are
// YYYY-MM-DD strings as emitted by the gateway; ordering within a
// series is chronological.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open,omitempty"`
	High   float64 `json:"high,omitempty"`
	Low    float64 `json:"low,omitempty"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume,omitempty"`
}

// VolumePoint is one day of trading volume. MA7 is derived client-side,
// never fetched; nil until a full trailing window is available.
type VolumePoint struct {
	Date   string `json:"date"`
	Volume int64  `json:"volume"`
	MA7    *int64 `json:"ma7"`
}

// Anomaly is an opaque server-detected anomaly record, rendered verbatim.
type Anomaly struct {
	TradeDate   string `json:"trade_date"`
	AnomalyType string `json:"anomaly_type"`
	Description string `json:"description"`
}

// PriceChange holds the absolute and percent change over a price series.
type PriceChange struct {
	Absolute float64 `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// Sign returns "+" for a non-negative change and "-" otherwise.
func (c PriceChange) Sign() string {
	if c.Absolute >= 0 {
		return "+"
	}
	return "-"
}

// PriceSnapshot is the settled state of the price panel. Change is nil
// when change metrics are unavailable (fewer than two points, or a zero
// first close).
type PriceSnapshot struct {
	Ticker     string       `json:"ticker"`
	Period     string       `json:"period"`
	Interval   string       `json:"interval"`
	Prices     []PricePoint `json:"prices"`
	Latest     float64      `json:"latest"`
	Change     *PriceChange `json:"change,omitempty"`
	Support    float64      `json:"support"`
	Resistance float64      `json:"resistance"`
}

// VolumeSnapshot is the settled state of the volume panel, with MA7
// already attached.
type VolumeSnapshot struct {
	Ticker string        `json:"ticker"`
	Days   int           `json:"days"`
	Points []VolumePoint `json:"points"`
}
