package repository

// Period represents price history lookback windows accepted by the gateway.
type Period string

const (
	P1d  Period = "1d"
	P5d  Period = "5d"
	P30d Period = "30d"
	P1mo Period = "1mo"
	P3mo Period = "3mo"
	P6mo Period = "6mo"
	P1y  Period = "1y"
)

// IsValidPeriod returns true if p is a supported lookback period.
func IsValidPeriod(p Period) bool {
	switch p {
	case P1d, P5d, P30d, P1mo, P3mo, P6mo, P1y:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback period.
func DefaultPeriod() Period { return P1mo }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// NormalizeInterval converts raw string to a supported candle interval.
func NormalizeInterval(s string) string {
	switch s {
	case "1d", "1h", "30m":
		return s
	default:
		return "1d"
	}
}
