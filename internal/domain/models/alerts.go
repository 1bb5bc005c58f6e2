package models

import "SpacWatch/pkg/util"

// AlertRecord is one structured alert extracted from a digest line of
// the form `- **TICKER** (DATE) → details`. Details carries literal
// double quotes doubled so rows embed safely in delimited exports.
type AlertRecord struct {
	Ticker    string `json:"ticker"`
	TradeDate string `json:"trade_date"`
	Details   string `json:"details"`
}

// AlertsDigest is the rendered cross-ticker alerts document for a date,
// plus the records recovered from it.
type AlertsDigest struct {
	Date     string        `json:"date"`
	Count    int           `json:"count"`
	Markdown string        `json:"markdown"`
	Records  []AlertRecord `json:"records,omitempty"`
}

// DateRange bounds the alerts digest query. Empty fields mean unbounded.
type DateRange struct {
	Start string `json:"start_date,omitempty"`
	End   string `json:"end_date,omitempty"`
}

// Normalize orders the bounds chronologically. A reversed range is
// swapped rather than rejected; unparseable bounds are left as-is.
func (dr DateRange) Normalize() DateRange {
	start, okS := util.ParseDay(dr.Start)
	end, okE := util.ParseDay(dr.End)
	if okS && okE && start.After(end) {
		dr.Start, dr.End = dr.End, dr.Start
	}
	return dr
}
