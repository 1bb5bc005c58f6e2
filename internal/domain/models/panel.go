package models

// PanelKind identifies one independently-fetched dashboard panel.
type PanelKind string

const (
	PanelPrice     PanelKind = "price"
	PanelVolume    PanelKind = "volume"
	PanelAnomalies PanelKind = "anomalies"
	PanelFilings   PanelKind = "filings"
	PanelAlerts    PanelKind = "alerts"
)

// PanelStatus is the lifecycle of a panel's data slot. Absent gateway
// results settle as empty data, never as a distinct error status.
type PanelStatus string

const (
	StatusIdle    PanelStatus = "idle"
	StatusLoading PanelStatus = "loading"
	StatusSettled PanelStatus = "settled"
)

// Selection is the user-driven query state. At most one ticker is
// selected at a time.
type Selection struct {
	Ticker string    `json:"ticker,omitempty"`
	Range  DateRange `json:"range"`
}

// PanelUpdate is the event published whenever a panel slot transitions.
// It is a tagged union: Kind selects which payload field is populated,
// and consumers must dispatch on it exhaustively.
type PanelUpdate struct {
	Kind       PanelKind   `json:"kind"`
	Status     PanelStatus `json:"status"`
	Ticker     string      `json:"ticker,omitempty"`
	Generation uint64      `json:"generation"`

	Price     *PriceSnapshot     `json:"price,omitempty"`
	Volume    *VolumeSnapshot    `json:"volume,omitempty"`
	Anomalies []Anomaly          `json:"anomalies,omitempty"`
	Filings   []ClassifiedFiling `json:"filings,omitempty"`
	Alerts    *AlertsDigest      `json:"alerts,omitempty"`
}
