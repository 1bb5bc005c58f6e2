package models

// RiskLabel is the heuristic risk classification of a filing. It is a
// best-effort reading of the filing text, not a statement of financial
// materiality.
type RiskLabel string

const (
	RiskWarning  RiskLabel = "Warning"
	RiskPositive RiskLabel = "Positive"
	RiskNeutral  RiskLabel = "Neutral"
)

// Filing is a regulatory filing as returned by the gateway. Accession
// uniquely identifies the filing.
type Filing struct {
	Date      string `json:"date"`
	Accession string `json:"accession"`
	URL       string `json:"url"`
	FormType  string `json:"formType,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// ClassifiedFiling pairs a filing with its derived risk label. The label
// is computed at settle time and never persisted.
type ClassifiedFiling struct {
	Filing
	Risk RiskLabel `json:"risk"`
}
