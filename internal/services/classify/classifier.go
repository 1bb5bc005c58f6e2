// Package classify labels regulatory filings with a coarse risk signal.
//
// The classification is a deterministic keyword heuristic over the
// filing text, not a judgment of financial materiality. User-facing
// surfaces should present it as best-effort.
package classify

import (
	"strings"

	"SpacWatch/internal/domain/models"
)

// Filing classifies a filing from the case-folded concatenation of its
// form type and summary. Evaluation order matters: Warning triggers are
// checked first, then Positive, else Neutral. First match wins, so a
// text holding both a dilution phrase and a positive phrase is a Warning.
func Filing(f models.Filing) models.RiskLabel {
	text := strings.ToLower(f.FormType + " " + f.Summary)

	// Dilution risk: 424B3 prospectuses, share offerings, exercisable warrants.
	if strings.Contains(text, "424b3") ||
		(strings.Contains(text, "offering") && strings.Contains(text, "shares")) ||
		strings.Contains(text, "issuable upon exercise") ||
		strings.Contains(text, "warrants exercisable") {
		return models.RiskWarning
	}

	if strings.Contains(text, "approval") ||
		strings.Contains(text, "partnership") ||
		strings.Contains(text, "revenue growth") ||
		strings.Contains(text, "profit") ||
		strings.Contains(text, "positive results") {
		return models.RiskPositive
	}

	return models.RiskNeutral
}

// Filings labels each filing in order.
func Filings(fs []models.Filing) []models.ClassifiedFiling {
	out := make([]models.ClassifiedFiling, 0, len(fs))
	for _, f := range fs {
		out = append(out, models.ClassifiedFiling{Filing: f, Risk: Filing(f)})
	}
	return out
}
