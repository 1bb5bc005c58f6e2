package digest

import (
	"fmt"
	"strings"

	"SpacWatch/internal/domain/models"
)

const (
	csvHeader     = "Ticker,Trade Date,Details"
	digestHeading = "# 📊 Daily SPAC Alerts"

	// EmptyMarkdown is the digest body when no anomalies were found.
	EmptyMarkdown = digestHeading + "\n\n✅ No anomalies today."
)

// CSV renders records as delimited rows under a fixed header. Details are
// already quote-doubled by Extract, so values are only wrapped in quotes
// here. No trailing newline.
func CSV(records []models.AlertRecord) string {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, csvHeader)
	for _, r := range records {
		rows = append(rows, fmt.Sprintf(`%s,%s,"%s"`, r.Ticker, r.TradeDate, r.Details))
	}
	return strings.Join(rows, "\n")
}

// Markdown renders records back into digest form, emitting exactly the
// list-line pattern Extract matches, so re-extraction recovers every
// rendered record. Prose outside list lines is not reconstructed.
func Markdown(records []models.AlertRecord) string {
	if len(records) == 0 {
		return EmptyMarkdown
	}
	var b strings.Builder
	b.WriteString(digestHeading + "\n\n")
	for _, r := range records {
		fmt.Fprintf(&b, "- **%s** (%s) → %s\n", r.Ticker, r.TradeDate, r.Details)
	}
	return b.String()
}
