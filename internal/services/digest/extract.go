// Package digest recovers structured alert records from the alerts
// markdown and renders them back out for export.
//
// Extraction is deliberately lossy: only list lines matching the fixed
// `**TICKER** (DATE) → details` pattern yield records, everything else
// (headings, prose) is dropped. This is a bit-exact contract with the
// digest producer, not a markdown grammar.
package digest

import (
	"regexp"
	"strings"

	"SpacWatch/internal/domain/models"
)

const listMarker = "- "

var alertLine = regexp.MustCompile(`\*\*(.*?)\*\* \((.*?)\) → (.*)`)

// Extract parses the digest markdown into alert records. Literal double
// quotes inside details are doubled so records embed safely in CSV rows.
// Non-matching lines are skipped silently.
func Extract(markdown string) []models.AlertRecord {
	var records []models.AlertRecord
	for _, line := range strings.Split(markdown, "\n") {
		if !strings.HasPrefix(line, listMarker) {
			continue
		}
		m := alertLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, models.AlertRecord{
			Ticker:    m[1],
			TradeDate: m[2],
			Details:   strings.ReplaceAll(m[3], `"`, `""`),
		})
	}
	return records
}
