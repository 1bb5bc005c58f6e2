package digest

import (
	"testing"

	"SpacWatch/internal/domain/models"
)

func TestCSV(t *testing.T) {
	records := []models.AlertRecord{
		{Ticker: "AAPL", TradeDate: "2024-01-05", Details: "Unusual volume spike"},
	}
	got := CSV(records)
	want := "Ticker,Trade Date,Details\nAAPL,2024-01-05,\"Unusual volume spike\""
	if got != want {
		t.Fatalf("unexpected csv:\n%q\nwant\n%q", got, want)
	}
}

func TestCSVEmptyHasHeaderOnly(t *testing.T) {
	if got := CSV(nil); got != "Ticker,Trade Date,Details" {
		t.Fatalf("unexpected csv %q", got)
	}
}

func TestCSVNoTrailingNewline(t *testing.T) {
	records := []models.AlertRecord{
		{Ticker: "A", TradeDate: "2024-01-01", Details: "x"},
		{Ticker: "B", TradeDate: "2024-01-02", Details: "y"},
	}
	got := CSV(records)
	if got[len(got)-1] == '\n' {
		t.Fatalf("csv must not end with newline")
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if got := Markdown(nil); got != EmptyMarkdown {
		t.Fatalf("unexpected markdown %q", got)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	records := []models.AlertRecord{
		{Ticker: "AAPL", TradeDate: "2024-01-05", Details: "Unusual volume spike"},
		{Ticker: "TSLA", TradeDate: "2024-01-05", Details: "Price moved 12% on no news"},
	}
	md := Markdown(records)
	back := Extract(md)
	if len(back) != len(records) {
		t.Fatalf("expected %d records back, got %d", len(records), len(back))
	}
	for i := range records {
		if back[i] != records[i] {
			t.Fatalf("record %d changed: %+v vs %+v", i, back[i], records[i])
		}
	}
}
