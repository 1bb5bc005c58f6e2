package digest

import (
	"testing"
)

const sampleDigest = "# 📊 Daily SPAC Alerts\n\n" +
	"- **AAPL** (2024-01-05) → Unusual volume spike\n" +
	"- **TSLA** (2024-01-05) → Price moved 12% on no news\n"

func TestExtract(t *testing.T) {
	records := Extract(sampleDigest)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Ticker != "AAPL" || records[0].TradeDate != "2024-01-05" || records[0].Details != "Unusual volume spike" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if records[1].Ticker != "TSLA" {
		t.Fatalf("unexpected second record %+v", records[1])
	}
}

func TestExtractSkipsNonMatchingLines(t *testing.T) {
	md := "# Heading\n" +
		"Some prose about the day.\n" +
		"- a bare list item\n" +
		"- [**AAPL**](link) → in categories: volume\n" +
		"**AAPL** (2024-01-05) → missing list marker\n"
	if records := Extract(md); len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestExtractDoublesQuotes(t *testing.T) {
	md := `- **AAPL** (2024-01-05) → Filed an "unusual" report`
	records := Extract(md)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Details != `Filed an ""unusual"" report` {
		t.Fatalf("quotes not doubled: %q", records[0].Details)
	}
}

func TestExtractEmptyDigest(t *testing.T) {
	if records := Extract(EmptyMarkdown); len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
	if records := Extract(""); len(records) != 0 {
		t.Fatalf("expected no records for empty input")
	}
}
