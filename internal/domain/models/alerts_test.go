package models

import "testing"

func TestDateRangeNormalizeSwapsReversedBounds(t *testing.T) {
	dr := DateRange{Start: "2024-03-01", End: "2024-01-01"}.Normalize()
	if dr.Start != "2024-01-01" || dr.End != "2024-03-01" {
		t.Fatalf("bounds not swapped: %+v", dr)
	}
}

func TestDateRangeNormalizeKeepsOrderedBounds(t *testing.T) {
	dr := DateRange{Start: "2024-01-01", End: "2024-03-01"}.Normalize()
	if dr.Start != "2024-01-01" || dr.End != "2024-03-01" {
		t.Fatalf("ordered bounds changed: %+v", dr)
	}
}

func TestDateRangeNormalizeLeavesPartialRanges(t *testing.T) {
	dr := DateRange{End: "2024-03-01"}.Normalize()
	if dr.Start != "" || dr.End != "2024-03-01" {
		t.Fatalf("partial range changed: %+v", dr)
	}
}
