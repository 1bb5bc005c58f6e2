package classify

import (
	"testing"

	"SpacWatch/internal/domain/models"
)

func TestFilingWarning424B3(t *testing.T) {
	f := models.Filing{FormType: "424B3", Summary: "Prospectus supplement"}
	if got := Filing(f); got != models.RiskWarning {
		t.Fatalf("expected warning, got %s", got)
	}
}

func TestFilingWarningOfferingShares(t *testing.T) {
	f := models.Filing{FormType: "S-1", Summary: "Registered offering of common shares"}
	if got := Filing(f); got != models.RiskWarning {
		t.Fatalf("expected warning, got %s", got)
	}
}

func TestFilingOfferingAloneIsNotWarning(t *testing.T) {
	f := models.Filing{FormType: "8-K", Summary: "Completed the offering process"}
	if got := Filing(f); got != models.RiskNeutral {
		t.Fatalf("offering without shares should be neutral, got %s", got)
	}
}

func TestFilingWarningWarrants(t *testing.T) {
	f := models.Filing{FormType: "8-K", Summary: "Warrants exercisable beginning next month"}
	if got := Filing(f); got != models.RiskWarning {
		t.Fatalf("expected warning, got %s", got)
	}
	f = models.Filing{FormType: "S-8", Summary: "Shares issuable upon exercise of options"}
	if got := Filing(f); got != models.RiskWarning {
		t.Fatalf("expected warning, got %s", got)
	}
}

func TestFilingPositive(t *testing.T) {
	for _, summary := range []string{
		"Received regulatory approval for merger",
		"Announced strategic partnership",
		"Reported strong revenue growth",
		"First quarterly profit",
		"Trial produced positive results",
	} {
		f := models.Filing{FormType: "8-K", Summary: summary}
		if got := Filing(f); got != models.RiskPositive {
			t.Fatalf("%q: expected positive, got %s", summary, got)
		}
	}
}

func TestFilingWarningBeatsPositive(t *testing.T) {
	f := models.Filing{FormType: "424B3", Summary: "Approval of share issuance"}
	if got := Filing(f); got != models.RiskWarning {
		t.Fatalf("warning triggers must win, got %s", got)
	}
}

func TestFilingCaseFolds(t *testing.T) {
	f := models.Filing{FormType: "8-k", Summary: "ANNOUNCED PARTNERSHIP"}
	if got := Filing(f); got != models.RiskPositive {
		t.Fatalf("expected positive, got %s", got)
	}
}

func TestFilingNeutral(t *testing.T) {
	f := models.Filing{FormType: "4", Summary: "Statement of changes in beneficial ownership"}
	if got := Filing(f); got != models.RiskNeutral {
		t.Fatalf("expected neutral, got %s", got)
	}
}

func TestFilingsPreservesOrder(t *testing.T) {
	fs := []models.Filing{
		{FormType: "424B3"},
		{FormType: "8-K", Summary: "profit"},
		{FormType: "4"},
	}
	out := Filings(fs)
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	want := []models.RiskLabel{models.RiskWarning, models.RiskPositive, models.RiskNeutral}
	for i, w := range want {
		if out[i].Risk != w {
			t.Fatalf("entry %d: expected %s, got %s", i, w, out[i].Risk)
		}
	}
}
