package usecase

import (
	"testing"
)

func TestRunPanelReturnsResult(t *testing.T) {
	got := RunPanel(nil, nil, "price", -1, func() int { return 42 })
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestRunPanelRecoversToFallback(t *testing.T) {
	rec := newFakeRecorder()
	got := RunPanel(nil, rec, "volume", []string{"fallback"}, func() []string {
		panic("bad index")
	})
	if len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.faults) != 1 || rec.faults[0] != "volume" {
		t.Fatalf("fault not recorded: %v", rec.faults)
	}
}

func TestRunPanelNilMetrics(t *testing.T) {
	got := RunPanel[int](nil, nil, "filings", 0, func() int { panic("boom") })
	if got != 0 {
		t.Fatalf("expected zero fallback, got %d", got)
	}
}
