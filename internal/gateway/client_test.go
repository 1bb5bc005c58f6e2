package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SpacWatch/internal/service/ratelimit"
	"SpacWatch/pkg/cache"
	xlogger "SpacWatch/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestInvokeRequestShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"ticker":"AAPL","period":"1mo","interval":"1d","price":12.5,"prices":[{"close":12.5}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	snap, ok := c.GetStockPrice(context.Background(), "AAPL", "1mo", "1d")
	if !ok {
		t.Fatalf("expected result")
	}
	if gotPath != "/tools/get_stock_price" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	args, _ := gotBody["args"].(map[string]interface{})
	if args == nil {
		t.Fatalf("body missing args envelope: %v", gotBody)
	}
	if args["ticker"] != "AAPL" || args["period"] != "1mo" || args["interval"] != "1d" {
		t.Fatalf("unexpected args %v", args)
	}
	if snap.Latest != 12.5 || snap.Ticker != "AAPL" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestAbsentOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	if _, ok := c.DetectAnomalies(context.Background(), "AAPL"); ok {
		t.Fatalf("server error must read as absent")
	}
}

func TestAbsentOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tickers": not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	if _, ok := c.ListTickers(context.Background()); ok {
		t.Fatalf("undecodable body must read as absent")
	}
}

func TestAbsentOnUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", testLogger(t), WithTimeout(200*time.Millisecond))
	if _, ok := c.GetVolumeHistory(context.Background(), "AAPL", 10); ok {
		t.Fatalf("transport failure must read as absent")
	}
}

func TestListTickersCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"tickers":["AAPL","TSLA"]}`))
	}))
	defer srv.Close()

	mem := cache.NewMemoryCache()
	c := New(srv.URL, testLogger(t), WithCache(mem, time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		tickers, ok := c.ListTickers(context.Background())
		if !ok || len(tickers) != 2 {
			t.Fatalf("call %d: unexpected result %v %v", i, tickers, ok)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestFilingsArgs(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"ticker":"AAPL","filings":[{"form_type":"8-K"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t))
	filings, ok := c.GetFilings(context.Background(), "AAPL", []string{"8-K", "S-1"}, 5, true)
	if !ok || len(filings) != 1 {
		t.Fatalf("unexpected result %v %v", filings, ok)
	}
	args, _ := gotBody["args"].(map[string]interface{})
	if args["limit"] != float64(5) || args["summarize"] != true {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestRateLimitedCallIsAbsent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"ticker":"AAPL","anomalies":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger(t), WithRateLimit(ratelimit.New(1, 0)))
	if _, ok := c.DetectAnomalies(context.Background(), "AAPL"); !ok {
		t.Fatalf("first call should pass")
	}
	if _, ok := c.DetectAnomalies(context.Background(), "AAPL"); ok {
		t.Fatalf("second call should be limited")
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}
