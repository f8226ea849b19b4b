package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
	"github.com/dgnsrekt/gex-condor/internal/gex"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := gex.NewStore(zap.NewNop())
	store.Put(&gex.Snapshot{
		Symbol: "SPX",
		Spot:   6958.5,
		Points: []gex.ExposurePoint{
			{Strike: 7000, Gex: 54_300_000},
			{Strike: 6900, Gex: -28_150_000},
		},
	})
	// A snapshot with no support side, to exercise 422.
	store.Put(&gex.Snapshot{
		Symbol: "NDX",
		Spot:   20000,
		Points: []gex.ExposurePoint{
			{Strike: 20100, Gex: 10e6},
			{Strike: 20200, Gex: 5e6},
		},
	})

	srv := NewServer(store, analysis.NewSelector(nil, nil, nil),
		analysis.DefaultConfig(analysis.Conservative), time.Minute, zap.NewNop())
	srv.now = func() time.Time {
		return time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	}
	return NewRouter(srv, zap.NewNop())
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, newTestRouter(t), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/spx")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var rec analysis.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if rec.ShortCall != 6995 || rec.ShortPut != 6920 {
		t.Errorf("strikes: got %v/%v, want 6995/6920", rec.ShortCall, rec.ShortPut)
	}
}

func TestRecommendQueryOverrides(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/SPX?risk=moderate&wing=25")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var rec analysis.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if rec.RiskProfile != analysis.Moderate || rec.WingWidth != 25 {
		t.Errorf("overrides: got %s/%d", rec.RiskProfile, rec.WingWidth)
	}
	if rec.LongCall-rec.ShortCall != 25 {
		t.Errorf("wing not applied: %v", rec.LongCall-rec.ShortCall)
	}
}

func TestRecommendUnknownTicker(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/RUT")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}

func TestRecommendBadRisk(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/SPX?risk=reckless")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestRecommendBadWing(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/SPX?wing=-5")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestRecommendInsufficientData(t *testing.T) {
	w := get(t, newTestRouter(t), "/recommend/NDX")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "insufficient") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestSymbols(t *testing.T) {
	w := get(t, newTestRouter(t), "/symbols")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var resp map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp["symbols"]) != 2 || resp["symbols"][0] != "NDX" {
		t.Errorf("symbols: got %v", resp["symbols"])
	}
}
