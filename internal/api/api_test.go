package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahorify/ahorify/internal/app/engagement"
	"github.com/ahorify/ahorify/internal/app/finance"
	"github.com/ahorify/ahorify/internal/infra/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	eng := engagement.NewService(db)
	fin := finance.NewService(db, eng)
	an := finance.NewAnalytics(fin)
	srv := NewServer(eng, fin, an, "test")
	srv.SetPreferences(db)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s: %v\nbody: %s", method, path, err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("body: %v", body)
	}
}

func TestRecordEngagementEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "POST", "/api/engagement?user_id=ana",
		`{"action":"dashboard_viewed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %v", rec.Code, body)
	}
	streak, ok := body["streak"].(map[string]interface{})
	if !ok || streak["transition"] != "start" {
		t.Errorf("streak: %v", body["streak"])
	}
	points := body["points"].(map[string]interface{})
	if points["total"].(float64) <= 0 {
		t.Errorf("points: %v", points)
	}
}

func TestRecordEngagement_UnknownActionIs400(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, _ := doJSON(t, h, "POST", "/api/engagement?user_id=ana", `{"action":"login"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestProgressEndpoint_DefaultSnapshot(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "GET", "/api/progress?user_id=nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if body["level"].(float64) != 0 {
		t.Errorf("level: %v", body["level"])
	}
	if body["next_level_points"].(float64) != 100 {
		t.Errorf("next level: %v", body["next_level_points"])
	}
}

func TestTransactionLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "POST", "/api/transactions?user_id=ana",
		`{"amount":"12.50","type":"expense","category":"🍔 Comida","description":"almuerzo"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: %d, body: %v", rec.Code, body)
	}
	tx := body["transaction"].(map[string]interface{})
	id, _ := tx["id"].(string)
	if id == "" {
		t.Fatal("expected transaction id")
	}
	if body["engagement"] == nil {
		t.Error("expected engagement result on the response")
	}

	rec, body = doJSON(t, h, "GET", "/api/transactions?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status: %d", rec.Code)
	}
	if txs := body["transactions"].([]interface{}); len(txs) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(txs))
	}

	rec, _ = doJSON(t, h, "DELETE", "/api/transactions/"+id+"?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: %d", rec.Code)
	}

	rec, _ = doJSON(t, h, "DELETE", "/api/transactions/"+id+"?user_id=ana", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status: %d", rec.Code)
	}
}

func TestTransaction_InvalidAmountIs400(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, _ := doJSON(t, h, "POST", "/api/transactions?user_id=ana",
		`{"amount":"-3","type":"expense","category":"🍔 Comida"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	doJSON(t, h, "POST", "/api/transactions?user_id=ana",
		`{"amount":"40","type":"expense","category":"🍔 Comida"}`)
	doJSON(t, h, "POST", "/api/transactions?user_id=ana",
		`{"amount":"100","type":"income","category":"💼 Ingresos"}`)

	rec, body := doJSON(t, h, "GET", "/api/transactions/summary?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	totals := body["totals"].(map[string]interface{})
	if totals["balance"] != "60" {
		t.Errorf("balance: %v", totals["balance"])
	}
	if _, ok := body["breakdown"].([]interface{}); !ok {
		t.Errorf("breakdown: %v", body["breakdown"])
	}
}

func TestHealthScoreEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "GET", "/api/analytics/health?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if _, ok := body["total_score"]; !ok {
		t.Errorf("body: %v", body)
	}
	if _, ok := body["grade"]; !ok {
		t.Errorf("body: %v", body)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	h := newTestServer(t).Handler()

	// Nothing stored yet: well-defined defaults, not a 404.
	rec, body := doJSON(t, h, "GET", "/api/preferences?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: %d", rec.Code)
	}
	if body["currency"] != "EUR" {
		t.Errorf("default currency: %v", body["currency"])
	}

	rec, _ = doJSON(t, h, "PUT", "/api/preferences?user_id=ana",
		`{"onboarding_complete":true,"primary_goal":"ahorrar","currency":"MXN"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status: %d", rec.Code)
	}

	rec, body = doJSON(t, h, "GET", "/api/preferences?user_id=ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: %d", rec.Code)
	}
	if body["currency"] != "MXN" || body["onboarding_complete"] != true {
		t.Errorf("stored prefs: %v", body)
	}
}

func TestMilestonesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := doJSON(t, h, "GET", "/api/milestones", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if ms := body["milestones"].([]interface{}); len(ms) != 5 {
		t.Errorf("expected 5 milestones, got %d", len(ms))
	}
}

func TestCORSOrigins(t *testing.T) {
	srv := newTestServer(t)
	srv.SetCORSOrigins([]string{"https://app.ahorify.dev"})
	h := srv.Handler()

	get := func(origin string) string {
		t.Helper()
		req := httptest.NewRequest("GET", "/health", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Header().Get("Access-Control-Allow-Origin")
	}

	if got := get("https://app.ahorify.dev"); got != "https://app.ahorify.dev" {
		t.Errorf("configured origin: got %q", got)
	}
	if got := get("https://evil.example"); got != "" {
		t.Errorf("unknown origin should get no CORS header, got %q", got)
	}

	// No configured list keeps the permissive default.
	open := newTestServer(t).Handler()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	open.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("default should allow any origin, got %q", got)
	}
}
