package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/sharelink"
	"github.com/tubby124/Deal-Analyzer/pkg/store"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	scenarios, err := store.New(afero.NewMemMapFs(), "scenarios")
	if err != nil {
		t.Fatalf("failed to create scenario store: %v", err)
	}
	return NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test", scenarios)
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/analyze", map[string]interface{}{
		"mode":           "owner",
		"market":         "saskatoon",
		"propertyType":   "detached",
		"price":          280000,
		"downPaymentPct": 0.20,
		"interestRate":   3.8,
		"currentRent":    1600,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Metrics.Mid.Verdict == "" {
		t.Fatal("expected a verdict in response")
	}
	if len(resp.Sensitivity) != 5 {
		t.Fatalf("expected 5 sensitivity rows, got %d", len(resp.Sensitivity))
	}
	if resp.ShareToken == "" {
		t.Fatal("expected a share token in response")
	}
	if resp.CSV == "" {
		t.Fatal("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleAnalyzeYAMLBody(t *testing.T) {
	handler := newTestHandler(t)

	body := strings.Join([]string{
		"mode: owner",
		"market: saskatoon",
		"price: 280000",
		"downPaymentPct: 0.20",
		"interestRate: 3.8",
	}, "\n")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Metrics.Mid.Inputs.Price != 280000 {
		t.Fatalf("expected YAML price to decode, got %f", resp.Metrics.Mid.Inputs.Price)
	}
}

func TestHandleAnalyzeWarnings(t *testing.T) {
	handler := newTestHandler(t)

	// A down payment of 20 reads as 2000%, which the validator flags.
	rr := postJSON(t, handler, "/api/analyze", map[string]interface{}{
		"market":         "saskatoon",
		"price":          280000,
		"downPaymentPct": 20,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("expected validation warnings in response")
	}
}

func TestHandleAnalyzeRejectsBadBody(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleAnalyzeRejectsGet(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleMliSelectSuccess(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/mliselect", map[string]interface{}{
		"market":              "saskatoon",
		"price":               1400000,
		"contractRate":        4.25,
		"termYears":           5,
		"affordabilityPoints": 50,
		"durationBonus":       true,
		"units": []map[string]interface{}{
			{"type": "2bed", "count": 6, "rent": 1400},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp mliResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.TotalPoints != 80 {
		t.Fatalf("expected 80 points, got %d", resp.Result.TotalPoints)
	}
	if !resp.Result.TierAchieved || resp.Result.Tier.Tier != 2 {
		t.Fatalf("expected tier 2, got %+v", resp.Result.Tier)
	}
	if resp.CSV == "" {
		t.Fatal("expected CSV data in response")
	}
}

func TestHandleListingExtract(t *testing.T) {
	handler := newTestHandler(t)

	text := "MLS Number: SK008012\nList Price: $339,900\nSaskatoon, SK S7J 2K5"
	rr := postJSON(t, handler, "/api/listing/extract", map[string]string{"text": text})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var extraction struct {
		Inputs analyzer.DealInputs `json:"inputs"`
		Found  []string            `json:"found"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &extraction); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if extraction.Inputs.Price != 339900 {
		t.Fatalf("expected extracted price 339900, got %f", extraction.Inputs.Price)
	}
	if extraction.Inputs.Market != "saskatoon" {
		t.Fatalf("expected saskatoon market, got %q", extraction.Inputs.Market)
	}
}

func TestHandleListingExtractPlainText(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/listing/extract",
		strings.NewReader("List Price: $250,000\nCalgary, AB T2N 1N4"))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"price":250000`) {
		t.Fatalf("expected extracted price in response: %s", rr.Body.String())
	}
}

func TestScenarioLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/scenarios", map[string]interface{}{
		"name":    "19 Barr Place",
		"address": "19 Barr Place, Saskatoon",
		"inputs": map[string]interface{}{
			"mode":   "owner",
			"market": "saskatoon",
			"price":  339900,
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var saved store.Scenario
	if err := json.Unmarshal(rr.Body.Bytes(), &saved); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected an assigned scenario ID")
	}
	if saved.Metrics.Verdict == "" {
		t.Fatal("expected server-side metrics on the saved scenario")
	}

	// List
	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 listing scenarios, got %d", rr.Code)
	}
	var listed []store.Scenario
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != saved.ID {
		t.Fatalf("expected the saved scenario in the list, got %+v", listed)
	}

	// Load
	req = httptest.NewRequest(http.MethodGet, "/api/scenarios/"+saved.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 loading scenario, got %d", rr.Code)
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/scenarios/"+saved.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 deleting scenario, got %d", rr.Code)
	}

	// Reload after delete
	req = httptest.NewRequest(http.MethodGet, "/api/scenarios/"+saved.ID, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rr.Code)
	}
}

func TestScenarioSaveRequiresName(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/scenarios", map[string]interface{}{
		"inputs": map[string]interface{}{"market": "saskatoon", "price": 280000},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a nameless scenario, got %d", rr.Code)
	}
}

func TestScenariosUnavailableWithoutStore(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without a store, got %d", rr.Code)
	}
}

func TestHandleShareRoundTrip(t *testing.T) {
	handler := newTestHandler(t)

	token, err := sharelink.Encode(analyzer.DealInputs{
		Mode:   analyzer.ModeOwner,
		Market: "saskatoon",
		Price:  315000,
	})
	if err != nil {
		t.Fatalf("failed to encode share token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/share/"+token, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Metrics.Mid.Inputs.Price != 315000 {
		t.Fatalf("expected the shared price to round-trip, got %f", resp.Metrics.Mid.Inputs.Price)
	}
}

func TestHandleShareRejectsGarbage(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/share/!!!!", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a garbage token, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Fatalf("expected version %q, got %q", "test", resp["version"])
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rr.Body.String())
	}
}

func TestIndexPageServed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Deal Analyzer") {
		t.Fatal("expected the index page in the response")
	}
}

func TestUploadSizeLimit(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 64, "test", nil)

	big := strings.Repeat("x", 1024)
	req := httptest.NewRequest(http.MethodPost, "/api/listing/extract", strings.NewReader(big))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
}
