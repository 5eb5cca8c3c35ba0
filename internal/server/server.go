// Package server exposes the deal analysis engines over HTTP alongside the
// embedded web UI.
package server

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/internal/config"
	"github.com/tubby124/Deal-Analyzer/internal/mliselect"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/listing"
	"github.com/tubby124/Deal-Analyzer/pkg/output"
	"github.com/tubby124/Deal-Analyzer/pkg/sharelink"
	"github.com/tubby124/Deal-Analyzer/pkg/store"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	scenarios     *store.Store
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// analysis API. The scenario store may be nil, in which case the scenario
// endpoints respond with 503.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, scenarios *store.Store) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, scenarios: scenarios}

	mux := http.NewServeMux()

	// Deal analysis endpoint
	mux.HandleFunc("/api/analyze", h.handleAnalyze)

	// MLI Select underwriting endpoint
	mux.HandleFunc("/api/mliselect", h.handleMliSelect)

	// Listing text extraction endpoint
	mux.HandleFunc("/api/listing/extract", h.handleListingExtract)

	// Saved scenario endpoints
	mux.HandleFunc("/api/scenarios", h.handleScenarios)
	mux.HandleFunc("/api/scenarios/", h.handleScenarioByID)

	// Share link resolution endpoint
	mux.HandleFunc("/api/share/", h.handleShare)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Health endpoint
	mux.HandleFunc("/healthz", h.handleHealth)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type analyzeResponse struct {
	Metrics     analyzer.ScenarioMetrics  `json:"metrics"`
	Sensitivity []analyzer.SensitivityRow `json:"sensitivity"`
	ShareToken  string                    `json:"shareToken,omitempty"`
	CSV         string                    `json:"csv"`
	Warnings    []string                  `json:"warnings,omitempty"`
	Duration    string                    `json:"duration"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var inputs analyzer.DealInputs
	if !h.decodeBody(w, r, &inputs, "server.handleAnalyze") {
		return
	}

	h.respondAnalysis(w, inputs, start, "server.handleAnalyze")
}

func (h *handler) respondAnalysis(w http.ResponseWriter, inputs analyzer.DealInputs, start time.Time, op string) {
	cfg := config.Configuration{Deal: &inputs}
	warnings := cfg.ValidateConfiguration()

	metrics := analyzer.AnalyzeScenarios(inputs)
	sensitivity := analyzer.SensitivityTable(inputs)

	token, err := sharelink.Encode(metrics.Mid.Inputs)
	if err != nil {
		h.logger.Warn("failed to encode share token",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	var csv bytes.Buffer
	output.CsvFormat(&csv, metrics)

	elapsed := time.Since(start)
	h.logger.Info("deal analyzed",
		zap.String("op", op),
		zap.String("market", metrics.Mid.Inputs.Market),
		zap.Int("score", metrics.Mid.Score),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		Metrics:     metrics,
		Sensitivity: sensitivity,
		ShareToken:  token,
		CSV:         csv.String(),
		Warnings:    warnings,
		Duration:    elapsed.String(),
	})
}

type mliResponse struct {
	Result   mliselect.Result `json:"result"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

func (h *handler) handleMliSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var inputs mliselect.Inputs
	if !h.decodeBody(w, r, &inputs, "server.handleMliSelect") {
		return
	}

	cfg := config.Configuration{MliSelect: &inputs}
	warnings := cfg.ValidateConfiguration()

	result := mliselect.Underwrite(inputs)

	var csv bytes.Buffer
	output.CsvMliFormat(&csv, result)

	elapsed := time.Since(start)
	h.logger.Info("MLI Select deal underwritten",
		zap.String("op", "server.handleMliSelect"),
		zap.Int("points", result.TotalPoints),
		zap.Bool("tierAchieved", result.TierAchieved),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, mliResponse{
		Result:   result,
		CSV:      csv.String(),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

type extractRequest struct {
	Text string `json:"text"`
}

func (h *handler) handleListingExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	// Raw listing text is accepted directly; a JSON body wraps it in a
	// text field.
	var text string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleListingExtract")
			return
		}
		text = req.Text
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleListingExtract")
			return
		}
		text = string(body)
	}

	extraction := listing.Extract(text)

	h.logger.Info("listing text extracted",
		zap.String("op", "server.handleListingExtract"),
		zap.Int("found", len(extraction.Found)),
		zap.Int("missing", len(extraction.Missing)),
	)

	h.writeJSON(w, http.StatusOK, extraction)
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if h.scenarios == nil {
		h.respondError(w, http.StatusServiceUnavailable, "scenario storage is not configured", "server.handleScenarios")
		return
	}

	switch r.Method {
	case http.MethodGet:
		scenarios, err := h.scenarios.List()
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list scenarios: %v", err), "server.handleScenarios")
			return
		}
		h.writeJSON(w, http.StatusOK, scenarios)
	case http.MethodPost:
		var sc store.Scenario
		if !h.decodeBody(w, r, &sc, "server.handleScenarios") {
			return
		}

		// The stored metrics snapshot is always recomputed server-side.
		sc.Metrics = analyzer.Analyze(sc.Inputs)
		sc.Inputs = sc.Metrics.Inputs

		saved, err := h.scenarios.Save(sc)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to save scenario: %v", err), "server.handleScenarios")
			return
		}

		h.logger.Info("scenario saved",
			zap.String("op", "server.handleScenarios"),
			zap.String("id", saved.ID),
			zap.String("name", saved.Name),
		)
		h.writeJSON(w, http.StatusOK, saved)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleScenarioByID(w http.ResponseWriter, r *http.Request) {
	if h.scenarios == nil {
		h.respondError(w, http.StatusServiceUnavailable, "scenario storage is not configured", "server.handleScenarioByID")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	if id == "" || strings.Contains(id, "/") {
		h.respondError(w, http.StatusNotFound, "scenario not found", "server.handleScenarioByID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		sc, err := h.scenarios.Load(id)
		if err != nil {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("failed to load scenario: %v", err), "server.handleScenarioByID")
			return
		}
		h.writeJSON(w, http.StatusOK, sc)
	case http.MethodDelete:
		if err := h.scenarios.Delete(id); err != nil {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("failed to delete scenario: %v", err), "server.handleScenarioByID")
			return
		}
		h.logger.Info("scenario deleted",
			zap.String("op", "server.handleScenarioByID"),
			zap.String("id", id),
		)
		h.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/api/share/")
	inputs, err := sharelink.Decode(token)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid share token: %v", err), "server.handleShare")
		return
	}

	h.respondAnalysis(w, inputs, time.Now(), "server.handleShare")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a JSON or YAML request body into dst, enforcing the
// upload size limit. It writes the error response itself and reports
// whether decoding succeeded.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "yaml") || strings.Contains(contentType, "yml") {
		if err := yaml.Unmarshal(body, dst); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return false
		}
		return true
	}

	if err := json.Unmarshal(body, dst); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
