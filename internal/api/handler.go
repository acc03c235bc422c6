package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chronostack/chronostack/internal/chronology"
	"github.com/chronostack/chronostack/internal/config"
	"github.com/chronostack/chronostack/internal/dispatch"
	"github.com/chronostack/chronostack/internal/metrics"
	"github.com/chronostack/chronostack/internal/queue"
	"github.com/chronostack/chronostack/internal/store"
)

// Deliverer sends a finished result to the collector.
// Satisfied by *dispatch.Dispatcher; abstracted for tests.
type Deliverer interface {
	Deliver(ctx context.Context, res dispatch.Result) error
}

// Handler is the HTTP handler for all service endpoints.
type Handler struct {
	cfg       config.CalcConfig
	fallback  *chronology.Fallback
	deliverer Deliverer
	records   *store.Store
	queue     *queue.Queue
	metrics   *metrics.Metrics
	mux       *http.ServeMux

	// sleep implements the configured processing delay; injectable so
	// tests never wait on the wall clock.
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Handler wired to its collaborators and registers all routes.
func New(cfg config.CalcConfig, fb *chronology.Fallback, d Deliverer, st *store.Store, q *queue.Queue, m *metrics.Metrics) http.Handler {
	h := &Handler{
		cfg:       cfg,
		fallback:  fb,
		deliverer: d,
		records:   st,
		queue:     q,
		metrics:   m,
		mux:       http.NewServeMux(),
		sleep:     defaultSleep,
	}

	h.mux.HandleFunc("/", h.root)
	h.mux.HandleFunc("/health", h.health)
	h.mux.HandleFunc("/calculate-chrono", h.calculateSync)
	h.mux.HandleFunc("/api/chrono/calculate", h.calculateAsync)
	h.mux.HandleFunc("/api/chrono/calculations", h.listRecords)
	h.mux.HandleFunc("/api/chrono/calculations/", h.getRecord) // subtree — extracts {id}
	h.mux.Handle("/metrics", m.Handler())

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// calculateSync is POST /calculate-chrono — the synchronous front end.
// The result is computed, recorded, and returned to the caller even when
// delivery to the collector fails; a delivery failure after a successful
// computation is logged, never propagated.
func (h *Handler) calculateSync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndAuthorize(w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(req.TextForAnalysis) == "" {
		slog.Warn("api: empty text, skipping calculation", "request_id", req.ResearchRequestID)
		h.metrics.CalculationsTotal.WithLabelValues(store.StatusSkipped).Inc()
		jsonResp(w, http.StatusOK, CalcResponse{Status: store.StatusSkipped, Error: "no text"})
		return
	}

	slog.Info("api: starting synchronous calculation",
		"request_id", req.ResearchRequestID, "text_len", len(req.TextForAnalysis))

	start := time.Now()
	if h.cfg.ProcessingDelay > 0 {
		h.sleep(r.Context(), h.cfg.ProcessingDelay)
	}

	year, matched := chronology.Estimate(req.TextForAnalysis)
	if matched == 0 {
		h.metrics.FallbacksTotal.Inc()
	}
	year, matched = h.fallback.Apply(year, matched)

	rec := store.Record{
		RequestID:     req.ResearchRequestID,
		Purpose:       req.Purpose,
		FromYear:      year,
		ToYear:        year + chronology.RangeSpan,
		MatchedLayers: matched,
		Status:        store.StatusSuccess,
	}
	h.records.Put(rec)

	err := h.deliverer.Deliver(r.Context(), dispatch.Result{
		RequestID:     rec.RequestID,
		FromYear:      rec.FromYear,
		ToYear:        rec.ToYear,
		MatchedLayers: rec.MatchedLayers,
	})
	if err != nil {
		// The computation already succeeded; the caller still gets it.
		h.metrics.DispatchesTotal.WithLabelValues("failed").Inc()
		slog.Error("api: collector delivery failed, returning result anyway",
			"request_id", rec.RequestID, "err", err)
	} else {
		h.metrics.DispatchesTotal.WithLabelValues("delivered").Inc()
	}

	h.metrics.CalculationsTotal.WithLabelValues(store.StatusSuccess).Inc()
	h.metrics.EstimatedYears.WithLabelValues(strconv.Itoa(year)).Inc()
	h.metrics.CalcDuration.Observe(time.Since(start).Seconds())

	jsonResp(w, http.StatusOK, CalcResponse{
		Status:        store.StatusSuccess,
		Year:          year,
		MatchedLayers: matched,
	})
}

// calculateAsync is POST /api/chrono/calculate — the queued front end.
func (h *Handler) calculateAsync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndAuthorize(w, r)
	if !ok {
		return
	}

	if strings.TrimSpace(req.TextForAnalysis) == "" {
		slog.Warn("api: empty text, rejecting async request", "request_id", req.ResearchRequestID)
		h.metrics.CalculationsTotal.WithLabelValues(store.StatusSkipped).Inc()
		jsonResp(w, http.StatusBadRequest, CalcResponse{Status: store.StatusSkipped, Error: "no text"})
		return
	}

	taskID, err := h.queue.Enqueue(queue.Job{
		RequestID: req.ResearchRequestID,
		Text:      req.TextForAnalysis,
		Purpose:   req.Purpose,
	})
	if err != nil {
		slog.Error("api: enqueue failed", "request_id", req.ResearchRequestID, "err", err)
		jsonErr(w, http.StatusServiceUnavailable, "calculation queue is full")
		return
	}

	jsonResp(w, http.StatusAccepted, AcceptedResponse{
		Status:            "processing",
		ResearchRequestID: req.ResearchRequestID,
		TaskID:            taskID,
	})
}

// listRecords returns GET /api/chrono/calculations — all live records.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jsonResp(w, http.StatusOK, BuildRecords(h.records))
}

// getRecord returns GET /api/chrono/calculations/{id} — a single record.
func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/chrono/calculations/")
	if idStr == "" {
		h.listRecords(w, r)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "request id must be an integer")
		return
	}

	e, ok := h.records.Get(id)
	if !ok || time.Since(e.UpdatedAt) > h.records.TTL() {
		jsonErr(w, http.StatusNotFound, "calculation not found")
		return
	}
	jsonResp(w, http.StatusOK, toRecordResponse(e))
}

// health returns GET /health — collector URL and a truncated auth token.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		MainService: h.cfg.CollectorURL,
		Token:       truncateToken(h.cfg.Auth.Token()),
	})
}

// root returns GET / — a service banner. Unknown paths fall through here
// because "/" is a subtree pattern, so anything else is a 404.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}
	jsonResp(w, http.StatusOK, RootResponse{
		Message: "chronocalc ready",
		Port:    h.cfg.HTTPPort,
	})
}

// --- helpers ----------------------------------------------------------------

// decodeAndAuthorize parses the request body and checks the auth token.
// On failure it writes the error response and returns ok=false.
func (h *Handler) decodeAndAuthorize(w http.ResponseWriter, r *http.Request) (CalcRequest, bool) {
	var req CalcRequest
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.AuthToken != h.cfg.Auth.Token() {
		slog.Warn("api: invalid auth token", "request_id", req.ResearchRequestID)
		jsonErr(w, http.StatusForbidden, "Invalid auth token")
		return req, false
	}
	return req, true
}

// BuildRecords returns the live calculation records in their JSON form.
// Shared with the WebSocket hub so both surfaces serve the same shape.
func BuildRecords(st *store.Store) []RecordResponse {
	entries := st.List()
	out := make([]RecordResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRecordResponse(e))
	}
	return out
}

func toRecordResponse(e *store.Entry) RecordResponse {
	rec := e.Record
	return RecordResponse{
		ResearchRequestID: rec.RequestID,
		Purpose:           rec.Purpose,
		FromYear:          rec.FromYear,
		ToYear:            rec.ToYear,
		MatchedLayers:     rec.MatchedLayers,
		Status:            rec.Status,
		Error:             rec.Error,
		UpdatedAt:         e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// truncateToken keeps the first four characters of the token for display.
func truncateToken(token string) string {
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return token + "..."
}

func defaultSleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
