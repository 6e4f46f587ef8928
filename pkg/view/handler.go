// Package view is the HTTP boundary around the visualization core. It
// holds the latest scenario and the two framework result slots, and
// serves the annotated graph and comparison series as JSON for a
// rendering collaborator, plus a small embedded HTML page. The core
// stays a pure function of the latest inputs; the handler only stores
// whatever it was last given, which gives "last write wins" for free
// when fetches resolve out of order.
package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridlens/gridlens/pkg/overlay"
	"github.com/gridlens/gridlens/pkg/reconcile"
	"github.com/gridlens/gridlens/pkg/result"
	"github.com/gridlens/gridlens/pkg/scenario"
	"github.com/gridlens/gridlens/pkg/topology"
)

//go:embed templates/index.html
var content embed.FS

// Slot names one of the two comparison positions.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
)

// Handler serves the viewer API.
type Handler struct {
	logger    *slog.Logger
	metrics   *Metrics
	registry  *prometheus.Registry
	templates *template.Template
	engine    *overlay.Engine

	mu     sync.RWMutex
	desc   *scenario.Description
	base   topology.Graph
	slots  map[Slot]*result.Payload
	active Slot
}

// NewHandler creates a viewer handler. An initial scenario may be nil;
// the graph endpoints then serve an empty graph until one is posted.
func NewHandler(desc *scenario.Description, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "view"))

	tmpl, err := template.ParseFS(content, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := &Handler{
		logger:    logger,
		metrics:   NewMetrics(),
		registry:  prometheus.NewRegistry(),
		templates: tmpl,
		engine:    overlay.New(logger),
		slots:     make(map[Slot]*result.Payload),
		active:    SlotA,
	}
	if err := h.metrics.Register(h.registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	if desc != nil {
		h.SetScenario(*desc)
	}
	return h, nil
}

// RegisterRoutes registers all viewer routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.withRequestID("index", h.handleIndex))
	mux.HandleFunc("/api/graph", h.withRequestID("graph", h.handleGraph))
	mux.HandleFunc("/api/comparison", h.withRequestID("comparison", h.handleComparison))
	mux.HandleFunc("/api/summary", h.withRequestID("summary", h.handleSummary))
	mux.HandleFunc("/api/scenario", h.withRequestID("scenario", h.handleScenario))
	mux.HandleFunc("/api/results/", h.withRequestID("results", h.handleResults))
	mux.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
}

// SetScenario replaces the scenario and rebuilds the base topology.
func (h *Handler) SetScenario(desc scenario.Description) {
	base := topology.Build(scenario.NewIndex(desc))

	h.mu.Lock()
	h.desc = &desc
	h.base = base
	h.mu.Unlock()

	h.metrics.graphBuilds.Inc()
	h.logger.Info("base topology rebuilt",
		slog.Int("nodes", len(base.Nodes)),
		slog.Int("edges", len(base.Edges)))
}

// SetResult stores the latest payload for a slot. A newer payload for
// the same slot supersedes any earlier one unconditionally.
func (h *Handler) SetResult(slot Slot, p *result.Payload) {
	h.mu.Lock()
	h.slots[slot] = p
	h.mu.Unlock()
}

// SetActiveSlot selects which slot's payload drives the overlay.
func (h *Handler) SetActiveSlot(slot Slot) {
	h.mu.Lock()
	h.active = slot
	h.mu.Unlock()
}

func (h *Handler) withRequestID(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		h.metrics.requestsTotal.WithLabelValues(route).Inc()
		h.logger.Debug("request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		next(w, r)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	h.mu.RLock()
	name := ""
	if h.desc != nil {
		name = h.desc.Name
	}
	nodes := len(h.base.Nodes)
	edges := len(h.base.Edges)
	h.mu.RUnlock()

	data := struct {
		ScenarioName string
		NodeCount    int
		EdgeCount    int
	}{name, nodes, edges}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("template render failed", slog.String("error", err.Error()))
	}
}

// handleGraph serves the annotated graph for the active slot. The
// overlay is recomputed from the base graph on every request; a missing
// or failed payload yields the baseline graph.
func (h *Handler) handleGraph(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	base := h.base
	p := h.slots[h.active]
	h.mu.RUnlock()

	annotated := h.engine.Apply(base, p)

	state := "baseline"
	if p.Usable() {
		state = "annotated"
	}
	h.metrics.overlayRecomputes.WithLabelValues(state).Inc()

	writeJSON(w, http.StatusOK, struct {
		State        string         `json:"state"`
		ErrorMessage string         `json:"error_message,omitempty"`
		Graph        topology.Graph `json:"graph"`
	}{state, errorMessage(p), annotated})
}

func (h *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	family := r.URL.Query().Get("family")
	if !reconcile.ValidFamily(family) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown metric family %q", family))
		return
	}

	h.mu.RLock()
	a, b := h.slots[SlotA], h.slots[SlotB]
	h.mu.RUnlock()

	writeJSON(w, http.StatusOK, struct {
		Family string          `json:"family"`
		Rows   []reconcile.Row `json:"rows"`
	}{family, reconcile.Compare(reconcile.Family(family), a, b)})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	a, b := h.slots[SlotA], h.slots[SlotB]
	h.mu.RUnlock()

	writeJSON(w, http.StatusOK, struct {
		Rows []reconcile.Row `json:"rows"`
	}{reconcile.SystemSummary(a, b)})
}

func (h *Handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var desc scenario.Description
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scenario: %v", err))
		return
	}
	if err := desc.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scenario: %v", err))
		return
	}

	h.SetScenario(desc)
	w.WriteHeader(http.StatusNoContent)
}

// handleResults accepts POST /api/results/{a|b}?framework=... with a
// result payload body. The framework parameter is a fallback tag for
// payloads that omit framework_type; the payload's own value wins.
func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	slot := Slot(r.URL.Path[len("/api/results/"):])
	if slot != SlotA && slot != SlotB {
		writeError(w, http.StatusNotFound, "unknown result slot (use a or b)")
		return
	}

	var queryFramework result.Framework
	if fw := r.URL.Query().Get("framework"); fw != "" {
		parsed, err := result.ParseFramework(fw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		queryFramework = parsed
	}

	var p result.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid result payload: %v", err))
		return
	}
	if p.FrameworkType == "" {
		p.FrameworkType = queryFramework
	}

	h.SetResult(slot, &p)
	h.logger.Info("result slot updated",
		slog.String("slot", string(slot)),
		slog.String("status", p.Status),
		slog.String("framework", string(p.FrameworkType)))
	w.WriteHeader(http.StatusNoContent)
}

func errorMessage(p *result.Payload) string {
	if p == nil {
		return ""
	}
	return p.ErrorMessage
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{msg})
}
