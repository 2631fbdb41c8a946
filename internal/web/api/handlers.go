package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/CypherHippie/HeaderHunter/internal/analyzer"
	"github.com/CypherHippie/HeaderHunter/internal/output"
	"github.com/CypherHippie/HeaderHunter/internal/rules"
	"github.com/CypherHippie/HeaderHunter/internal/web/jobs"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/go-chi/chi/v5"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager    *jobs.Manager
	Aggregator *analyzer.Aggregator
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager, aggregator *analyzer.Aggregator) *Handlers {
	return &Handlers{Manager: manager, Aggregator: aggregator}
}

// ListRules handles GET /api/v1/rules.
func (h *Handlers) ListRules(w http.ResponseWriter, r *http.Request) {
	table := h.Aggregator.Evaluator().Table()
	writeJSON(w, http.StatusOK, struct {
		Rules     []rules.HeaderRule `json:"rules"`
		Whitelist []string           `json:"whitelist"`
	}{
		Rules:     table.Rules(),
		Whitelist: table.Whitelist(),
	})
}

// Analyze handles POST /api/v1/analyze. It scores a header set supplied
// by the caller without any network access.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	findings := h.Aggregator.ScanOne(types.HeaderSetFromMap(req.Headers))
	if findings == nil {
		findings = []types.Finding{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"findings": findings,
	})
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := h.Manager.Create(req.URLs, req.Concurrency)
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     job.ID,
		"status": jobs.StatusRunning,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID           string           `json:"id"`
		Status       jobs.JobStatus   `json:"status"`
		CreatedAt    time.Time        `json:"created_at"`
		Progress     jobs.JobProgress `json:"progress"`
		FindingCount int              `json:"finding_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:           j.ID,
			Status:       j.Status,
			CreatedAt:    j.CreatedAt,
			Progress:     j.Progress,
			FindingCount: j.FindingCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report. The format query
// parameter selects any output formatter; html is the default.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Result); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func contentType(format string) string {
	switch format {
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	case "markdown":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
