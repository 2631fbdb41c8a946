package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/CypherHippie/HeaderHunter/internal/targets"
)

const (
	// maxScanURLs bounds the size of one scan job.
	maxScanURLs = 10000
	// maxScanConcurrency bounds the in-flight probes of one scan job.
	maxScanConcurrency = 100
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	URLs        []string `json:"urls"`
	Concurrency int      `json:"concurrency"`
}

// AnalyzeRequest is the JSON body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Headers map[string]string `json:"headers"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	urls := make([]string, 0, len(req.URLs))
	for _, u := range req.URLs {
		if strings.TrimSpace(u) == "" {
			continue
		}
		urls = append(urls, targets.Normalize(u))
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls is required")
	}
	if len(urls) > maxScanURLs {
		return nil, fmt.Errorf("too many urls (%d, max %d)", len(urls), maxScanURLs)
	}
	req.URLs = urls

	if req.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be non-negative")
	}
	if req.Concurrency > maxScanConcurrency {
		return nil, fmt.Errorf("concurrency too high (%d, max %d)", req.Concurrency, maxScanConcurrency)
	}
	if req.Concurrency == 0 {
		req.Concurrency = 10
	}

	return &req, nil
}

// decodeAnalyzeRequest reads and validates the request body.
func decodeAnalyzeRequest(r *http.Request) (*AnalyzeRequest, error) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(req.Headers) == 0 {
		return nil, fmt.Errorf("headers is required")
	}
	return &req, nil
}
