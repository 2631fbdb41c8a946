package types

import "sort"

// Level is a presentation band derived from a numeric severity score.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelInfo     Level = "INFO"
)

// LevelFor maps a severity score onto its band.
func LevelFor(severity uint) Level {
	switch {
	case severity >= 13:
		return LevelCritical
	case severity >= 10:
		return LevelHigh
	case severity >= 5:
		return LevelMedium
	case severity >= 2:
		return LevelLow
	default:
		return LevelInfo
	}
}

// Finding is one reported header observation. Severity is always > 0.
type Finding struct {
	Label      string `json:"label"`
	Severity   uint   `json:"severity"`
	Suggestion string `json:"suggestion"`
}

// Level returns the presentation band of the finding's severity.
func (f Finding) Level() Level {
	return LevelFor(f.Severity)
}

// ScanResult maps a URL to its ordered findings. URLs without findings
// are never present.
type ScanResult map[string][]Finding

// URLResult is a single ScanResult entry.
type URLResult struct {
	URL      string    `json:"url"`
	Findings []Finding `json:"findings"`
}

// Sorted returns the entries ordered by URL. Findings keep their order.
func (r ScanResult) Sorted() []URLResult {
	out := make([]URLResult, 0, len(r))
	for url, findings := range r {
		out = append(out, URLResult{URL: url, Findings: findings})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

// FindingCount returns the total number of findings across all URLs.
func (r ScanResult) FindingCount() int {
	n := 0
	for _, findings := range r {
		n += len(findings)
	}
	return n
}

// Filter returns a copy holding only findings at or above minSeverity.
// URLs left without findings are dropped.
func (r ScanResult) Filter(minSeverity uint) ScanResult {
	out := make(ScanResult, len(r))
	for url, findings := range r {
		var kept []Finding
		for _, f := range findings {
			if f.Severity >= minSeverity {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			out[url] = kept
		}
	}
	return out
}
