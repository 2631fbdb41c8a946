package jobs

import (
	"time"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// JobProgress tracks URL-level progress within a job.
type JobProgress struct {
	TotalURLs     int `json:"total_urls"`
	CompletedURLs int `json:"completed_urls"`
	FailedURLs    int `json:"failed_urls"`
}

// Job represents an async scan of a URL list.
type Job struct {
	ID          string           `json:"id"`
	URLs        []string         `json:"urls"`
	Concurrency int              `json:"concurrency"`
	Status      JobStatus        `json:"status"`
	Result      types.ScanResult `json:"results,omitempty"`
	Error       string           `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	StartedAt   time.Time        `json:"started_at,omitempty"`
	CompletedAt time.Time        `json:"completed_at,omitempty"`
	Progress    JobProgress      `json:"progress"`
}

// FindingCount returns the total number of findings across all URLs.
func (j *Job) FindingCount() int {
	return j.Result.FindingCount()
}

// snapshot copies the job so it can be read without the manager lock.
func (j *Job) snapshot() *Job {
	c := *j
	c.URLs = append([]string(nil), j.URLs...)
	if j.Result != nil {
		c.Result = make(types.ScanResult, len(j.Result))
		for url, findings := range j.Result {
			c.Result[url] = append([]types.Finding(nil), findings...)
		}
	}
	return &c
}
