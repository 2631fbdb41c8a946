package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/CypherHippie/HeaderHunter/internal/scanner"
	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// newID generates a job identifier. Extracted as a variable for testing.
var newID = defaultNewID

func defaultNewID() string {
	// Timestamp based ID, unique within a single process.
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Manager manages scan job lifecycle: create, execute, track, store results.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	runner  *scanner.Runner
	timeout time.Duration
}

// NewManager creates a new job manager backed by the given runner. A
// positive timeout bounds each job's total run time.
func NewManager(runner *scanner.Runner, timeout time.Duration) *Manager {
	return &Manager{
		jobs:    make(map[string]*Job),
		runner:  runner,
		timeout: timeout,
	}
}

// Create creates a new pending scan job.
func (m *Manager) Create(urls []string, concurrency int) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:          newID(),
		URLs:        append([]string(nil), urls...),
		Concurrency: concurrency,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
		Progress: JobProgress{
			TotalURLs: len(urls),
		},
	}
	m.jobs[job.ID] = job
	return job.snapshot()
}

// Start launches the scan job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}
	if job.Status != StatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job %q already %s", jobID, job.Status)
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	m.mu.Unlock()

	go m.execute(job)
	return nil
}

func (m *Manager) execute(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = time.Now()
			m.mu.Unlock()
		}
	}()

	ctx := context.Background()
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	result := m.runner.Scan(ctx, job.URLs, scanner.Options{
		Concurrency: job.Concurrency,
		OnURLDone: func(_ string, _ []types.Finding, err error) {
			m.mu.Lock()
			job.Progress.CompletedURLs++
			if err != nil {
				job.Progress.FailedURLs++
			}
			m.mu.Unlock()
		},
	})

	m.mu.Lock()
	job.Result = result
	job.Status = StatusCompleted
	if ctx.Err() != nil {
		job.Error = ctx.Err().Error()
	}
	job.CompletedAt = time.Now()
	m.mu.Unlock()
}

// Get returns a snapshot of the job with the given ID.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %q not found", jobID)
	}
	return job.snapshot(), nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.snapshot())
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}
