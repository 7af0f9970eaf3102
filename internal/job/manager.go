package job

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks job state in memory. It owns the canonical copy of every
// job; callers only ever see snapshots. One background worker drives a given
// job, any number of pollers may read it concurrently.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewManager creates an empty job manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// Create allocates a new pending job and returns its id.
func (m *Manager) Create(filename, targetLanguage string) string {
	now := time.Now().UTC()
	j := &Job{
		ID:             uuid.New().String(),
		Status:         StatusPending,
		Filename:       filename,
		TargetLanguage: targetLanguage,
		Progress:       0,
		Message:        "Job created, waiting to start...",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	m.mu.Lock()
	m.jobs[j.ID] = j
	m.mu.Unlock()

	return j.ID
}

// Update is a partial mutation of a job; nil fields are left untouched.
type Update struct {
	Status   *Status
	Progress *int
	Message  *string
	Result   *Result
	Error    *string
}

// Update merges the provided fields into the job and refreshes its update
// timestamp. Returns false if the id is unknown. Once a job has reached a
// terminal status the update is silently dropped: a completed or failed job
// is immutable.
func (m *Manager) Update(id string, u Update) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return false
	}
	if j.Status.Terminal() {
		log.Printf("[job] ignoring update to terminal job %s (status=%s)", id, j.Status)
		return true
	}

	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.Progress != nil {
		j.Progress = clampProgress(*u.Progress)
	}
	if u.Message != nil {
		j.Message = *u.Message
	}
	if u.Result != nil {
		j.Result = u.Result
	}
	if u.Error != nil {
		j.Error = *u.Error
	}
	j.UpdatedAt = time.Now().UTC()

	return true
}

// SetProcessing moves a job into the processing state.
func (m *Manager) SetProcessing(id string, progress int, message string) bool {
	status := StatusProcessing
	return m.Update(id, Update{Status: &status, Progress: &progress, Message: &message})
}

// SetProgress records pipeline progress on a running job.
func (m *Manager) SetProgress(id string, progress int, message string) bool {
	return m.Update(id, Update{Progress: &progress, Message: &message})
}

// Complete marks a job as successfully finished with its result.
func (m *Manager) Complete(id string, result *Result, message string) bool {
	status := StatusCompleted
	progress := 100
	return m.Update(id, Update{Status: &status, Progress: &progress, Message: &message, Result: result})
}

// Fail marks a job as failed with a human-readable error.
func (m *Manager) Fail(id, errMsg string) bool {
	status := StatusFailed
	message := "Processing failed"
	return m.Update(id, Update{Status: &status, Message: &message, Error: &errMsg})
}

// Get returns a snapshot of the job, or false if the id is unknown.
func (m *Manager) Get(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return snapshot(j), true
}

// List returns snapshots of all jobs, newest first.
func (m *Manager) List() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, snapshot(j))
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}

// Delete removes a job. Returns false if the id is unknown.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return false
	}
	delete(m.jobs, id)
	return true
}

// snapshot copies a job so callers cannot mutate manager-owned state.
func snapshot(j *Job) Job {
	copied := *j
	if j.Result != nil {
		result := *j.Result
		copied.Result = &result
	}
	return copied
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
