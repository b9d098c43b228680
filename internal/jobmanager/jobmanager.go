// Package jobmanager implements C10: queued, concurrency-capped,
// cancellable execution of compiler (C9) runs, with per-job progress
// streams and TTL-bounded retention. A Job's status is a monotonic
// lattice (pending -> running -> {completed|failed|cancelled}); nothing in
// this package ever moves a job backward.
package jobmanager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/compiler"
)

// Status is one point in a Job's monotonic status lattice.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job is the full record of one compile request: its input, options,
// accumulated progress history, and (once terminal) its result.
type Job struct {
	ID             string
	UserID         string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	InputText      []byte
	InputFileName  string
	Options        compiler.Options
	UseAI          bool

	ProgressHistory []compiler.Progress
	CurrentProgress *compiler.Progress

	Result         *compiler.Result
	Error          string
	OutputBytes    []byte
	OutputFilename string

	mu sync.Mutex
}

// View is a point-in-time, lock-free copy of a Job, safe for a reader that
// takes no lock (status queries, download, report) to hold onto: status
// transitions are monotonic and terminal, so a torn read is, at worst, one
// event stale.
type View struct {
	ID             string
	UserID         string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	InputFileName  string
	Options        compiler.Options
	UseAI          bool

	ProgressHistory []compiler.Progress
	CurrentProgress *compiler.Progress

	Result         *compiler.Result
	Error          string
	OutputBytes    []byte
	OutputFilename string
}

// snapshot returns a View of job, taking and releasing the job's mutex
// internally rather than copying it.
func (j *Job) snapshot() View {
	j.mu.Lock()
	defer j.mu.Unlock()
	return View{
		ID:              j.ID,
		UserID:          j.UserID,
		Status:          j.Status,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
		InputFileName:   j.InputFileName,
		Options:         j.Options,
		UseAI:           j.UseAI,
		ProgressHistory: append([]compiler.Progress(nil), j.ProgressHistory...),
		CurrentProgress: j.CurrentProgress,
		Result:          j.Result,
		Error:           j.Error,
		OutputBytes:     j.OutputBytes,
		OutputFilename:  j.OutputFilename,
	}
}

// Manager runs compiler jobs under a bounded concurrency gate, one
// exclusive mutex per job for update serialization, and a TTL cleanup
// loop.
type Manager struct {
	logger *slog.Logger
	ai     aiservice.Service

	maxFixIterations int
	retention        time.Duration

	gate chan struct{}

	mu   sync.Mutex
	jobs map[string]*Job

	nextID int
	idMu   sync.Mutex

	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// Config controls the Manager's concurrency cap, fix-iteration budget, and
// retention/cleanup cadence.
type Config struct {
	MaxConcurrentJobs int
	MaxFixIterations  int
	RetentionHours    int
	CleanupInterval   time.Duration
}

// New constructs a Manager and starts its background cleanup loop. Callers
// must call Shutdown to stop it.
func New(logger *slog.Logger, ai aiservice.Service, cfg Config) *Manager {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 5
	}
	if cfg.RetentionHours <= 0 {
		cfg.RetentionHours = 24
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if ai == nil {
		ai = aiservice.Unconfigured{}
	}

	m := &Manager{
		logger:           logger,
		ai:               ai,
		maxFixIterations: cfg.MaxFixIterations,
		retention:        time.Duration(cfg.RetentionHours) * time.Hour,
		gate:             make(chan struct{}, cfg.MaxConcurrentJobs),
		jobs:             make(map[string]*Job),
		stopCleanup:      make(chan struct{}),
		cleanupDone:      make(chan struct{}),
	}
	go m.cleanupLoop(cfg.CleanupInterval)
	return m
}

func (m *Manager) newID() string {
	m.idMu.Lock()
	defer m.idMu.Unlock()
	m.nextID++
	return fmt.Sprintf("job-%d", m.nextID)
}

// Submit creates a new pending Job and returns it; the caller invokes
// RunJob (typically in a new goroutine) to actually execute it.
func (m *Manager) Submit(userID string, inputText []byte, inputFileName string, opts compiler.Options, useAI bool) *Job {
	now := time.Now()
	job := &Job{
		ID:            m.newID(),
		UserID:        userID,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		InputText:     inputText,
		InputFileName: inputFileName,
		Options:       opts,
		UseAI:         useAI,
	}
	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job
}

// Get returns a point-in-time snapshot of a job, or false if unknown.
func (m *Manager) Get(id string) (View, bool) {
	m.mu.Lock()
	job, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return View{}, false
	}
	return job.snapshot(), true
}

// List returns snapshots of up to limit jobs, most recently created first.
// limit <= 0 means unlimited.
func (m *Manager) List(limit int) []View {
	m.mu.Lock()
	all := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		all = append(all, j)
	}
	m.mu.Unlock()

	sortJobsByCreatedDesc(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]View, len(all))
	for i, j := range all {
		out[i] = j.snapshot()
	}
	return out
}

func sortJobsByCreatedDesc(jobs []*Job) {
	for i := 1; i < len(jobs); i++ {
		for j := i; j > 0 && jobs[j].CreatedAt.After(jobs[j-1].CreatedAt); j-- {
			jobs[j], jobs[j-1] = jobs[j-1], jobs[j]
		}
	}
}

// Cancel marks a pending or running job cancelled. A pending cancellation
// short-circuits immediately (RunJob checks status before doing any work);
// a running job's in-flight compiler call is not interrupted, but its
// result is discarded once it returns.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	job, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("jobmanager: no such job %q", id)
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	switch job.Status {
	case StatusPending, StatusRunning:
		job.Status = StatusCancelled
		job.UpdatedAt = time.Now()
		return nil
	default:
		return fmt.Errorf("jobmanager: job %q is already terminal (%s)", id, job.Status)
	}
}

// RunJob acquires the concurrency gate and the job's mutex, transitions it
// to running, invokes the compiler with a callback that both appends to
// the progress history and updates CurrentProgress, then assigns the
// result and transitions to the matching terminal state. If the job was
// cancelled while pending, RunJob returns immediately without compiling.
func (m *Manager) RunJob(ctx context.Context, id string) {
	m.mu.Lock()
	job, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return
	}

	job.mu.Lock()
	if job.Status == StatusCancelled {
		job.mu.Unlock()
		return
	}
	job.mu.Unlock()

	m.gate <- struct{}{}
	defer func() { <-m.gate }()

	job.mu.Lock()
	if job.Status == StatusCancelled {
		job.mu.Unlock()
		return
	}
	job.Status = StatusRunning
	job.UpdatedAt = time.Now()
	job.mu.Unlock()

	progressCb := func(p compiler.Progress) {
		job.mu.Lock()
		job.ProgressHistory = append(job.ProgressHistory, p)
		pc := p
		job.CurrentProgress = &pc
		job.UpdatedAt = time.Now()
		job.mu.Unlock()
	}

	var result compiler.Result
	if job.UseAI {
		result = compiler.CompileDocumentWithAI(ctx, job.InputText, job.Options, m.maxFixIterations, m.ai, progressCb)
	} else {
		result = compiler.CompileDocument(job.InputText, job.Options, m.maxFixIterations, progressCb)
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	if job.Status == StatusCancelled {
		// Cancellation arrived while C9 was in flight: discard the result,
		// keep the cancelled status.
		return
	}
	job.Result = &result
	job.UpdatedAt = time.Now()
	if result.Success {
		job.Status = StatusCompleted
		job.OutputBytes = result.OutputDocx
		job.OutputFilename = outputFilename(job.InputFileName)
	} else {
		job.Status = StatusFailed
		job.Error = result.Error
	}
}

func outputFilename(inputFileName string) string {
	if inputFileName == "" {
		return "document.docx"
	}
	return trimExt(inputFileName) + ".docx"
}

func trimExt(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

// StreamEvent is one item a StreamProgress channel delivers: either a
// progress update or the job's single terminal event.
type StreamEvent struct {
	Event    string            `json:"event"` // "progress", "completed", "cancelled", or "error" (failed job or unknown id).
	Progress *compiler.Progress `json:"progress,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// StreamProgress returns a channel that emits every yet-unseen progress
// event for id, polling at the given interval, followed by exactly one
// terminal event, after which the channel closes. If id is unknown the
// channel immediately delivers one error event and closes.
func (m *Manager) StreamProgress(ctx context.Context, id string, poll time.Duration) <-chan StreamEvent {
	out := make(chan StreamEvent, 8)
	go func() {
		defer close(out)

		m.mu.Lock()
		job, ok := m.jobs[id]
		m.mu.Unlock()
		if !ok {
			out <- StreamEvent{Event: "error", Error: fmt.Sprintf("no such job %q", id)}
			return
		}

		sent := 0
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		for {
			job.mu.Lock()
			history := append([]compiler.Progress(nil), job.ProgressHistory[sent:]...)
			status := job.Status
			errMsg := job.Error
			job.mu.Unlock()

			for i := range history {
				select {
				case out <- StreamEvent{Event: "progress", Progress: &history[i]}:
				case <-ctx.Done():
					return
				}
			}
			sent += len(history)

			if status == StatusCompleted || status == StatusFailed || status == StatusCancelled {
				event := string(status)
				if status == StatusFailed {
					event = "error"
				}
				select {
				case out <- StreamEvent{Event: event, Error: errMsg}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Stats summarizes the Manager's current load: job counts by status.
type Stats struct {
	TotalJobs     int `json:"total_jobs"`
	PendingJobs   int `json:"pending_jobs"`
	RunningJobs   int `json:"running_jobs"`
	CompletedJobs int `json:"completed_jobs"`
	FailedJobs    int `json:"failed_jobs"`
	CancelledJobs int `json:"cancelled_jobs"`
	CapacityInUse int `json:"capacity_in_use"`
	CapacityTotal int `json:"capacity_total"`
}

// GetStats computes a Stats snapshot across every job the Manager holds.
func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	jobs := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, j)
	}
	m.mu.Unlock()

	stats := Stats{CapacityTotal: cap(m.gate), CapacityInUse: len(m.gate)}
	for _, j := range jobs {
		j.mu.Lock()
		status := j.Status
		j.mu.Unlock()
		stats.TotalJobs++
		switch status {
		case StatusPending:
			stats.PendingJobs++
		case StatusRunning:
			stats.RunningJobs++
		case StatusCompleted:
			stats.CompletedJobs++
		case StatusFailed:
			stats.FailedJobs++
		case StatusCancelled:
			stats.CancelledJobs++
		}
	}
	return stats
}

// cleanupLoop periodically removes jobs whose UpdatedAt is older than the
// retention window, stopping only when Shutdown closes stopCleanup.
func (m *Manager) cleanupLoop(interval time.Duration) {
	defer close(m.cleanupDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.cleanupExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) cleanupExpired() {
	cutoff := time.Now().Add(-m.retention)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, job := range m.jobs {
		job.mu.Lock()
		expired := isTerminal(job.Status) && job.UpdatedAt.Before(cutoff)
		job.mu.Unlock()
		if expired {
			delete(m.jobs, id)
			if m.logger != nil {
				m.logger.Info("job expired", slog.String("job_id", id))
			}
		}
	}
}

func isTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// errShutdown is the fixed error message a pending or running job is marked
// cancelled with if it has not reached a terminal state by the time
// Shutdown runs.
const errShutdown = "jobmanager: server shut down while job was running"

// Shutdown stops the cleanup loop and marks every still-pending or running
// job cancelled with a fixed error message; it does not wait for or interrupt
// any in-flight compiler call.
func (m *Manager) Shutdown(ctx context.Context) error {
	close(m.stopCleanup)

	m.mu.Lock()
	for _, job := range m.jobs {
		job.mu.Lock()
		if job.Status == StatusRunning || job.Status == StatusPending {
			job.Status = StatusCancelled
			job.Error = errShutdown
			job.UpdatedAt = time.Now()
		}
		job.mu.Unlock()
	}
	m.mu.Unlock()

	select {
	case <-m.cleanupDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
