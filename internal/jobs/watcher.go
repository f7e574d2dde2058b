// Package jobs keeps a live local snapshot of server-side processing jobs.
// The watcher polls the API on a fixed interval, but only while at least one
// job is in a non-terminal status; once everything settles the poll loop goes
// idle until a new job appears.
package jobs

import (
	"context"
	"sync"
	"time"

	"hybrid-brain/pkg/brainapi"
)

// JobAPI is the slice of the API client the watcher needs.
type JobAPI interface {
	ListJobs(ctx context.Context) ([]brainapi.ProcessingJob, error)
	CreateJob(ctx context.Context, request brainapi.CreateJobRequest) (*brainapi.ProcessingJob, error)
	DeleteJob(ctx context.Context, id string) error
	RetryJob(ctx context.Context, id string) (*brainapi.ProcessingJob, error)
	JobStats(ctx context.Context) (*brainapi.JobStats, error)
}

type Watcher struct {
	api      JobAPI
	interval time.Duration

	mu      sync.Mutex
	jobs    []brainapi.ProcessingJob
	lastErr error

	// Poll responses can arrive out of order; each fetch takes a sequence
	// number before the request and a stale response never overwrites a
	// newer snapshot.
	nextSeq    uint64
	appliedSeq uint64

	wake chan struct{}
	done chan struct{}
}

func NewWatcher(api JobAPI, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		api:      api,
		interval: interval,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start runs the poll loop until ctx is cancelled. It seeds the snapshot
// with one unconditional fetch, then polls only while a job is active.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.done)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.hasActiveJob() {
				w.refresh(ctx)
			}
		case <-w.wake:
			w.refresh(ctx)
		}
	}
}

// Wait blocks until the poll loop has exited.
func (w *Watcher) Wait() {
	<-w.done
}

func (w *Watcher) hasActiveJob() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, job := range w.jobs {
		if !job.Status.IsTerminal() {
			return true
		}
	}
	return false
}

func (w *Watcher) refresh(ctx context.Context) {
	w.mu.Lock()
	w.nextSeq++
	seq := w.nextSeq
	w.mu.Unlock()

	jobs, err := w.api.ListJobs(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.appliedSeq {
		// A newer fetch already landed, drop this one.
		return
	}
	w.appliedSeq = seq

	if err != nil {
		// Keep the last good snapshot, surface the error alongside it.
		w.lastErr = err
		return
	}
	w.jobs = jobs
	w.lastErr = nil
}

// Jobs returns a copy of the current snapshot.
func (w *Watcher) Jobs() []brainapi.ProcessingJob {
	w.mu.Lock()
	defer w.mu.Unlock()
	jobs := make([]brainapi.ProcessingJob, len(w.jobs))
	copy(jobs, w.jobs)
	return jobs
}

// Err returns the error from the most recent fetch, nil after a success.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Create submits a new job and appends it to the local snapshot. The poll
// loop is woken immediately so the new job's progress shows up right away.
func (w *Watcher) Create(ctx context.Context, request brainapi.CreateJobRequest) (*brainapi.ProcessingJob, error) {
	job, err := w.api.CreateJob(ctx, request)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.jobs = append(w.jobs, *job)
	w.mu.Unlock()

	w.poke()
	return job, nil
}

// Delete removes a job server-side, then drops it from the snapshot. On
// failure the snapshot is left untouched.
func (w *Watcher) Delete(ctx context.Context, id string) error {
	if err := w.api.DeleteJob(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	filtered := w.jobs[:0]
	for _, job := range w.jobs {
		if job.Id != id {
			filtered = append(filtered, job)
		}
	}
	w.jobs = filtered
	w.mu.Unlock()
	return nil
}

// Retry re-queues a failed job and patches the returned record in place.
func (w *Watcher) Retry(ctx context.Context, id string) (*brainapi.ProcessingJob, error) {
	job, err := w.api.RetryJob(ctx, id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	for i := range w.jobs {
		if w.jobs[i].Id == id {
			w.jobs[i] = *job
			break
		}
	}
	w.mu.Unlock()

	w.poke()
	return job, nil
}

func (w *Watcher) Stats(ctx context.Context) (*brainapi.JobStats, error) {
	return w.api.JobStats(ctx)
}

func (w *Watcher) poke() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}
