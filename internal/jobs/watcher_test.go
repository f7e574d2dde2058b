package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hybrid-brain/pkg/brainapi"
)

type fakeAPI struct {
	mu        sync.Mutex
	jobs      []brainapi.ProcessingJob
	listErr   error
	listHook  func(call int) ([]brainapi.ProcessingJob, error)
	listCalls int
	createErr error
	deleteErr error
}

func (f *fakeAPI) ListJobs(ctx context.Context) ([]brainapi.ProcessingJob, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.listHook
	jobs, err := f.jobs, f.listErr
	f.mu.Unlock()

	if hook != nil {
		return hook(call)
	}
	return jobs, err
}

func (f *fakeAPI) CreateJob(ctx context.Context, request brainapi.CreateJobRequest) (*brainapi.ProcessingJob, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &brainapi.ProcessingJob{Id: "new", URL: request.URL, Status: brainapi.JobStatusPending}, nil
}

func (f *fakeAPI) DeleteJob(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeAPI) RetryJob(ctx context.Context, id string) (*brainapi.ProcessingJob, error) {
	return &brainapi.ProcessingJob{Id: id, Status: brainapi.JobStatusPending}, nil
}

func (f *fakeAPI) JobStats(ctx context.Context) (*brainapi.JobStats, error) {
	return &brainapi.JobStats{}, nil
}

func job(id string, status brainapi.JobStatus) brainapi.ProcessingJob {
	return brainapi.ProcessingJob{Id: id, URL: "https://youtu.be/" + id, Status: status}
}

func TestPollingActiveOnlyWithNonTerminalJobs(t *testing.T) {
	api := &fakeAPI{jobs: []brainapi.ProcessingJob{
		job("a", brainapi.JobStatusReady),
		job("b", brainapi.JobStatusFailed),
	}}
	w := NewWatcher(api, time.Hour)
	w.refresh(context.Background())

	if w.hasActiveJob() {
		t.Error("all jobs terminal, polling must be inactive")
	}

	api.mu.Lock()
	api.jobs = append(api.jobs, job("c", brainapi.JobStatusTranscribing))
	api.mu.Unlock()
	w.refresh(context.Background())

	if !w.hasActiveJob() {
		t.Error("non-terminal job present, polling must be active")
	}
}

func TestFetchErrorKeepsSnapshot(t *testing.T) {
	api := &fakeAPI{jobs: []brainapi.ProcessingJob{job("a", brainapi.JobStatusPending)}}
	w := NewWatcher(api, time.Hour)
	w.refresh(context.Background())

	api.mu.Lock()
	api.listErr = errors.New("connection refused")
	api.mu.Unlock()
	w.refresh(context.Background())

	if err := w.Err(); err == nil {
		t.Fatal("fetch error must be surfaced")
	}
	if len(w.Jobs()) != 1 {
		t.Error("snapshot must survive a failed fetch")
	}

	api.mu.Lock()
	api.listErr = nil
	api.mu.Unlock()
	w.refresh(context.Background())

	if err := w.Err(); err != nil {
		t.Errorf("error must clear after a successful fetch: %v", err)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	api := &fakeAPI{}
	api.listHook = func(call int) ([]brainapi.ProcessingJob, error) {
		if call == 1 {
			close(firstStarted)
			<-release
			return []brainapi.ProcessingJob{job("a", brainapi.JobStatusPending)}, nil
		}
		return []brainapi.ProcessingJob{job("a", brainapi.JobStatusReady)}, nil
	}

	w := NewWatcher(api, time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.refresh(context.Background()) // slow, stale response
	}()

	<-firstStarted
	w.refresh(context.Background()) // fast, fresh response lands first
	close(release)
	wg.Wait()

	jobs := w.Jobs()
	if len(jobs) != 1 || jobs[0].Status != brainapi.JobStatusReady {
		t.Errorf("stale response overwrote fresher snapshot: %+v", jobs)
	}
}

func TestCreateAppendsAndFailureLeavesListUnchanged(t *testing.T) {
	api := &fakeAPI{}
	w := NewWatcher(api, time.Hour)
	w.refresh(context.Background())

	created, err := w.Create(context.Background(), brainapi.CreateJobRequest{URL: "https://youtu.be/x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Id != "new" || len(w.Jobs()) != 1 {
		t.Fatal("created job not appended to snapshot")
	}

	api.createErr = &brainapi.APIError{Message: "invalid url"}
	if _, err := w.Create(context.Background(), brainapi.CreateJobRequest{URL: "bad"}); err == nil {
		t.Fatal("expected create failure")
	}
	if len(w.Jobs()) != 1 {
		t.Error("failed create must not touch the snapshot")
	}
}

func TestDeleteFailureLeavesListUnchanged(t *testing.T) {
	api := &fakeAPI{jobs: []brainapi.ProcessingJob{job("a", brainapi.JobStatusReady)}}
	w := NewWatcher(api, time.Hour)
	w.refresh(context.Background())

	api.deleteErr = &brainapi.APIError{Message: "not found"}
	if err := w.Delete(context.Background(), "a"); err == nil {
		t.Fatal("expected delete failure")
	}
	if len(w.Jobs()) != 1 {
		t.Error("failed delete must not touch the snapshot")
	}

	api.deleteErr = nil
	if err := w.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(w.Jobs()) != 0 {
		t.Error("deleted job still in snapshot")
	}
}
