package brainapi

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// JobStatus is the server-side lifecycle of a background processing job.
type JobStatus string

const (
	JobStatusPending      JobStatus = "pending"
	JobStatusDownloading  JobStatus = "downloading"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusSummarizing  JobStatus = "summarizing"
	JobStatusReady        JobStatus = "ready"
	JobStatusSaved        JobStatus = "saved"
	JobStatusFailed       JobStatus = "failed"
)

// IsTerminal reports whether the job will never change status again.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusReady, JobStatusSaved, JobStatusFailed:
		return true
	}
	return false
}

// ProcessingJob mirrors a server-side job record. The client never mutates
// fields locally, records are only replaced wholesale from poll responses.
type ProcessingJob struct {
	Id         string     `json:"id"`
	URL        string     `json:"url"`
	Status     JobStatus  `json:"status"`
	Progress   int        `json:"progress"`
	Title      string     `json:"title,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Error      string     `json:"error,omitempty"`
	RetryCount int        `json:"retry_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type JobStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

type CreateJobRequest struct {
	URL        string `json:"url"`
	CategoryId string `json:"category_id,omitempty"`
}

func (c *Client) ListJobs(ctx context.Context) ([]ProcessingJob, error) {
	var jobs []ProcessingJob
	if err := c.get(ctx, "/jobs", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CreateJob(ctx context.Context, request CreateJobRequest) (*ProcessingJob, error) {
	var job ProcessingJob
	if err := c.post(ctx, "/jobs", request, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.delete(ctx, "/jobs/"+id)
}

func (c *Client) RetryJob(ctx context.Context, id string) (*ProcessingJob, error) {
	var job ProcessingJob
	if err := c.post(ctx, fmt.Sprintf("/jobs/%s/retry", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) JobStats(ctx context.Context) (*JobStats, error) {
	var stats JobStats
	if err := c.do(ctx, http.MethodGet, "/jobs/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
