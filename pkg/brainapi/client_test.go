package brainapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobsDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"message":"ok","data":[
			{"id":"j1","url":"https://youtu.be/a","status":"pending","progress":0},
			{"id":"j2","url":"https://youtu.be/b","status":"ready","progress":100}
		]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	jobs, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, JobStatusPending, jobs[0].Status)
	assert.False(t, jobs[0].Status.IsTerminal())
	assert.True(t, jobs[1].Status.IsTerminal())
}

func TestSuccessFalseBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"success":false,"message":"url already queued"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateJob(context.Background(), CreateJobRequest{URL: "https://youtu.be/a"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "url already queued", apiErr.Message)
}

func TestNonJSONErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.JobStats(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestCategoryCacheInvalidatedOnMutation(t *testing.T) {
	listCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories":
			listCalls++
			fmt.Fprintf(w, `{"success":true,"data":[{"id":"c%d","name":"N","parent_id":null}]}`, listCalls)
		case r.Method == http.MethodPost && r.URL.Path == "/categories":
			fmt.Fprint(w, `{"success":true,"data":{"id":"new","name":"New","parent_id":null}}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.ListCategories(ctx)
	require.NoError(t, err)
	_, err = client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, listCalls, "second list must come from cache")

	_, err = client.CreateCategory(ctx, CreateCategoryRequest{Name: "New"})
	require.NoError(t, err)

	_, err = client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "mutation must invalidate the cache")
}

func TestStreamSkipsMalformedFrames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"type\":\"token\",\"token\":\"hello\"}\n\n")
		io.WriteString(w, "data: {not json at all\n\n")
		io.WriteString(w, "data: {\"type\":\"done\"}\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL)
	stream, err := client.AskStream(context.Background(), "q", "")
	require.NoError(t, err)
	defer stream.Close()

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "token", first.Type)
	assert.Equal(t, "hello", first.Token)

	// The malformed frame in between must be skipped, not surfaced.
	second, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "done", second.Type)
}
