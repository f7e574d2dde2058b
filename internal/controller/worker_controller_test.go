package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriptionService struct {
	response *dto.TranscribeResponse
	err      error
}

func (s *stubTranscriptionService) Transcribe(ctx context.Context, request dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	return s.response, s.err
}

func (s *stubTranscriptionService) TranscribePreview(ctx context.Context, request dto.TranscribeRequest, emit func(dto.StreamEvent) error) error {
	return s.err
}

type stubMaintenanceService struct {
	health        dto.HealthResponse
	cleanupMaxAge time.Duration
}

func (s *stubMaintenanceService) VideoInfo(ctx context.Context, request dto.VideoInfoRequest) (*dto.VideoInfoResponse, error) {
	return &dto.VideoInfoResponse{Title: "stub"}, nil
}

func (s *stubMaintenanceService) LoadModel(ctx context.Context, request dto.ModelLoadRequest) (*dto.ModelStatusResponse, error) {
	return &dto.ModelStatusResponse{Model: "small", Loaded: true}, nil
}

func (s *stubMaintenanceService) UnloadModel(ctx context.Context) (*dto.ModelStatusResponse, error) {
	return &dto.ModelStatusResponse{Model: "small", Loaded: false}, nil
}

func (s *stubMaintenanceService) Cleanup(ctx context.Context, maxAge time.Duration) (*dto.CleanupResponse, error) {
	s.cleanupMaxAge = maxAge
	return &dto.CleanupResponse{FilesRemoved: 3}, nil
}

func (s *stubMaintenanceService) Health(ctx context.Context) *dto.HealthResponse {
	return &s.health
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestApp(transcription *stubTranscriptionService, maintenance *stubMaintenanceService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	controller := NewWorkerController(transcription, maintenance, noopLogger{})
	controller.RegisterRoutes(app.Group("/api/worker/v1"))
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&stubTranscriptionService{}, &stubMaintenanceService{
		health: dto.HealthResponse{Status: "ok", WhisperLoaded: true, ArchiveReady: true, Version: "1.0.0"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/worker/v1/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body serverutils.BaseResponse[dto.HealthResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data.Status)
	assert.True(t, body.Data.WhisperLoaded)
}

func TestTranscribeValidatesRequest(t *testing.T) {
	app := newTestApp(&stubTranscriptionService{}, &stubMaintenanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/worker/v1/transcribe",
		strings.NewReader(`{"url":"not a url"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body serverutils.BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
}

func TestTranscribeSuccessEnvelope(t *testing.T) {
	app := newTestApp(&stubTranscriptionService{
		response: &dto.TranscribeResponse{
			TranscriptId: "t1",
			SourceURL:    "https://youtu.be/a",
			Text:         "hello world",
			WordCount:    2,
		},
	}, &stubMaintenanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/worker/v1/transcribe",
		strings.NewReader(`{"url":"https://youtu.be/a"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body serverutils.BaseResponse[dto.TranscribeResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "t1", body.Data.TranscriptId)
	assert.Equal(t, 2, body.Data.WordCount)
}

func TestCleanupReadsMaxAgeOverride(t *testing.T) {
	maintenance := &stubMaintenanceService{}
	app := newTestApp(&stubTranscriptionService{}, maintenance)

	req := httptest.NewRequest(http.MethodDelete, "/api/worker/v1/cleanup?max_age_hours=48", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 48*time.Hour, maintenance.cleanupMaxAge)

	var body serverutils.BaseResponse[dto.CleanupResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Data.FilesRemoved)
}

func TestAppErrorKeepsItsStatusCode(t *testing.T) {
	app := newTestApp(&stubTranscriptionService{
		err: serverutils.NewAppError(fiber.StatusConflict, "this URL is already being processed"),
	}, &stubMaintenanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/worker/v1/transcribe",
		strings.NewReader(`{"url":"https://youtu.be/a"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body serverutils.BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "this URL is already being processed", body.Message)
}
