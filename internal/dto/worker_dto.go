package dto

import "hybrid-brain/internal/entity"

type TranscribeRequest struct {
	URL               string `json:"url" validate:"required,url"`
	Platform          string `json:"platform" validate:"omitempty,oneof=youtube instagram auto"`
	Language          string `json:"language"`
	IncludeTimestamps bool   `json:"include_timestamps"`
	Summarize         bool   `json:"summarize"`
	SkipArchive       bool   `json:"skip_archive"`
}

type TranscribeResponse struct {
	TranscriptId   string                     `json:"transcript_id"`
	SourceURL      string                     `json:"source_url"`
	Platform       string                     `json:"platform"`
	Title          string                     `json:"title"`
	Channel        string                     `json:"channel"`
	DurationSecs   float64                    `json:"duration_secs"`
	Language       string                     `json:"language"`
	Text           string                     `json:"text"`
	Summary        string                     `json:"summary,omitempty"`
	WordCount      int                        `json:"word_count"`
	Segments       []entity.TranscriptSegment `json:"segments,omitempty"`
	FromArchive    bool                       `json:"from_archive"`
	ProcessingSecs float64                    `json:"processing_secs"`
}

type VideoInfoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type VideoInfoResponse struct {
	Title        string  `json:"title"`
	Channel      string  `json:"channel"`
	DurationSecs float64 `json:"duration_secs"`
	Thumbnail    string  `json:"thumbnail"`
	Platform     string  `json:"platform"`
	VideoId      string  `json:"video_id"`
	Description  string  `json:"description"`
}

type ModelLoadRequest struct {
	Model string `json:"model" validate:"omitempty,oneof=tiny base small medium large"`
}

type ModelStatusResponse struct {
	Model  string `json:"model"`
	Loaded bool   `json:"loaded"`
}

type CleanupResponse struct {
	FilesRemoved int `json:"files_removed"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	WhisperLoaded bool   `json:"whisper_loaded"`
	ArchiveReady  bool   `json:"archive_ready"`
	Version       string `json:"version"`
}

type SemanticSearchRequest struct {
	Query     string  `json:"query" validate:"required,min=2"`
	Limit     int     `json:"limit" validate:"omitempty,min=1,max=50"`
	Threshold float32 `json:"threshold" validate:"omitempty,min=0,max=1"`
}

type SemanticSearchHit struct {
	TranscriptId string  `json:"transcript_id"`
	SourceURL    string  `json:"source_url"`
	Title        string  `json:"title"`
	Platform     string  `json:"platform"`
	Chunk        string  `json:"chunk"`
	Similarity   float32 `json:"similarity"`
}

type SemanticSearchResponse struct {
	Hits []SemanticSearchHit `json:"hits"`
}

// StreamEvent is one frame of a preview transcription stream. Type is the
// discriminator: status, token, sources, done or error.
type StreamEvent struct {
	Type    string      `json:"type"`
	Status  string      `json:"status,omitempty"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ArchiveTranscriptMessage is the payload published to the archive topic
// after a successful transcription. The consumer embeds and persists it.
type ArchiveTranscriptMessage struct {
	TranscriptId string `json:"transcript_id"`
	Text         string `json:"text"`
}
