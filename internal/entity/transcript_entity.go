package entity

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptSegment is one timestamped slice of a transcript.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is an archived transcription of a processed video. The archive
// is keyed by source URL so repeated requests for the same video skip the
// download/transcribe pipeline entirely.
type Transcript struct {
	Id           uuid.UUID
	SourceURL    string
	Platform     string
	VideoId      string
	Title        string
	Channel      string
	DurationSecs float64
	Language     string
	Text         string
	Summary      string
	WordCount    int
	Segments     []TranscriptSegment
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
