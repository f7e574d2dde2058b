package entity

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptEmbedding is one embedded chunk of an archived transcript,
// used for semantic search over the archive.
type TranscriptEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	TranscriptId   uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
