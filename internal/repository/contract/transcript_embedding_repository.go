package contract

import (
	"context"

	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/repository/specification"
)

// ScoredTranscriptEmbedding pairs an embedded chunk with its cosine
// similarity to a query vector and the source transcript metadata needed
// to render a search hit.
type ScoredTranscriptEmbedding struct {
	Embedding  entity.TranscriptEmbedding
	Similarity float32
	SourceURL  string
	Title      string
	Platform   string
}

type ITranscriptEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []entity.TranscriptEmbedding) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.TranscriptEmbedding, error)
	DeleteByTranscriptId(ctx context.Context, specs ...specification.Specification) error
	SearchSimilarWithScore(ctx context.Context, queryEmbedding []float32, limit int, threshold float32) ([]ScoredTranscriptEmbedding, error)
}
