package mapper

import (
	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/model"

	"github.com/pgvector/pgvector-go"
)

func TranscriptEmbeddingToEntity(m *model.TranscriptEmbedding) *entity.TranscriptEmbedding {
	if m == nil {
		return nil
	}
	return &entity.TranscriptEmbedding{
		Id:             m.Id,
		Document:       m.Document,
		EmbeddingValue: m.EmbeddingValue.Slice(),
		TranscriptId:   m.TranscriptId,
		ChunkIndex:     m.ChunkIndex,
		CreatedAt:      m.CreatedAt,
	}
}

func TranscriptEmbeddingToModel(e *entity.TranscriptEmbedding) *model.TranscriptEmbedding {
	if e == nil {
		return nil
	}
	return &model.TranscriptEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		TranscriptId:   e.TranscriptId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func TranscriptEmbeddingsToModels(entities []entity.TranscriptEmbedding) []model.TranscriptEmbedding {
	models := make([]model.TranscriptEmbedding, 0, len(entities))
	for i := range entities {
		models = append(models, *TranscriptEmbeddingToModel(&entities[i]))
	}
	return models
}
